package otpService

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// InitializeOTPScheduler starts a cron job running Sweep on the given schedule.
// Callers own the returned cron and should Stop it on shutdown.
func InitializeOTPScheduler(s *OTPService, schedule string) (*cron.Cron, error) {
	log.Println("[OTP-SCHEDULER] Initializing OTP sweep scheduler...")

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { runSweep(s) }); err != nil {
		return nil, err
	}

	c.Start()
	log.Printf("[OTP-SCHEDULER] OTP sweep scheduler started - runs %q", schedule)
	return c, nil
}

func runSweep(s *OTPService) {
	removed, err := s.Sweep(context.Background())
	if err != nil {
		log.Printf("[OTP-SCHEDULER] Error sweeping OTPs: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("[OTP-SCHEDULER] Removed %d stale OTP records", removed)
	}
}
