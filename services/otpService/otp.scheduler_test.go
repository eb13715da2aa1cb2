package otpService

import (
	"ambulance/models"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeOTPSchedulerRejectsBadSchedule(t *testing.T) {
	f := newFixture(t)

	_, err := InitializeOTPScheduler(f.svc, "every now and then")
	assert.Error(t, err)
}

func TestInitializeOTPSchedulerRegistersSweep(t *testing.T) {
	f := newFixture(t)

	c, err := InitializeOTPScheduler(f.svc, "@every 1h")
	require.NoError(t, err)
	defer c.Stop()

	require.Len(t, c.Entries(), 1)
}

func TestRunSweepDeletesUsedCodes(t *testing.T) {
	f := newFixture(t)
	otp := f.issue(t, "user@example.com")
	ok, _ := f.svc.Verify(context.Background(), "user@example.com", otp.Code)
	require.True(t, ok)

	runSweep(f.svc)

	var count int64
	require.NoError(t, f.db.Unscoped().Model(&models.OTP{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRunSweepKeepsLiveCodes(t *testing.T) {
	f := newFixture(t)
	f.issue(t, "user@example.com")
	f.clock.Advance(time.Minute)

	runSweep(f.svc)

	assert.Len(t, f.activeCodes(t, "user@example.com"), 1)
}
