package otpService

import (
	"ambulance/models"
	"ambulance/utils"
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Messages reported back to callers
const (
	MsgInvalidIdentifier = "invalid identifier format"
	MsgInvalidOTP        = "invalid OTP"
	MsgOTPExpired        = "OTP has expired"
	MsgOTPVerified       = "OTP verified successfully"
)

const defaultExpiry = 5 * time.Minute

// Options configures an OTPService. Zero values fall back to sensible defaults.
type Options struct {
	// Expiry is the lifetime of an issued code
	Expiry time.Duration
	// Retention is how long expired codes stay around before Sweep deletes them
	Retention time.Duration

	// Email and SMS are the real channels. A nil channel always falls back.
	Email utils.Sender
	SMS   utils.Sender
	// Fallback receives the message whenever a real channel is missing or fails
	Fallback utils.Sender

	Now func() time.Time
}

// IssueResult describes an Issue call. Success stays true when delivery only
// reached the fallback sink; Delivered tells the two apart.
type IssueResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Channel   string `json:"channel,omitempty"`
	Delivered bool   `json:"delivered"`
}

type OTPService struct {
	db        *gorm.DB
	expiry    time.Duration
	retention time.Duration
	email     utils.Sender
	sms       utils.Sender
	fallback  utils.Sender
	now       func() time.Time
	locks     *keyedMutex
}

func NewOTPService(db *gorm.DB, opts Options) *OTPService {
	s := &OTPService{
		db:        db,
		expiry:    opts.Expiry,
		retention: opts.Retention,
		email:     opts.Email,
		sms:       opts.SMS,
		fallback:  opts.Fallback,
		now:       opts.Now,
		locks:     newKeyedMutex(),
	}
	if s.expiry <= 0 {
		s.expiry = defaultExpiry
	}
	if s.retention <= 0 {
		s.retention = 24 * time.Hour
	}
	if s.fallback == nil {
		s.fallback = utils.NewConsoleSender()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Expiry is the lifetime given to newly issued codes
func (s *OTPService) Expiry() time.Duration {
	return s.expiry
}

// Issue supersedes any unused code for identifier, stores a fresh one and sends it
// over the channel matching the identifier.
func (s *OTPService) Issue(ctx context.Context, identifier string) IssueResult {
	kind := utils.Classify(identifier)
	if kind == utils.IdentifierInvalid {
		return IssueResult{Success: false, Message: MsgInvalidIdentifier}
	}

	otp, err := s.store(ctx, identifier)
	if err != nil {
		log.Printf("[OTP] Failed to store OTP for %s: %v", identifier, err)
		return IssueResult{Success: false, Message: fmt.Sprintf("Failed to send OTP: %v", err)}
	}

	if kind == utils.IdentifierEmail {
		return s.sendEmailOTP(ctx, identifier, otp.Code)
	}
	return s.sendSMSOTP(ctx, identifier, otp.Code)
}

// store runs the supersede and insert steps under the identifier lock
func (s *OTPService) store(ctx context.Context, identifier string) (*models.OTP, error) {
	unlock := s.locks.Lock(identifier)
	defer unlock()

	now := s.now()
	otp := &models.OTP{
		Identifier: identifier,
		Code:       utils.GenerateOTP(),
		IssuedAt:   now,
		ExpiresAt:  now.Add(s.expiry),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("identifier = ? AND is_used = ?", identifier, false).
			Delete(&models.OTP{}).Error; err != nil {
			return fmt.Errorf("supersede previous codes: %w", err)
		}
		if err := tx.Create(otp).Error; err != nil {
			return fmt.Errorf("create code: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return otp, nil
}

// Verify consumes the most recent unused code matching identifier and code
func (s *OTPService) Verify(ctx context.Context, identifier, code string) (bool, string) {
	unlock := s.locks.Lock(identifier)
	defer unlock()

	verified := false
	message := MsgInvalidOTP

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var candidates []models.OTP
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("identifier = ? AND code = ? AND is_used = ?", identifier, code, false).
			Order("issued_at DESC").
			Order("id DESC").
			Limit(1).
			Find(&candidates).Error; err != nil {
			return err
		}
		if len(candidates) == 0 {
			return nil
		}

		otp := candidates[0]
		if otp.IsExpired(s.now()) {
			message = MsgOTPExpired
			return nil
		}

		res := tx.Model(&models.OTP{}).
			Where("id = ? AND is_used = ?", otp.ID, false).
			Update("is_used", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 1 {
			verified, message = true, MsgOTPVerified
		}
		return nil
	})
	if err != nil {
		log.Printf("[OTP] Verification failed for %s: %v", identifier, err)
		return false, fmt.Sprintf("OTP verification failed: %v", err)
	}

	return verified, message
}

// Sweep hard deletes codes that can never verify again: used, superseded, or
// expired for longer than the retention window.
func (s *OTPService) Sweep(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.retention)

	res := s.db.WithContext(ctx).Unscoped().
		Where("is_used = ? OR deleted_at IS NOT NULL OR expires_at < ?", true, cutoff).
		Delete(&models.OTP{})
	return res.RowsAffected, res.Error
}

func (s *OTPService) expiryMinutes() int {
	return int(s.expiry.Minutes())
}

func (s *OTPService) sendEmailOTP(ctx context.Context, email, code string) IssueResult {
	msg := utils.Message{
		Subject: "Smart Ambulance System - OTP Verification",
		Body: fmt.Sprintf(
			"Your OTP for Smart Ambulance System verification is: %s\n\n"+
				"This OTP will expire in %d minutes.\n\n"+
				"If you didn't request this, please ignore this email.",
			code, s.expiryMinutes(),
		),
	}

	if s.deliver(ctx, s.email, "email", email, msg) {
		return IssueResult{Success: true, Message: "OTP sent to email successfully", Channel: "email", Delivered: true}
	}
	return IssueResult{Success: true, Message: "OTP sent to email successfully (console)", Channel: "email"}
}

func (s *OTPService) sendSMSOTP(ctx context.Context, phone, code string) IssueResult {
	msg := utils.Message{
		Subject: "SMS OTP",
		Body:    fmt.Sprintf("Your Smart Ambulance System OTP is: %s. Valid for %d minutes.", code, s.expiryMinutes()),
	}

	if s.deliver(ctx, s.sms, "sms", phone, msg) {
		return IssueResult{Success: true, Message: "OTP sent to phone successfully", Channel: "phone", Delivered: true}
	}
	return IssueResult{Success: true, Message: "OTP sent to phone successfully (console)", Channel: "phone"}
}

// deliver makes a single attempt on the real channel and otherwise hands the message to
// the fallback sink. It reports whether the real channel accepted the message.
func (s *OTPService) deliver(ctx context.Context, sender utils.Sender, channel, to string, msg utils.Message) bool {
	if sender != nil {
		err := sender.Send(ctx, to, msg)
		if err == nil {
			return true
		}
		log.Printf("[OTP] %s delivery to %s failed, using console fallback: %v", channel, to, err)
	}

	if err := s.fallback.Send(ctx, to, msg); err != nil {
		log.Printf("[OTP] fallback delivery to %s failed: %v", to, err)
	}
	return false
}
