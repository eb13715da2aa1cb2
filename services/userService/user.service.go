package userService

import (
	"ambulance/models"
	"ambulance/utils"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenNotFound      = errors.New("token not found")
	ErrDuplicateUsername  = errors.New("a user with this username already exists")
	ErrDuplicateEmail     = errors.New("a user with this email already exists")
	ErrDuplicatePhone     = errors.New("a user with this phone number already exists")
)

// CreateUserInput carries an already validated registration
type CreateUserInput struct {
	Username    string
	Email       string
	PhoneNumber string
	FirstName   string
	LastName    string
	UserType    string
	Password    string
	IsStaff     bool
}

// UserService is the account directory: registration, lookup, credentials and tokens
type UserService struct {
	db        *gorm.DB
	saltRound int
}

func NewUserService(db *gorm.DB, saltRound int) *UserService {
	if saltRound < bcrypt.MinCost {
		saltRound = bcrypt.DefaultCost
	}
	return &UserService{db: db, saltRound: saltRound}
}

// Create hashes the password and stores a new account
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	db := s.db.WithContext(ctx)

	if exists, err := s.exists(db, "username = ?", in.Username); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrDuplicateUsername
	}
	if in.Email != "" {
		if exists, err := s.exists(db, "email = ?", in.Email); err != nil {
			return nil, err
		} else if exists {
			return nil, ErrDuplicateEmail
		}
	}
	if in.PhoneNumber != "" {
		if exists, err := s.exists(db, "phone_number = ?", in.PhoneNumber); err != nil {
			return nil, err
		} else if exists {
			return nil, ErrDuplicatePhone
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.saltRound)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userType := in.UserType
	if userType == "" {
		userType = models.UserTypePatient
	}

	user := &models.User{
		Username:    in.Username,
		Email:       optional(in.Email),
		PhoneNumber: optional(in.PhoneNumber),
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		UserType:    userType,
		Password:    string(hashedPassword),
		IsActive:    true,
		IsStaff:     in.IsStaff,
	}
	if err := s.insert(db, user); err != nil {
		return nil, err
	}
	return user, nil
}

// insert stores user, mapping a unique index violation from a concurrent
// signup to the matching ErrDuplicate* error
func (s *UserService) insert(db *gorm.DB, user *models.User) error {
	err := db.Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return s.duplicateError(db, user)
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *UserService) duplicateError(db *gorm.DB, user *models.User) error {
	if exists, _ := s.exists(db, "username = ?", user.Username); exists {
		return ErrDuplicateUsername
	}
	if email := user.EmailValue(); email != "" {
		if exists, _ := s.exists(db, "email = ?", email); exists {
			return ErrDuplicateEmail
		}
	}
	if phone := user.PhoneValue(); phone != "" {
		if exists, _ := s.exists(db, "phone_number = ?", phone); exists {
			return ErrDuplicatePhone
		}
	}
	return ErrDuplicateUsername
}

// EnsureUser creates the account unless one with the same username exists
func (s *UserService) EnsureUser(ctx context.Context, in CreateUserInput) (*models.User, bool, error) {
	user, err := s.FindByUsername(ctx, in.Username)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, false, err
	}
	user, err = s.Create(ctx, in)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *UserService) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.exists(s.db.WithContext(ctx), "username = ?", username)
}

func (s *UserService) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.exists(s.db.WithContext(ctx), "email = ?", email)
}

func (s *UserService) PhoneExists(ctx context.Context, phone string) (bool, error) {
	return s.exists(s.db.WithContext(ctx), "phone_number = ?", phone)
}

func (s *UserService) exists(db *gorm.DB, query string, value string) (bool, error) {
	var count int64
	if err := db.Model(&models.User{}).Where(query, value).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, "email = ?", email)
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findOne(ctx, "username = ?", username)
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return s.findOne(ctx, "id = ?", id)
}

func (s *UserService) findOne(ctx context.Context, query string, value interface{}) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where(query, value).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate checks username and password. Inactive accounts never authenticate.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.FindByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetOrCreateToken returns the user's token, creating it on first use. Existing
// tokens are never rotated.
func (s *UserService) GetOrCreateToken(ctx context.Context, user *models.User) (*models.AuthToken, error) {
	var token models.AuthToken

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		candidate := models.AuthToken{Key: utils.GenerateTokenKey(), UserID: user.ID}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).Create(&candidate).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", user.ID).First(&token).Error
	})
	if err != nil {
		return nil, fmt.Errorf("get or create token: %w", err)
	}
	return &token, nil
}

// FindByToken resolves a bearer token to its active owner
func (s *UserService) FindByToken(ctx context.Context, key string) (*models.User, error) {
	if key == "" {
		return nil, ErrTokenNotFound
	}

	var token models.AuthToken
	err := s.db.WithContext(ctx).Preload("User").Where(&models.AuthToken{Key: key}).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}
	if !token.User.IsActive {
		return nil, ErrTokenNotFound
	}
	return &token.User, nil
}

// MarkVerified flags every account whose email or phone number is identifier
func (s *UserService) MarkVerified(ctx context.Context, identifier string) (int64, error) {
	identifier = strings.TrimSpace(identifier)
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ? OR phone_number = ? OR phone_number = ?", identifier, identifier, utils.NormalizePhone(identifier)).
		Update("is_verified", true)
	return res.RowsAffected, res.Error
}

// RecordLogin stamps last_login and stores a login tracking row
func (s *UserService) RecordLogin(ctx context.Context, user *models.User, ip, device string) error {
	now := time.Now()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).Update("last_login", now).Error; err != nil {
			return err
		}
		return tx.Create(&models.LoginTracking{
			UserID:    user.ID,
			IPAddress: ip,
			Device:    device,
			Timestamp: now,
		}).Error
	})
}

// LoginHistory lists a user's most recent logins, newest first
func (s *UserService) LoginHistory(ctx context.Context, userID uint, limit int) ([]models.LoginTracking, error) {
	var history []models.LoginTracking
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp desc").
		Limit(limit).
		Find(&history).Error
	return history, err
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
