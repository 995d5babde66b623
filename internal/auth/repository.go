package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gather/internal/database"
)

// Repository is the credential-store surface the auth flow needs: user
// lookup/creation plus the OTP lifecycle.
type Repository interface {
	UserByEmail(ctx context.Context, email string) (*database.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	CreateUser(ctx context.Context, user *database.User) error
	MarkUserVerified(ctx context.Context, email string) (*database.User, error)

	CreateOTP(ctx context.Context, otp *database.OTP) error
	// LatestLiveOTP returns the most recently created unconsumed, unexpired
	// OTP for the email, or gorm.ErrRecordNotFound.
	LatestLiveOTP(ctx context.Context, email string) (*database.OTP, error)
	// LatestOTP returns the most recently created OTP regardless of state,
	// or gorm.ErrRecordNotFound. Used by the resend throttle.
	LatestOTP(ctx context.Context, email string) (*database.OTP, error)
	// ConsumeOTP marks the record used. The update is conditional on the
	// record still being unconsumed; it reports false when another request
	// already consumed it.
	ConsumeOTP(ctx context.Context, id uuid.UUID) (bool, error)
}

type gormRepository struct {
	db *database.Database
}

func NewRepository(db *database.Database) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) UserByEmail(ctx context.Context, email string) (*database.User, error) {
	var user database.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&database.User{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormRepository) CreateUser(ctx context.Context, user *database.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *gormRepository) MarkUserVerified(ctx context.Context, email string) (*database.User, error) {
	var user database.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	if !user.IsVerified {
		user.IsVerified = true
		if err := r.db.WithContext(ctx).Model(&user).Update("is_verified", true).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}

func (r *gormRepository) CreateOTP(ctx context.Context, otp *database.OTP) error {
	return r.db.WithContext(ctx).Create(otp).Error
}

func (r *gormRepository) LatestLiveOTP(ctx context.Context, email string) (*database.OTP, error) {
	var otp database.OTP
	err := r.db.WithContext(ctx).
		Where("email = ? AND used = ? AND expires_at > ?", email, false, time.Now()).
		Order("created_at DESC").
		First(&otp).Error
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *gormRepository) LatestOTP(ctx context.Context, email string) (*database.OTP, error) {
	var otp database.OTP
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").
		First(&otp).Error
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *gormRepository) ConsumeOTP(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&database.OTP{}).
		Where("id = ? AND used = ?", id, false).
		Update("used", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// IsNotFound reports whether err is the store's missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
