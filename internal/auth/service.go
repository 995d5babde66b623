package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"gather/config"
	"gather/internal/apperror"
	"gather/internal/database"
	"gather/internal/email"
	"gather/internal/oauth"
	"gather/pkg/jwt"
)

// OTPChallenge is what register/login/resend hand back to the client. Code
// is only populated when the config enables the development echo; real
// deployments deliver it through the email dispatcher alone.
type OTPChallenge struct {
	ID    string `json:"id,omitempty"`
	Code  string `json:"code,omitempty"`
	Email string `json:"email"`
}

type AuthenticatedUser struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
	Email          string `json:"email"`
	IsVerified     bool   `json:"isVerified"`
	IsOnboarded    bool   `json:"isOnboarded"`
	Token          string `json:"token"`
}

// UseCase orchestrates the OTP authentication lifecycle.
type UseCase interface {
	Register(ctx context.Context, username, name, email string) (*OTPChallenge, error)
	VerifyOTP(ctx context.Context, email, code string) (*AuthenticatedUser, error)
	Login(ctx context.Context, email string) (*OTPChallenge, error)
	VerifyLoginOTP(ctx context.Context, email, code string) (*AuthenticatedUser, error)
	ResendOTP(ctx context.Context, email string) (*OTPChallenge, error)
	GoogleSignIn(ctx context.Context, credential string) (*AuthenticatedUser, error)
	CheckUsername(ctx context.Context, username string) (bool, error)
}

type authUseCase struct {
	repo       Repository
	tokens     *jwt.JWT
	dispatcher email.Dispatcher
	provider   oauth.Provider
	cfg        *config.Config
	logger     *zap.Logger
}

func NewUseCase(
	repo Repository,
	tokens *jwt.JWT,
	dispatcher email.Dispatcher,
	provider oauth.Provider,
	cfg *config.Config,
	logger *zap.Logger,
) UseCase {
	return &authUseCase{
		repo:       repo,
		tokens:     tokens,
		dispatcher: dispatcher,
		provider:   provider,
		cfg:        cfg,
		logger:     logger,
	}
}

func (u *authUseCase) Register(ctx context.Context, username, name, emailAddr string) (*OTPChallenge, error) {
	_, err := u.repo.UserByEmail(ctx, emailAddr)
	if err == nil {
		return nil, apperror.BadRequest("User already exists")
	}
	if !IsNotFound(err) {
		return nil, err
	}

	user := &database.User{
		Username:       username,
		Name:           name,
		Email:          emailAddr,
		ProfilePicture: u.cfg.AssetURL("profile/default.jpg"),
	}
	if err := u.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	code, err := u.issueOTP(ctx, emailAddr)
	if err != nil {
		return nil, err
	}

	challenge := &OTPChallenge{ID: user.ID.String(), Email: emailAddr}
	if u.cfg.OTPEcho {
		challenge.Code = code
	}
	return challenge, nil
}

func (u *authUseCase) VerifyOTP(ctx context.Context, emailAddr, code string) (*AuthenticatedUser, error) {
	if err := u.consumeMatchingOTP(ctx, emailAddr, code); err != nil {
		return nil, err
	}

	user, err := u.repo.MarkUserVerified(ctx, emailAddr)
	if err != nil {
		if IsNotFound(err) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}

	return u.authenticate(user)
}

func (u *authUseCase) Login(ctx context.Context, emailAddr string) (*OTPChallenge, error) {
	user, err := u.repo.UserByEmail(ctx, emailAddr)
	if err != nil {
		if IsNotFound(err) {
			return nil, apperror.BadRequest("User not found")
		}
		return nil, err
	}

	code, err := u.issueOTP(ctx, emailAddr)
	if err != nil {
		return nil, err
	}

	challenge := &OTPChallenge{ID: user.ID.String(), Email: emailAddr}
	if u.cfg.OTPEcho {
		challenge.Code = code
	}
	return challenge, nil
}

func (u *authUseCase) VerifyLoginOTP(ctx context.Context, emailAddr, code string) (*AuthenticatedUser, error) {
	if err := u.consumeMatchingOTP(ctx, emailAddr, code); err != nil {
		return nil, err
	}

	// The user may have been removed between login and verification.
	user, err := u.repo.UserByEmail(ctx, emailAddr)
	if err != nil {
		if IsNotFound(err) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}

	return u.authenticate(user)
}

func (u *authUseCase) ResendOTP(ctx context.Context, emailAddr string) (*OTPChallenge, error) {
	latest, err := u.repo.LatestOTP(ctx, emailAddr)
	if err != nil && !IsNotFound(err) {
		return nil, err
	}
	if err == nil && time.Since(latest.CreatedAt) < u.cfg.OTPResendInterval() {
		return nil, apperror.BadRequest("Wait some time to get new code")
	}

	code, err := u.issueOTP(ctx, emailAddr)
	if err != nil {
		return nil, err
	}

	challenge := &OTPChallenge{Email: emailAddr}
	if u.cfg.OTPEcho {
		challenge.Code = code
	}
	return challenge, nil
}

func (u *authUseCase) GoogleSignIn(ctx context.Context, credential string) (*AuthenticatedUser, error) {
	identity, err := u.provider.Exchange(ctx, credential)
	if err != nil {
		u.logger.Warn("google credential rejected", zap.Error(err))
		return nil, apperror.Unauthorized("Invalid Google credential")
	}

	user, err := u.repo.UserByEmail(ctx, identity.Email)
	if IsNotFound(err) {
		user, err = u.createGoogleUser(ctx, identity)
	}
	if err != nil {
		return nil, err
	}

	return u.authenticate(user)
}

func (u *authUseCase) CheckUsername(ctx context.Context, username string) (bool, error) {
	return u.repo.UsernameExists(ctx, username)
}

// issueOTP creates a fresh OTP record and dispatches it. A dispatch failure
// fails the whole operation; the record it leaves behind expires naturally.
func (u *authUseCase) issueOTP(ctx context.Context, emailAddr string) (string, error) {
	code := GenerateOTP(DefaultOTPLength)
	expiresAt := time.Now().Add(u.cfg.OTPExpiry())

	err := u.repo.CreateOTP(ctx, &database.OTP{
		Email:     emailAddr,
		Code:      code,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return "", err
	}

	if err := u.dispatcher.SendOTP(emailAddr, code, expiresAt); err != nil {
		u.logger.Error("otp dispatch failed", zap.String("email", emailAddr), zap.Error(err))
		return "", apperror.Internal("Failed to send OTP")
	}

	return code, nil
}

// consumeMatchingOTP validates the submitted code against the newest live
// record and consumes it. The consume update is conditional on the record
// still being unconsumed, so of two concurrent verifications exactly one
// succeeds.
func (u *authUseCase) consumeMatchingOTP(ctx context.Context, emailAddr, code string) error {
	otp, err := u.repo.LatestLiveOTP(ctx, emailAddr)
	if err != nil {
		if IsNotFound(err) {
			return apperror.BadRequest("OTP not found, expired or already used")
		}
		return err
	}

	if otp.Code != code {
		return apperror.BadRequest("Invalid OTP")
	}

	consumed, err := u.repo.ConsumeOTP(ctx, otp.ID)
	if err != nil {
		return err
	}
	if !consumed {
		return apperror.BadRequest("OTP not found, expired or already used")
	}
	return nil
}

func (u *authUseCase) authenticate(user *database.User) (*AuthenticatedUser, error) {
	token, err := u.tokens.Generate(user.ID.String(), user.Email, user.Username, user.IsOnboarded)
	if err != nil {
		return nil, err
	}

	return &AuthenticatedUser{
		ID:             user.ID.String(),
		Name:           user.Name,
		Username:       user.Username,
		ProfilePicture: user.ProfilePicture,
		Email:          user.Email,
		IsVerified:     user.IsVerified,
		IsOnboarded:    user.IsOnboarded,
		Token:          token,
	}, nil
}

func (u *authUseCase) createGoogleUser(ctx context.Context, identity *oauth.Identity) (*database.User, error) {
	name := identity.Name
	if name == "" {
		name = strings.SplitN(identity.Email, "@", 2)[0]
	}
	picture := identity.Picture
	if picture == "" {
		picture = u.cfg.AssetURL("profile/default.jpg")
	}

	username, err := u.uniqueUsername(ctx, identity.Email)
	if err != nil {
		return nil, err
	}

	user := &database.User{
		Username:       username,
		Name:           name,
		Email:          identity.Email,
		ProfilePicture: picture,
		IsVerified:     true, // google already proved control of the email
	}
	if err := u.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUseCase) uniqueUsername(ctx context.Context, emailAddr string) (string, error) {
	base := strings.ToLower(strings.SplitN(emailAddr, "@", 2)[0])
	base = strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, base)
	if base == "" {
		base = "user"
	}

	candidate := base
	for i := 0; ; i++ {
		exists, err := u.repo.UsernameExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%s", base, GenerateOTP(4))
		if i > 10 {
			return "", apperror.Internal("Failed to allocate username")
		}
	}
}
