package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/divyesh350/Skill-Swap-Platform/internal/model"
	"github.com/divyesh350/Skill-Swap-Platform/internal/token"
)

const (
	bcryptCost = 12

	maxFailedAttempts = 5
	lockoutDuration   = 30 * time.Minute
	resetTokenTTL     = time.Hour

	// applied on unknown-email paths to blunt timing-based enumeration
	enumerationDelay = 100 * time.Millisecond
)

type Store interface {
	Create(ctx context.Context, account *model.Account) error
	Update(ctx context.Context, account *model.Account) error
	FetchByEmail(ctx context.Context, email string) (*model.Account, error)
	FetchByVerificationToken(ctx context.Context, token string) (*model.Account, error)
	FetchByResetToken(ctx context.Context, token string, now time.Time) (*model.Account, error)
}

type Mailer interface {
	SendVerification(ctx context.Context, to, token string) error
	SendPasswordReset(ctx context.Context, to, token string) error
}

type LoginResult struct {
	Account      *model.Account
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
}

type service struct {
	store  Store
	issuer *token.Issuer
	mailer Mailer
	sleep  func(time.Duration)
}

func New(store Store, issuer *token.Issuer, mailer Mailer) *service {
	return &service{
		store:  store,
		issuer: issuer,
		mailer: mailer,
		sleep:  time.Sleep,
	}
}

// Register creates an unverified account and returns it with a short-lived
// access token. The verification mail is dispatched out of band; a delivery
// failure is logged but does not fail registration.
func (s *service) Register(ctx context.Context, params *model.RegisterParams) (*model.Account, string, error) {
	email := normalizeEmail(params.Email)

	if _, err := s.store.FetchByEmail(ctx, email); err == nil {
		return nil, "", model.ErrorEmailTaken
	}

	passwordBytes, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	verificationToken, err := createToken()
	if err != nil {
		return nil, "", fmt.Errorf("generating verification token: %w", err)
	}

	now := time.Now().UTC()
	account := &model.Account{
		ID:                model.AccountID(model.CreateID()),
		CreatedAt:         now,
		UpdatedAt:         now,
		Email:             email,
		Password:          string(passwordBytes),
		Role:              "user",
		Verified:          false,
		VerificationToken: &verificationToken,
		Profile: model.Profile{
			FullName: strings.TrimSpace(params.FullName),
			IsPublic: true,
		},
		Skills:       model.Skills{Offered: []model.OfferedSkill{}, Wanted: []model.WantedSkill{}},
		Availability: model.Availability{IsAvailable: true, LastUpdated: now},
		Preferences:  model.DefaultPreferences(),
	}

	if err := s.store.Create(ctx, account); err != nil {
		return nil, "", fmt.Errorf("creating account: %w", err)
	}

	accessToken, err := s.issuer.IssueAccess(account)
	if err != nil {
		return nil, "", fmt.Errorf("issuing access token: %w", err)
	}

	if err := s.mailer.SendVerification(ctx, account.Email, verificationToken); err != nil {
		log.Errorf("sending verification mail to %s: %+v", account.Email, err)
	}

	return account, accessToken, nil
}

// VerifyEmail consumes a one-time verification token.
func (s *service) VerifyEmail(ctx context.Context, verificationToken string) (*model.Account, error) {
	account, err := s.store.FetchByVerificationToken(ctx, verificationToken)
	if err != nil {
		return nil, model.ErrorInvalidVerificationToken
	}
	if account.Verified {
		return nil, model.ErrorAlreadyVerified
	}

	account.Verified = true
	account.VerificationToken = nil
	if err := s.store.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("updating account: %w", err)
	}

	return account, nil
}

// Login checks are ordered: unknown email, lockout, unverified, credential.
// The lockout check runs before the credential compare so a locked account
// stays locked even when the password is right.
func (s *service) Login(ctx context.Context, params *model.LoginParams) (*LoginResult, error) {
	now := time.Now().UTC()

	account, err := s.store.FetchByEmail(ctx, normalizeEmail(params.Email))
	if err != nil {
		s.sleep(enumerationDelay)
		return nil, model.ErrorInvalidCredentials
	}

	if account.LockedUntil != nil && account.LockedUntil.After(now) {
		return nil, model.ErrorAccountLocked
	}

	if !account.Verified {
		return nil, model.ErrorEmailNotVerified
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(params.Password)); err != nil {
		account.FailedAttempts++
		if account.FailedAttempts >= maxFailedAttempts {
			lockedUntil := now.Add(lockoutDuration)
			account.LockedUntil = &lockedUntil
		}
		if err := s.store.Update(ctx, account); err != nil {
			log.Errorf("recording failed login for %s: %+v", account.Email, err)
		}
		return nil, model.ErrorInvalidCredentials
	}

	account.FailedAttempts = 0
	account.LockedUntil = nil
	account.LastLoginAt = &now
	if err := s.store.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("updating account: %w", err)
	}

	accessToken, err := s.issuer.IssueAccess(account)
	if err != nil {
		return nil, fmt.Errorf("issuing access token: %w", err)
	}
	refreshToken, err := s.issuer.IssueRefresh(account)
	if err != nil {
		return nil, fmt.Errorf("issuing refresh token: %w", err)
	}

	return &LoginResult{
		Account:      account,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(token.AccessTokenTTL.Seconds()),
	}, nil
}

// ForgotPassword never tells the caller whether the email exists. Token
// issuance and mail delivery only happen for known accounts, and a mail
// failure is swallowed so the response stays generic.
func (s *service) ForgotPassword(ctx context.Context, email string) error {
	account, err := s.store.FetchByEmail(ctx, normalizeEmail(email))
	if err != nil {
		s.sleep(enumerationDelay)
		return nil
	}

	resetToken, err := createToken()
	if err != nil {
		return fmt.Errorf("generating reset token: %w", err)
	}

	expiry := time.Now().UTC().Add(resetTokenTTL)
	account.ResetToken = &resetToken
	account.ResetExpiry = &expiry
	if err := s.store.Update(ctx, account); err != nil {
		return fmt.Errorf("updating account: %w", err)
	}

	if err := s.mailer.SendPasswordReset(ctx, account.Email, resetToken); err != nil {
		log.Errorf("sending reset mail to %s: %+v", account.Email, err)
	}

	return nil
}

// ResetPassword consumes an unexpired reset token and replaces the credential.
// The token and expiry are cleared in the same update as the password change.
func (s *service) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	account, err := s.store.FetchByResetToken(ctx, resetToken, time.Now().UTC())
	if err != nil {
		return model.ErrorInvalidResetToken
	}

	passwordBytes, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	account.Password = string(passwordBytes)
	account.ResetToken = nil
	account.ResetExpiry = nil
	if err := s.store.Update(ctx, account); err != nil {
		return fmt.Errorf("updating account: %w", err)
	}

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func createToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
