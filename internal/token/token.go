package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/divyesh350/Skill-Swap-Platform/internal/model"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour

	typeRefresh = "refresh"
)

var (
	ErrorTokenMissing = errors.New("access token required")
	ErrorTokenExpired = errors.New("token expired")
	ErrorTokenInvalid = errors.New("invalid token")
)

type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	Type  string `json:"typ,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) AccountID() model.AccountID {
	return model.AccountID(c.Subject)
}

func (c *Claims) IsRefresh() bool {
	return c.Type == typeRefresh
}

// Issuer signs and verifies the two session token kinds. Access and refresh
// tokens use separate secrets so a leaked refresh secret cannot mint access
// tokens and vice versa.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
}

func NewIssuer(accessSecret, refreshSecret string) *Issuer {
	return &Issuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
	}
}

func (i *Issuer) IssueAccess(account *model.Account) (string, error) {
	return i.sign(account, "", AccessTokenTTL, i.accessSecret)
}

func (i *Issuer) IssueRefresh(account *model.Account) (string, error) {
	return i.sign(account, typeRefresh, RefreshTokenTTL, i.refreshSecret)
}

func (i *Issuer) sign(account *model.Account, kind string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		Email: account.Email,
		Role:  account.Role,
		Type:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(account.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// VerifyAccess distinguishes three failure modes: a missing token, an expired
// signature and anything else (tampered or mis-signed).
func (i *Issuer) VerifyAccess(tokenString string) (*Claims, error) {
	return verify(tokenString, i.accessSecret)
}

func (i *Issuer) VerifyRefresh(tokenString string) (*Claims, error) {
	claims, err := verify(tokenString, i.refreshSecret)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefresh() {
		return nil, ErrorTokenInvalid
	}
	return claims, nil
}

func verify(tokenString string, secret []byte) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrorTokenMissing
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrorTokenExpired
		}
		return nil, ErrorTokenInvalid
	}
	if !parsed.Valid {
		return nil, ErrorTokenInvalid
	}

	return claims, nil
}
