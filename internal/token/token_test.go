package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/divyesh350/Skill-Swap-Platform/internal/model"
)

func testAccount() *model.Account {
	return &model.Account{
		ID:    model.AccountID("acc_test"),
		Email: "testuser@testdomain.com",
		Role:  "user",
	}
}

func TestIssueAndVerify(t *testing.T) {
	assert := assert.New(t)

	issuer := NewIssuer("access-secret", "refresh-secret")
	account := testAccount()

	t.Run("access token round trip", func(t *testing.T) {
		signed, err := issuer.IssueAccess(account)
		assert.Nil(err)

		claims, err := issuer.VerifyAccess(signed)
		assert.Nil(err)
		assert.Equal(account.ID, claims.AccountID())
		assert.Equal(account.Email, claims.Email)
		assert.False(claims.IsRefresh())
	})

	t.Run("refresh token round trip", func(t *testing.T) {
		signed, err := issuer.IssueRefresh(account)
		assert.Nil(err)

		claims, err := issuer.VerifyRefresh(signed)
		assert.Nil(err)
		assert.Equal(account.ID, claims.AccountID())
		assert.True(claims.IsRefresh())
	})

	t.Run("secrets are not interchangeable", func(t *testing.T) {
		signed, err := issuer.IssueRefresh(account)
		assert.Nil(err)

		_, err = issuer.VerifyAccess(signed)
		assert.ErrorIs(err, ErrorTokenInvalid)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		signed, err := issuer.IssueAccess(account)
		assert.Nil(err)

		// same shape, wrong secret
		_, err = issuer.VerifyRefresh(signed)
		assert.ErrorIs(err, ErrorTokenInvalid)
	})
}

func TestVerifyFailureModes(t *testing.T) {
	assert := assert.New(t)

	issuer := NewIssuer("access-secret", "refresh-secret")
	account := testAccount()

	t.Run("missing", func(t *testing.T) {
		_, err := issuer.VerifyAccess("")
		assert.ErrorIs(err, ErrorTokenMissing)
	})

	t.Run("expired", func(t *testing.T) {
		now := time.Now().UTC()
		claims := &Claims{
			Email: account.Email,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   string(account.ID),
				IssuedAt:  jwt.NewNumericDate(now.Add(-time.Hour)),
				ExpiresAt: jwt.NewNumericDate(now.Add(-30 * time.Minute)),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("access-secret"))
		assert.Nil(err)

		_, err = issuer.VerifyAccess(signed)
		assert.ErrorIs(err, ErrorTokenExpired)
	})

	t.Run("tampered", func(t *testing.T) {
		signed, err := issuer.IssueAccess(account)
		assert.Nil(err)

		_, err = issuer.VerifyAccess(signed + "x")
		assert.ErrorIs(err, ErrorTokenInvalid)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewIssuer("different-secret", "refresh-secret")
		signed, err := other.IssueAccess(account)
		assert.Nil(err)

		_, err = issuer.VerifyAccess(signed)
		assert.ErrorIs(err, ErrorTokenInvalid)
	})
}
