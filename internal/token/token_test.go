package token

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizhub/internal/models"
)

const testSecret = "test-secret"

func TestIssueVerify_RoundTrip(t *testing.T) {
	svc := NewService(testSecret)
	userID := uuid.New()

	tok, err := svc.Issue(userID, models.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	identity, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, userID, identity.UserID)
	assert.Equal(t, models.RoleAdmin, identity.Role)
}

func TestVerify_WrongSecret(t *testing.T) {
	tok, err := NewService("other-secret").Issue(uuid.New(), models.RoleUser)
	require.NoError(t, err)

	_, err = NewService(testSecret).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerify_Expired(t *testing.T) {
	now := time.Now()
	claims := Claims{
		ID:   uuid.New().String(),
		Role: string(models.RoleUser),
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Add(-48 * time.Hour).Unix(),
			ExpiresAt: now.Add(-24 * time.Hour).Unix(),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewService(testSecret).Verify(tok)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := NewService(testSecret).Verify("not-a-token")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestVerify_MissingClaims(t *testing.T) {
	svc := NewService(testSecret)
	now := time.Now()

	cases := map[string]Claims{
		"no user id":   {Role: string(models.RoleUser)},
		"bad user id":  {ID: "not-a-uuid", Role: string(models.RoleUser)},
		"no role":      {ID: uuid.New().String()},
		"unknown role": {ID: uuid.New().String(), Role: "superuser"},
	}
	for name, claims := range cases {
		t.Run(name, func(t *testing.T) {
			claims.ExpiresAt = now.Add(time.Hour).Unix()
			tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
			require.NoError(t, err)

			_, err = svc.Verify(tok)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}
