package token

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"

	"quizhub/internal/models"
)

// TTL is how long an issued token stays valid.
const TTL = 24 * time.Hour

var (
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
	ErrMalformed        = errors.New("token malformed")
)

// Identity is the caller identity carried by a verified token.
type Identity struct {
	UserID uuid.UUID
	Role   models.Role
}

// Claims mirrors the wire claims: the user id under "id", the role
// under "role", plus the standard expiry.
type Claims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	jwt.StandardClaims
}

// Service issues and verifies signed identity tokens. It is stateless:
// a pure function of the secret, the claims and the clock.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string) *Service {
	return &Service{secret: []byte(secret), ttl: TTL}
}

func (s *Service) Issue(userID uuid.UUID, role models.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		ID:   userID.String(),
		Role: string(role),
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Service) Verify(tokenString string) (Identity, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return s.secret, nil
	})
	if err != nil {
		return Identity{}, classify(err)
	}
	if !tok.Valid {
		return Identity{}, ErrMalformed
	}

	userID, err := uuid.Parse(claims.ID)
	if err != nil {
		return Identity{}, ErrMalformed
	}
	role := models.Role(claims.Role)
	if !role.Valid() {
		return Identity{}, ErrMalformed
	}
	return Identity{UserID: userID, Role: role}, nil
}

func classify(err error) error {
	var vErr *jwt.ValidationError
	if !errors.As(err, &vErr) {
		return ErrMalformed
	}
	switch {
	case vErr.Errors&jwt.ValidationErrorExpired != 0:
		return ErrExpired
	case vErr.Errors&(jwt.ValidationErrorSignatureInvalid|jwt.ValidationErrorUnverifiable) != 0:
		return ErrInvalidSignature
	default:
		return ErrMalformed
	}
}
