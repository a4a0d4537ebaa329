package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"instantcredit-backend/internal/domain/user"
)

var ErrInvalidToken = errors.New("invalid or expired token")

const tokenTTL = 24 * time.Hour

// Claims carried by the access token: the acting user's public id and role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Usecase struct {
	users  user.Repository
	secret []byte
}

func NewUsecase(users user.Repository, secret []byte) *Usecase {
	return &Usecase{users: users, secret: secret}
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenDTO struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login checks credentials and issues a signed HS256 token. Unknown email
// and wrong password are indistinguishable to the caller.
func (u *Usecase) Login(ctx context.Context, in LoginInput) (*TokenDTO, error) {
	usr, err := u.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}
	if !usr.IsActive {
		return nil, user.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(in.Password)) != nil {
		return nil, user.ErrInvalidCredentials
	}

	exp := time.Now().UTC().Add(tokenTTL)
	claims := Claims{
		Role: string(usr.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   usr.UserID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.secret)
	if err != nil {
		return nil, err
	}
	return &TokenDTO{Token: signed, ExpiresAt: exp}, nil
}

// ParseToken verifies signature and expiry and returns the embedded claims.
func ParseToken(secret []byte, raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// HashPassword wraps bcrypt with the default cost used across the service.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
