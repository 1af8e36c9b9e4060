package helper

import (
	"errors"
	"strings"
	"time"

	"github.com/cinematik/backend/internal/dto"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const refreshTokenTTL = 7 * 24 * time.Hour

type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Auth struct {
	Secret    string
	AccessTTL time.Duration
}

func SetupAuth(secret string, accessTTLMin int) Auth {
	return Auth{
		Secret:    secret,
		AccessTTL: time.Duration(accessTTLMin) * time.Minute,
	}
}

// GenerateTokenPair signs an access and a refresh token over the same
// identity claims. Tokens are stateless; nothing is stored server-side.
func (a Auth) GenerateTokenPair(name, email string) (dto.TokensData, error) {
	if name == "" || email == "" {
		return dto.TokensData{}, errors.New("required inputs are missing to generate token")
	}

	access, err := a.sign(name, email, a.AccessTTL)
	if err != nil {
		return dto.TokensData{}, err
	}
	refresh, err := a.sign(name, email, refreshTokenTTL)
	if err != nil {
		return dto.TokensData{}, err
	}

	return dto.TokensData{
		AccessToken:         access,
		RefreshToken:        refresh,
		AccessTokenExpires:  int64(a.AccessTTL.Seconds()),
		RefreshTokenExpires: int64(refreshTokenTTL.Seconds()),
	}, nil
}

// GenerateAccessToken mints a fresh access token only. Used by the refresh
// flow; the refresh token itself is not rotated.
func (a Auth) GenerateAccessToken(name, email string) (dto.TokensData, error) {
	access, err := a.sign(name, email, a.AccessTTL)
	if err != nil {
		return dto.TokensData{}, err
	}
	return dto.TokensData{
		AccessToken:        access,
		AccessTokenExpires: int64(a.AccessTTL.Seconds()),
	}, nil
}

func (a Auth) sign(name, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Name:  name,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(a.Secret))
	if err != nil {
		return "", errors.New("unable to sign the token")
	}
	return signed, nil
}

// VerifyToken parses and validates a signed token, accepting either
// "Bearer <token>" or the bare token string.
func (a Auth) VerifyToken(tokenString string) (*Claims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, errors.New("missing token")
	}

	if strings.HasPrefix(strings.ToLower(tokenString), "bearer ") {
		parts := strings.SplitN(tokenString, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
			return nil, errors.New("invalid token format")
		}
		tokenString = strings.TrimSpace(parts[1])
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(a.Secret), nil
	})
	if err != nil {
		return nil, errors.New("token parse error")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func (a Auth) HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.New("failed to hash password")
	}
	return string(b), nil
}

func (a Auth) VerifyPassword(plain, hashed string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		return errors.New("invalid email or password")
	}
	return nil
}
