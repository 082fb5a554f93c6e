package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the authenticated identity carried by an access token.
type Claims struct {
	AccountID uuid.UUID
	Email     string
}

type JWTService interface {
	GenerateAccessToken(accountID uuid.UUID, email string) (string, error)
	ValidateToken(token string) (*Claims, error)
}

type jwtService struct {
	secret []byte
	expiry time.Duration
	issuer string
}

func NewJWTService(secret string, expiry time.Duration) JWTService {
	return &jwtService{
		secret: []byte(secret),
		expiry: expiry,
		issuer: "aamcare",
	}
}

func (s *jwtService) GenerateAccessToken(accountID uuid.UUID, email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   accountID.String(),
		"email": email,
		"iss":   s.issuer,
		"iat":   now.Unix(),
		"exp":   now.Add(s.expiry).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *jwtService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	accountID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidToken
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	return &Claims{AccountID: accountID, Email: email}, nil
}
