package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidToken    = errors.New("invalid token")
)

const (
	issuer  = "menu-cms"
	subject = "admin"
)

// Claims are the admin token claims
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service checks the admin password and issues HS256 tokens
type Service struct {
	passwordHash []byte
	secretKey    []byte
	ttl          time.Duration
	now          func() time.Time
}

// NewService hashes the admin password with bcrypt and creates a new auth service
func NewService(adminPassword, secretKey string, ttl time.Duration) (*Service, error) {
	hash, err := HashPassword(adminPassword)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &Service{
		passwordHash: []byte(hash),
		secretKey:    []byte(secretKey),
		ttl:          ttl,
		now:          time.Now,
	}, nil
}

// Login checks the password and returns a signed token
func (s *Service) Login(password string) (string, error) {
	if !CheckPassword(password, string(s.passwordHash)) {
		return "", ErrInvalidPassword
	}

	now := s.now()
	claims := &Claims{
		Role: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token
func (s *Service) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Role != subject {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// HashPassword hashes a plain text password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a plain text password with a hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
