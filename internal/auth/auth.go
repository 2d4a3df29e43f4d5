package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"staffing-awards/internal/config"
)

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrExpiredToken    = errors.New("token has expired")
	ErrInvalidPasscode = errors.New("invalid passcode")
)

// AdminClaims represents the claims in an admin JWT token
type AdminClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

const adminScope = "admin"

// Service verifies admin passcodes and issues session tokens. Admin access
// is a shared passcode, not per-user accounts, so claims carry only a scope.
type Service struct {
	passcodes      []string
	passcodeHashes []string
	secret         []byte
	tokenExpiry    time.Duration
}

// NewService creates a new authentication service
func NewService(cfg *config.AdminConfig) *Service {
	return &Service{
		passcodes:      cfg.Passcodes,
		passcodeHashes: cfg.PasscodeHashes,
		secret:         []byte(cfg.JWTSecret),
		tokenExpiry:    cfg.TokenExpiry,
	}
}

// HashPasscode hashes a passcode using bcrypt
func HashPasscode(passcode string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash passcode: %w", err)
	}
	return string(hashedBytes), nil
}

// VerifyPasscode checks a passcode against the configured hashes, falling
// back to the plain dev list. Returns ErrInvalidPasscode when nothing matches.
func (s *Service) VerifyPasscode(passcode string) error {
	if passcode == "" {
		return ErrInvalidPasscode
	}

	for _, hash := range s.passcodeHashes {
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode)) == nil {
			return nil
		}
	}

	for _, known := range s.passcodes {
		if subtle.ConstantTimeCompare([]byte(known), []byte(passcode)) == 1 {
			return nil
		}
	}

	return ErrInvalidPasscode
}

// GenerateToken issues a signed admin session token
func (s *Service) GenerateToken() (string, time.Time, error) {
	expiresAt := time.Now().Add(s.tokenExpiry)
	claims := AdminClaims{
		Scope: adminScope,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates an admin token and returns the claims
func (s *Service) ValidateToken(tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Scope != adminScope {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
