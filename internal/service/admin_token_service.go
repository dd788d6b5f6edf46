package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const adminRole = "admin"

// AdminTokenService issues and validates bearer tokens for the admin API.
type AdminTokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

var (
	ErrJWTInvalid = errors.New("jwt invalid")
	ErrJWTExpired = errors.New("jwt expired")
)

func NewAdminTokenService(secret string, ttl time.Duration) *AdminTokenService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &AdminTokenService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "lottery-secretary",
		now:    time.Now,
	}
}

// Enabled reports whether a signing secret is configured.
func (s *AdminTokenService) Enabled() bool {
	return s != nil && len(s.secret) > 0
}

// Issue signs an admin token for subject. A non-positive ttl uses the default.
func (s *AdminTokenService) Issue(subject string, ttl time.Duration) (string, time.Time, error) {
	if !s.Enabled() || strings.TrimSpace(subject) == "" {
		return "", time.Time{}, ErrJWTInvalid
	}
	if ttl <= 0 {
		ttl = s.ttl
	}
	now := s.now().UTC()
	expiresAt := now.Add(ttl)
	claims := AdminClaims{
		Role: adminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse validates an admin token and returns its claims.
func (s *AdminTokenService) Parse(token string) (AdminClaims, error) {
	if !s.Enabled() || strings.TrimSpace(token) == "" {
		return AdminClaims{}, ErrJWTInvalid
	}
	var claims AdminClaims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	_, err := parser.ParseWithClaims(token, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return AdminClaims{}, ErrJWTExpired
		}
		return AdminClaims{}, ErrJWTInvalid
	}
	if claims.Role != adminRole || strings.TrimSpace(claims.Subject) == "" {
		return AdminClaims{}, ErrJWTInvalid
	}
	return claims, nil
}
