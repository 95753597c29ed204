package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token roles.
const (
	RoleTrader    = "trader"
	RoleCustodian = "custodian"

	tokenIssuer = "multiswap-api"
)

// Claims represents JWT claims. Subject carries the account address for
// traders and a free-form custodian name for custodians.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService issues and checks HS256 tokens.
type AuthService struct {
	jwtSecret []byte
	ttl       time.Duration
}

// NewAuthService creates a new authentication service
func NewAuthService(jwtSecret []byte, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{jwtSecret: jwtSecret, ttl: ttl}
}

// GenerateToken signs a token for subject with the given role.
func (as *AuthService) GenerateToken(subject, role string) (string, error) {
	if subject == "" {
		return "", errors.New("empty subject")
	}
	if role != RoleTrader && role != RoleCustodian {
		return "", fmt.Errorf("unknown role %q", role)
	}

	now := time.Now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(as.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(as.jwtSecret)
}

// ValidateToken validates a JWT token and returns the claims
func (as *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return as.jwtSecret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
