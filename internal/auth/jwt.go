package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/domain"
)

// JWTManager handles access token generation and validation.
type JWTManager struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
}

// NewJWTManager creates a new JWT manager.
// secret must be at least 32 characters for HS256 security.
func NewJWTManager(secret string, issuer string, accessTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:    []byte(secret),
		issuer:    issuer,
		accessTTL: accessTTL,
	}
}

// accessClaims extends standard JWT claims with the caller's email, role
// and permission set, so authorization decisions need no user lookup.
type accessClaims struct {
	jwt.RegisteredClaims
	Email       string             `json:"email,omitempty"`
	Role        string             `json:"role,omitempty"`
	Permissions domain.Permissions `json:"permissions,omitempty"`
}

// GenerateAccessToken creates a signed HS256 JWT for the identity.
// The user ID goes into the subject claim.
func (m *JWTManager) GenerateAccessToken(id Identity) (string, error) {
	now := time.Now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID.String(),
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email:       id.Email,
		Role:        id.RoleName,
		Permissions: id.Permissions,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// ValidateAccessToken parses and validates an access token and
// reconstructs the caller's identity from its claims.
func (m *JWTManager) ValidateAccessToken(tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, fmt.Errorf("token is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})

	if err != nil {
		return Identity{}, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("invalid token claims")
	}

	if claims.Issuer != m.issuer {
		return Identity{}, fmt.Errorf("invalid issuer: expected %s, got %s", m.issuer, claims.Issuer)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("invalid subject UUID: %w", err)
	}

	perms := claims.Permissions
	if perms == nil {
		perms = domain.Permissions{}
	}

	return Identity{
		UserID:      userID,
		Email:       claims.Email,
		RoleName:    claims.Role,
		Class:       domain.ClassifyRole(claims.Role, classifyLevel(perms), perms),
		Permissions: perms,
	}, nil
}

// classifyLevel picks the hierarchy level fed into role classification
// when only the token is available. Tokens do not carry the level, so a
// non-admin role is classified by name alone; any non-zero value keeps
// the level-0 admin shortcut from firing.
func classifyLevel(perms domain.Permissions) int {
	if perms.All() {
		return 0
	}
	return -1
}
