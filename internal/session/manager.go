// Package session issues and resolves signed bearer tokens for authenticated clients.
package session

import (
	"fmt"
	"strconv"
	"time"

	"trenai/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	issuer   = "trenai-api"
	audience = "trenai-client"
)

// Claims carries the identity snapshot embedded in a session token. The
// snapshot reflects the user at issuance time; the database stays the source
// of truth for profile reads.
type Claims struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Plan  models.Plan `json:"plan"`
	Niche string      `json:"niche,omitempty"`
	jwt.RegisteredClaims
}

// Session is a resolved, validated token.
type Session struct {
	UserID   uint
	Identity models.Identity
	TokenID  string
	IssuedAt time.Time
	Expires  time.Time
}

// Manager signs and verifies session tokens with a shared HMAC secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a token manager. ttl bounds every issued session.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a new token for the given user.
func (m *Manager) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Name:  user.Name,
		Email: user.Email,
		Plan:  user.Plan,
		Niche: user.Niche,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// Resolve validates a token string and returns the session it encodes.
// Any defect in the token (signature, expiry, issuer, audience, subject)
// rejects it; there is no partial acceptance.
func (m *Manager) Resolve(tokenString string) (*Session, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithAudience(audience), jwt.WithExpirationRequired())
	if err != nil {
		return nil, models.NewUnauthorizedError("Invalid or expired token")
	}
	if !token.Valid {
		return nil, models.NewUnauthorizedError("Invalid or expired token")
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil {
		return nil, models.NewUnauthorizedError("Invalid token subject")
	}

	sess := &Session{
		UserID: uint(userID),
		Identity: models.Identity{
			ID:    uint(userID),
			Name:  claims.Name,
			Email: claims.Email,
			Plan:  claims.Plan,
			Niche: claims.Niche,
		},
		TokenID: claims.ID,
	}
	if claims.IssuedAt != nil {
		sess.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		sess.Expires = claims.ExpiresAt.Time
	}
	return sess, nil
}
