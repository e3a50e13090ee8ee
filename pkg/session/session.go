package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents the admin session marker payload.
type Claims struct {
	AdminID string `json:"admin_id"`
	Type    string `json:"type"` // always "admin"
	jwt.RegisteredClaims
}

// Manager issues opaque user session tokens and signed admin markers.
//
// User tokens are plain opaque strings validated by lookup against the
// stored user list. The admin marker is a short-lived signed token so an
// admin session expires on its own instead of living as long as the user
// session does.
type Manager struct {
	secret   string
	adminTTL time.Duration
}

// NewManager creates a session manager. adminTTL bounds the lifetime of
// the administrative session marker.
func NewManager(secret string, adminTTL time.Duration) *Manager {
	return &Manager{secret: secret, adminTTL: adminTTL}
}

// NewToken mints an opaque user session token.
func (m *Manager) NewToken() string {
	return "tok_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// IssueAdminMarker generates the short-lived admin session marker.
func (m *Manager) IssueAdminMarker(adminID string) (string, error) {
	claims := Claims{
		AdminID: adminID,
		Type:    "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.adminTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secret))
}

// ValidateAdminMarker parses and verifies an admin marker. An expired,
// malformed or foreign-signed marker simply fails validation; restoring an
// admin session from it is then skipped.
func (m *Manager) ValidateAdminMarker(marker string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(marker, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid admin marker")
	}

	if claims.Type != "admin" {
		return nil, fmt.Errorf("invalid marker type: expected admin, got %s", claims.Type)
	}

	return claims, nil
}
