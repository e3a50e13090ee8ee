package identity

import (
	"golang.org/x/crypto/bcrypt"

	"bookbites/internal/store"
	"bookbites/pkg/session"
)

// CredentialVerifier checks the administrative credential pair. The domain
// layer never sees the secret itself, only this capability.
type CredentialVerifier interface {
	Verify(id, secret string) bool
}

// BcryptVerifier compares against a configured admin id and bcrypt hash.
type BcryptVerifier struct {
	adminID    string
	secretHash string
}

func NewBcryptVerifier(adminID, secretHash string) *BcryptVerifier {
	return &BcryptVerifier{adminID: adminID, secretHash: secretHash}
}

func (v *BcryptVerifier) Verify(id, secret string) bool {
	if v.adminID == "" || v.secretHash == "" || id != v.adminID {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(v.secretHash), []byte(secret)) == nil
}

// AdminSession is the administrative session, independent of the regular
// user session and restored from a shorter-lived marker.
type AdminSession struct {
	verifier CredentialVerifier
	markers  *session.Manager
	persist  store.Writer
	authed   bool
}

// NewAdminSession restores the session from a stored marker, if any. An
// expired or invalid marker leaves the session unauthenticated.
func NewAdminSession(verifier CredentialVerifier, markers *session.Manager, storedMarker string, persist store.Writer) *AdminSession {
	a := &AdminSession{verifier: verifier, markers: markers, persist: persist}
	if storedMarker != "" {
		if _, err := markers.ValidateAdminMarker(storedMarker); err == nil {
			a.authed = true
		}
	}
	return a
}

func (a *AdminSession) Authenticated() bool { return a.authed }

// Authenticate checks the credential pair. On success the admin flag is
// set and a fresh marker written; on failure nothing changes.
func (a *AdminSession) Authenticate(id, secret string) bool {
	if !a.verifier.Verify(id, secret) {
		return false
	}
	a.authed = true
	if marker, err := a.markers.IssueAdminMarker(id); err == nil {
		a.persist(store.KeyAdminSession, marker)
	}
	return true
}

// Clear ends the admin session and drops the marker.
func (a *AdminSession) Clear() {
	a.authed = false
	a.persist(store.KeyAdminSession, "")
}
