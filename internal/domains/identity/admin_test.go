package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bookbites/internal/store"
	"bookbites/pkg/session"
)

func testVerifier(t *testing.T) *BcryptVerifier {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewBcryptVerifier("admin", string(hash))
}

func TestAdminAuthenticateSuccess(t *testing.T) {
	rec := newRecorder()
	a := NewAdminSession(testVerifier(t), testManager(), "", rec.write)

	require.False(t, a.Authenticated())
	assert.True(t, a.Authenticate("admin", "s3cret"))
	assert.True(t, a.Authenticated())

	marker, ok := rec.writes[store.KeyAdminSession].(string)
	require.True(t, ok)
	assert.NotEmpty(t, marker)
}

func TestAdminAuthenticateDenied(t *testing.T) {
	rec := newRecorder()
	a := NewAdminSession(testVerifier(t), testManager(), "", rec.write)

	assert.False(t, a.Authenticate("admin", "wrong"))
	assert.False(t, a.Authenticate("other", "s3cret"))
	assert.False(t, a.Authenticated())
	assert.Empty(t, rec.writes, "failed attempts write no marker")
}

func TestAdminSessionRestoredFromMarker(t *testing.T) {
	tokens := testManager()
	marker, err := tokens.IssueAdminMarker("admin")
	require.NoError(t, err)

	a := NewAdminSession(testVerifier(t), tokens, marker, newRecorder().write)
	assert.True(t, a.Authenticated())
}

func TestAdminSessionIgnoresExpiredMarker(t *testing.T) {
	expired := session.NewManager("test-secret", -time.Minute)
	marker, err := expired.IssueAdminMarker("admin")
	require.NoError(t, err)

	a := NewAdminSession(testVerifier(t), testManager(), marker, newRecorder().write)
	assert.False(t, a.Authenticated())
}

func TestAdminSessionIgnoresForeignMarker(t *testing.T) {
	foreign := session.NewManager("someone-elses-secret", time.Hour)
	marker, err := foreign.IssueAdminMarker("admin")
	require.NoError(t, err)

	a := NewAdminSession(testVerifier(t), testManager(), marker, newRecorder().write)
	assert.False(t, a.Authenticated())
}

func TestAdminClear(t *testing.T) {
	rec := newRecorder()
	a := NewAdminSession(testVerifier(t), testManager(), "", rec.write)
	require.True(t, a.Authenticate("admin", "s3cret"))

	a.Clear()

	assert.False(t, a.Authenticated())
	assert.Equal(t, "", rec.writes[store.KeyAdminSession])
}
