package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bookbites/internal/domains/catalog"
	"bookbites/internal/domains/identity"
	"bookbites/internal/shared"
	"bookbites/internal/store"
	"bookbites/pkg/session"
)

func newTestApp(t *testing.T, db store.Store, ambient identity.Ambient) *App {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return New(context.Background(), Options{
		Store:    db,
		Tokens:   session.NewManager("test-secret", time.Hour),
		Verifier: identity.NewBcryptVerifier("admin", string(hash)),
		Ambient:  ambient,
	})
}

func TestFreshBootSeedsAndLandsOnAuth(t *testing.T) {
	a := newTestApp(t, store.NewMemoryStore(), identity.Ambient{})

	assert.False(t, a.Loading())
	assert.Equal(t, ViewAuth, a.CurrentView())
	assert.Nil(t, a.User())

	assert.NotEmpty(t, a.Books())
	assert.NotEmpty(t, a.Masterclasses())
	assert.NotEmpty(t, a.StoreBooks())
	assert.NotEmpty(t, a.Categories())
	assert.NotEmpty(t, a.Plans())
	assert.NotEmpty(t, a.Bookshelves())
}

func TestBootWithCorruptRecordFallsBackToSeeds(t *testing.T) {
	db := store.NewMemoryStore()
	db.SetRaw(store.KeyBooks, []byte("{not json"))

	a := newTestApp(t, db, identity.Ambient{})

	assert.Equal(t, len(catalog.SeedBooks()), len(a.Books()))
	assert.False(t, a.Loading())
}

func TestBootRestoresSessionFromToken(t *testing.T) {
	db := store.NewMemoryStore()
	first := newTestApp(t, db, identity.Ambient{})
	first.GuestSignUp("Aziz", "")
	require.NotNil(t, first.User())

	second := newTestApp(t, db, identity.Ambient{})

	require.NotNil(t, second.User())
	assert.Equal(t, first.User().ID, second.User().ID)
	assert.Equal(t, ViewHome, second.CurrentView())
}

func TestBootResolvesAmbientIdentity(t *testing.T) {
	db := store.NewMemoryStore()
	ambient := identity.Ambient{UserID: "ext1", Name: "Aziz"}

	first := newTestApp(t, db, ambient)
	require.NoError(t, first.CompleteProfile("Aziz", "+998900000001"))

	// Simulate a new device: same ambient identity, no stored token.
	require.NoError(t, db.Delete(context.Background(), store.KeyToken))
	second := newTestApp(t, db, ambient)

	require.NotNil(t, second.User())
	assert.Equal(t, "ext1", second.User().ExternalID)
	assert.Equal(t, ViewHome, second.CurrentView())
}

func TestGuestSignUpLandsOnHome(t *testing.T) {
	a := newTestApp(t, store.NewMemoryStore(), identity.Ambient{})

	a.GuestSignUp("", "")

	require.NotNil(t, a.User())
	assert.True(t, a.User().IsGuest)
	assert.Equal(t, ViewHome, a.CurrentView())
}

func TestCartFlow(t *testing.T) {
	a := newTestApp(t, store.NewMemoryStore(), identity.Ambient{})
	a.GuestSignUp("", "")

	a.AddToCart("sb1")
	require.Len(t, a.Cart(), 1)
	assert.Equal(t, 1, a.Cart()[0].Quantity)
	assert.Equal(t, "Added to cart", a.Notification())
	a.ClearNotification()

	a.AddToCart("sb1")
	require.Len(t, a.Cart(), 1, "same book never duplicates a line")
	assert.Equal(t, 2, a.Cart()[0].Quantity)
	assert.Empty(t, a.Notification(), "quantity bump is silent")

	a.UpdateCartQuantity("sb1", -5)
	assert.Equal(t, 2, a.Cart()[0].Quantity, "floor of 1 rejects the whole delta")

	a.UpdateCartQuantity("sb1", -1)
	assert.Equal(t, 1, a.Cart()[0].Quantity)

	a.RemoveFromCart("sb1")
	assert.Empty(t, a.Cart())
}

func TestCartSubtotalUsesStoreCatalog(t *testing.T) {
	a := newTestApp(t, store.NewMemoryStore(), identity.Ambient{})
	a.GuestSignUp("", "")

	a.AddToCart("sb1")
	a.AddToCart("sb1")

	want := decimal.NewFromInt(240000)
	assert.True(t, want.Equal(a.CartSubtotal()), "got %s", a.CartSubtotal())
}

func TestNavigationClearsSelectionExceptReader(t *testing.T) {
	a := newTestApp(t, store.NewMemoryStore(), identity.Ambient{})
	a.GuestSignUp("", "")
	book := a.Books()[0]

	a.Navigate(ViewReader, book)
	require.NotNil(t, a.SelectedBook())
	assert.Equal(t, book.ID, a.SelectedBook().ID)

	a.Navigate(ViewReader, nil)
	assert.NotNil(t, a.SelectedBook(), "reader keeps the open book")

	a.Navigate(ViewHome, nil)
	assert.Nil(t, a.SelectedBook())
	assert.Nil(t, a.SelectedMasterclass())
	assert.Nil(t, a.SelectedStoreBook())
}

func TestAdminLoginFlow(t *testing.T) {
	a := newTestApp(t, store.NewMemoryStore(), identity.Ambient{})
	a.GuestSignUp("", "")

	a.TriggerAdminLogin()
	assert.True(t, a.ShowAdminLogin())
	assert.Equal(t, ViewAdmin, a.CurrentView())

	assert.False(t, a.AuthenticateAdmin("admin", "wrong"))
	assert.False(t, a.IsAdmin())
	assert.True(t, a.ShowAdminLogin(), "denied attempt keeps the prompt open")

	assert.True(t, a.AuthenticateAdmin("admin", "s3cret"))
	assert.True(t, a.IsAdmin())
	assert.False(t, a.ShowAdminLogin())

	a.ExitAdminPanel()
	assert.Equal(t, ViewHome, a.CurrentView())
	assert.True(t, a.IsAdmin(), "leaving the panel keeps the session")
}

func TestAdminSessionSurvivesReboot(t *testing.T) {
	db := store.NewMemoryStore()
	a := newTestApp(t, db, identity.Ambient{})
	a.GuestSignUp("", "")
	require.True(t, a.AuthenticateAdmin("admin", "s3cret"))

	second := newTestApp(t, db, identity.Ambient{})
	assert.True(t, second.IsAdmin())
}

func TestLogoutClearsBothSessions(t *testing.T) {
	db := store.NewMemoryStore()
	a := newTestApp(t, db, identity.Ambient{})
	a.GuestSignUp("", "")
	require.True(t, a.AuthenticateAdmin("admin", "s3cret"))

	a.Logout()

	assert.Nil(t, a.User())
	assert.False(t, a.IsAdmin())
	assert.Equal(t, ViewAuth, a.CurrentView())

	second := newTestApp(t, db, identity.Ambient{})
	assert.Nil(t, second.User(), "token was dropped")
	assert.False(t, second.IsAdmin(), "admin marker was dropped")
	assert.Len(t, second.Users(), 1, "the account record survives")
}

func TestCanAccessRespectsAdminOverride(t *testing.T) {
	a := newTestApp(t, store.NewMemoryStore(), identity.Ambient{})
	a.GuestSignUp("", "")

	assert.True(t, a.CanAccess(shared.AccessFree))
	assert.False(t, a.CanAccess(shared.AccessGold))

	require.True(t, a.AuthenticateAdmin("admin", "s3cret"))
	assert.True(t, a.CanAccess(shared.AccessGold))
}

func TestAdminTierChangeIsVisibleImmediately(t *testing.T) {
	a := newTestApp(t, store.NewMemoryStore(), identity.Ambient{})
	a.GuestSignUp("Aziz", "+998901112233")
	require.False(t, a.CanAccess(shared.AccessPremium))

	a.UpdateUserTier(identity.ByIDOrPhone("+998901112233"), shared.TierPremium, nil)

	assert.True(t, a.CanAccess(shared.AccessPremium))
	assert.False(t, a.CanAccess(shared.AccessGold))
}

func TestRecommendationsReactToSavedBooks(t *testing.T) {
	a := newTestApp(t, store.NewMemoryStore(), identity.Ambient{})
	a.GuestSignUp("", "")

	baseline := a.RecommendedBooks()
	require.NotEmpty(t, baseline)
	for _, b := range baseline {
		assert.True(t, b.IsPopular)
		assert.False(t, b.IsFeatured)
	}

	a.SaveBook("b1")
	recs := a.RecommendedBooks()
	assert.NotEmpty(t, recs)
	for _, b := range recs {
		assert.NotEqual(t, "b1", b.ID, "saved books are never recommended")
	}
}

func TestSendMessageAttribution(t *testing.T) {
	a := newTestApp(t, store.NewMemoryStore(), identity.Ambient{})

	require.NoError(t, a.SendMessage("Visitor", "pre-login question"))
	assert.Equal(t, "anon", a.Messages()[0].AuthorRef)

	a.GuestSignUp("Aziz", "")
	require.NoError(t, a.SendMessage("Aziz", "post-login question"))
	assert.Equal(t, a.User().ID, a.Messages()[0].AuthorRef)
}

// failingStore wraps a working store and fails every Save.
type failingStore struct {
	*store.MemoryStore
}

func (f failingStore) Save(context.Context, string, interface{}) error {
	return errors.New("disk full")
}

func TestPersistFailureKeepsMutationAndNotifies(t *testing.T) {
	a := newTestApp(t, failingStore{store.NewMemoryStore()}, identity.Ambient{})
	a.GuestSignUp("", "")

	a.ClearNotification()
	a.SaveBook("b1")

	assert.True(t, a.IsSaved("b1"), "the in-memory mutation stands")
	assert.Equal(t, "Changes could not be saved to storage", a.Notification())
}

func TestStateSurvivesRebootEndToEnd(t *testing.T) {
	db := store.NewMemoryStore()
	a := newTestApp(t, db, identity.Ambient{})
	a.GuestSignUp("Aziz", "")
	a.AddToCart("sb1")
	a.SaveBook("b2")
	a.ToggleStoreFavorite("sb2")
	a.AddCategory("Philosophy")
	require.NoError(t, a.SendMessage("Aziz", "hello"))

	b := newTestApp(t, db, identity.Ambient{})

	require.Len(t, b.Cart(), 1)
	assert.Equal(t, "sb1", b.Cart()[0].BookID)
	assert.True(t, b.IsSaved("b2"))
	assert.Contains(t, b.StoreFavorites(), "sb2")
	assert.Contains(t, b.Categories(), "Philosophy")
	require.NotEmpty(t, b.Messages())
	assert.Equal(t, "hello", b.Messages()[0].Text)
}
