// Package app is the composition root and the single facade the view layer
// talks to. It owns every domain service, the navigation triple, and the
// transient notification, and it funnels every mutation's write-through to
// the persistence port.
//
// The whole layer is synchronous and single-writer: one UI interaction is
// one action, one state transition, one persistence write. No locking is
// needed because the active tab is the only writer.
package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"bookbites/internal/domains/access"
	"bookbites/internal/domains/cart"
	"bookbites/internal/domains/catalog"
	"bookbites/internal/domains/identity"
	"bookbites/internal/domains/library"
	"bookbites/internal/domains/recommend"
	"bookbites/internal/domains/settings"
	"bookbites/internal/domains/support"
	"bookbites/internal/shared"
	"bookbites/internal/store"
	"bookbites/pkg/logger"
	"bookbites/pkg/session"
)

// App is the domain-state object handed to the presentation layer.
type App struct {
	db      store.Store
	tokens  *session.Manager
	persist store.Writer

	identity *identity.Service
	admin    *identity.AdminSession
	catalog  *catalog.Service
	library  *library.Service
	cart     *cart.Service
	support  *support.Service
	settings *settings.Service

	loading        bool
	currentView    View
	selectedBook   *catalog.Book
	selectedMC     *catalog.Masterclass
	selectedStore  *catalog.StoreBook
	showAdminLogin bool
	notification   string
	now            func() time.Time
}

// Options carries the collaborators main wires in.
type Options struct {
	Store    store.Store
	Tokens   *session.Manager
	Verifier identity.CredentialVerifier
	// Ambient is the host-supplied identity, if the embedding shell
	// provides one. The core only ever reads it.
	Ambient identity.Ambient
}

// New loads every collection (falling back to seeds on missing or corrupt
// records), restores sessions, and resolves the current user. When it
// returns, Loading is false and the navigation target is definite.
func New(ctx context.Context, opts Options) *App {
	a := &App{
		db:          opts.Store,
		tokens:      opts.Tokens,
		loading:     true,
		currentView: ViewAuth,
		now:         time.Now,
	}
	a.persist = func(key string, value interface{}) {
		if err := a.db.Save(context.Background(), key, value); err != nil {
			// Availability over durability: the mutation stands, the miss
			// is reported.
			logger.Warn("write-through failed: "+key, err)
			a.notification = "Changes could not be saved to storage"
		}
	}

	// Catalogs.
	seedBooks := catalog.SeedBooks()
	seedMCs := catalog.SeedMasterclasses()
	seedStore := catalog.SeedStoreBooks()
	a.catalog = catalog.NewService(catalog.State{
		Books:         store.Get(ctx, a.db, store.KeyBooks, seedBooks),
		Masterclasses: store.Get(ctx, a.db, store.KeyMasterclasses, seedMCs),
		StoreBooks:    store.Get(ctx, a.db, store.KeyStoreBooks, seedStore),
		Categories: store.Get(ctx, a.db, store.KeyCategories,
			catalog.DeriveCategories(seedBooks, func(b catalog.Book) string { return b.Category })),
		MasterclassCats: store.Get(ctx, a.db, store.KeyMasterclassCats,
			catalog.DeriveCategories(seedMCs, func(m catalog.Masterclass) string { return m.Category })),
		StoreCats: store.Get(ctx, a.db, store.KeyStoreCats,
			catalog.DeriveCategories(seedStore, func(b catalog.StoreBook) string { return b.Category })),
	}, a.persist)

	// Library, cart, support, settings.
	a.library = library.NewService(
		store.Get(ctx, a.db, store.KeyShelves, []library.Bookshelf{}),
		store.Get(ctx, a.db, store.KeySaved, []string{}),
		a.persist,
	)
	a.cart = cart.NewService(
		store.Get(ctx, a.db, store.KeyCart, []cart.Item{}),
		store.Get(ctx, a.db, store.KeyStoreFavorites, []string{}),
		a.persist,
		a.Notify,
	)
	a.support = support.NewService(
		store.Get(ctx, a.db, store.KeyMessages, []support.Message{}),
		a.persist,
	)
	a.settings = settings.NewService(settings.State{
		AppConfig:     store.Get(ctx, a.db, store.KeyConfig, settings.DefaultAppConfig()),
		Contact:       store.Get(ctx, a.db, store.KeyContact, settings.DefaultContactInfo()),
		Plans:         store.Get(ctx, a.db, store.KeyPlans, settings.DefaultPlans()),
		FAQs:          store.Get(ctx, a.db, store.KeyFAQs, settings.SeedFAQs()),
		Language:      settings.ParseLanguage(string(store.Get(ctx, a.db, store.KeyLanguage, settings.DefaultLanguage))),
		Theme:         settings.ParseTheme(string(store.Get(ctx, a.db, store.KeyTheme, settings.ThemeLight))),
		Notifications: store.Get(ctx, a.db, store.KeyNotifications, true),
	}, a.persist)

	// Identity: stored users + session token, then the resolution sequence.
	a.identity = identity.NewService(identity.State{
		CurrentUser: store.Get[*identity.User](ctx, a.db, store.KeyUser, nil),
		Users:       store.Get(ctx, a.db, store.KeyAllUsers, []identity.User{}),
	}, opts.Ambient, opts.Tokens, a.persist)

	a.admin = identity.NewAdminSession(
		opts.Verifier,
		opts.Tokens,
		store.Get(ctx, a.db, store.KeyAdminSession, ""),
		a.persist,
	)

	storedToken := store.Get(ctx, a.db, store.KeyToken, "")
	switch a.identity.Resolve(storedToken) {
	case identity.OutcomeSignedIn:
		a.currentView = ViewHome
	case identity.OutcomeNeedsAuth:
		a.currentView = ViewAuth
	}
	a.loading = false

	return a
}

// Loading reports whether startup identity resolution is still pending.
// Access-control queries must be deferred while it is true.
func (a *App) Loading() bool { return a.loading }

// ---- navigation & notifications ----

// CurrentView returns the active view.
func (a *App) CurrentView() View { return a.currentView }

func (a *App) SelectedBook() *catalog.Book               { return a.selectedBook }
func (a *App) SelectedMasterclass() *catalog.Masterclass { return a.selectedMC }
func (a *App) SelectedStoreBook() *catalog.StoreBook     { return a.selectedStore }

// Navigate switches views. Passing an item selects it for the detail
// views; navigating without one clears the selection triple, except into
// the reader, which keeps the open book.
func (a *App) Navigate(view View, item interface{}) {
	a.currentView = view
	if item != nil {
		switch v := item.(type) {
		case catalog.Book:
			a.selectedBook = &v
		case catalog.Masterclass:
			a.selectedMC = &v
		case catalog.StoreBook:
			a.selectedStore = &v
		}
		return
	}
	if view != ViewReader {
		a.selectedBook = nil
		a.selectedMC = nil
		a.selectedStore = nil
	}
}

// Notify sets the transient toast message.
func (a *App) Notify(msg string) { a.notification = msg }

// Notification returns the pending toast, empty when none.
func (a *App) Notification() string { return a.notification }

func (a *App) ClearNotification() { a.notification = "" }

// ---- identity & session ----

func (a *App) User() *identity.User   { return a.identity.Current() }
func (a *App) Users() []identity.User { return a.identity.Users() }

func (a *App) devicePreferences() identity.Preferences {
	return identity.Preferences{
		Theme:         a.settings.Theme(),
		Language:      a.settings.Language(),
		Notifications: a.settings.NotificationsOn(),
	}
}

// CompleteProfile signs up (or idempotently completes) the current
// identity and lands on the home view.
func (a *App) CompleteProfile(name, phone string) error {
	if _, err := a.identity.CompleteProfile(name, phone, a.devicePreferences()); err != nil {
		return err
	}
	a.Navigate(ViewHome, nil)
	return nil
}

// GuestSignUp creates a guest account and signs it in.
func (a *App) GuestSignUp(name, phone string) {
	a.identity.GuestSignUp(name, phone, a.devicePreferences())
	a.Navigate(ViewHome, nil)
}

// SignInWithAmbient is the manual sign-in path. false means no account is
// linked to the ambient identity and the caller should offer sign-up.
func (a *App) SignInWithAmbient() bool {
	if !a.identity.SignInWithAmbient() {
		return false
	}
	a.Navigate(ViewHome, nil)
	return true
}

// Logout drops both sessions and returns to the auth screen. The user
// record itself survives.
func (a *App) Logout() {
	a.identity.Logout()
	a.admin.Clear()
	a.Navigate(ViewAuth, nil)
}

// ---- admin session ----

func (a *App) IsAdmin() bool        { return a.admin.Authenticated() }
func (a *App) ShowAdminLogin() bool { return a.showAdminLogin }

func (a *App) TriggerAdminLogin() {
	a.showAdminLogin = true
	a.Navigate(ViewAdmin, nil)
}

func (a *App) CancelAdminLogin() {
	a.showAdminLogin = false
	if a.User() != nil {
		a.Navigate(ViewHome, nil)
	} else {
		a.Navigate(ViewAuth, nil)
	}
}

// AuthenticateAdmin checks the credential pair; a wrong pair changes
// nothing and reports the denial.
func (a *App) AuthenticateAdmin(id, secret string) bool {
	if !a.admin.Authenticate(id, secret) {
		return false
	}
	a.showAdminLogin = false
	a.Navigate(ViewAdmin, nil)
	return true
}

func (a *App) ExitAdminPanel() { a.Navigate(ViewHome, nil) }

// ---- access control & recommendations ----

// CanAccess gates content for the current user. Callable on every render.
func (a *App) CanAccess(level shared.AccessLevel) bool {
	return access.CanAccess(level, a.identity.Current(), a.admin.Authenticated(), a.now())
}

// RecommendedBooks recomputes the ranked recommendations from the current
// saved-book state.
func (a *App) RecommendedBooks() []catalog.Book {
	return recommend.Books(a.identity.Current(), a.catalog.Books(), a.library.SavedBookIDs())
}

// ---- catalogs ----

func (a *App) Books() []catalog.Book                { return a.catalog.Books() }
func (a *App) Masterclasses() []catalog.Masterclass { return a.catalog.Masterclasses() }
func (a *App) StoreBooks() []catalog.StoreBook      { return a.catalog.StoreBooks() }
func (a *App) Categories() []string                 { return a.catalog.Categories() }
func (a *App) MasterclassCategories() []string      { return a.catalog.MasterclassCategories() }
func (a *App) StoreCategories() []string            { return a.catalog.StoreCategories() }

func (a *App) AddBook(b catalog.Book) (catalog.Book, error) { return a.catalog.AddBook(b) }
func (a *App) UpdateBook(b catalog.Book) error              { return a.catalog.UpdateBook(b) }
func (a *App) DeleteBook(id string)                         { a.catalog.DeleteBook(id) }
func (a *App) SetBooks(books []catalog.Book)                { a.catalog.SetBooks(books) }

func (a *App) AddMasterclass(m catalog.Masterclass) (catalog.Masterclass, error) {
	return a.catalog.AddMasterclass(m)
}
func (a *App) UpdateMasterclass(m catalog.Masterclass) error { return a.catalog.UpdateMasterclass(m) }
func (a *App) DeleteMasterclass(id string)                   { a.catalog.DeleteMasterclass(id) }

func (a *App) AddStoreBook(b catalog.StoreBook) (catalog.StoreBook, error) {
	return a.catalog.AddStoreBook(b)
}
func (a *App) UpdateStoreBook(b catalog.StoreBook) error { return a.catalog.UpdateStoreBook(b) }
func (a *App) DeleteStoreBook(id string)                 { a.catalog.DeleteStoreBook(id) }

func (a *App) AddCategory(c string)               { a.catalog.AddCategory(c) }
func (a *App) DeleteCategory(c string)            { a.catalog.DeleteCategory(c) }
func (a *App) AddMasterclassCategory(c string)    { a.catalog.AddMasterclassCategory(c) }
func (a *App) DeleteMasterclassCategory(c string) { a.catalog.DeleteMasterclassCategory(c) }
func (a *App) AddStoreCategory(c string)          { a.catalog.AddStoreCategory(c) }
func (a *App) DeleteStoreCategory(c string)       { a.catalog.DeleteStoreCategory(c) }

// ---- library ----

func (a *App) Bookshelves() []library.Bookshelf { return a.library.Shelves() }
func (a *App) SavedBookIDs() []string           { return a.library.SavedBookIDs() }
func (a *App) IsSaved(bookID string) bool       { return a.library.IsSaved(bookID) }

func (a *App) CreateBookshelf(name string) library.Bookshelf { return a.library.CreateShelf(name) }
func (a *App) SaveBookToShelf(bookID, shelfID string)        { a.library.SaveToShelf(bookID, shelfID) }
func (a *App) SaveBook(bookID string)                        { a.library.SaveBook(bookID) }
func (a *App) RemoveBook(bookID string)                      { a.library.RemoveBook(bookID) }

// ---- cart & favorites ----

func (a *App) Cart() []cart.Item        { return a.cart.Items() }
func (a *App) StoreFavorites() []string { return a.cart.Favorites() }

func (a *App) AddToCart(bookID string)                 { a.cart.Add(bookID) }
func (a *App) RemoveFromCart(bookID string)            { a.cart.Remove(bookID) }
func (a *App) UpdateCartQuantity(bookID string, d int) { a.cart.UpdateQuantity(bookID, d) }
func (a *App) ToggleStoreFavorite(bookID string)       { a.cart.ToggleFavorite(bookID) }

// CartSubtotal is a best-effort sum over display prices.
func (a *App) CartSubtotal() decimal.Decimal {
	return a.cart.Subtotal(a.catalog.StoreBooks())
}

// ---- support messages ----

func (a *App) Messages() []support.Message { return a.support.Messages() }

func (a *App) SendMessage(name, text string) error {
	_, err := a.support.Send(name, text, a.identity.Current())
	return err
}

func (a *App) ReplyToMessage(messageID, text string) { a.support.Reply(messageID, text, "Admin") }
func (a *App) MarkMessageRead(messageID string)      { a.support.MarkRead(messageID) }

// ---- admin user mutations ----

func (a *App) UpdateUserTier(ref identity.UserRef, tier shared.Tier, expiry *time.Time) {
	a.identity.UpdateUserTier(ref, tier, expiry)
}
func (a *App) PromoteToManager(ref identity.UserRef, isManager bool) {
	a.identity.SetManager(ref, isManager)
}
func (a *App) PromoteToSuperAdmin(ref identity.UserRef, isSuper bool) {
	a.identity.SetSuperAdmin(ref, isSuper)
}

// ---- settings ----

func (a *App) AppConfig() settings.AppConfig      { return a.settings.AppConfig() }
func (a *App) ContactInfo() settings.ContactInfo  { return a.settings.Contact() }
func (a *App) Plans() []settings.SubscriptionPlan { return a.settings.Plans() }
func (a *App) FAQs() []settings.FAQItem           { return a.settings.FAQs() }
func (a *App) Language() settings.Language        { return a.settings.Language() }
func (a *App) Theme() settings.Theme              { return a.settings.Theme() }
func (a *App) NotificationsOn() bool              { return a.settings.NotificationsOn() }

func (a *App) UpdateAppConfig(cfg settings.AppConfig)      { a.settings.UpdateAppConfig(cfg) }
func (a *App) UpdateContactInfo(info settings.ContactInfo) { a.settings.UpdateContact(info) }
func (a *App) SetLanguage(lang settings.Language)          { a.settings.SetLanguage(lang) }
func (a *App) ToggleTheme() settings.Theme                 { return a.settings.ToggleTheme() }
func (a *App) ToggleNotifications() bool                   { return a.settings.ToggleNotifications() }

func (a *App) UpdateSubscriptionPlans(plans []settings.SubscriptionPlan) error {
	return a.settings.SetPlans(plans)
}
func (a *App) UpdateSubscriptionPlan(p settings.SubscriptionPlan) error {
	return a.settings.UpdatePlan(p)
}
func (a *App) EditPlanFeature(tier shared.Tier, index int, text string) {
	a.settings.EditPlanFeature(tier, index, text)
}
func (a *App) AppendPlanFeature(tier shared.Tier, text string) {
	a.settings.AppendPlanFeature(tier, text)
}
func (a *App) DeletePlanFeature(tier shared.Tier, index int) {
	a.settings.DeletePlanFeature(tier, index)
}

func (a *App) AddFAQ(question, answer string) settings.FAQItem {
	return a.settings.AddFAQ(question, answer)
}
func (a *App) DeleteFAQ(id string) { a.settings.DeleteFAQ(id) }
