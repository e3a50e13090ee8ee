// Package store is the persistence port: every domain collection is an
// independently keyed, JSON-encoded record in a durable key/value store.
// The stored copy is a durability mirror only; once loaded, in-memory state
// is the source of truth.
package store

import (
	"context"

	"bookbites/pkg/logger"
)

// Collection keys. One record per collection.
const (
	KeyConfig          = "bookbites_config"
	KeyUser            = "bookbites_user"
	KeyAllUsers        = "bookbites_all_users"
	KeyBooks           = "bookbites_books"
	KeyMasterclasses   = "bookbites_masterclasses"
	KeySaved           = "bookbites_saved"
	KeyShelves         = "bookbites_shelves"
	KeyCategories      = "bookbites_cats"
	KeyMasterclassCats = "bookbites_mc_cats"
	KeyStoreCats       = "bookbites_store_cats"
	KeyPlans           = "bookbites_plans"
	KeyLanguage        = "bookbites_lang"
	KeyTheme           = "bookbites_theme"
	KeyContact         = "bookbites_contact"
	KeyNotifications   = "bookbites_notif"
	KeyStoreBooks      = "bookbites_store_books"
	KeyCart            = "bookbites_cart"
	KeyStoreFavorites  = "bookbites_store_fav"
	KeyMessages        = "bookbites_messages"
	KeyFAQs            = "bookbites_faqs"
	KeyToken           = "bookbites_token"
	KeyAdminSession    = "bookbites_admin_session"
)

// Store persists one JSON document per collection key.
type Store interface {
	// Load unmarshals the record at key into dest.
	// found=false means the key is absent; dest is left untouched.
	Load(ctx context.Context, key string, dest interface{}) (bool, error)

	// Save marshals value and writes it under key, replacing any previous
	// record (last writer wins).
	Save(ctx context.Context, key string, value interface{}) error

	// Delete removes the record at key. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error
}

// Get loads the collection at key, falling back to def when the record is
// missing or unreadable. A corrupt record must never fail a load; it is
// logged and replaced by the default.
func Get[T any](ctx context.Context, s Store, key string, def T) T {
	var v T
	found, err := s.Load(ctx, key, &v)
	if err != nil {
		logger.Warn("load "+key+" failed, using default", err)
		return def
	}
	if !found {
		return def
	}
	return v
}

// Writer is the write-through hook handed to domain services. The
// composition root supplies one that saves and downgrades failures to
// warnings, so a storage error never fails the mutation that caused it.
type Writer func(key string, value interface{})
