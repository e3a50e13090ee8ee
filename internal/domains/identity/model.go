package identity

import (
	"time"

	"bookbites/internal/domains/library"
	"bookbites/internal/domains/settings"
	"bookbites/internal/shared"
)

// Preferences is the per-user snapshot of device settings taken at sign-up.
type Preferences struct {
	Theme         settings.Theme    `json:"theme"`
	Language      settings.Language `json:"language"`
	Notifications bool              `json:"notifications"`
}

// User is an account record. Users are never hard-deleted; logout only
// drops the session.
type User struct {
	ID           string              `json:"id"`
	Token        string              `json:"token,omitempty"`
	Name         string              `json:"name,omitempty"`
	Email        string              `json:"email,omitempty"`
	Phone        string              `json:"phone,omitempty"`
	IsGuest      bool                `json:"is_guest"`
	ExternalID   string              `json:"external_id"`
	SavedBookIDs []string            `json:"saved_book_ids"`
	Bookshelves  []library.Bookshelf `json:"bookshelves"`
	Tier         shared.Tier         `json:"tier"`
	TierExpiry   *time.Time          `json:"tier_expiry,omitempty"`
	IsManager    bool                `json:"is_manager,omitempty"`
	IsSuperAdmin bool                `json:"is_super_admin,omitempty"`
	Preferences  Preferences         `json:"preferences"`
}

// Ambient is the read-only identity the embedding host may supply at load
// time. A zero UserID means no ambient identity is present.
type Ambient struct {
	UserID string
	Name   string
}

// UserRef is the union key admins target users by: an exact id, an exact
// phone, or an id-or-phone query typed into the admin panel. The fallback
// comparison lives here, resolved once, instead of being repeated in every
// mutation.
type UserRef struct {
	id    string
	phone string
}

func ByID(id string) UserRef           { return UserRef{id: id} }
func ByPhone(phone string) UserRef     { return UserRef{phone: phone} }
func ByIDOrPhone(query string) UserRef { return UserRef{id: query, phone: query} }

// Matches reports whether the ref addresses the given user.
func (r UserRef) Matches(u User) bool {
	if r.id != "" && u.ID == r.id {
		return true
	}
	return r.phone != "" && u.Phone != "" && u.Phone == r.phone
}
