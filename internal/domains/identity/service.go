package identity

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"bookbites/internal/domains/library"
	"bookbites/internal/shared"
	"bookbites/internal/store"
	"bookbites/pkg/session"
)

// Outcome of the startup session resolution.
type Outcome int

const (
	// OutcomeSignedIn means a current user was resolved; show the main screen.
	OutcomeSignedIn Outcome = iota
	// OutcomeNeedsAuth means neither token nor ambient identity matched;
	// show the sign-up/sign-in screen.
	OutcomeNeedsAuth
)

// Service resolves and owns the current user session plus the global user
// list the admin panel manages.
type Service struct {
	current *User
	users   []User
	ambient Ambient

	tokens  *session.Manager
	persist store.Writer
}

type State struct {
	CurrentUser *User
	Users       []User
}

func NewService(st State, ambient Ambient, tokens *session.Manager, persist store.Writer) *Service {
	return &Service{
		current: st.CurrentUser,
		users:   st.Users,
		ambient: ambient,
		tokens:  tokens,
		persist: persist,
	}
}

// Current returns a copy of the signed-in user, or nil.
func (s *Service) Current() *User {
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// Users returns a copy of the global user list.
func (s *Service) Users() []User {
	out := make([]User, len(s.users))
	copy(out, s.users)
	return out
}

// Resolve runs the startup resolution sequence: durable token match first,
// ambient-identity match second, otherwise the auth screen.
func (s *Service) Resolve(storedToken string) Outcome {
	if storedToken != "" {
		for _, u := range s.users {
			if u.Token != "" && u.Token == storedToken {
				cur := u
				s.current = &cur
				s.persist(store.KeyUser, s.current)
				return OutcomeSignedIn
			}
		}
	}

	if s.ambient.UserID != "" {
		if i, ok := s.findByExternalID(s.ambient.UserID); ok {
			u := s.users[i]
			if u.Token == "" {
				u.Token = s.tokens.NewToken()
			}
			s.replaceUser(i, u)
			cur := u
			s.current = &cur
			s.persist(store.KeyUser, s.current)
			s.persist(store.KeyToken, u.Token)
			return OutcomeSignedIn
		}
	}

	return OutcomeNeedsAuth
}

type profileInput struct {
	Name  string
	Phone string
}

func (p profileInput) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required.Error("name is required"), validation.Length(1, 100)),
		validation.Field(&p.Phone, validation.Length(0, 32)),
	)
}

// CompleteProfile signs the user up (or completes an existing ambient
// account). Calling it twice with the same ambient identity updates one
// record; it never creates a duplicate.
func (s *Service) CompleteProfile(name, phone string, prefs Preferences) (*User, error) {
	if err := (profileInput{Name: name, Phone: phone}).Validate(); err != nil {
		return nil, err
	}

	externalID := s.ambient.UserID
	if externalID == "" {
		externalID = "web_" + uuid.NewString()
	}
	token := s.tokens.NewToken()

	if i, ok := s.findByExternalID(externalID); ok {
		u := s.users[i]
		u.Name = name
		u.Phone = phone
		u.Token = token
		s.replaceUser(i, u)
		cur := u
		s.current = &cur
	} else {
		u := User{
			ID:           externalID,
			Token:        token,
			Name:         name,
			Phone:        phone,
			ExternalID:   externalID,
			SavedBookIDs: []string{},
			Bookshelves:  []library.Bookshelf{},
			Tier:         shared.TierFree,
			Preferences:  prefs,
		}
		s.users = append(s.Users(), u)
		cur := u
		s.current = &cur
	}

	s.persist(store.KeyAllUsers, s.users)
	s.persist(store.KeyUser, s.current)
	s.persist(store.KeyToken, token)
	return s.Current(), nil
}

// GuestSignUp creates a guest account with a synthesized id and token and
// no external-identity linkage.
func (s *Service) GuestSignUp(name, phone string, prefs Preferences) *User {
	if name == "" {
		name = "Guest"
	}
	u := User{
		ID:           "guest_" + uuid.NewString(),
		Token:        s.tokens.NewToken(),
		Name:         name,
		Phone:        phone,
		IsGuest:      true,
		SavedBookIDs: []string{},
		Bookshelves:  []library.Bookshelf{},
		Tier:         shared.TierFree,
		Preferences:  prefs,
	}
	s.users = append(s.Users(), u)
	cur := u
	s.current = &cur

	s.persist(store.KeyAllUsers, s.users)
	s.persist(store.KeyUser, s.current)
	s.persist(store.KeyToken, u.Token)
	return s.Current()
}

// SignInWithAmbient is the manual sign-in path: ambient-identity match
// only. On failure nothing changes, so the caller can offer sign-up.
func (s *Service) SignInWithAmbient() bool {
	if s.ambient.UserID == "" {
		return false
	}
	i, ok := s.findByExternalID(s.ambient.UserID)
	if !ok {
		return false
	}
	u := s.users[i]
	cur := u
	s.current = &cur
	s.persist(store.KeyUser, s.current)
	if u.Token != "" {
		s.persist(store.KeyToken, u.Token)
	}
	return true
}

// Logout clears the session and the durable token. The user record stays.
func (s *Service) Logout() {
	s.current = nil
	s.persist(store.KeyUser, nil)
	s.persist(store.KeyToken, "")
}

// ---- admin user mutations ----
//
// Effects on the signed-in user apply to the live session too, so they are
// visible without a re-login.

func (s *Service) UpdateUserTier(ref UserRef, tier shared.Tier, expiry *time.Time) {
	s.mutate(ref, func(u *User) {
		u.Tier = tier
		u.TierExpiry = expiry
	})
}

func (s *Service) SetManager(ref UserRef, isManager bool) {
	s.mutate(ref, func(u *User) { u.IsManager = isManager })
}

func (s *Service) SetSuperAdmin(ref UserRef, isSuper bool) {
	s.mutate(ref, func(u *User) { u.IsSuperAdmin = isSuper })
}

func (s *Service) mutate(ref UserRef, apply func(*User)) {
	next := s.Users()
	for i := range next {
		if ref.Matches(next[i]) {
			apply(&next[i])
		}
	}
	s.users = next
	s.persist(store.KeyAllUsers, s.users)

	if s.current != nil && ref.Matches(*s.current) {
		cur := *s.current
		apply(&cur)
		s.current = &cur
		s.persist(store.KeyUser, s.current)
	}
}

func (s *Service) findByExternalID(externalID string) (int, bool) {
	for i, u := range s.users {
		if u.ExternalID != "" && u.ExternalID == externalID {
			return i, true
		}
	}
	return 0, false
}

func (s *Service) replaceUser(i int, u User) {
	next := s.Users()
	next[i] = u
	s.users = next
	s.persist(store.KeyAllUsers, s.users)
}
