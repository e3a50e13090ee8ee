// Package library manages the user's bookshelves and the derived index of
// saved book ids.
package library

import (
	"github.com/google/uuid"

	"bookbites/internal/store"
)

// Bookshelf is a named, ordered set of book ids. No duplicates.
type Bookshelf struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	BookIDs []string `json:"book_ids"`
}

// DefaultShelfID is the well-known id of the Favorites shelf, the target
// of the one-tap save action.
const DefaultShelfID = "1"

// DefaultShelves seeds the two shelves every fresh library starts with.
func DefaultShelves() []Bookshelf {
	return []Bookshelf{
		{ID: DefaultShelfID, Name: "Favorites", BookIDs: []string{}},
		{ID: "2", Name: "To Read", BookIDs: []string{}},
	}
}

// Service owns shelves plus the saved-book index. The index exists so
// IsSaved stays cheap regardless of how many shelves hold the book.
type Service struct {
	shelves []Bookshelf
	saved   []string

	persist store.Writer
}

func NewService(shelves []Bookshelf, saved []string, persist store.Writer) *Service {
	if len(shelves) == 0 {
		shelves = DefaultShelves()
	}
	return &Service{shelves: shelves, saved: saved, persist: persist}
}

// Shelves returns a deep copy of the shelf list.
func (s *Service) Shelves() []Bookshelf {
	out := make([]Bookshelf, len(s.shelves))
	for i, sh := range s.shelves {
		ids := make([]string, len(sh.BookIDs))
		copy(ids, sh.BookIDs)
		sh.BookIDs = ids
		out[i] = sh
	}
	return out
}

// SavedBookIDs returns a copy of the saved index.
func (s *Service) SavedBookIDs() []string {
	out := make([]string, len(s.saved))
	copy(out, s.saved)
	return out
}

func (s *Service) IsSaved(bookID string) bool {
	return contains(s.saved, bookID)
}

// CreateShelf adds an empty named shelf.
func (s *Service) CreateShelf(name string) Bookshelf {
	shelf := Bookshelf{ID: uuid.NewString(), Name: name, BookIDs: []string{}}
	s.shelves = append(s.Shelves(), shelf)
	s.persist(store.KeyShelves, s.shelves)
	return shelf
}

// SaveToShelf adds the book to the shelf and ensures it is present in the
// saved index. Saving to an unknown shelf, or re-saving an already present
// book, is a no-op for the shelf.
func (s *Service) SaveToShelf(bookID, shelfID string) {
	idx := -1
	for i, sh := range s.shelves {
		if sh.ID == shelfID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}

	if !contains(s.shelves[idx].BookIDs, bookID) {
		next := s.Shelves()
		next[idx].BookIDs = append(next[idx].BookIDs, bookID)
		s.shelves = next
		s.persist(store.KeyShelves, s.shelves)
	}

	if !contains(s.saved, bookID) {
		s.saved = append(s.SavedBookIDs(), bookID)
		s.persist(store.KeySaved, s.saved)
	}
}

// SaveBook targets the Favorites shelf if present, else the first shelf.
func (s *Service) SaveBook(bookID string) {
	target := ""
	for _, sh := range s.shelves {
		if sh.ID == DefaultShelfID {
			target = sh.ID
			break
		}
	}
	if target == "" {
		if len(s.shelves) == 0 {
			return
		}
		target = s.shelves[0].ID
	}
	s.SaveToShelf(bookID, target)
}

// RemoveBook drops the book from every shelf and from the saved index in
// one action.
func (s *Service) RemoveBook(bookID string) {
	next := s.Shelves()
	for i := range next {
		ids := next[i].BookIDs[:0:0]
		for _, id := range next[i].BookIDs {
			if id != bookID {
				ids = append(ids, id)
			}
		}
		next[i].BookIDs = ids
	}
	s.shelves = next

	saved := s.saved[:0:0]
	for _, id := range s.saved {
		if id != bookID {
			saved = append(saved, id)
		}
	}
	s.saved = saved

	s.persist(store.KeyShelves, s.shelves)
	s.persist(store.KeySaved, s.saved)
}

func contains(list []string, v string) bool {
	for _, c := range list {
		if c == v {
			return true
		}
	}
	return false
}
