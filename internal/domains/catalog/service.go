package catalog

import (
	"time"

	"github.com/google/uuid"

	"bookbites/internal/store"
)

// Service owns the three admin-managed catalogs and their category lists.
// Every mutation computes a new collection, swaps it in, and writes through
// to the persistence port. There is exactly one writer (the facade), so no
// locking here.
type Service struct {
	books         []Book
	masterclasses []Masterclass
	storeBooks    []StoreBook

	categories      []string
	masterclassCats []string
	storeCats       []string

	persist store.Writer
	now     func() time.Time
}

// State is the loaded catalog snapshot handed to NewService at boot.
type State struct {
	Books           []Book
	Masterclasses   []Masterclass
	StoreBooks      []StoreBook
	Categories      []string
	MasterclassCats []string
	StoreCats       []string
}

func NewService(st State, persist store.Writer) *Service {
	return &Service{
		books:           st.Books,
		masterclasses:   st.Masterclasses,
		storeBooks:      st.StoreBooks,
		categories:      st.Categories,
		masterclassCats: st.MasterclassCats,
		storeCats:       st.StoreCats,
		persist:         persist,
		now:             time.Now,
	}
}

// ---- books ----

// Books returns a copy of the book catalog, newest first.
func (s *Service) Books() []Book {
	out := make([]Book, len(s.books))
	copy(out, s.books)
	return out
}

func (s *Service) BookByID(id string) (Book, bool) {
	for _, b := range s.books {
		if b.ID == id {
			return b, true
		}
	}
	return Book{}, false
}

// AddBook validates and prepends a new book so newest-first ordering holds.
// A missing id or created-at stamp is filled in.
func (s *Service) AddBook(b Book) (Book, error) {
	if err := b.Validate(); err != nil {
		return Book{}, err
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = s.now()
	}
	s.books = append([]Book{b}, s.books...)
	s.persist(store.KeyBooks, s.books)
	return b, nil
}

// UpdateBook replaces the stored record by id. Updating a deleted book is a
// silent no-op.
func (s *Service) UpdateBook(b Book) error {
	if err := b.Validate(); err != nil {
		return err
	}
	next := make([]Book, len(s.books))
	for i, cur := range s.books {
		if cur.ID == b.ID {
			next[i] = b
		} else {
			next[i] = cur
		}
	}
	s.books = next
	s.persist(store.KeyBooks, s.books)
	return nil
}

func (s *Service) DeleteBook(id string) {
	next := s.books[:0:0]
	for _, b := range s.books {
		if b.ID != id {
			next = append(next, b)
		}
	}
	s.books = next
	s.persist(store.KeyBooks, s.books)
}

// SetBooks replaces the whole catalog (admin bulk edit / reorder).
func (s *Service) SetBooks(books []Book) {
	next := make([]Book, len(books))
	copy(next, books)
	s.books = next
	s.persist(store.KeyBooks, s.books)
}

// ---- masterclasses ----

func (s *Service) Masterclasses() []Masterclass {
	out := make([]Masterclass, len(s.masterclasses))
	copy(out, s.masterclasses)
	return out
}

func (s *Service) MasterclassByID(id string) (Masterclass, bool) {
	for _, m := range s.masterclasses {
		if m.ID == id {
			return m, true
		}
	}
	return Masterclass{}, false
}

func (s *Service) AddMasterclass(m Masterclass) (Masterclass, error) {
	if err := m.Validate(); err != nil {
		return Masterclass{}, err
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	s.masterclasses = append([]Masterclass{m}, s.masterclasses...)
	s.persist(store.KeyMasterclasses, s.masterclasses)
	return m, nil
}

func (s *Service) UpdateMasterclass(m Masterclass) error {
	if err := m.Validate(); err != nil {
		return err
	}
	next := make([]Masterclass, len(s.masterclasses))
	for i, cur := range s.masterclasses {
		if cur.ID == m.ID {
			next[i] = m
		} else {
			next[i] = cur
		}
	}
	s.masterclasses = next
	s.persist(store.KeyMasterclasses, s.masterclasses)
	return nil
}

func (s *Service) DeleteMasterclass(id string) {
	next := s.masterclasses[:0:0]
	for _, m := range s.masterclasses {
		if m.ID != id {
			next = append(next, m)
		}
	}
	s.masterclasses = next
	s.persist(store.KeyMasterclasses, s.masterclasses)
}

// ---- store books ----

func (s *Service) StoreBooks() []StoreBook {
	out := make([]StoreBook, len(s.storeBooks))
	copy(out, s.storeBooks)
	return out
}

func (s *Service) StoreBookByID(id string) (StoreBook, bool) {
	for _, b := range s.storeBooks {
		if b.ID == id {
			return b, true
		}
	}
	return StoreBook{}, false
}

func (s *Service) AddStoreBook(b StoreBook) (StoreBook, error) {
	if err := b.Validate(); err != nil {
		return StoreBook{}, err
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	s.storeBooks = append([]StoreBook{b}, s.storeBooks...)
	s.persist(store.KeyStoreBooks, s.storeBooks)
	return b, nil
}

func (s *Service) UpdateStoreBook(b StoreBook) error {
	if err := b.Validate(); err != nil {
		return err
	}
	next := make([]StoreBook, len(s.storeBooks))
	for i, cur := range s.storeBooks {
		if cur.ID == b.ID {
			next[i] = b
		} else {
			next[i] = cur
		}
	}
	s.storeBooks = next
	s.persist(store.KeyStoreBooks, s.storeBooks)
	return nil
}

func (s *Service) DeleteStoreBook(id string) {
	next := s.storeBooks[:0:0]
	for _, b := range s.storeBooks {
		if b.ID != id {
			next = append(next, b)
		}
	}
	s.storeBooks = next
	s.persist(store.KeyStoreBooks, s.storeBooks)
}

// ---- categories ----
//
// Category lists are label sets. Deleting a label never touches content in
// that category; content keeps its (now orphaned) label on purpose.

func (s *Service) Categories() []string            { return copyStrings(s.categories) }
func (s *Service) MasterclassCategories() []string { return copyStrings(s.masterclassCats) }
func (s *Service) StoreCategories() []string       { return copyStrings(s.storeCats) }

func (s *Service) AddCategory(c string) {
	s.categories = addLabel(s.categories, c)
	s.persist(store.KeyCategories, s.categories)
}

func (s *Service) DeleteCategory(c string) {
	s.categories = removeLabel(s.categories, c)
	s.persist(store.KeyCategories, s.categories)
}

func (s *Service) AddMasterclassCategory(c string) {
	s.masterclassCats = addLabel(s.masterclassCats, c)
	s.persist(store.KeyMasterclassCats, s.masterclassCats)
}

func (s *Service) DeleteMasterclassCategory(c string) {
	s.masterclassCats = removeLabel(s.masterclassCats, c)
	s.persist(store.KeyMasterclassCats, s.masterclassCats)
}

func (s *Service) AddStoreCategory(c string) {
	s.storeCats = addLabel(s.storeCats, c)
	s.persist(store.KeyStoreCats, s.storeCats)
}

func (s *Service) DeleteStoreCategory(c string) {
	s.storeCats = removeLabel(s.storeCats, c)
	s.persist(store.KeyStoreCats, s.storeCats)
}

func addLabel(list []string, label string) []string {
	for _, c := range list {
		if c == label {
			return list
		}
	}
	return append(copyStrings(list), label)
}

func removeLabel(list []string, label string) []string {
	next := list[:0:0]
	for _, c := range list {
		if c != label {
			next = append(next, c)
		}
	}
	return next
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
