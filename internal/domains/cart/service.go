// Package cart manages the bookstore shopping cart and the store-favorites
// set.
package cart

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"bookbites/internal/domains/catalog"
	"bookbites/internal/store"
)

// Item is one cart line. Quantity is never below 1: removal is an explicit
// action, never a decrement to zero.
type Item struct {
	BookID   string `json:"book_id"`
	Quantity int    `json:"quantity"`
}

// Notifier surfaces a transient toast to the view layer.
type Notifier func(msg string)

type Service struct {
	items     []Item
	favorites []string

	persist store.Writer
	notify  Notifier
}

func NewService(items []Item, favorites []string, persist store.Writer, notify Notifier) *Service {
	if notify == nil {
		notify = func(string) {}
	}
	return &Service{items: items, favorites: favorites, persist: persist, notify: notify}
}

// Items returns a copy of the cart lines.
func (s *Service) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Favorites returns a copy of the favorites set.
func (s *Service) Favorites() []string {
	out := make([]string, len(s.favorites))
	copy(out, s.favorites)
	return out
}

func (s *Service) IsFavorite(bookID string) bool {
	for _, id := range s.favorites {
		if id == bookID {
			return true
		}
	}
	return false
}

// Add inserts the book with quantity 1, or bumps the existing line via the
// quantity path. Cart lines are keyed uniquely by book id.
func (s *Service) Add(bookID string) {
	for _, it := range s.items {
		if it.BookID == bookID {
			s.UpdateQuantity(bookID, 1)
			return
		}
	}
	s.items = append(s.Items(), Item{BookID: bookID, Quantity: 1})
	s.persist(store.KeyCart, s.items)
	s.notify("Added to cart")
}

// UpdateQuantity applies a delta with a floor of 1: a delta that would
// reach zero or below is rejected and the previous quantity stands.
func (s *Service) UpdateQuantity(bookID string, delta int) {
	next := s.Items()
	changed := false
	for i, it := range next {
		if it.BookID != bookID {
			continue
		}
		q := it.Quantity + delta
		if q > 0 {
			next[i].Quantity = q
			changed = true
		}
	}
	if changed {
		s.items = next
		s.persist(store.KeyCart, s.items)
	}
}

// Remove deletes the line outright.
func (s *Service) Remove(bookID string) {
	next := s.items[:0:0]
	for _, it := range s.items {
		if it.BookID != bookID {
			next = append(next, it)
		}
	}
	s.items = next
	s.persist(store.KeyCart, s.items)
}

// ToggleFavorite flips set membership for a store book.
func (s *Service) ToggleFavorite(bookID string) {
	for i, id := range s.favorites {
		if id == bookID {
			next := s.Favorites()
			s.favorites = append(next[:i], next[i+1:]...)
			s.persist(store.KeyStoreFavorites, s.favorites)
			return
		}
	}
	s.favorites = append(s.Favorites(), bookID)
	s.persist(store.KeyStoreFavorites, s.favorites)
}

// Subtotal sums quantity x parsed price over the given store catalog.
// Prices are display text ("120 000 UZS", "$15.00"); lines whose price has
// no parsable number contribute zero.
func (s *Service) Subtotal(books []catalog.StoreBook) decimal.Decimal {
	prices := make(map[string]decimal.Decimal, len(books))
	for _, b := range books {
		prices[b.ID] = parsePrice(b.Price)
	}

	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(prices[it.BookID].Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

var priceDigits = regexp.MustCompile(`[0-9]+(?:[.,][0-9]+)?`)

func parsePrice(display string) decimal.Decimal {
	// Collapse spaced thousands groups ("120 000") before matching.
	compact := strings.ReplaceAll(display, " ", "")
	compact = strings.ReplaceAll(compact, " ", "")
	match := priceDigits.FindString(compact)
	if match == "" {
		return decimal.Zero
	}
	match = strings.ReplaceAll(match, ",", ".")
	d, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero
	}
	return d
}
