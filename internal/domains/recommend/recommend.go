// Package recommend derives a ranked list of unseen books from a user's
// saved-item history. The computation is a deterministic single pass over
// the catalog and is recomputed on every call; saved books change far more
// often than the catalog, so caching would only go stale.
package recommend

import (
	"sort"

	"bookbites/internal/domains/catalog"
	"bookbites/internal/domains/identity"
)

const (
	categoryWeight = 5
	authorWeight   = 3
	popularWeight  = 1

	fallbackLimit = 5
	resultLimit   = 6
)

// Books scores every unsaved book against the categories and authors of
// the user's saved books. With nothing saved yet it falls back to popular,
// non-featured titles in catalog order.
func Books(user *identity.User, books []catalog.Book, savedBookIDs []string) []catalog.Book {
	if user == nil {
		return nil
	}

	saved := make(map[string]bool, len(savedBookIDs))
	for _, id := range savedBookIDs {
		saved[id] = true
	}

	categories := make(map[string]bool)
	authors := make(map[string]bool)
	anySaved := false
	for _, b := range books {
		if saved[b.ID] {
			anySaved = true
			categories[b.Category] = true
			authors[b.Author] = true
		}
	}

	if !anySaved {
		var out []catalog.Book
		for _, b := range books {
			if b.IsPopular && !b.IsFeatured {
				out = append(out, b)
				if len(out) == fallbackLimit {
					break
				}
			}
		}
		return out
	}

	type scored struct {
		book  catalog.Book
		score int
	}
	var ranked []scored
	for _, b := range books {
		if saved[b.ID] {
			continue
		}
		score := 0
		if categories[b.Category] {
			score += categoryWeight
		}
		if authors[b.Author] {
			score += authorWeight
		}
		if b.IsPopular {
			score += popularWeight
		}
		if score > 0 {
			ranked = append(ranked, scored{book: b, score: score})
		}
	}

	// Stable: ties keep catalog order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	out := make([]catalog.Book, 0, resultLimit)
	for _, r := range ranked {
		out = append(out, r.book)
		if len(out) == resultLimit {
			break
		}
	}
	return out
}
