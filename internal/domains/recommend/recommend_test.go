package recommend

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"bookbites/internal/domains/catalog"
	"bookbites/internal/domains/identity"
)

func book(id, category, author string, popular, featured bool) catalog.Book {
	return catalog.Book{
		ID: id, Title: id, Category: category, Author: author,
		IsPopular: popular, IsFeatured: featured,
	}
}

func TestNoUserReturnsNothing(t *testing.T) {
	books := []catalog.Book{book("b1", "A", "X", true, false)}
	assert.Empty(t, Books(nil, books, nil))
}

func TestNoSavedBooksFallsBackToPopularNotFeatured(t *testing.T) {
	var books []catalog.Book
	for i := 1; i <= 8; i++ {
		books = append(books, book(fmt.Sprintf("p%d", i), "A", "X", true, false))
	}
	books = append(books, book("feat", "A", "X", true, true))

	got := Books(&identity.User{ID: "u"}, books, nil)
	assert.Len(t, got, 5)
	for i, b := range got {
		assert.Equal(t, fmt.Sprintf("p%d", i+1), b.ID, "catalog order preserved")
		assert.False(t, b.IsFeatured)
	}
}

func TestScoringAndRanking(t *testing.T) {
	books := []catalog.Book{
		book("saved1", "A", "X", false, false),
		book("saved2", "B", "Y", false, false),
		book("hit", "A", "X", false, false),      // 5 + 3 = 8
		book("popOnly", "C", "Z", true, false),   // 1
		book("catOnly", "B", "Z", false, false),  // 5
		book("zero", "C", "W", false, false),     // 0, excluded
	}

	got := Books(&identity.User{ID: "u"}, books, []string{"saved1", "saved2"})

	ids := make([]string, len(got))
	for i, b := range got {
		ids[i] = b.ID
	}
	assert.Equal(t, []string{"hit", "catOnly", "popOnly"}, ids)
}

func TestSavedBooksAreExcluded(t *testing.T) {
	books := []catalog.Book{
		book("saved", "A", "X", true, false),
		book("other", "A", "X", false, false),
	}
	got := Books(&identity.User{ID: "u"}, books, []string{"saved"})
	assert.Len(t, got, 1)
	assert.Equal(t, "other", got[0].ID)
}

func TestResultCappedAtSixWithStableTies(t *testing.T) {
	books := []catalog.Book{book("seed", "A", "X", false, false)}
	for i := 1; i <= 9; i++ {
		books = append(books, book(fmt.Sprintf("c%d", i), "A", fmt.Sprintf("other%d", i), false, false))
	}

	got := Books(&identity.User{ID: "u"}, books, []string{"seed"})
	assert.Len(t, got, 6)
	for i, b := range got {
		// All score 5; stable sort keeps catalog order.
		assert.Equal(t, fmt.Sprintf("c%d", i+1), b.ID)
	}
}
