package catalog

import (
	"time"

	"bookbites/internal/shared"
)

// Seed datasets back every catalog when the store holds nothing yet.

func SeedBooks() []Book {
	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	return []Book{
		{
			ID:          "b1",
			Title:       "Atomic Habits",
			Author:      "James Clear",
			Category:    "Self-Development",
			SummaryText: "Small habits compound. Systems beat goals, identity drives behavior, and environment design makes good habits the path of least resistance.",
			About:       "A practical framework for building good habits and breaking bad ones.",
			Duration:    15,
			CreatedAt:   base,
			Published:   true,
			IsPopular:   true,
			AccessLevel: shared.AccessFree,
		},
		{
			ID:          "b2",
			Title:       "Deep Work",
			Author:      "Cal Newport",
			Category:    "Productivity",
			SummaryText: "Focused work without distraction produces rare and valuable output. Schedule depth, embrace boredom, quit shallow tools.",
			About:       "Rules for focused success in a distracted world.",
			Duration:    18,
			CreatedAt:   base.AddDate(0, 0, 3),
			Published:   true,
			IsPopular:   true,
			IsFeatured:  true,
			AccessLevel: shared.AccessPremium,
		},
		{
			ID:              "b3",
			Title:           "The Psychology of Money",
			Author:          "Morgan Housel",
			Category:        "Finance",
			SummaryText:     "Doing well with money has more to do with behavior than knowledge. Compounding, margin of safety, and knowing when enough is enough.",
			About:           "Timeless lessons on wealth, greed, and happiness.",
			Duration:        16,
			CreatedAt:       base.AddDate(0, 0, 7),
			Published:       true,
			IsBookOfTheWeek: true,
			AccessLevel:     shared.AccessPremium,
		},
		{
			ID:          "b4",
			Title:       "Thinking, Fast and Slow",
			Author:      "Daniel Kahneman",
			Category:    "Psychology",
			SummaryText: "Two systems drive the way we think: fast intuition and slow deliberation. Knowing their biases improves judgment.",
			About:       "A tour of the mind's machinery by a Nobel laureate.",
			Duration:    22,
			CreatedAt:   base.AddDate(0, 0, 10),
			Published:   true,
			AccessLevel: shared.AccessGold,
		},
	}
}

func SeedMasterclasses() []Masterclass {
	return []Masterclass{
		{
			ID:          "mc1",
			Title:       "Building a Reading Habit",
			Instructor:  "Dilshod Rahimov",
			Category:    "Self-Development",
			VideoURL:    "https://cdn.bookbites.app/mc/reading-habit.mp4",
			Description: "A four-week plan for turning reading into a daily routine.",
			Duration:    45,
			AccessLevel: shared.AccessFree,
		},
		{
			ID:          "mc2",
			Title:       "Personal Finance Foundations",
			Instructor:  "Nodira Karimova",
			Category:    "Finance",
			VideoURL:    "https://cdn.bookbites.app/mc/finance-foundations.mp4",
			Description: "Budgeting, saving, and the first steps into investing.",
			Duration:    60,
			AccessLevel: shared.AccessGold,
		},
	}
}

func SeedStoreBooks() []StoreBook {
	return []StoreBook{
		{
			ID:       "sb1",
			Title:    "Atomic Habits (Hardcover)",
			Author:   "James Clear",
			Price:    "120 000 UZS",
			About:    "Hardcover edition, English.",
			BuyLink:  "https://t.me/bookbites_store",
			Category: "Self-Development",
		},
		{
			ID:       "sb2",
			Title:    "Deep Work (Paperback)",
			Author:   "Cal Newport",
			Price:    "95 000 UZS",
			About:    "Paperback edition, English.",
			BuyLink:  "https://t.me/bookbites_store",
			Category: "Productivity",
		},
	}
}

// DeriveCategories builds a category list from the labels present in books,
// preserving first-seen order.
func DeriveCategories[T any](items []T, label func(T) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range items {
		c := label(it)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
