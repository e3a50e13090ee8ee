package catalog

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookbites/internal/shared"
)

// BuyButtonConfig is the optional external purchase link shown on a book.
type BuyButtonConfig struct {
	Enabled bool   `json:"enabled"`
	Label   string `json:"label"`
	URL     string `json:"url"`
}

// Book is a summarized book in the main catalog.
type Book struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Author          string             `json:"author"`
	Category        string             `json:"category"`
	CoverImageURL   string             `json:"cover_image_url"`
	SummaryText     string             `json:"summary_text"`
	SummaryAudioURL string             `json:"summary_audio_url,omitempty"`
	About           string             `json:"about"`
	Duration        int                `json:"duration"` // minutes
	CreatedAt       time.Time          `json:"created_at"`
	Published       bool               `json:"published"`
	IsPopular       bool               `json:"is_popular"`
	IsFeatured      bool               `json:"is_featured"`
	IsBookOfTheWeek bool               `json:"is_book_of_the_week"`
	AccessLevel     shared.AccessLevel `json:"access_level"`
	BuyButton       *BuyButtonConfig   `json:"buy_button,omitempty"`
}

func (b Book) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Title, validation.Required.Error("title is required")),
		validation.Field(&b.Author, validation.Required.Error("author is required")),
		validation.Field(&b.AccessLevel, validation.By(validAccessLevel)),
		validation.Field(&b.Duration, validation.Min(0)),
	)
}

// Masterclass is a video lesson in its own catalog.
type Masterclass struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Instructor   string             `json:"instructor"`
	Category     string             `json:"category"`
	ThumbnailURL string             `json:"thumbnail_url"`
	VideoURL     string             `json:"video_url"`
	Description  string             `json:"description"`
	Duration     int                `json:"duration"` // minutes
	AccessLevel  shared.AccessLevel `json:"access_level"`
}

func (m Masterclass) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Title, validation.Required.Error("title is required")),
		validation.Field(&m.Instructor, validation.Required.Error("instructor is required")),
		validation.Field(&m.AccessLevel, validation.By(validAccessLevel)),
		validation.Field(&m.Duration, validation.Min(0)),
	)
}

// StoreBook is a physical book sold through the secondary marketplace.
// Price is display text; the cart parses it best-effort for subtotals.
type StoreBook struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	CoverURL string `json:"cover_url"`
	Price    string `json:"price"`
	About    string `json:"about"`
	BuyLink  string `json:"buy_link"`
	Category string `json:"category"`
}

func (s StoreBook) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Title, validation.Required.Error("title is required")),
		validation.Field(&s.Price, validation.Required.Error("price is required")),
	)
}

func validAccessLevel(value interface{}) error {
	level, _ := value.(shared.AccessLevel)
	if !level.Valid() {
		return ErrInvalidAccessLevel
	}
	return nil
}
