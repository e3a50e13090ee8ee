package settings

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookbites/internal/shared"
)

// Language is the closed set of supported UI languages.
type Language string

const (
	LanguageEN Language = "en"
	LanguageRU Language = "ru"
	LanguageUZ Language = "uz"
)

// DefaultLanguage is what a fresh install and any unrecognized stored
// value resolve to.
const DefaultLanguage = LanguageUZ

// ParseLanguage validates a stored value against the closed enum.
func ParseLanguage(v string) Language {
	switch Language(v) {
	case LanguageEN, LanguageRU, LanguageUZ:
		return Language(v)
	}
	return DefaultLanguage
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(v string) Theme {
	if Theme(v) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// AppConfig is admin-editable branding. OnlyMeMode locks the app down to
// administrators.
type AppConfig struct {
	AppName    string `json:"app_name"`
	AppSlogan  string `json:"app_slogan"`
	AppLogoURL string `json:"app_logo_url"`
	OnlyMeMode bool   `json:"only_me_mode"`
}

func DefaultAppConfig() AppConfig {
	return AppConfig{
		AppName:   "BookBites",
		AppSlogan: "Big ideas in small bites",
	}
}

type ContactInfo struct {
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	Address          string `json:"address"`
	Website          string `json:"website"`
	CheckoutURL      string `json:"checkout_url,omitempty"`
	MapEmbedURL      string `json:"map_embed_url,omitempty"`
	TelegramURL      string `json:"telegram_url,omitempty"`
	InstagramURL     string `json:"instagram_url,omitempty"`
	TelegramAdminURL string `json:"telegram_admin_url,omitempty"`
}

func DefaultContactInfo() ContactInfo {
	return ContactInfo{
		Phone:   "+998 90 000 00 00",
		Email:   "hello@bookbites.app",
		Address: "Tashkent, Uzbekistan",
		Website: "https://bookbites.app",
	}
}

// SubscriptionPlan describes one tier's offer. One plan per tier; the set
// is fixed, only contents are edited.
type SubscriptionPlan struct {
	ID          shared.Tier `json:"id"`
	Name        string      `json:"name"`
	Price       string      `json:"price"`
	Period      string      `json:"period"`
	Features    []string    `json:"features"`
	PaymentLink string      `json:"payment_link"`
	Active      bool        `json:"active"`
}

func (p SubscriptionPlan) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required.Error("plan name is required")),
		validation.Field(&p.ID, validation.By(func(interface{}) error {
			for _, t := range shared.Tiers() {
				if p.ID == t {
					return nil
				}
			}
			return ErrUnknownTier
		})),
	)
}

func DefaultPlans() []SubscriptionPlan {
	return []SubscriptionPlan{
		{
			ID:     shared.TierFree,
			Name:   "Free",
			Price:  "0",
			Period: "",
			Features: []string{
				"Free summaries",
				"One bookshelf",
			},
			Active: true,
		},
		{
			ID:     shared.TierPremium,
			Name:   "Premium",
			Price:  "29 000 UZS",
			Period: "/month",
			Features: []string{
				"All premium summaries",
				"Audio summaries",
				"Unlimited bookshelves",
			},
			PaymentLink: "https://payme.uz/bookbites/premium",
			Active:      true,
		},
		{
			ID:     shared.TierGold,
			Name:   "Gold",
			Price:  "59 000 UZS",
			Period: "/month",
			Features: []string{
				"Everything in Premium",
				"All masterclasses",
				"Early access to new titles",
			},
			PaymentLink: "https://payme.uz/bookbites/gold",
			Active:      true,
		},
	}
}

type FAQItem struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func SeedFAQs() []FAQItem {
	return []FAQItem{
		{
			ID:       "f1",
			Question: "What is BookBites?",
			Answer:   "Short summaries of the best nonfiction books, readable or listenable in about 15 minutes.",
		},
		{
			ID:       "f2",
			Question: "How do I upgrade my plan?",
			Answer:   "Open Subscription, pick a plan and follow the payment link. Access is activated by our team right after payment.",
		},
	}
}
