package settings

import (
	"errors"

	"github.com/google/uuid"

	"bookbites/internal/shared"
	"bookbites/internal/store"
)

var (
	ErrUnknownTier  = errors.New("unknown subscription tier")
	ErrPlanNotFound = errors.New("subscription plan not found")
)

// Service owns branding, contact info, subscription plans, FAQs and the
// device-level preferences (language, theme, notifications).
type Service struct {
	appConfig     AppConfig
	contact       ContactInfo
	plans         []SubscriptionPlan
	faqs          []FAQItem
	language      Language
	theme         Theme
	notifications bool

	persist store.Writer
}

type State struct {
	AppConfig     AppConfig
	Contact       ContactInfo
	Plans         []SubscriptionPlan
	FAQs          []FAQItem
	Language      Language
	Theme         Theme
	Notifications bool
}

func NewService(st State, persist store.Writer) *Service {
	if len(st.Plans) == 0 {
		st.Plans = DefaultPlans()
	}
	return &Service{
		appConfig:     st.AppConfig,
		contact:       st.Contact,
		plans:         st.Plans,
		faqs:          st.FAQs,
		language:      st.Language,
		theme:         st.Theme,
		notifications: st.Notifications,
		persist:       persist,
	}
}

func (s *Service) AppConfig() AppConfig  { return s.appConfig }
func (s *Service) Contact() ContactInfo  { return s.contact }
func (s *Service) Language() Language    { return s.language }
func (s *Service) Theme() Theme          { return s.theme }
func (s *Service) NotificationsOn() bool { return s.notifications }

func (s *Service) UpdateAppConfig(cfg AppConfig) {
	s.appConfig = cfg
	s.persist(store.KeyConfig, s.appConfig)
}

func (s *Service) UpdateContact(info ContactInfo) {
	s.contact = info
	s.persist(store.KeyContact, s.contact)
}

func (s *Service) SetLanguage(lang Language) {
	s.language = ParseLanguage(string(lang))
	s.persist(store.KeyLanguage, s.language)
}

func (s *Service) ToggleTheme() Theme {
	if s.theme == ThemeLight {
		s.theme = ThemeDark
	} else {
		s.theme = ThemeLight
	}
	s.persist(store.KeyTheme, s.theme)
	return s.theme
}

func (s *Service) ToggleNotifications() bool {
	s.notifications = !s.notifications
	s.persist(store.KeyNotifications, s.notifications)
	return s.notifications
}

// ---- subscription plans ----
//
// The tier set is fixed; plans are only ever edited in place.

func (s *Service) Plans() []SubscriptionPlan {
	out := make([]SubscriptionPlan, len(s.plans))
	for i, p := range s.plans {
		features := make([]string, len(p.Features))
		copy(features, p.Features)
		p.Features = features
		out[i] = p
	}
	return out
}

// SetPlans replaces plan contents wholesale (admin plan editor save).
// Plans for unknown tiers are rejected.
func (s *Service) SetPlans(plans []SubscriptionPlan) error {
	for _, p := range plans {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	next := make([]SubscriptionPlan, len(plans))
	copy(next, plans)
	s.plans = next
	s.persist(store.KeyPlans, s.plans)
	return nil
}

// UpdatePlan replaces a single plan, matched by tier id.
func (s *Service) UpdatePlan(plan SubscriptionPlan) error {
	if err := plan.Validate(); err != nil {
		return err
	}
	next := s.Plans()
	for i, p := range next {
		if p.ID == plan.ID {
			next[i] = plan
			s.plans = next
			s.persist(store.KeyPlans, s.plans)
			return nil
		}
	}
	return ErrPlanNotFound
}

// EditPlanFeature rewrites one feature line. An out-of-range index is a
// silent no-op, like every other stale-reference mutation.
func (s *Service) EditPlanFeature(tier shared.Tier, index int, text string) {
	next := s.Plans()
	for i, p := range next {
		if p.ID != tier {
			continue
		}
		if index < 0 || index >= len(p.Features) {
			return
		}
		next[i].Features[index] = text
		s.plans = next
		s.persist(store.KeyPlans, s.plans)
		return
	}
}

func (s *Service) AppendPlanFeature(tier shared.Tier, text string) {
	next := s.Plans()
	for i, p := range next {
		if p.ID == tier {
			next[i].Features = append(next[i].Features, text)
			s.plans = next
			s.persist(store.KeyPlans, s.plans)
			return
		}
	}
}

func (s *Service) DeletePlanFeature(tier shared.Tier, index int) {
	next := s.Plans()
	for i, p := range next {
		if p.ID != tier {
			continue
		}
		if index < 0 || index >= len(p.Features) {
			return
		}
		next[i].Features = append(p.Features[:index], p.Features[index+1:]...)
		s.plans = next
		s.persist(store.KeyPlans, s.plans)
		return
	}
}

// ---- FAQs ----

func (s *Service) FAQs() []FAQItem {
	out := make([]FAQItem, len(s.faqs))
	copy(out, s.faqs)
	return out
}

func (s *Service) AddFAQ(question, answer string) FAQItem {
	item := FAQItem{ID: uuid.NewString(), Question: question, Answer: answer}
	s.faqs = append(s.FAQs(), item)
	s.persist(store.KeyFAQs, s.faqs)
	return item
}

func (s *Service) DeleteFAQ(id string) {
	next := s.faqs[:0:0]
	for _, f := range s.faqs {
		if f.ID != id {
			next = append(next, f)
		}
	}
	s.faqs = next
	s.persist(store.KeyFAQs, s.faqs)
}
