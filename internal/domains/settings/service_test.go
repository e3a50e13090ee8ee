package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookbites/internal/shared"
)

func discard(key string, value interface{}) {}

func newTestService() *Service {
	return NewService(State{
		AppConfig: DefaultAppConfig(),
		Contact:   DefaultContactInfo(),
		Language:  DefaultLanguage,
		Theme:     ThemeLight,
	}, discard)
}

func TestParseLanguageFallsBackToDefault(t *testing.T) {
	assert.Equal(t, LanguageEN, ParseLanguage("en"))
	assert.Equal(t, LanguageRU, ParseLanguage("ru"))
	assert.Equal(t, DefaultLanguage, ParseLanguage("fr"))
	assert.Equal(t, DefaultLanguage, ParseLanguage(""))
}

func TestSetLanguageRejectsUnknownValues(t *testing.T) {
	s := newTestService()
	s.SetLanguage(LanguageRU)
	assert.Equal(t, LanguageRU, s.Language())

	s.SetLanguage(Language("de"))
	assert.Equal(t, DefaultLanguage, s.Language())
}

func TestToggleTheme(t *testing.T) {
	s := newTestService()
	assert.Equal(t, ThemeDark, s.ToggleTheme())
	assert.Equal(t, ThemeLight, s.ToggleTheme())
}

func TestToggleNotifications(t *testing.T) {
	s := newTestService()
	assert.True(t, s.ToggleNotifications())
	assert.False(t, s.ToggleNotifications())
}

func TestDefaultPlansCoverEveryTier(t *testing.T) {
	s := newTestService()
	plans := s.Plans()
	require.Len(t, plans, len(shared.Tiers()))
	for i, tier := range shared.Tiers() {
		assert.Equal(t, tier, plans[i].ID)
	}
}

func TestUpdatePlanByTier(t *testing.T) {
	s := newTestService()

	err := s.UpdatePlan(SubscriptionPlan{ID: shared.TierPremium, Name: "Premium+", Price: "35 000 UZS", Active: true})
	require.NoError(t, err)

	var found bool
	for _, p := range s.Plans() {
		if p.ID == shared.TierPremium {
			found = true
			assert.Equal(t, "Premium+", p.Name)
		}
	}
	assert.True(t, found)
}

func TestUpdatePlanUnknownTier(t *testing.T) {
	s := newTestService()
	err := s.UpdatePlan(SubscriptionPlan{ID: shared.Tier("platinum"), Name: "Platinum"})
	assert.ErrorIs(t, err, ErrUnknownTier)
}

func TestUpdatePlanMissingFromSet(t *testing.T) {
	s := NewService(State{Plans: []SubscriptionPlan{{ID: shared.TierFree, Name: "Free"}}}, discard)
	err := s.UpdatePlan(SubscriptionPlan{ID: shared.TierGold, Name: "Gold"})
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestSetPlansValidatesAll(t *testing.T) {
	s := newTestService()
	before := s.Plans()

	err := s.SetPlans([]SubscriptionPlan{
		{ID: shared.TierFree, Name: "Free"},
		{ID: shared.TierPremium, Name: ""},
	})
	assert.Error(t, err)
	assert.Equal(t, before, s.Plans(), "invalid batch leaves plans untouched")
}

func TestPlanFeatureEditing(t *testing.T) {
	s := newTestService()

	s.AppendPlanFeature(shared.TierFree, "Weekly picks")
	s.EditPlanFeature(shared.TierFree, 0, "Free summaries every week")
	s.DeletePlanFeature(shared.TierFree, 1)

	var free SubscriptionPlan
	for _, p := range s.Plans() {
		if p.ID == shared.TierFree {
			free = p
		}
	}
	assert.Equal(t, []string{"Free summaries every week", "Weekly picks"}, free.Features)
}

func TestPlanFeatureOutOfRangeIsNoOp(t *testing.T) {
	s := newTestService()
	var before SubscriptionPlan
	for _, p := range s.Plans() {
		if p.ID == shared.TierGold {
			before = p
		}
	}

	s.EditPlanFeature(shared.TierGold, 99, "ghost")
	s.EditPlanFeature(shared.TierGold, -1, "ghost")
	s.DeletePlanFeature(shared.TierGold, 99)

	for _, p := range s.Plans() {
		if p.ID == shared.TierGold {
			assert.Equal(t, before.Features, p.Features)
		}
	}
}

func TestPlansAccessorReturnsCopies(t *testing.T) {
	s := newTestService()
	got := s.Plans()
	got[0].Features[0] = "mutated"

	assert.NotEqual(t, "mutated", s.Plans()[0].Features[0])
}

func TestFAQLifecycle(t *testing.T) {
	s := newTestService()

	item := s.AddFAQ("Is there a trial?", "The free tier never expires.")
	require.NotEmpty(t, item.ID)
	require.Len(t, s.FAQs(), 1)

	s.DeleteFAQ("missing") // no-op
	require.Len(t, s.FAQs(), 1)

	s.DeleteFAQ(item.ID)
	assert.Empty(t, s.FAQs())
}

func TestUpdateAppConfigAndContact(t *testing.T) {
	s := newTestService()

	s.UpdateAppConfig(AppConfig{AppName: "BookBites Pro", OnlyMeMode: true})
	assert.Equal(t, "BookBites Pro", s.AppConfig().AppName)
	assert.True(t, s.AppConfig().OnlyMeMode)

	s.UpdateContact(ContactInfo{Email: "support@bookbites.app"})
	assert.Equal(t, "support@bookbites.app", s.Contact().Email)
}
