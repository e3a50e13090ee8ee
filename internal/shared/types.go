package shared

// AccessLevel gates a piece of content.
type AccessLevel string

const (
	AccessFree    AccessLevel = "free"
	AccessPremium AccessLevel = "premium"
	AccessGold    AccessLevel = "gold"
)

// Valid reports whether the level is one of the known values.
func (l AccessLevel) Valid() bool {
	switch l {
	case AccessFree, AccessPremium, AccessGold:
		return true
	}
	return false
}

// Tier is a user's subscription tier. The set of tiers is fixed.
type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
	TierGold    Tier = "gold"
)

// Tiers lists every tier in plan order.
func Tiers() []Tier {
	return []Tier{TierFree, TierPremium, TierGold}
}

// Covers reports whether a subscriber at tier t may open content at level l.
// Expiry handling is the caller's concern; this is the raw tier lattice.
func (t Tier) Covers(l AccessLevel) bool {
	switch l {
	case AccessFree:
		return true
	case AccessPremium:
		return t == TierPremium || t == TierGold
	case AccessGold:
		return t == TierGold
	}
	return false
}
