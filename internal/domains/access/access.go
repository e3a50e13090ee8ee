// Package access is the content gating rule. One pure function, called on
// every render, safe to call arbitrarily often.
package access

import (
	"time"

	"bookbites/internal/domains/identity"
	"bookbites/internal/shared"
)

// CanAccess decides whether content at level is open to the user.
//
//   - An authenticated administrator bypasses all gating.
//   - No user: only free content.
//   - A tier expiry in the past downgrades the user to free for this check
//     only; the stored tier is never mutated here. Expiry is evaluated
//     lazily at access time, not swept.
//   - Otherwise the tier lattice applies: free < premium < gold.
func CanAccess(level shared.AccessLevel, user *identity.User, adminOverride bool, now time.Time) bool {
	if adminOverride {
		return true
	}
	if user == nil {
		return level == shared.AccessFree
	}
	if user.TierExpiry != nil && user.TierExpiry.Before(now) {
		return level == shared.AccessFree
	}
	return user.Tier.Covers(level)
}
