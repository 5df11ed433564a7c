package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitmate/internal/models"
)

// Round2 rounds to two decimal places using banker's rounding.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}

// EvenShare divides amount evenly among n participants at full precision.
// With no participants the share is zero.
func EvenShare(amount decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	return amount.Div(decimal.NewFromInt(int64(n)))
}

// friendIndex maps friend IDs to friends for reference resolution.
type friendIndex map[int64]*models.Friend

func indexFriends(friends []*models.Friend) friendIndex {
	idx := make(friendIndex, len(friends))
	for _, f := range friends {
		if f == nil {
			continue
		}
		idx[f.ID] = f
	}
	return idx
}

// participants resolves an expense's participant IDs against known friends.
// Unknown IDs are dropped and duplicates collapse, so the result's length is
// the divisor for the expense's share.
func (idx friendIndex) participants(ids []int64) []*models.Friend {
	resolved := make([]*models.Friend, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if f, ok := idx[id]; ok {
			resolved = append(resolved, f)
		}
	}
	return resolved
}

// DefaultDistinguishedID is the first ID the store assigns. IDs are never
// reused, so it names the first-created friend for as long as that friend exists.
const DefaultDistinguishedID int64 = 1

// ResolveDistinguished returns the ID of the friend treated as "me", or 0 when
// that friend does not exist. A configured ID of 0 means DefaultDistinguishedID.
// Identity never moves to another friend once the distinguished one is gone.
func ResolveDistinguished(friends []*models.Friend, configured int64) int64 {
	if configured <= 0 {
		configured = DefaultDistinguishedID
	}
	for _, f := range friends {
		if f != nil && f.ID == configured {
			return configured
		}
	}
	return 0
}
