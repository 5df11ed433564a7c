package models

import (
	"strconv"
	"strings"
)

// ParseParticipantIDs parses the comma-delimited participant list used by the
// legacy schema ("1,2, 3"). Entries that are not plain decimal digits are
// discarded rather than reported. Duplicates are kept once, in first-seen order.
func ParseParticipantIDs(s string) []int64 {
	ids, _ := SplitParticipantIDs(s)
	return ids
}

// SplitParticipantIDs is ParseParticipantIDs that also reports how many
// non-empty entries were discarded as malformed. Repeated IDs and empty
// entries are not counted.
func SplitParticipantIDs(s string) (ids []int64, malformed int) {
	seen := make(map[int64]bool)
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		if !isDigits(field) {
			malformed++
			continue
		}
		id, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			malformed++
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, malformed
}

// FormatParticipantIDs is the inverse of ParseParticipantIDs.
func FormatParticipantIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
