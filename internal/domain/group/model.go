package group

import (
	"sort"
	"strings"
)

// Group is one round-robin pool inside a division.
type Group struct {
	ID         string
	DivisionID string
	Code       string
}

// SortByCode orders groups A, B, C... in place.
func SortByCode(items []Group) {
	sort.SliceStable(items, func(i, j int) bool {
		left := strings.ToUpper(items[i].Code)
		right := strings.ToUpper(items[j].Code)
		if left != right {
			return left < right
		}
		return items[i].ID < items[j].ID
	})
}

func IDs(items []Group) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}
