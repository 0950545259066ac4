// Package position defines lineup categories, FLEX eligibility and roster templates.
package position

import (
	"strconv"
	"strings"
)

// Category is a lineup position tag.
type Category string

// Known categories. FLEX is a slot, never a player's own tag.
const (
	QB   Category = "QB"
	RB   Category = "RB"
	WR   Category = "WR"
	TE   Category = "TE"
	K    Category = "K"
	DEF  Category = "DEF"
	FLEX Category = "FLEX"
)

// FillOrder is the order in which lineup slots are filled.
var FillOrder = []Category{QB, RB, WR, TE, FLEX, K, DEF} //nolint:gochecknoglobals // fixed fill order

// Parse maps a raw tag to a known category.
func Parse(tag string) (Category, bool) {
	switch c := Category(strings.ToUpper(strings.TrimSpace(tag))); c {
	case QB, RB, WR, TE, K, DEF, FLEX:
		return c, true
	default:
		return "", false
	}
}

// Set is an ordered set of player categories.
type Set []Category

// NewSet parses raw tags, dropping unknown tags, FLEX and duplicates.
func NewSet(tags ...string) Set {
	s := make(Set, 0, len(tags))
	for _, t := range tags {
		c, ok := Parse(t)
		if !ok || c == FLEX || s.Has(c) {
			continue
		}
		s = append(s, c)
	}
	return s
}

// Has reports whether c is in the set.
func (s Set) Has(c Category) bool {
	for _, x := range s {
		if x == c {
			return true
		}
	}
	return false
}

// FlexEligible reports whether the set intersects {RB, WR, TE}.
func (s Set) FlexEligible() bool {
	return s.Has(RB) || s.Has(WR) || s.Has(TE)
}

// Eligible reports whether a player with this set may fill a slot of category c.
func (s Set) Eligible(c Category) bool {
	if c == FLEX {
		return s.FlexEligible()
	}
	return s.Has(c)
}

// Eligibility maps player ids to their categories.
type Eligibility map[string]Set

// Of returns the categories of a player, nil when unknown.
func (e Eligibility) Of(playerID string) Set { return e[playerID] }

// Template is a roster template reduced to per-category slot counts.
// The multiplicities are fixed for a league-season.
type Template struct {
	counts map[Category]int
	size   int
}

// DefaultSlots is the standard template used when a league does not publish one.
var DefaultSlots = []string{"QB", "RB", "RB", "WR", "WR", "TE", "FLEX", "FLEX", "K", "DEF"} //nolint:gochecknoglobals // default template

// NewTemplate builds a template from raw slot tags. Bench and unsupported slots
// (BN, SUPER_FLEX, IDP, ...) are ignored.
func NewTemplate(slots []string) Template {
	t := Template{counts: make(map[Category]int)}
	for _, raw := range slots {
		c, ok := Parse(raw)
		if !ok {
			continue
		}
		t.counts[c]++
		t.size++
	}
	return t
}

// Count returns how many slots of category c the template holds.
func (t Template) Count(c Category) int { return t.counts[c] }

// Size returns the total number of supported slots.
func (t Template) Size() int { return t.size }

// Labels returns slot labels in fill order: a category with a single slot is
// labelled by its name, repeated categories are numbered (RB1, RB2).
func (t Template) Labels() []string {
	labels := make([]string, 0, t.size)
	for _, c := range FillOrder {
		n := t.counts[c]
		for i := 1; i <= n; i++ {
			labels = append(labels, SlotLabel(c, i, n))
		}
	}
	return labels
}

// SlotLabel names the i-th (1-based) of n slots of category c.
func SlotLabel(c Category, i, n int) string {
	if n <= 1 {
		return string(c)
	}
	return string(c) + strconv.Itoa(i)
}
