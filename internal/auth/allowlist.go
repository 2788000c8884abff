package auth

import (
	"sort"
	"strings"
)

// AllowList is the fixed set of identifiers exempt from credential verification
// and from lockout. It is built once from configuration and shared by the
// bypass provider and the lockout policy.
type AllowList struct {
	ids map[string]struct{}
}

// NewAllowList builds an AllowList. Blank entries are ignored; matching is exact.
func NewAllowList(identifiers ...string) AllowList {
	ids := make(map[string]struct{}, len(identifiers))
	for _, id := range identifiers {
		if id = strings.TrimSpace(id); id != "" {
			ids[id] = struct{}{}
		}
	}
	return AllowList{ids: ids}
}

// Contains reports whether identifier is exempt.
func (a AllowList) Contains(identifier string) bool {
	_, ok := a.ids[identifier]
	return ok
}

// Len returns the number of exempt identifiers.
func (a AllowList) Len() int {
	return len(a.ids)
}

// Identifiers returns the exempt identifiers in sorted order.
func (a AllowList) Identifiers() []string {
	out := make([]string, 0, len(a.ids))
	for id := range a.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
