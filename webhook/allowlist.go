package webhook

import (
	"fmt"
	"strings"
)

/* AllowList is the set of event codes that get recorded and looked up in the ERP
 * Everything else is acknowledged as ignored. Immutable after construction
 */
type AllowList struct {
	codes map[string]struct{}
	order []string
}

// ParseAllowList builds an AllowList from a comma separated list such as "6,21,3"
func ParseAllowList(s string) (AllowList, error) {
	al := AllowList{codes: make(map[string]struct{})}
	for _, part := range strings.Split(s, ",") {
		code := strings.TrimSpace(part)
		if code == "" {
			continue
		}
		if _, dup := al.codes[code]; dup {
			continue
		}
		al.codes[code] = struct{}{}
		al.order = append(al.order, code)
	}
	if len(al.order) == 0 {
		return AllowList{}, fmt.Errorf("allow-list cannot be empty: %q", s)
	}
	return al, nil
}

// Accepts reports whether the event code is in the allow-list (string comparison)
func (a AllowList) Accepts(code string) bool {
	_, ok := a.codes[code]
	return ok
}

// Codes returns the codes in configuration order
func (a AllowList) Codes() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}
