package ratelimit

import (
	"strings"
)

var unlimited = Rule{}

// Match returns the rule for a request. Exact paths win over prefixes; GET /health is
// never limited. It returns nil when no rule applies.
func Match(path, method string, rules []Rule) *Rule {
	if path == "/health" && method == "GET" {
		return &unlimited
	}

	for i := range rules {
		if rules[i].Method == method && rules[i].Path == path {
			return &rules[i]
		}
	}

	for i := range rules {
		r := &rules[i]
		if r.Method == method && strings.HasSuffix(r.Path, "/") && strings.HasPrefix(path, r.Path) {
			return r
		}
	}
	return nil
}
