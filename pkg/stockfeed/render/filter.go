package render

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Filter matches a ticker symbol.
type Filter interface {
	Match(ticker string) bool
}

// ParseFilter builds a filter from an expression:
// - Comma-separated exact tickers: "AAPL,GOOG"
// - Glob: "A*"
// - Regex: "/^A.{2}$/"
// - Anything else: case-insensitive substring match.
func ParseFilter(expr string) (Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Always(true), nil
	}
	if strings.HasPrefix(expr, "/") && strings.HasSuffix(expr, "/") && len(expr) > 2 {
		re, err := regexp.Compile(expr[1 : len(expr)-1])
		if err != nil {
			return nil, err
		}
		return Regex{re: re}, nil
	}
	if strings.Contains(expr, ",") {
		parts := strings.Split(expr, ",")
		set := map[string]struct{}{}
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			set[strings.ToUpper(p)] = struct{}{}
		}
		return ExactSet{set: set}, nil
	}
	if strings.ContainsAny(expr, "*?") {
		return Glob{pattern: expr}, nil
	}
	return SubstrCI{needle: expr}, nil
}

// Implementations

type Always bool

func (a Always) Match(string) bool { return bool(a) }

type ExactSet struct{ set map[string]struct{} }

func (e ExactSet) Match(ticker string) bool {
	_, ok := e.set[strings.ToUpper(ticker)]
	return ok
}

type Glob struct{ pattern string }

func (g Glob) Match(ticker string) bool {
	ok, _ := filepath.Match(g.pattern, ticker)
	return ok
}

func (g Glob) String() string { return fmt.Sprintf("glob:%s", g.pattern) }

type Regex struct{ re *regexp.Regexp }

func (r Regex) Match(ticker string) bool { return r.re.MatchString(ticker) }

// SubstrCI matches if ticker contains needle, case-insensitively.
type SubstrCI struct{ needle string }

func (s SubstrCI) Match(ticker string) bool {
	if s.needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(ticker), strings.ToLower(s.needle))
}

func (s SubstrCI) String() string { return fmt.Sprintf("substr-ci:%s", s.needle) }
