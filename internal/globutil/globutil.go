// Package globutil matches document paths against comma-separated glob
// pattern lists. The dialect is the one formatter overrides use: `*` is a
// run of non-separator characters, `**` any run including separators, `?`
// a single non-separator character, and `.` always a literal dot.
package globutil

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// Patterns is a compiled pattern list. The zero value matches nothing and
// reports Empty.
type Patterns struct {
	raw      string
	compiled []*regexp.Regexp
}

// Compile parses a comma-separated pattern list. Whitespace around each
// entry is trimmed and empty entries are ignored. An empty list compiles
// to an empty Patterns value.
func Compile(list string) (*Patterns, error) {
	p := &Patterns{raw: list}
	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		re, err := translate(entry)
		if err != nil {
			return nil, err
		}
		p.compiled = append(p.compiled, re)
	}
	return p, nil
}

// Empty reports whether the list contained no patterns.
func (p *Patterns) Empty() bool {
	return p == nil || len(p.compiled) == 0
}

// String returns the raw pattern list as supplied to Compile.
func (p *Patterns) String() string {
	if p == nil {
		return ""
	}
	return p.raw
}

// Match reports whether the path matches any pattern in the list.
// Separators are normalized to forward slashes first, and each pattern is
// tried against both the full path and its final element, so "*.json"
// matches "configs/app.json" the way formatter overrides expect.
func (p *Patterns) Match(docPath string) bool {
	if p.Empty() {
		return false
	}
	// filepath.ToSlash is a no-op off Windows, and override patterns
	// must match Windows-style paths on every platform.
	normalized := strings.ReplaceAll(docPath, `\`, "/")
	base := path.Base(normalized)
	for _, re := range p.compiled {
		if re.MatchString(normalized) || (base != normalized && re.MatchString(base)) {
			return true
		}
	}
	return false
}

// translate compiles one glob pattern to an anchored regexp.
func translate(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")
	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case '*':
			if i+1 < len(pattern) && pattern[i+1] == '*' {
				b.WriteString(".*")
				i++
			} else {
				b.WriteString("[^/]*")
			}
		case '?':
			b.WriteString("[^/]")
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return re, nil
}
