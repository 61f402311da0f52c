package imperative

import (
	"regexp"
	"strings"
)

// sizeSuffix matches a trailing caliber or rack size: "/20", "-15", " 4".
var sizeSuffix = regexp.MustCompile(`[\s/-]*\d+$`)

// lightAC matches the light autocannon spellings "l-ac" and "lac".
var lightAC = regexp.MustCompile(`^l-?ac\b`)

// StripSize removes a trailing size suffix: "ac/20" → "ac", "lrm-15" → "lrm".
func StripSize(binType string) string {
	return strings.TrimSpace(sizeSuffix.ReplaceAllString(binType, ""))
}

// Canonical rewrites light autocannon spellings to plain "ac".
func Canonical(binType string) string {
	return lightAC.ReplaceAllString(binType, "ac")
}

// candidates lists, in lookup order, the keys a bin type may be stored under:
// literal, size-stripped, canonical, canonical size-stripped. Duplicates are dropped.
func candidates(binType string) []string {
	lit := strings.ToLower(strings.TrimSpace(binType))
	canon := Canonical(lit)
	out := make([]string, 0, 4)
	for _, c := range []string{lit, StripSize(lit), canon, StripSize(canon)} {
		if c == "" {
			continue
		}
		dup := false
		for _, o := range out {
			if o == c {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, c)
		}
	}
	return out
}

// Split breaks an imperative string into its tokens, dropping empty ones.
func Split(imperative string) []string {
	var out []string
	for _, tok := range strings.Split(imperative, ":") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// Join is the inverse of Split.
func Join(tokens []string) string {
	return strings.Join(tokens, ":")
}
