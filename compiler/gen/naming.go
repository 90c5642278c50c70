package gen

import (
	"go/token"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

var (
	rules    = ruleset()
	acronyms = make(map[string]struct{})
)

func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	// Add common initialisms from golint and more.
	for _, w := range []string{
		"ACL", "API", "ASCII", "AWS", "CPU", "CSS", "DNS", "EOF", "GB", "GUID",
		"HTML", "HTTP", "HTTPS", "ID", "IP", "JSON", "KB", "LHS", "MAC", "MB",
		"QPS", "RAM", "RHS", "RPC", "SLA", "SMTP", "SQL", "SSH", "SSO", "TCP",
		"TLS", "TTL", "UDP", "UI", "UID", "URI", "URL", "UTF8", "UUID", "VM",
		"XML", "XMPP", "XSRF", "XSS",
	} {
		acronyms[w] = struct{}{}
		rules.AddAcronym(w)
	}
	return rules
}

// AddAcronym adds an initialism to the naming ruleset, affecting how
// pascal renders words that match it.
func AddAcronym(word string) {
	acronyms[word] = struct{}{}
	rules.AddAcronym(word)
}

// companionName returns the name of the companion type for the given
// persistable type name.
func companionName(name string) string {
	return "Q" + name
}

// nestedCompanionName returns the companion name for a nested
// persistable type, scoped under its owner's companion. Nesting
// accumulates, so a type two levels deep yields QOwner_Outer_Inner.
func nestedCompanionName(ownerCompanion, inner string) string {
	return ownerCompanion + "_" + pascal(inner)
}

// companionFile returns the file name a companion is written to.
func companionFile(name string) string {
	return "q" + strings.ToLower(name) + ".go"
}

// decapitalize lowers the first rune of a member name for use in path
// strings. Names starting with two upper-case letters are kept as-is,
// so ID stays ID while Name becomes name.
func decapitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	if len(r) > 1 && unicode.IsUpper(r[0]) && unicode.IsUpper(r[1]) {
		return s
	}
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// snake converts the given struct or member name into snake_case.
func snake(s string) string {
	var (
		j int
		b strings.Builder
	)
	for i := 0; i < len(s); i++ {
		r := rune(s[i])
		// Put '_' if it is not a start or end of a word, current letter is
		// uppercase, and previous letter is lowercase (cases like: "UserInfo"),
		// or next letter is also a lowercase and previous letter is not "_".
		if i > 0 && i < len(s)-1 && unicode.IsUpper(r) {
			if unicode.IsLower(rune(s[i-1])) ||
				j != i-1 && unicode.IsLower(rune(s[i+1])) && unicode.IsLetter(rune(s[i-1])) {
				j = i
				b.WriteString("_")
			}
		}
		b.WriteString(strings.ToLower(string(r)))
	}
	return b.String()
}

// pascal converts the given name into a PascalCase, honoring the
// acronym ruleset.
func pascal(s string) string {
	words := strings.FieldsFunc(s, isSeparator)
	for i, w := range words {
		upper := strings.ToUpper(w)
		if _, ok := acronyms[upper]; ok {
			words[i] = upper
			continue
		}
		words[i] = rules.Capitalize(w)
	}
	return strings.Join(words, "")
}

// camel converts the given name into a camelCase.
func camel(s string) string {
	words := strings.FieldsFunc(s, isSeparator)
	if len(words) == 1 {
		return strings.ToLower(words[0][:1]) + words[0][1:]
	}
	return strings.ToLower(words[0]) + pascal(strings.Join(words[1:], "_"))
}

// backingName returns the unexported field name that backs a lazily
// built member, with a trailing underscore when the camel form of the
// member collides with a Go keyword.
func backingName(member string) string {
	name := camel(snake(member))
	if token.IsKeyword(name) {
		name += "_"
	}
	return name
}

// receiver returns the method receiver identifier for the given type
// name, built from the first letter of each word. An upper-case run
// counts as one word ending where the next word begins, so QUser
// yields qu and HTTPClient yields hc.
func receiver(s string) string {
	s = strings.Trim(s, "[]*&0123456789")
	rs := []rune(s)
	var b strings.Builder
	for i, r := range rs {
		if !unicode.IsLetter(r) {
			continue
		}
		start := i == 0 ||
			isSeparator(rs[i-1]) ||
			unicode.IsUpper(r) && unicode.IsLower(rs[i-1]) ||
			unicode.IsUpper(r) && i+1 < len(rs) && unicode.IsUpper(rs[i-1]) && unicode.IsLower(rs[i+1])
		if start {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	if b.Len() == 0 {
		return "_q"
	}
	return b.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}
