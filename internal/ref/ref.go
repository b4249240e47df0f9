package ref

import (
	"fmt"
	"strings"

	"github.com/vk/chromabundle/internal/schema"
)

// Ref is a normalized schema reference: a kind plus the slug identifying the
// document within that kind. RawURI preserves the input string for display.
type Ref struct {
	Kind       schema.Kind
	Identifier string
	RawURI     string
}

// UnresolvableError reports a reference string that cannot be parsed into a
// (kind, identifier) pair.
type UnresolvableError struct {
	Raw    string
	Reason string
}

func (e *UnresolvableError) Error() string {
	return fmt.Sprintf("unresolvable schema reference %q: %s", e.Raw, e.Reason)
}

// Key returns the canonical "kind:identifier" string used to deduplicate
// references across the resolver and bundler.
func (r Ref) Key() string {
	return string(r.Kind) + ":" + r.Identifier
}

// Path returns the relative "kind/identifier" form of the reference.
func (r Ref) Path() string {
	return string(r.Kind) + "/" + r.Identifier
}

// QualifiedURI returns the fully-qualified registry URI for the reference
// under the given base URL.
func (r Ref) QualifiedURI(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/" + r.Path()
}

func (r Ref) String() string {
	return r.Key()
}

// Parse normalizes a schema reference string. Accepted forms:
//
//   - a URI or path containing a category segment ("type" or "function")
//     followed by a slug segment, e.g. "https://host/schemas/type/rgb-color"
//     or "function/invert"
//   - a bare slug, which defaults to kind "type" (the category of a bare
//     slug is ambiguous; the default is documented behavior, not inference)
//
// Empty strings, the "$self" sentinel, and paths without a recognizable
// category segment fail with an UnresolvableError.
func Parse(raw string) (Ref, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Ref{}, &UnresolvableError{Raw: raw, Reason: "empty reference"}
	}
	if trimmed == schema.SelfRef {
		// $self denotes the document being defined. It is a caller bug to
		// resolve it, so refuse rather than guess.
		return Ref{}, &UnresolvableError{Raw: raw, Reason: "$self is not a resolvable reference"}
	}

	if !strings.Contains(trimmed, "/") {
		if !validSlug(trimmed) {
			return Ref{}, &UnresolvableError{Raw: raw, Reason: "identifier contains invalid characters"}
		}
		return Ref{Kind: schema.KindType, Identifier: trimmed, RawURI: raw}, nil
	}

	segments := strings.Split(trimmed, "/")
	for i, seg := range segments {
		kind := schema.Kind(seg)
		if !kind.Valid() {
			continue
		}
		if i+1 >= len(segments) {
			return Ref{}, &UnresolvableError{Raw: raw, Reason: "category segment has no identifier after it"}
		}
		slug := segments[i+1]
		if !validSlug(slug) {
			return Ref{}, &UnresolvableError{Raw: raw, Reason: fmt.Sprintf("invalid identifier %q", slug)}
		}
		return Ref{Kind: kind, Identifier: slug, RawURI: raw}, nil
	}
	return Ref{}, &UnresolvableError{Raw: raw, Reason: "no type or function category segment found"}
}

// Qualified reports whether the raw reference already carries a scheme, in
// which case identifier rewriting must leave it alone.
func Qualified(raw string) bool {
	return strings.Contains(raw, "://")
}

func validSlug(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return false
		}
	}
	return true
}
