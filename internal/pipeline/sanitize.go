package pipeline

import "github.com/microcosm-cc/bluemonday"

// Sanitizer filters an HTML fragment before composition.
type Sanitizer interface {
	Sanitize(fragment Fragment) Fragment
}

// PolicySanitizer applies a bluemonday policy to fragments.
type PolicySanitizer struct {
	policy *bluemonday.Policy
}

// NewUGCSanitizer returns a sanitizer for user-generated content.
// Heading IDs and chroma's class attributes survive so that links to
// anchors and syntax highlighting keep working.
func NewUGCSanitizer() *PolicySanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6", "li", "sup")
	p.AllowAttrs("class").Globally()
	return &PolicySanitizer{policy: p}
}

// NewPolicySanitizer wraps a caller-supplied policy.
func NewPolicySanitizer(policy *bluemonday.Policy) *PolicySanitizer {
	return &PolicySanitizer{policy: policy}
}

// Sanitize returns the fragment with disallowed elements and attributes removed.
func (s *PolicySanitizer) Sanitize(fragment Fragment) Fragment {
	return Fragment(s.policy.Sanitize(string(fragment)))
}

var _ Sanitizer = (*PolicySanitizer)(nil)
