// Package sanitizer strips dangerous markup from user-submitted article HTML.
package sanitizer

import "github.com/microcosm-cc/bluemonday"

// Sanitizer cleans untrusted HTML into markup safe to store and serve.
type Sanitizer interface {
	Clean(html string) string
}

// HTMLSanitizer is a bluemonday-backed Sanitizer. The policy is built once;
// bluemonday policies are safe for concurrent use.
type HTMLSanitizer struct {
	policy *bluemonday.Policy
}

// New returns a sanitizer with a user-generated-content policy: common
// formatting and links survive, scripts and event handlers do not.
func New() *HTMLSanitizer {
	return &HTMLSanitizer{policy: bluemonday.UGCPolicy()}
}

var _ Sanitizer = (*HTMLSanitizer)(nil)

func (s *HTMLSanitizer) Clean(html string) string {
	return s.policy.Sanitize(html)
}
