package enrich

import "errors"

var (
	// ErrNotConfigured means no credential for the text-generation
	// service is present. This is the only enrichment failure surfaced
	// to the caller as a hard error; everything else degrades to a
	// fallback result.
	ErrNotConfigured = errors.New("text-generation service not configured")

	// ErrUpstream covers network failures and non-2xx responses from
	// the text-generation service.
	ErrUpstream = errors.New("text-generation service request failed")

	// ErrMalformedResponse means the upstream response was not valid
	// JSON for the task schema.
	ErrMalformedResponse = errors.New("text-generation response malformed")
)
