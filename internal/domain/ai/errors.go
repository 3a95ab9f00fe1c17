package ai

import "errors"

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrInvalidResponse indicates the model reply could not be used: not
// JSON, or missing one of the required fields. Upstream transport failures
// wrap into the same class so callers see one "analysis failed" error.
var ErrInvalidResponse = errors.New("invalid ai analysis response")
