package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized indicates an unauthenticated access attempt.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials indicates a failed login. It is deliberately
	// uniform: callers must not learn whether the username or the
	// password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrExtraction indicates the text extraction mechanism itself failed.
	ErrExtraction = errors.New("failed to extract text from document")
	// ErrEmptyDocument indicates extraction succeeded but yielded no
	// usable text. Recoverable; the user may try a different file.
	ErrEmptyDocument = errors.New("document contains no extractable text")
	// ErrNoDocument indicates a question was asked before any document
	// was indexed for the session.
	ErrNoDocument = errors.New("no document has been indexed yet")
	// ErrEmbedding indicates the embedding service failed.
	ErrEmbedding = errors.New("embedding service failed")
	// ErrGeneration indicates the completion service failed. The built
	// index is unaffected; the same question may be retried.
	ErrGeneration = errors.New("generation service failed")
)

// ConfigError reports a missing or invalid configuration value. It names
// the key and the expected type so the operator can fix the setting.
type ConfigError struct {
	Key   string
	Want  string
	Value string
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("configuration %s: missing or empty, expected %s", e.Key, e.Want)
	}
	return fmt.Sprintf("configuration %s: %q is not a valid %s", e.Key, e.Value, e.Want)
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
