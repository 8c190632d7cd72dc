package rephrase

import (
	"errors"
	"fmt"
)

var (
	// ErrCredentialMissing means no API key was supplied with the request or configured.
	ErrCredentialMissing = errors.New("API key not found: set GROQ_API_KEY in the environment or api_key in the config file")

	// ErrProviderCallFailed means the remote generation call failed for any reason.
	ErrProviderCallFailed = errors.New("prompt engineering error")

	// ErrInvalidParams is returned by Params.Validate.
	ErrInvalidParams = errors.New("invalid generation parameters")
)

// ProviderCallError carries the provider's failure message.
type ProviderCallError struct {
	Detail string
	Err    error
}

func (e *ProviderCallError) Error() string {
	return fmt.Sprintf("%s: %s", ErrProviderCallFailed, e.Detail)
}

// Unwrap exposes both the ErrProviderCallFailed kind and the underlying provider error.
func (e *ProviderCallError) Unwrap() []error {
	return []error{ErrProviderCallFailed, e.Err}
}

// Kind classifies the outcome of a rephrase call.
type Kind int

const (
	KindSuccess Kind = iota
	KindCredentialMissing
	KindProviderCallFailed
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindCredentialMissing:
		return "credential_missing"
	case KindProviderCallFailed:
		return "provider_call_failed"
	default:
		return "unexpected"
	}
}

// KindOf maps an error returned by Rephrase to its Kind. A nil error is KindSuccess.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindSuccess
	case errors.Is(err, ErrCredentialMissing):
		return KindCredentialMissing
	case errors.Is(err, ErrProviderCallFailed):
		return KindProviderCallFailed
	default:
		return KindUnexpected
	}
}
