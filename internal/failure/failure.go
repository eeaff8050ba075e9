// Package failure classifies errors from the model client into a fixed set
// of kinds, each with a stable message that can be shown to the user.
package failure

import (
	"errors"
	"fmt"
	"strings"
)

// InvalidKeyPhrase is the provider text that identifies a rejected API key.
// Matching on it is fragile: it follows whatever the provider prints.
const InvalidKeyPhrase = "API key not valid"

type Kind int

const (
	UnknownFailure Kind = iota
	CredentialMissing
	AuthInvalid
	MalformedResponse
)

func (k Kind) String() string {
	switch k {
	case CredentialMissing:
		return "credential_missing"
	case AuthInvalid:
		return "auth_invalid"
	case MalformedResponse:
		return "malformed_response"
	default:
		return "unknown_failure"
	}
}

// Message returns the user-facing text for the kind.
func (k Kind) Message() string {
	switch k {
	case CredentialMissing:
		return "API key not found. Please set it in your environment or in the settings."
	case AuthInvalid:
		return "The provided API key is not valid. Please check your environment configuration."
	case MalformedResponse:
		return "The model returned a response in an unexpected format. Please try again."
	default:
		return "The request to the model failed. Please check your connection and try again."
	}
}

// Error is a classified failure. Diagnostic and the wrapped cause are meant
// for logs; Message is meant for the user.
type Error struct {
	Kind       Kind
	Diagnostic string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Diagnostic, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Diagnostic)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Message() string {
	return e.Kind.Message()
}

func New(kind Kind, diagnostic string, err error) *Error {
	return &Error{Kind: kind, Diagnostic: diagnostic, Err: err}
}

func MissingCredential() *Error {
	return New(CredentialMissing, "no API key supplied", nil)
}

func Malformed(diagnostic string, err error) *Error {
	return New(MalformedResponse, diagnostic, err)
}

// Classify maps err onto a kind. An *Error already in the chain is returned
// unchanged; otherwise the invalid-key phrase selects AuthInvalid and
// everything else is UnknownFailure.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var fe *Error
	if errors.As(err, &fe) {
		return fe
	}

	if strings.Contains(err.Error(), InvalidKeyPhrase) {
		return New(AuthInvalid, "provider rejected the API key", err)
	}

	return New(UnknownFailure, "model request failed", err)
}

// KindOf returns the kind of err, classifying it when needed.
// A nil error reports UnknownFailure.
func KindOf(err error) Kind {
	if fe := Classify(err); fe != nil {
		return fe.Kind
	}
	return UnknownFailure
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the user-facing message for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return Classify(err).Message()
}
