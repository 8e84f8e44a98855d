package natal

import (
	"errors"
	"fmt"

	"github.com/papapumpkin/astrolabe/internal/zodiac"
)

// Sentinel errors for chart building. Each maps to one ErrorKind.
var (
	// ErrEphemeris indicates the ephemeris provider failed or returned an
	// incomplete set of bodies.
	ErrEphemeris = errors.New("ephemeris unavailable")
	// ErrLocationResolution indicates a birth place could not be resolved to
	// coordinates and a timezone.
	ErrLocationResolution = errors.New("location could not be resolved")
	// ErrValidation indicates malformed birth input (date, time, coordinates).
	ErrValidation = errors.New("invalid birth data")
	// ErrMissingBody indicates the provider omitted a tracked body.
	ErrMissingBody = errors.New("tracked body missing")
	// ErrDuplicateBody indicates the provider reported a tracked body twice.
	ErrDuplicateBody = errors.New("tracked body reported twice")
)

// ErrorKind classifies a build failure so callers can branch on it.
type ErrorKind string

const (
	// KindInvalidPosition indicates a malformed raw position.
	KindInvalidPosition ErrorKind = "invalid_position"
	// KindEphemeris indicates an ephemeris provider failure.
	KindEphemeris ErrorKind = "ephemeris"
	// KindLocation indicates an unresolvable birth place.
	KindLocation ErrorKind = "location"
	// KindValidation indicates malformed birth input.
	KindValidation ErrorKind = "validation"
	// KindUnknown is returned for errors that did not come from this package.
	KindUnknown ErrorKind = "unknown"
)

// BuildError records a chart build failure with its kind and the subject
// (person or birth instant) it concerns.
type BuildError struct {
	Kind    ErrorKind
	Subject string
	Err     error
}

// Error returns a message prefixed with the stable kind tag.
func (e *BuildError) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Subject, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

// Unwrap exposes both the kind sentinel and the underlying cause to
// errors.Is and errors.As.
func (e *BuildError) Unwrap() []error {
	return []error{e.Kind.sentinel(), e.Err}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindInvalidPosition:
		return zodiac.ErrInvalidPosition
	case KindEphemeris:
		return ErrEphemeris
	case KindLocation:
		return ErrLocationResolution
	case KindValidation:
		return ErrValidation
	}
	return nil
}

// KindOf reports the kind of a build error, or KindUnknown.
func KindOf(err error) ErrorKind {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Kind
	}
	switch {
	case errors.Is(err, zodiac.ErrInvalidPosition):
		return KindInvalidPosition
	case errors.Is(err, ErrEphemeris):
		return KindEphemeris
	case errors.Is(err, ErrLocationResolution):
		return KindLocation
	case errors.Is(err, ErrValidation):
		return KindValidation
	}
	return KindUnknown
}

func fail(kind ErrorKind, subject string, err error) error {
	return &BuildError{Kind: kind, Subject: subject, Err: err}
}
