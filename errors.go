package matchmark

import "errors"

var (
	// ErrNilDocument is returned when creating a synchronizer without a
	// document.
	ErrNilDocument = errors.New("nil document")

	// ErrNilSet is returned when creating a synchronizer without a
	// matcher set.
	ErrNilSet = errors.New("nil matcher set")

	// ErrDisposed is returned when calling a disposed synchronizer.
	ErrDisposed = errors.New("synchronizer is disposed")

	// ErrStaleRange indicates a changed span that no longer fits the
	// document, usually because a later edit shrank it before the span
	// was processed.
	ErrStaleRange = errors.New("changed span outside current document")
)

// ErrorKind classifies where in the sync pass a recovered error arose.
type ErrorKind uint8

const (
	// ErrKindRange covers stale or unreadable text ranges.
	ErrKindRange ErrorKind = iota

	// ErrKindLine covers line lookup failures.
	ErrKindLine

	// ErrKindClear covers failures clearing previously derived runs.
	ErrKindClear

	// ErrKindApply covers failures writing a matched run.
	ErrKindApply
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrKindRange:
		return "range"
	case ErrKindLine:
		return "line"
	case ErrKindClear:
		return "clear"
	case ErrKindApply:
		return "apply"
	default:
		return "unknown"
	}
}
