package smf

import "errors"

var (
	// ErrInvalidFormat covers any structural violation of the SMF
	// header (bad magic, unsupported format, SMPTE division, etc.).
	// Together with ErrTrackLimitExceeded it is one of the only two
	// decode errors that are fatal to a session.
	ErrInvalidFormat = errors.New("smf: invalid file format")

	// ErrTrackLimitExceeded is returned when a header declares more
	// tracks than Limits.MaxTracks; the file is refused.
	ErrTrackLimitExceeded = errors.New("smf: track count exceeds configured limit")

	// errShortRead signals a read that ran past the available bytes.
	// It surfaces to callers as ErrReadError, a per-track warning
	// rather than a fatal condition.
	errShortRead = errors.New("smf: short read")

	// ErrReadError is the public form of a non-fatal track read
	// failure; the affected track is marked finished.
	ErrReadError = errors.New("smf: track read error")
)
