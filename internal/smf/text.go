package smf

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// TextEncoding selects how a captured meta text payload should be
// transcoded by DecodeMetaText. The core decode path never performs
// this transcoding itself; callbacks always receive the raw,
// NUL-terminated bytes per the dispatch surface's contract.
type TextEncoding int

const (
	// ASCII passes the bytes through unchanged (the common case).
	ASCII TextEncoding = iota
	// ShiftJIS transcodes the bytes from Shift-JIS to UTF-8, common in
	// Japanese-authored SMF/karaoke files' Lyric/TrackName/Marker events.
	ShiftJIS
)

// DecodeMetaText transcodes a captured meta text payload (as returned
// by Message.Payload, with any trailing NUL trimmed by the caller) to
// a UTF-8 string according to enc. Call this on a copy of the payload,
// never on the buffer while it is still owned by an in-flight decode.
func DecodeMetaText(raw []byte, enc TextEncoding) (string, error) {
	switch enc {
	case ASCII:
		return string(raw), nil
	case ShiftJIS:
		reader := transform.NewReader(bytes.NewReader(raw), japanese.ShiftJIS.NewDecoder())
		decoded, err := io.ReadAll(reader)
		if err != nil {
			return "", fmt.Errorf("smf: decoding Shift-JIS meta text: %w", err)
		}
		return string(decoded), nil
	default:
		return "", fmt.Errorf("smf: unknown text encoding %d", enc)
	}
}
