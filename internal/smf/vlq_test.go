package smf

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

type memSource []byte

func (m memSource) Read(dst []byte, startOffset int64, numBytes int) (int, error) {
	if startOffset < 0 || startOffset >= int64(len(m)) {
		return 0, nil
	}
	end := startOffset + int64(numBytes)
	if end > int64(len(m)) {
		end = int64(len(m))
	}
	n := copy(dst, m[startOffset:end])
	return n, nil
}

func TestVLQRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("decode(encode(v)) == v for v in [0, 0x0FFFFFFF]", prop.ForAll(
		func(v uint32) bool {
			encoded := encodeVLQ(nil, v)
			decoded, consumed, err := decodeVLQ(memSource(encoded), 0)
			if err != nil {
				return false
			}
			return decoded == v && int(consumed) == len(encoded)
		},
		gen.UInt32Range(0, MaxVLQValue),
	))

	properties.TestingRun(t)
}

func TestVLQMaxEncoding(t *testing.T) {
	encoded := encodeVLQ(nil, MaxVLQValue)
	want := []byte{0xFF, 0xFF, 0xFF, 0x7F}
	if len(encoded) != len(want) {
		t.Fatalf("encodeVLQ(MaxVLQValue) = %x, want %x", encoded, want)
	}
	for i := range want {
		if encoded[i] != want[i] {
			t.Fatalf("encodeVLQ(MaxVLQValue) = %x, want %x", encoded, want)
		}
	}

	decoded, consumed, err := decodeVLQ(memSource(want), 0)
	if err != nil {
		t.Fatalf("decodeVLQ: %v", err)
	}
	if decoded != MaxVLQValue || consumed != 4 {
		t.Fatalf("decodeVLQ(%x) = %d, %d; want %d, 4", want, decoded, consumed, MaxVLQValue)
	}
}

func TestVLQTooLong(t *testing.T) {
	bad := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x7F}
	_, _, err := decodeVLQ(memSource(bad), 0)
	if err != ErrVLQTooLong {
		t.Fatalf("decodeVLQ(%x) error = %v, want ErrVLQTooLong", bad, err)
	}
}
