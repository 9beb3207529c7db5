// Package polyline implements the compact shape encoding used by the
// routing engine: per-axis delta compression, zigzag signed-to-unsigned
// mapping, and a base64-like variable-length byte encoding offset into
// printable ASCII.
//
// The encoded string carries no precision marker. Both sides must agree
// on the precision out of band (the surrounding protocol negotiates it
// via shape_format; the engine default is six digits). Decoding with the
// wrong precision yields grossly wrong coordinates without error.
package polyline

import (
	"errors"
	"fmt"
	"math"
)

// Point is a single geographic coordinate in decimal degrees.
// The codec does not enforce coordinate bounds; out-of-range values are
// passed through as long as their scaled integer form fits 32 bits.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Precision selects the decimal scale applied when converting degrees
// to integers. It must match between encoder and decoder.
type Precision int

const (
	// Precision5 scales by 1e5 (the classic 5-digit format).
	Precision5 Precision = 5
	// Precision6 scales by 1e6 (the engine's default shape format).
	Precision6 Precision = 6
)

// Default is the precision assumed when the protocol does not negotiate one.
const Default = Precision6

func (p Precision) scale() float64 {
	if p == Precision5 {
		return 1e5
	}
	return 1e6
}

var (
	// ErrMalformed reports input that is not a well-formed product of this
	// encoding: a byte below the printable offset, or a stream that ends
	// while the continuation bit is still set.
	ErrMalformed = errors.New("polyline: malformed encoding")
	// ErrOverflow reports scaled coordinates or accumulated deltas outside
	// the 32-bit range the format can represent.
	ErrOverflow = errors.New("polyline: integer overflow")
)

const (
	chunkBits   = 5
	chunkMask   = 0x1f
	contBit     = 0x20
	asciiOffset = 63

	// A 32-bit delta zigzags into at most 33 bits, i.e. seven 5-bit chunks.
	maxShift = 7 * chunkBits
)

// Decode converts an encoded string back into an ordered point sequence.
// The whole input must be consumed; an empty string decodes to an empty
// sequence. On error no partial shape is returned, since a corrupted tail
// can desynchronise axis parity and silently swap lat/lon for every
// following point.
func Decode(encoded string, p Precision) ([]Point, error) {
	if encoded == "" {
		return nil, nil
	}

	scale := p.scale()
	pts := make([]Point, 0, len(encoded)/4+1)
	var lat, lon int64

	for i := 0; i < len(encoded); {
		dLat, n, err := decodeValue(encoded, i)
		if err != nil {
			return nil, err
		}
		i += n
		dLon, n, err := decodeValue(encoded, i)
		if err != nil {
			return nil, err
		}
		i += n

		lat += dLat
		lon += dLon
		if lat < math.MinInt32 || lat > math.MaxInt32 || lon < math.MinInt32 || lon > math.MaxInt32 {
			return nil, fmt.Errorf("%w: accumulated coordinate out of range at byte %d", ErrOverflow, i)
		}

		pts = append(pts, Point{
			Lat: float64(lat) / scale,
			Lon: float64(lon) / scale,
		})
	}
	return pts, nil
}

// decodeValue reads one variable-length value starting at offset i and
// returns the signed delta and the number of bytes consumed.
func decodeValue(encoded string, i int) (int64, int, error) {
	var acc uint64
	var shift uint

	for n := 0; ; n++ {
		if i+n >= len(encoded) {
			return 0, 0, fmt.Errorf("%w: input ends mid-value at byte %d", ErrMalformed, i+n)
		}
		b := int(encoded[i+n]) - asciiOffset
		if b < 0 {
			return 0, 0, fmt.Errorf("%w: byte %q below offset at position %d", ErrMalformed, encoded[i+n], i+n)
		}
		if shift >= maxShift {
			return 0, 0, fmt.Errorf("%w: continuation chain exceeds 32-bit value at byte %d", ErrOverflow, i+n)
		}
		acc |= uint64(b&chunkMask) << shift
		shift += chunkBits

		if b < contBit {
			// Continuation bit clear: value complete. Undo the zigzag.
			var delta int64
			if acc&1 != 0 {
				delta = ^int64(acc >> 1)
			} else {
				delta = int64(acc >> 1)
			}
			return delta, n + 1, nil
		}
	}
}

// Encode converts an ordered point sequence into the compact string form.
// An empty sequence encodes to "".
func Encode(points []Point, p Precision) (string, error) {
	scale := p.scale()
	buf := make([]byte, 0, len(points)*4)
	var prevLat, prevLon int64

	for i, pt := range points {
		lat := int64(math.Round(pt.Lat * scale))
		lon := int64(math.Round(pt.Lon * scale))
		if lat < math.MinInt32 || lat > math.MaxInt32 || lon < math.MinInt32 || lon > math.MaxInt32 {
			return "", fmt.Errorf("%w: point %d (%.6f, %.6f) does not fit the 32-bit scaled range",
				ErrOverflow, i, pt.Lat, pt.Lon)
		}

		buf = appendValue(buf, lat-prevLat)
		buf = appendValue(buf, lon-prevLon)
		prevLat, prevLon = lat, lon
	}
	return string(buf), nil
}

// appendValue zigzags a signed delta and emits it as 5-bit groups, least
// significant first, continuation bit set on all but the last.
func appendValue(buf []byte, delta int64) []byte {
	v := uint64(delta << 1)
	if delta < 0 {
		v = uint64(^(delta << 1))
	}
	for v >= contBit {
		buf = append(buf, byte(v&chunkMask|contBit)+asciiOffset)
		v >>= chunkBits
	}
	return append(buf, byte(v)+asciiOffset)
}
