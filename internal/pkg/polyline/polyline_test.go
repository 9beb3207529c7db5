package polyline_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/imanolea/wayfinder/internal/pkg/polyline"
)

// The published worked example for this encoding family, at 5-digit precision.
const referenceEncoded = "_p~iF~ps|U_ulLnnqC_mqNvxq`@"

var referencePoints = []polyline.Point{
	{Lat: 38.5, Lon: -120.2},
	{Lat: 40.7, Lon: -120.95},
	{Lat: 43.252, Lon: -126.453},
}

func TestEncodeReferenceVector(t *testing.T) {
	got, err := polyline.Encode(referencePoints, polyline.Precision5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != referenceEncoded {
		t.Errorf("encoded %q, want %q", got, referenceEncoded)
	}
}

func TestDecodeReferenceVector(t *testing.T) {
	pts, err := polyline.Decode(referenceEncoded, polyline.Precision5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pts) != len(referencePoints) {
		t.Fatalf("decoded %d points, want %d", len(pts), len(referencePoints))
	}
	for i, want := range referencePoints {
		if math.Abs(pts[i].Lat-want.Lat) > 1e-5 || math.Abs(pts[i].Lon-want.Lon) > 1e-5 {
			t.Errorf("point %d: got (%f, %f), want (%f, %f)", i, pts[i].Lat, pts[i].Lon, want.Lat, want.Lon)
		}
	}
}

func TestEmptyInput(t *testing.T) {
	pts, err := polyline.Decode("", polyline.Precision6)
	if err != nil {
		t.Fatalf("decode empty: %v", err)
	}
	if len(pts) != 0 {
		t.Errorf("decode empty: got %d points, want 0", len(pts))
	}

	s, err := polyline.Encode(nil, polyline.Precision6)
	if err != nil {
		t.Fatalf("encode empty: %v", err)
	}
	if s != "" {
		t.Errorf("encode empty: got %q, want \"\"", s)
	}
}

func TestOriginEncodesToMinimalBytes(t *testing.T) {
	s, err := polyline.Encode([]polyline.Point{{Lat: 0, Lon: 0}}, polyline.Precision5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != "??" {
		t.Errorf("origin encoded to %q, want \"??\"", s)
	}
}

func TestRoundTrip(t *testing.T) {
	shapes := [][]polyline.Point{
		{{Lat: 43.262985, Lon: -2.935013}},
		{
			{Lat: 43.262985, Lon: -2.935013},
			{Lat: 43.263713, Lon: -2.935226},
			{Lat: 43.264511, Lon: -2.934873},
			{Lat: 43.270148, Lon: -2.938068},
		},
		{
			{Lat: -33.865143, Lon: 151.209900},
			{Lat: -33.868820, Lon: 151.209290},
		},
		{
			{Lat: 52.3676, Lon: 4.9041},
			{Lat: 52.0907, Lon: 5.1214},
			{Lat: 51.9225, Lon: 4.47917},
		},
	}

	for _, p := range []polyline.Precision{polyline.Precision5, polyline.Precision6} {
		// The half-unit bound is exact in real arithmetic; a coordinate that
		// lands on the rounding boundary (43.262985 at 1e5 scales to ...8.5)
		// sits exactly on it, and the division back picks up float noise.
		// Allow a representation epsilon on top.
		tolerance := 0.5*math.Pow(10, -float64(p)) + 1e-9
		for si, shape := range shapes {
			enc, err := polyline.Encode(shape, p)
			if err != nil {
				t.Fatalf("precision %d shape %d: encode: %v", p, si, err)
			}
			dec, err := polyline.Decode(enc, p)
			if err != nil {
				t.Fatalf("precision %d shape %d: decode: %v", p, si, err)
			}
			if len(dec) != len(shape) {
				t.Fatalf("precision %d shape %d: got %d points, want %d", p, si, len(dec), len(shape))
			}
			for i := range shape {
				if math.Abs(dec[i].Lat-shape[i].Lat) > tolerance || math.Abs(dec[i].Lon-shape[i].Lon) > tolerance {
					t.Errorf("precision %d shape %d point %d: got (%f, %f), want (%f, %f) within %g",
						p, si, i, dec[i].Lat, dec[i].Lon, shape[i].Lat, shape[i].Lon, tolerance)
				}
			}
		}
	}
}

func TestTruncatedContinuationFails(t *testing.T) {
	// Drop the final byte: the new last byte still has its continuation bit set.
	truncated := referenceEncoded[:len(referenceEncoded)-1]
	_, err := polyline.Decode(truncated, polyline.Precision5)
	if !errors.Is(err, polyline.ErrMalformed) {
		t.Errorf("got %v, want ErrMalformed", err)
	}
}

func TestLoneAxisFails(t *testing.T) {
	// A single complete latitude value with no longitude following it.
	_, err := polyline.Decode("?", polyline.Precision5)
	if !errors.Is(err, polyline.ErrMalformed) {
		t.Errorf("got %v, want ErrMalformed", err)
	}
}

func TestByteBelowOffsetFails(t *testing.T) {
	_, err := polyline.Decode("_p~iF\x1f", polyline.Precision5)
	if !errors.Is(err, polyline.ErrMalformed) {
		t.Errorf("got %v, want ErrMalformed", err)
	}
}

func TestContinuationChainOverflows(t *testing.T) {
	// '_' encodes a continuation chunk with zero payload; an endless chain
	// of them must fail rather than wrap or spin.
	_, err := polyline.Decode(strings.Repeat("_", 12)+"?", polyline.Precision6)
	if !errors.Is(err, polyline.ErrOverflow) {
		t.Errorf("got %v, want ErrOverflow", err)
	}
}

func TestEncodeRejectsUnrepresentableCoordinate(t *testing.T) {
	_, err := polyline.Encode([]polyline.Point{{Lat: 1e6, Lon: 0}}, polyline.Precision6)
	if !errors.Is(err, polyline.ErrOverflow) {
		t.Errorf("got %v, want ErrOverflow", err)
	}
}

// The format carries no precision tag, so decoding with the wrong precision
// succeeds but produces coordinates off by a factor of ten. That asymmetry is
// part of the format, not a defect.
func TestPrecisionMismatchIsSilent(t *testing.T) {
	shape := []polyline.Point{{Lat: 43.2630, Lon: -2.9350}}

	enc5, err := polyline.Encode(shape, polyline.Precision5)
	if err != nil {
		t.Fatalf("encode p5: %v", err)
	}
	enc6, err := polyline.Encode(shape, polyline.Precision6)
	if err != nil {
		t.Fatalf("encode p6: %v", err)
	}
	if enc5 == enc6 {
		t.Fatalf("precision 5 and 6 encodings should differ, both %q", enc5)
	}

	wrong, err := polyline.Decode(enc5, polyline.Precision6)
	if err != nil {
		t.Fatalf("decode with wrong precision should not error: %v", err)
	}
	if math.Abs(wrong[0].Lat-shape[0].Lat/10) > 1e-6 {
		t.Errorf("wrong-precision decode: got lat %f, want %f", wrong[0].Lat, shape[0].Lat/10)
	}
}
