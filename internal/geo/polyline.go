// Package geo — polyline implements Google's encoded polyline format
// (signed varint deltas at 1e-5 degree precision).
package geo

import (
	"errors"
	"math"
	"strings"

	"ridemoto/internal/types"
)

// ErrMalformedPolyline is returned when an encoded byte stream ends in the
// middle of a coordinate, i.e. the final byte still has its continuation
// bit set or a latitude arrives without its longitude.
var ErrMalformedPolyline = errors.New("malformed polyline")

// DecodePolyline decodes an encoded overview polyline into an ordered path.
// The decode is a pure function of its input; the same string always yields
// the same path.
func DecodePolyline(encoded string) ([]types.Point, error) {
	var points []types.Point
	var lat, lng int64

	for i := 0; i < len(encoded); {
		dLat, n, err := decodeSignedDelta(encoded[i:])
		if err != nil {
			return nil, err
		}
		i += n
		lat += dLat

		if i >= len(encoded) {
			return nil, ErrMalformedPolyline
		}
		dLng, n, err := decodeSignedDelta(encoded[i:])
		if err != nil {
			return nil, err
		}
		i += n
		lng += dLng

		points = append(points, types.Point{
			Lat: float64(lat) / 1e5,
			Lng: float64(lng) / 1e5,
		})
	}
	return points, nil
}

// decodeSignedDelta reads 5-bit groups until one arrives without the
// continuation bit, then undoes the zig-zag encoding. It reports how many
// bytes were consumed.
func decodeSignedDelta(s string) (int64, int, error) {
	var result int64
	var shift uint
	for i := 0; i < len(s); i++ {
		b := int64(s[i]) - 63
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			if result&1 != 0 {
				return ^(result >> 1), i + 1, nil
			}
			return result >> 1, i + 1, nil
		}
	}
	return 0, 0, ErrMalformedPolyline
}

// EncodePolyline is the inverse of DecodePolyline.
func EncodePolyline(points []types.Point) string {
	var sb strings.Builder
	var prevLat, prevLng int64
	for _, p := range points {
		lat := int64(math.Round(p.Lat * 1e5))
		lng := int64(math.Round(p.Lng * 1e5))
		encodeSignedDelta(&sb, lat-prevLat)
		encodeSignedDelta(&sb, lng-prevLng)
		prevLat, prevLng = lat, lng
	}
	return sb.String()
}

func encodeSignedDelta(sb *strings.Builder, v int64) {
	u := v << 1
	if v < 0 {
		u = ^u
	}
	for u >= 0x20 {
		sb.WriteByte(byte(0x20|(u&0x1f)) + 63)
		u >>= 5
	}
	sb.WriteByte(byte(u) + 63)
}
