// Package color generates display colors for tags.
package color

import (
	"fmt"
	"math/rand/v2"
)

// Bounds for the "light" palette: pastel saturation, high lightness.
const (
	minSaturation = 0.55
	maxSaturation = 0.95
	minLightness  = 0.70
	maxLightness  = 0.85
)

// RandomLight returns a random light-luminosity color as "#RRGGBB".
func RandomLight() string {
	return light(rand.Float64()*360, between(minSaturation, maxSaturation), between(minLightness, maxLightness))
}

func between(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}

func light(hue, saturation, lightness float64) string {
	r, g, b := hslToRGB(hue, saturation, lightness)
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// hslToRGB converts h (0-360), s and l (0-1) to 8-bit RGB.
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	h /= 360.0

	r1, g1, b1 := l, l, l
	if s != 0 {
		q := l + s - l*s
		if l < 0.5 {
			q = l * (1 + s)
		}
		p := 2*l - q

		r1 = hueToRGB(p, q, h+1.0/3.0)
		g1 = hueToRGB(p, q, h)
		b1 = hueToRGB(p, q, h-1.0/3.0)
	}

	return channel(r1), channel(g1), channel(b1)
}

func channel(v float64) uint8 {
	return uint8(v*255 + 0.5)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}
