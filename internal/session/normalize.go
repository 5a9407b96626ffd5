package session

import "github.com/rileyhilliard/zbdtop/internal/zbd"

// Normalize rescales a byte-unit zone into display units of d bytes.
// Conventional zones keep their write pointer untouched since it carries
// no meaning for them. d <= 1 returns z unchanged.
func Normalize(z zbd.Zone, d uint64) zbd.Zone {
	if d <= 1 {
		return z
	}
	z.Start /= d
	z.Len /= d
	z.Capacity /= d
	if !z.IsConventional() {
		z.WP /= d
	}
	return z
}

// NormalizeAll applies Normalize in place to every zone.
func NormalizeAll(zones []zbd.Zone, d uint64) {
	if d <= 1 {
		return
	}
	for i := range zones {
		zones[i] = Normalize(zones[i], d)
	}
}

// Denormalize converts a display-unit offset back to bytes. It is exact for
// zone starts because the divisor always divides the zone size.
func Denormalize(v, d uint64) uint64 {
	if d <= 1 {
		return v
	}
	return v * d
}
