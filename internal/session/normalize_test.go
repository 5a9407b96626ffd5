package session

import (
	"testing"

	"github.com/rileyhilliard/zbdtop/internal/zbd"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	seq := zbd.Zone{Start: 8192, Len: 4096, Capacity: 2048, WP: 9216, Type: zbd.ZoneTypeSeqRequired, Cond: zbd.ZoneCondImpOpen}
	conv := zbd.Zone{Start: 0, Len: 4096, Capacity: 4096, WP: 0, Type: zbd.ZoneTypeConventional, Cond: zbd.ZoneCondNotWP}

	t.Run("divisor 1 is the identity", func(t *testing.T) {
		assert.Equal(t, seq, Normalize(seq, 1))
		assert.Equal(t, conv, Normalize(conv, 1))
		assert.Equal(t, seq, Normalize(seq, 0))
	})

	t.Run("sequential zone fields are divided", func(t *testing.T) {
		got := Normalize(seq, 512)
		assert.Equal(t, uint64(16), got.Start)
		assert.Equal(t, uint64(8), got.Len)
		assert.Equal(t, uint64(4), got.Capacity)
		assert.Equal(t, uint64(18), got.WP)
		assert.Equal(t, seq.Type, got.Type)
		assert.Equal(t, seq.Cond, got.Cond)
	})

	t.Run("conventional write pointer keeps its sentinel", func(t *testing.T) {
		withSentinel := conv
		withSentinel.WP = 12345
		for _, d := range []uint64{2, 512, 4096} {
			got := Normalize(withSentinel, d)
			assert.Equal(t, uint64(12345), got.WP, "divisor %d", d)
			assert.Equal(t, 4096/d, got.Len)
		}
	})
}

func TestNormalizeAll(t *testing.T) {
	zones := []zbd.Zone{
		{Start: 0, Len: 1024, Capacity: 1024, Type: zbd.ZoneTypeConventional},
		{Start: 1024, Len: 1024, Capacity: 1024, WP: 1536, Type: zbd.ZoneTypeSeqRequired},
	}
	original := append([]zbd.Zone(nil), zones...)

	NormalizeAll(zones, 1)
	assert.Equal(t, original, zones)

	NormalizeAll(zones, 512)
	assert.Equal(t, uint64(2), zones[1].Start)
	assert.Equal(t, uint64(3), zones[1].WP)
	assert.Zero(t, zones[0].WP)
}

func TestDenormalize(t *testing.T) {
	assert.Equal(t, uint64(100), Denormalize(100, 1))
	assert.Equal(t, uint64(100), Denormalize(100, 0))
	assert.Equal(t, uint64(51200), Denormalize(100, 512))

	z := zbd.Zone{Start: 256 << 20, Len: 256 << 20, Type: zbd.ZoneTypeSeqRequired}
	assert.Equal(t, z.Start, Denormalize(Normalize(z, 4096).Start, 4096))
}
