package testing

import (
	"testing"

	"github.com/rileyhilliard/zbdtop/internal/zbd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFakeDevice(t *testing.T) {
	d := NewFakeDevice(1<<20, 2, 3)

	require.Len(t, d.Zones, 5)
	assert.Equal(t, uint32(5), d.Info().NrZones)
	assert.Equal(t, uint64(5<<20), d.Info().Capacity)
	assert.True(t, d.Zones[1].IsConventional())
	assert.True(t, d.Zones[2].IsSeqRequired())
	assert.Equal(t, d.Zones[4].Start, d.Zones[4].WP)
}

func TestFakeDevice_ReportZones(t *testing.T) {
	d := NewFakeDevice(100, 0, 10)
	d.MaxBatch = 3

	dst := make([]zbd.Zone, 10)
	n, err := d.ReportZones(250, 0, zbd.ReportAll, dst)
	require.NoError(t, err)
	assert.Equal(t, 3, n, "batch cap applies")
	assert.Equal(t, uint64(200), dst[0].Start, "zone containing the offset comes first")

	n, err = d.ReportZones(0, 200, zbd.ReportAll, dst)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "length bounds the report")

	d.Write(0, 100)
	n, err = d.ReportZones(0, 0, zbd.ReportFull, dst)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.Len(t, d.ReportCalls, 3)
}

func TestFakeDevice_Write(t *testing.T) {
	d := NewFakeDevice(100, 1, 1)

	d.Write(0, 50)
	assert.Zero(t, d.Zones[0].WP, "conventional zones ignore writes")

	d.Write(1, 40)
	assert.Equal(t, uint64(140), d.Zones[1].WP)
	assert.Equal(t, zbd.ZoneCondImpOpen, d.Zones[1].Cond)

	d.Write(1, 60)
	assert.Equal(t, zbd.ZoneCondFull, d.Zones[1].Cond)
}

func TestFakeDevice_FailAndClose(t *testing.T) {
	d := NewFakeDevice(100, 0, 2)
	d.FailReport = true

	_, err := d.ReportZones(0, 0, zbd.ReportAll, make([]zbd.Zone, 2))
	assert.Error(t, err)

	require.NoError(t, d.Close())
	assert.True(t, d.Closed())
	assert.Equal(t, 1, d.CloseCalls)

	d.FailReport = false
	_, err = d.ReportZones(0, 0, zbd.ReportAll, make([]zbd.Zone, 2))
	assert.ErrorIs(t, err, zbd.ErrClosed)
}
