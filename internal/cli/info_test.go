package cli

import (
	"encoding/json"
	"testing"

	"github.com/rileyhilliard/zbdtop/internal/zbd"
	zbdtesting "github.com/rileyhilliard/zbdtop/internal/zbd/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfo_Text(t *testing.T) {
	dev := zonedDevice()
	dev.DeviceInfo.MaxOpenZones = 1
	dev.SetCondition(7, zbd.ZoneCondOffline)
	withDevice(t, dev)

	res := execute(t, "info", "/dev/nullb0")

	require.Equal(t, 0, res.code, res.stderr)
	out := res.stdout
	assert.Contains(t, out, "Device")
	assert.Contains(t, out, "/dev/nullb0")
	assert.Contains(t, out, "Fake ZBD")
	assert.Contains(t, out, "host-managed")
	assert.Contains(t, out, "8.0 MiB (8388608 B)")
	assert.Contains(t, out, "1.0 MiB (1048576 B)")
	assert.Contains(t, out, "8 (2 cnv, 6 seq)")
	assert.Contains(t, out, "512 B logical, 4096 B physical")
	assert.Contains(t, out, "● open zones    1 / 1", "at the limit")
	assert.Contains(t, out, "active zones  1 (no limit)")

	assert.Contains(t, out, "Zone conditions")
	assert.Contains(t, out, "not-write-pointer  2")
	assert.Contains(t, out, "empty              3")
	assert.Contains(t, out, "✗ offline            1")
	assert.NotContains(t, out, "read-only", "conditions with no zones are skipped")
	assert.Equal(t, 1, dev.CloseCalls)
}

func TestInfo_JSON(t *testing.T) {
	dev := zonedDevice()
	withDevice(t, dev)

	res := execute(t, "info", "--json", "/dev/nullb0")

	require.Equal(t, 0, res.code, res.stderr)

	var env struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &env))
	assert.True(t, env.Success)

	d := env.Data
	assert.Equal(t, "/dev/nullb0", d["device"])
	assert.Equal(t, "host-managed", d["model"])
	assert.Equal(t, "Fake ZBD", d["vendor_id"])
	assert.Equal(t, float64(testZoneSize), d["zone_size"])
	assert.Equal(t, float64(8), d["nr_zones"])
	assert.Equal(t, float64(2), d["nr_conv_zones"])
	assert.Equal(t, float64(1), d["open_zones"])
	assert.Equal(t, float64(1), d["active_zones"])

	conds, ok := d["conditions"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), conds["full"])
	assert.Equal(t, float64(4), conds["empty"])
}

func TestInfo_DeviceMissing(t *testing.T) {
	res := execute(t, "info", "/nonexistent/zbd0")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Open /nonexistent/zbd0 failed")
}

func TestBuildReport_ActiveCountsClosed(t *testing.T) {
	dev := zbdtesting.NewFakeDevice(testZoneSize, 0, 4)
	dev.Write(0, 4096)
	dev.SetCondition(1, zbd.ZoneCondClosed)
	dev.SetCondition(2, zbd.ZoneCondExpOpen)
	withDevice(t, dev)
	isolate(t)

	cfg, err := loadConfig(newRootCmd())
	require.NoError(t, err)
	sess, err := openZones("/dev/nullb0", cfg)
	require.NoError(t, err)
	defer sess.Close()

	r := buildReport(sess)

	assert.Equal(t, 2, r.OpenZones)
	assert.Equal(t, 3, r.ActiveZones)
	assert.Equal(t, 1, r.Conditions["closed"])
}

func TestLimitRow(t *testing.T) {
	row := limitRow("open zones", 3, 0)
	assert.Equal(t, "3 (no limit)", row.Value)
	assert.Empty(t, row.Status)

	row = limitRow("open zones", 3, 14)
	assert.Equal(t, "3 / 14", row.Value)
	assert.Equal(t, "ok", row.Status)

	row = limitRow("open zones", 14, 14)
	assert.Equal(t, "warn", row.Status)
}
