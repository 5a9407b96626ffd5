package zbd

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Block layer zone report layout (include/uapi/linux/blkzoned.h).
// Offsets and lengths are in 512-byte sectors.

const sectorShift = 9

const (
	blkZoneRepCapacity = 1 << 0 // blk_zone.capacity is valid
	blkZoneHdrSize     = 16
	blkZoneSize        = 64
)

type blkZoneReport struct {
	Sector  uint64
	NrZones uint32
	Flags   uint32
}

type blkZone struct {
	Start    uint64
	Len      uint64
	WP       uint64
	Type     uint8
	Cond     uint8
	NonSeq   uint8
	Reset    uint8
	_        [4]uint8
	Capacity uint64
	_        [24]uint8
}

// toZone converts a kernel zone descriptor into a byte-unit Zone.
func (bz *blkZone) toZone(hasCapacity bool) Zone {
	z := Zone{
		Start: bz.Start << sectorShift,
		Len:   bz.Len << sectorShift,
		Type:  ZoneType(bz.Type),
		Cond:  ZoneCondition(bz.Cond),
	}
	if hasCapacity {
		z.Capacity = bz.Capacity << sectorShift
	} else {
		z.Capacity = z.Len
	}
	if !z.IsConventional() {
		z.WP = bz.WP << sectorShift
	}
	if bz.NonSeq != 0 {
		z.Flags |= ZoneFlagNonSeq
	}
	if bz.Reset != 0 {
		z.Flags |= ZoneFlagReset
	}
	return z
}

// sysfsRoot is swapped in tests.
var sysfsRoot = "/sys"

// sysfsDevDir returns the sysfs directory for a block device number.
func sysfsDevDir(major, minor uint32) string {
	return filepath.Join(sysfsRoot, "dev", "block",
		strconv.FormatUint(uint64(major), 10)+":"+strconv.FormatUint(uint64(minor), 10))
}

// readSysfsString reads and trims a sysfs attribute; missing attributes
// read as "".
func readSysfsString(dir, attr string) string {
	b, err := os.ReadFile(filepath.Join(dir, attr))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

// readSysfsUint32 reads a numeric sysfs attribute, 0 if missing or invalid.
func readSysfsUint32(dir, attr string) uint32 {
	s := readSysfsString(dir, attr)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}
	return uint32(v)
}

// vendorID joins the SCSI/ATA vendor, model and revision strings. Devices
// without them (null_blk, ZNS namespaces) fall back to the model or "Unknown".
func vendorID(devDir string) string {
	var parts []string
	for _, attr := range []string{"device/vendor", "device/model", "device/rev"} {
		if s := readSysfsString(devDir, attr); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return "Unknown"
	}
	return strings.Join(parts, " ")
}
