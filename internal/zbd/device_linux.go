//go:build linux

package zbd

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Zoned block device ioctls missing from x/sys/unix.
const (
	blkReportZone = 0xC0101282 // _IOWR(0x12, 130, struct blk_zone_report)
	blkGetZoneSz  = 0x80041284 // _IOR(0x12, 132, __u32)
	blkGetNrZones = 0x80041285 // _IOR(0x12, 133, __u32)
)

// maxReportZones bounds a single BLKREPORTZONE call.
const maxReportZones = 8192

type linuxDevice struct {
	path string
	fd   int
	info Info
}

// Open opens path read-only and captures its zone geometry. It fails with
// ErrNotBlockDevice or ErrNotZoned (wrapped) for regular block devices and
// other files.
func Open(path string) (Device, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC|unix.O_LARGEFILE, 0)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: path, Err: err}
	}

	d := &linuxDevice{path: path, fd: fd}
	if err := d.loadInfo(); err != nil {
		_ = unix.Close(fd)
		return nil, err
	}

	debugf("%s: %s, %d zones of %d B, capacity %d B",
		path, d.info.Model, d.info.NrZones, d.info.ZoneSize, d.info.Capacity)
	return d, nil
}

func (d *linuxDevice) loadInfo() error {
	var st unix.Stat_t
	if err := unix.Fstat(d.fd, &st); err != nil {
		return &os.PathError{Op: "stat", Path: d.path, Err: err}
	}
	if st.Mode&unix.S_IFMT != unix.S_IFBLK {
		return fmt.Errorf("%s: %w", d.path, ErrNotBlockDevice)
	}

	dir := sysfsDevDir(unix.Major(uint64(st.Rdev)), unix.Minor(uint64(st.Rdev)))
	model := ParseModel(readSysfsString(dir, "queue/zoned"))
	if model == ModelNone {
		return fmt.Errorf("%s: %w", d.path, ErrNotZoned)
	}

	var capacity uint64
	if err := ioctlPtr(d.fd, unix.BLKGETSIZE64, unsafe.Pointer(&capacity)); err != nil {
		return fmt.Errorf("%s: get capacity: %w", d.path, err)
	}
	lbs, err := unix.IoctlGetInt(d.fd, unix.BLKSSZGET)
	if err != nil {
		return fmt.Errorf("%s: get logical block size: %w", d.path, err)
	}
	pbs, err := unix.IoctlGetUint32(d.fd, unix.BLKPBSZGET)
	if err != nil {
		return fmt.Errorf("%s: get physical block size: %w", d.path, err)
	}
	zoneSectors, err := unix.IoctlGetUint32(d.fd, blkGetZoneSz)
	if err != nil {
		return fmt.Errorf("%s: get zone size: %w", d.path, err)
	}
	nrZones, err := unix.IoctlGetUint32(d.fd, blkGetNrZones)
	if err != nil {
		return fmt.Errorf("%s: get number of zones: %w", d.path, err)
	}

	d.info = Info{
		VendorID:          vendorID(dir),
		Model:             model,
		Capacity:          capacity,
		LogicalBlockSize:  uint32(lbs),
		PhysicalBlockSize: pbs,
		ZoneSize:          uint64(zoneSectors) << sectorShift,
		NrZones:           nrZones,
		MaxOpenZones:      readSysfsUint32(dir, "queue/max_open_zones"),
		MaxActiveZones:    readSysfsUint32(dir, "queue/max_active_zones"),
	}
	return nil
}

func (d *linuxDevice) Info() Info {
	return d.info
}

func (d *linuxDevice) ReportZones(offset, length uint64, opt ReportOption, dst []Zone) (int, error) {
	if d.fd < 0 {
		return 0, ErrClosed
	}
	if len(dst) == 0 || offset >= d.info.Capacity {
		return 0, nil
	}

	end := d.info.Capacity
	if length > 0 && offset+length < end {
		end = offset + length
	}

	n := len(dst)
	if n > maxReportZones {
		n = maxReportZones
	}

	// uint64 backing keeps the header and descriptors 8-byte aligned.
	buf := make([]uint64, (blkZoneHdrSize+n*blkZoneSize)/8)
	hdr := (*blkZoneReport)(unsafe.Pointer(&buf[0]))
	hdr.Sector = offset >> sectorShift
	hdr.NrZones = uint32(n)

	if err := ioctlPtr(d.fd, blkReportZone, unsafe.Pointer(&buf[0])); err != nil {
		return 0, fmt.Errorf("%s: report zones at %d: %w", d.path, offset, err)
	}

	hasCapacity := hdr.Flags&blkZoneRepCapacity != 0
	descs := unsafe.Slice((*blkZone)(unsafe.Pointer(&buf[blkZoneHdrSize/8])), hdr.NrZones)

	count := 0
	for i := range descs {
		z := descs[i].toZone(hasCapacity)
		if z.Start >= end {
			break
		}
		if !opt.Match(&z) {
			continue
		}
		dst[count] = z
		count++
	}

	debugf("%s: report at %d: %d zones returned, %d kept", d.path, offset, hdr.NrZones, count)
	return count, nil
}

func (d *linuxDevice) Close() error {
	if d.fd < 0 {
		return nil
	}
	err := unix.Close(d.fd)
	d.fd = -1
	if err != nil {
		warnf("%s: close: %v", d.path, err)
		return &os.PathError{Op: "close", Path: d.path, Err: err}
	}
	return nil
}

func ioctlPtr(fd int, req uint, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(req), uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}
