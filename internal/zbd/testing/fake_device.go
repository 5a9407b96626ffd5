// Package testing provides test doubles for the zbd package.
package testing

import (
	"errors"
	"sync"

	"github.com/rileyhilliard/zbdtop/internal/zbd"
)

// ReportCall records a call to ReportZones.
type ReportCall struct {
	Offset uint64
	Length uint64
	Option zbd.ReportOption
	Max    int
	Count  int
	Failed bool
}

// FakeDevice is an in-memory zoned device.
type FakeDevice struct {
	mu sync.Mutex

	// Configuration
	DeviceInfo zbd.Info
	Zones      []zbd.Zone // raw byte-unit zones, ascending
	MaxBatch   int        // caps zones returned per ReportZones call (0 = no cap)
	FailReport bool
	FailError  error
	CloseError error

	// Call tracking
	ReportCalls []ReportCall
	CloseCalls  int
	closed      bool
}

// NewFakeDevice builds a device of nrConv conventional zones followed by
// nrSeq empty sequential-write-required zones, each zoneSize bytes long.
func NewFakeDevice(zoneSize uint64, nrConv, nrSeq int) *FakeDevice {
	nr := nrConv + nrSeq
	zones := make([]zbd.Zone, nr)
	for i := range zones {
		start := uint64(i) * zoneSize
		z := zbd.Zone{
			Start:    start,
			Len:      zoneSize,
			Capacity: zoneSize,
		}
		if i < nrConv {
			z.Type = zbd.ZoneTypeConventional
			z.Cond = zbd.ZoneCondNotWP
		} else {
			z.Type = zbd.ZoneTypeSeqRequired
			z.Cond = zbd.ZoneCondEmpty
			z.WP = start
		}
		zones[i] = z
	}

	return &FakeDevice{
		DeviceInfo: zbd.Info{
			VendorID:          "Fake ZBD",
			Model:             zbd.ModelHostManaged,
			Capacity:          uint64(nr) * zoneSize,
			LogicalBlockSize:  512,
			PhysicalBlockSize: 4096,
			ZoneSize:          zoneSize,
			NrZones:           uint32(nr),
		},
		Zones: zones,
	}
}

// Opener returns a zbd.Opener that hands out this device for any path.
func (d *FakeDevice) Opener() zbd.Opener {
	return func(string) (zbd.Device, error) {
		return d, nil
	}
}

// Write advances zone i's write pointer by n bytes, updating its condition
// the way a sequential write would.
func (d *FakeDevice) Write(i int, n uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	z := &d.Zones[i]
	if z.IsConventional() {
		return
	}
	z.WP += n
	if z.WP >= z.Start+z.Capacity {
		z.WP = z.Start + z.Len
		z.Cond = zbd.ZoneCondFull
		return
	}
	z.Cond = zbd.ZoneCondImpOpen
}

// SetCondition forces zone i into cond.
func (d *FakeDevice) SetCondition(i int, cond zbd.ZoneCondition) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Zones[i].Cond = cond
}

// Closed reports whether Close has been called.
func (d *FakeDevice) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

func (d *FakeDevice) Info() zbd.Info {
	return d.DeviceInfo
}

func (d *FakeDevice) ReportZones(offset, length uint64, opt zbd.ReportOption, dst []zbd.Zone) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	call := ReportCall{Offset: offset, Length: length, Option: opt, Max: len(dst)}

	if d.closed {
		call.Failed = true
		d.ReportCalls = append(d.ReportCalls, call)
		return 0, zbd.ErrClosed
	}
	if d.FailReport {
		call.Failed = true
		d.ReportCalls = append(d.ReportCalls, call)
		if d.FailError != nil {
			return 0, d.FailError
		}
		return 0, errors.New("injected report failure")
	}

	limit := len(dst)
	if d.MaxBatch > 0 && d.MaxBatch < limit {
		limit = d.MaxBatch
	}
	end := d.DeviceInfo.Capacity
	if length > 0 && offset+length < end {
		end = offset + length
	}

	count := 0
	for i := range d.Zones {
		if count == limit {
			break
		}
		z := d.Zones[i]
		if z.End() <= offset {
			continue
		}
		if z.Start >= end {
			break
		}
		if !opt.Match(&z) {
			continue
		}
		dst[count] = z
		count++
	}

	call.Count = count
	d.ReportCalls = append(d.ReportCalls, call)
	return count, nil
}

func (d *FakeDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.CloseCalls++
	d.closed = true
	return d.CloseError
}

// ResetCalls clears recorded calls.
func (d *FakeDevice) ResetCalls() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ReportCalls = nil
}
