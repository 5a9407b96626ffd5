// Package zbd is a small zoned block device library: it opens a zoned
// device read-only, reports its zones in bounded batches, and exposes
// zone type/condition predicates.
//
// All offsets and lengths are in bytes. The Linux backend talks to the
// block layer through the BLKREPORTZONE family of ioctls and reads the
// zone model from sysfs.
package zbd

import "fmt"

// ZoneType is the kind of a zone.
type ZoneType uint8

const (
	ZoneTypeUnknown      ZoneType = 0x0
	ZoneTypeConventional ZoneType = 0x1
	ZoneTypeSeqRequired  ZoneType = 0x2
	ZoneTypeSeqPreferred ZoneType = 0x3
)

// String returns the short name used in listings.
func (t ZoneType) String() string {
	switch t {
	case ZoneTypeConventional:
		return "cnv"
	case ZoneTypeSeqRequired:
		return "swr"
	case ZoneTypeSeqPreferred:
		return "swp"
	default:
		return "???"
	}
}

// ZoneCondition is the lifecycle state of a zone.
type ZoneCondition uint8

// Condition values follow the block layer encoding. ZoneCondInactive has no
// kernel code of its own; backends that can tell inactive zones apart use it.
const (
	ZoneCondNotWP    ZoneCondition = 0x0
	ZoneCondEmpty    ZoneCondition = 0x1
	ZoneCondImpOpen  ZoneCondition = 0x2
	ZoneCondExpOpen  ZoneCondition = 0x3
	ZoneCondClosed   ZoneCondition = 0x4
	ZoneCondInactive ZoneCondition = 0x5
	ZoneCondReadOnly ZoneCondition = 0xD
	ZoneCondFull     ZoneCondition = 0xE
	ZoneCondOffline  ZoneCondition = 0xF
)

// String returns the short name used in listings.
func (c ZoneCondition) String() string {
	switch c {
	case ZoneCondNotWP:
		return "nw"
	case ZoneCondEmpty:
		return "em"
	case ZoneCondImpOpen:
		return "oi"
	case ZoneCondExpOpen:
		return "oe"
	case ZoneCondClosed:
		return "cl"
	case ZoneCondInactive:
		return "in"
	case ZoneCondReadOnly:
		return "ro"
	case ZoneCondFull:
		return "fu"
	case ZoneCondOffline:
		return "ol"
	default:
		return "??"
	}
}

// Description returns the long, human readable condition name.
func (c ZoneCondition) Description() string {
	switch c {
	case ZoneCondNotWP:
		return "not-write-pointer"
	case ZoneCondEmpty:
		return "empty"
	case ZoneCondImpOpen:
		return "implicit-open"
	case ZoneCondExpOpen:
		return "explicit-open"
	case ZoneCondClosed:
		return "closed"
	case ZoneCondInactive:
		return "inactive"
	case ZoneCondReadOnly:
		return "read-only"
	case ZoneCondFull:
		return "full"
	case ZoneCondOffline:
		return "offline"
	default:
		return fmt.Sprintf("unknown(0x%x)", uint8(c))
	}
}

// ZoneFlags carries per-zone attribute bits.
type ZoneFlags uint8

const (
	ZoneFlagNonSeq ZoneFlags = 1 << iota
	ZoneFlagReset
)

// Zone describes one zone. WP is meaningless for conventional zones and is
// kept at zero for them.
type Zone struct {
	Start    uint64        `json:"start" yaml:"start"`
	Len      uint64        `json:"len" yaml:"len"`
	Capacity uint64        `json:"capacity" yaml:"capacity"`
	WP       uint64        `json:"wp" yaml:"wp"`
	Type     ZoneType      `json:"type" yaml:"type"`
	Cond     ZoneCondition `json:"cond" yaml:"cond"`
	Flags    ZoneFlags     `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// IsConventional reports whether the zone has no write pointer.
func (z *Zone) IsConventional() bool { return z.Type == ZoneTypeConventional }

// IsSeqRequired reports whether the zone is sequential-write-required.
func (z *Zone) IsSeqRequired() bool { return z.Type == ZoneTypeSeqRequired }

// IsSeqPreferred reports whether the zone is sequential-write-preferred.
func (z *Zone) IsSeqPreferred() bool { return z.Type == ZoneTypeSeqPreferred }

// IsSequential reports whether the zone has a write pointer.
func (z *Zone) IsSequential() bool { return z.IsSeqRequired() || z.IsSeqPreferred() }

func (z *Zone) IsEmpty() bool    { return z.Cond == ZoneCondEmpty }
func (z *Zone) IsFull() bool     { return z.Cond == ZoneCondFull }
func (z *Zone) IsClosed() bool   { return z.Cond == ZoneCondClosed }
func (z *Zone) IsReadOnly() bool { return z.Cond == ZoneCondReadOnly }
func (z *Zone) IsOffline() bool  { return z.Cond == ZoneCondOffline }
func (z *Zone) IsInactive() bool { return z.Cond == ZoneCondInactive }

// IsOpen reports whether the zone is implicitly or explicitly open.
func (z *Zone) IsOpen() bool {
	return z.Cond == ZoneCondImpOpen || z.Cond == ZoneCondExpOpen
}

// End returns the offset just past the zone.
func (z *Zone) End() uint64 { return z.Start + z.Len }

// Written returns how much of the zone capacity holds data. Conventional
// and full zones count as completely written.
func (z *Zone) Written() uint64 {
	switch {
	case z.IsConventional(), z.IsFull():
		return z.Capacity
	case z.IsEmpty(), z.IsOffline(), z.WP < z.Start:
		return 0
	}
	used := z.WP - z.Start
	if used > z.Capacity {
		return z.Capacity
	}
	return used
}

// ReportOption filters the zones returned by a report.
type ReportOption uint8

const (
	ReportAll ReportOption = iota
	ReportEmpty
	ReportImpOpen
	ReportExpOpen
	ReportClosed
	ReportFull
	ReportReadOnly
	ReportOffline
	ReportNotWP
)

// Match reports whether z passes the filter.
func (o ReportOption) Match(z *Zone) bool {
	switch o {
	case ReportAll:
		return true
	case ReportEmpty:
		return z.Cond == ZoneCondEmpty
	case ReportImpOpen:
		return z.Cond == ZoneCondImpOpen
	case ReportExpOpen:
		return z.Cond == ZoneCondExpOpen
	case ReportClosed:
		return z.Cond == ZoneCondClosed
	case ReportFull:
		return z.Cond == ZoneCondFull
	case ReportReadOnly:
		return z.Cond == ZoneCondReadOnly
	case ReportOffline:
		return z.Cond == ZoneCondOffline
	case ReportNotWP:
		return z.Cond == ZoneCondNotWP
	}
	return false
}
