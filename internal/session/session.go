// Package session owns an open zoned device and the zone array shown by
// the dashboard.
//
// A Session is created at startup, filled by one full ListAllZones, then
// refreshed window by window from the event loop. It is not safe for
// concurrent use: every call is expected to come from the same loop.
package session

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/zbdtop/internal/errors"
	"github.com/rileyhilliard/zbdtop/internal/logger"
	"github.com/rileyhilliard/zbdtop/internal/zbd"
)

// DefaultBatch is the number of zones requested per report round.
const DefaultBatch = 4096

// Options configures a Session.
type Options struct {
	// Divisor is the display unit in bytes. 0 and 1 both mean bytes.
	Divisor uint64

	// Batch caps the zones requested per report call (0 = DefaultBatch).
	Batch int

	// Opener opens the device (nil = zbd.Open).
	Opener zbd.Opener

	Logger logger.Logger
}

// Session is one open device and its normalized zones.
type Session struct {
	path    string
	divisor uint64
	batch   int
	log     logger.Logger

	dev  zbd.Device
	info zbd.Info

	zones   []zbd.Zone // normalized, indexed by zone number
	scratch []zbd.Zone // report buffer reused across rounds and refreshes

	nrConv int
	nrSeq  int
}

// Open opens path read-only and validates the divisor against the zone
// size. No zones are read yet.
func Open(path string, opts Options) (*Session, error) {
	if opts.Opener == nil {
		opts.Opener = zbd.Open
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewEnvLogger("[session]")
	}
	if opts.Divisor == 0 {
		opts.Divisor = 1
	}
	if opts.Batch <= 0 {
		opts.Batch = DefaultBatch
	}

	dev, err := opts.Opener(path)
	if err != nil {
		return nil, openError(path, err)
	}

	info := dev.Info()
	if opts.Divisor > 1 && info.ZoneSize%opts.Divisor != 0 {
		_ = dev.Close()
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid block size %d", opts.Divisor),
			fmt.Sprintf("The zone size of %s is %d B (%s); pick a block size that divides it.",
				path, info.ZoneSize, humanize.IBytes(info.ZoneSize)))
	}

	opts.Logger.Debug("opened %s: %s, %d zones, zone size %s",
		path, info.Model, info.NrZones, humanize.IBytes(info.ZoneSize))

	return &Session{
		path:    path,
		divisor: opts.Divisor,
		batch:   opts.Batch,
		log:     opts.Logger,
		dev:     dev,
		info:    info,
	}, nil
}

// openError maps a zone library open failure to a DEVICE error with a hint.
func openError(path string, err error) error {
	suggestion := "Check that the path names a zoned block device."
	switch {
	case stderrors.Is(err, zbd.ErrNotZoned):
		suggestion = "The device reports zoned=none in sysfs; zbdtop only monitors host-managed or host-aware devices."
	case stderrors.Is(err, zbd.ErrNotBlockDevice):
		suggestion = "Pass a block device node such as /dev/nullb0 or /dev/nvme0n2."
	case stderrors.Is(err, os.ErrPermission):
		suggestion = "Opening block devices usually needs root; try again with sudo."
	case stderrors.Is(err, os.ErrNotExist):
		suggestion = "Double-check the device path."
	case stderrors.Is(err, zbd.ErrNotSupported):
		suggestion = "zbdtop needs Linux zoned block device support."
	}
	return errors.WrapWithCode(err, errors.ErrDevice,
		fmt.Sprintf("Open %s failed", path), suggestion)
}

// ListAllZones reads every zone of the device, issuing as many bounded
// report calls as needed. Each round starts right after the zones already
// retrieved. The zone array is only reallocated when the zone count changes.
func (s *Session) ListAllZones() ([]zbd.Zone, error) {
	if s.dev == nil {
		return nil, reportError(s.path, zbd.ErrClosed)
	}

	target := int(s.info.NrZones)
	zones := s.zones[:0]
	if cap(zones) != target {
		zones = make([]zbd.Zone, 0, target)
	}

	var offset uint64
	for len(zones) < target {
		want := target - len(zones)
		if want > s.batch {
			want = s.batch
		}
		buf := s.reportBuf(want)

		n, err := s.dev.ReportZones(offset, 0, zbd.ReportAll, buf)
		if err != nil {
			return nil, reportError(s.path, err)
		}
		if n == 0 {
			break
		}

		last := buf[n-1]
		offset = last.Start + last.Len
		NormalizeAll(buf[:n], s.divisor)
		zones = append(zones, buf[:n]...)
	}

	if len(zones) < target {
		s.log.Warn("%s: device reports %d zones but only %d were listed", s.path, target, len(zones))
	}

	s.zones = zones
	s.nrConv, s.nrSeq = 0, 0
	for i := range s.zones {
		if s.zones[i].IsConventional() {
			s.nrConv++
		} else {
			s.nrSeq++
		}
	}

	s.log.Debug("%s: listed %d zones (%d conventional, %d sequential)",
		s.path, len(s.zones), s.nrConv, s.nrSeq)
	return s.zones, nil
}

// RefreshWindow re-reads zones [start, start+count), clipped at the last
// zone, and overwrites them in place. It returns how many zones were
// refreshed. On error nothing stored is modified.
func (s *Session) RefreshWindow(start, count int) (int, error) {
	if s.dev == nil {
		return 0, reportError(s.path, zbd.ErrClosed)
	}

	nr := len(s.zones)
	if start < 0 || start >= nr || count <= 0 {
		return 0, nil
	}
	if start+count > nr {
		count = nr - start
	}

	buf := s.reportBuf(count)
	offset := Denormalize(s.zones[start].Start, s.divisor)
	end := offset + uint64(count)*s.info.ZoneSize

	got := 0
	for got < count && offset < end {
		n, err := s.dev.ReportZones(offset, end-offset, zbd.ReportAll, buf[got:count])
		if err != nil {
			return 0, reportError(s.path, err)
		}
		if n == 0 {
			break
		}
		last := buf[got+n-1]
		offset = last.Start + last.Len
		got += n
	}

	NormalizeAll(buf[:got], s.divisor)
	for i := 0; i < got; i++ {
		if buf[i].Start != s.zones[start+i].Start {
			return 0, errors.New(errors.ErrReport,
				fmt.Sprintf("Zone %d moved from %d to %d", start+i, s.zones[start+i].Start, buf[i].Start),
				"The zone layout changed under zbdtop; restart it.")
		}
	}
	copy(s.zones[start:start+got], buf[:got])

	return got, nil
}

// reportBuf returns a scratch slice of n zones.
func (s *Session) reportBuf(n int) []zbd.Zone {
	if cap(s.scratch) < n {
		s.scratch = make([]zbd.Zone, n)
	}
	return s.scratch[:n]
}

func reportError(path string, err error) error {
	return errors.WrapWithCode(err, errors.ErrReport,
		fmt.Sprintf("Get zone information of %s failed", path), "")
}

// Close releases the device and the zone array. Calling it again is a no-op.
func (s *Session) Close() error {
	if s.dev == nil {
		return nil
	}
	err := s.dev.Close()
	s.dev = nil
	s.zones = nil
	s.scratch = nil
	s.log.Debug("closed %s", s.path)
	return err
}

// IsOpen reports whether the device handle is still held.
func (s *Session) IsOpen() bool { return s.dev != nil }

// Path returns the device path.
func (s *Session) Path() string { return s.path }

// Info returns the device geometry captured at open time.
func (s *Session) Info() zbd.Info { return s.info }

// Divisor returns the display unit in bytes.
func (s *Session) Divisor() uint64 { return s.divisor }

// Zones returns the normalized zones. The slice is owned by the session
// and must not be modified.
func (s *Session) Zones() []zbd.Zone { return s.zones }

// NrZones returns the number of listed zones.
func (s *Session) NrZones() int { return len(s.zones) }

// NrConvZones returns the number of conventional zones.
func (s *Session) NrConvZones() int { return s.nrConv }

// NrSeqZones returns the number of sequential zones.
func (s *Session) NrSeqZones() int { return s.nrSeq }
