package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/zbdtop/internal/errors"
	"github.com/rileyhilliard/zbdtop/internal/session"
	"github.com/rileyhilliard/zbdtop/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats for the one-shot commands.
const (
	formatText = "text"
	formatYAML = "yaml"
	formatJSON = "json"
)

// zoneRecord is one zone in a listing, in the display unit.
type zoneRecord struct {
	Zno      int     `json:"zno" yaml:"zno"`
	Type     string  `json:"type" yaml:"type"`
	Cond     string  `json:"cond" yaml:"cond"`
	Start    uint64  `json:"start" yaml:"start"`
	Len      uint64  `json:"len" yaml:"len"`
	Capacity uint64  `json:"capacity" yaml:"capacity"`
	WP       *uint64 `json:"wp,omitempty" yaml:"wp,omitempty"`
	Written  uint64  `json:"written" yaml:"written"`
}

// zoneListing is the full output of 'zbdtop zones'.
type zoneListing struct {
	Device      string       `json:"device" yaml:"device"`
	Model       string       `json:"model" yaml:"model"`
	Unit        uint64       `json:"unit" yaml:"unit"`
	NrConvZones int          `json:"nr_conv_zones" yaml:"nr_conv_zones"`
	NrSeqZones  int          `json:"nr_seq_zones" yaml:"nr_seq_zones"`
	Zones       []zoneRecord `json:"zones" yaml:"zones"`
}

func newZonesCmd() *cobra.Command {
	var (
		format   string
		jsonFlag bool
	)

	cmd := &cobra.Command{
		Use:   "zones <device>",
		Short: "List every zone once and exit",
		Long: `Read all zones of a zoned block device once and print them.

Unlike the dashboard this does not need a terminal, so it works in
scripts and pipes. Offsets and sizes use the --block display unit.

Examples:
  zbdtop zones /dev/nullb0
  zbdtop zones -b 4096 --format yaml /dev/nvme0n2
  zbdtop zones --json /dev/sdb | jq '.data.zones[] | select(.cond == "full")'`,
		Args:          requireDevice,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonFlag {
				format = formatJSON
			}
			return zonesCommand(cmd, args[0], format)
		},
	}

	addBlockFlag(cmd)
	cmd.Flags().StringVar(&format, "format", formatText, "output format: text, yaml or json")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "shorthand for --format json")
	return cmd
}

func zonesCommand(cmd *cobra.Command, device, format string) error {
	out := cmd.OutOrStdout()

	listing, err := listZones(cmd, device, format)
	if err != nil {
		if format == formatJSON {
			_ = WriteJSONFromError(out, err)
			return errors.NewExitError(1)
		}
		return err
	}

	switch format {
	case formatJSON:
		return WriteJSONSuccess(out, listing)
	case formatYAML:
		return writeYAML(out, listing)
	default:
		return writeZoneTable(out, listing)
	}
}

func listZones(cmd *cobra.Command, device, format string) (*zoneListing, error) {
	if err := checkFormat(format); err != nil {
		return nil, err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	sess, err := openZones(device, cfg)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	return buildListing(sess), nil
}

func checkFormat(format string) error {
	switch format {
	case formatText, formatYAML, formatJSON:
		return nil
	}
	return errors.New(errors.ErrConfig,
		fmt.Sprintf("Unknown output format %q", format),
		"Use text, yaml or json.")
}

func buildListing(sess *session.Session) *zoneListing {
	zones := sess.Zones()
	listing := &zoneListing{
		Device:      sess.Path(),
		Model:       sess.Info().Model.String(),
		Unit:        sess.Divisor(),
		NrConvZones: sess.NrConvZones(),
		NrSeqZones:  sess.NrSeqZones(),
		Zones:       make([]zoneRecord, len(zones)),
	}

	for i := range zones {
		z := &zones[i]
		rec := zoneRecord{
			Zno:      i,
			Type:     z.Type.String(),
			Cond:     z.Cond.Description(),
			Start:    z.Start,
			Len:      z.Len,
			Capacity: z.Capacity,
			Written:  z.Written(),
		}
		if !z.IsConventional() {
			wp := z.WP
			rec.WP = &wp
		}
		listing.Zones[i] = rec
	}
	return listing
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

var zoneColumns = []ui.TableColumn{
	{Title: "Zone", Width: 7},
	{Title: "Type", Width: 5},
	{Title: "Cond", Width: 18},
	{Title: "Start", Width: 14},
	{Title: "Len", Width: 12},
	{Title: "Cap", Width: 12},
	{Title: "WP", Width: 14},
	{Title: "Used", Width: 5},
}

func writeZoneTable(w io.Writer, l *zoneListing) error {
	fmt.Fprintf(w, "%s: %s, %d zones (%d cnv, %d seq), unit %s\n",
		l.Device, l.Model, len(l.Zones), l.NrConvZones, l.NrSeqZones, unitLabel(l.Unit))

	if len(l.Zones) == 0 {
		_, err := fmt.Fprintln(w, "No zones")
		return err
	}

	rows := make([][]string, len(l.Zones))
	for i, z := range l.Zones {
		wp := "-"
		if z.WP != nil {
			wp = strconv.FormatUint(*z.WP, 10)
		}
		rows[i] = []string{
			strconv.Itoa(z.Zno),
			z.Type,
			z.Cond,
			strconv.FormatUint(z.Start, 10),
			strconv.FormatUint(z.Len, 10),
			strconv.FormatUint(z.Capacity, 10),
			wp,
			usedPercent(z.Written, z.Capacity),
		}
	}

	_, err := fmt.Fprintln(w, ui.RenderSimpleTable(zoneColumns, rows))
	return err
}

func unitLabel(unit uint64) string {
	if unit <= 1 {
		return "B"
	}
	return humanize.IBytes(unit)
}

func usedPercent(written, capacity uint64) string {
	if capacity == 0 {
		return "-"
	}
	return fmt.Sprintf("%d%%", written*100/capacity)
}
