package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/zbdtop/internal/errors"
	"github.com/rileyhilliard/zbdtop/internal/session"
	"github.com/rileyhilliard/zbdtop/internal/ui"
	"github.com/rileyhilliard/zbdtop/internal/zbd"
	"github.com/spf13/cobra"
)

// conditionOrder is the order conditions are listed in by 'zbdtop info'.
var conditionOrder = []zbd.ZoneCondition{
	zbd.ZoneCondNotWP,
	zbd.ZoneCondEmpty,
	zbd.ZoneCondImpOpen,
	zbd.ZoneCondExpOpen,
	zbd.ZoneCondClosed,
	zbd.ZoneCondFull,
	zbd.ZoneCondInactive,
	zbd.ZoneCondReadOnly,
	zbd.ZoneCondOffline,
}

// deviceReport is the output of 'zbdtop info'.
type deviceReport struct {
	Device string `json:"device" yaml:"device"`
	Model  string `json:"model" yaml:"model"`

	zbd.Info `yaml:",inline"`

	NrConvZones int            `json:"nr_conv_zones" yaml:"nr_conv_zones"`
	NrSeqZones  int            `json:"nr_seq_zones" yaml:"nr_seq_zones"`
	OpenZones   int            `json:"open_zones" yaml:"open_zones"`
	ActiveZones int            `json:"active_zones" yaml:"active_zones"`
	Conditions  map[string]int `json:"conditions" yaml:"conditions"`
}

func newInfoCmd() *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "info <device>",
		Short: "Show device geometry and a zone condition summary",
		Long: `Open a zoned block device, read its zones once and print the device
geometry (model, capacity, zone size, open and active zone limits)
followed by how many zones are in each condition.

Examples:
  zbdtop info /dev/nullb0
  zbdtop info --json /dev/nvme0n2`,
		Args:          requireDevice,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return infoCommand(cmd, args[0], jsonFlag)
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "output as JSON")
	return cmd
}

func infoCommand(cmd *cobra.Command, device string, asJSON bool) error {
	out := cmd.OutOrStdout()

	report, err := describeDevice(cmd, device)
	if err != nil {
		if asJSON {
			_ = WriteJSONFromError(out, err)
			return errors.NewExitError(1)
		}
		return err
	}

	if asJSON {
		return WriteJSONSuccess(out, report)
	}
	return writeDeviceReport(out, report)
}

func describeDevice(cmd *cobra.Command, device string) (*deviceReport, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	sess, err := openZones(device, cfg)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	return buildReport(sess), nil
}

func buildReport(sess *session.Session) *deviceReport {
	info := sess.Info()
	r := &deviceReport{
		Device:      sess.Path(),
		Model:       info.Model.String(),
		Info:        info,
		NrConvZones: sess.NrConvZones(),
		NrSeqZones:  sess.NrSeqZones(),
		Conditions:  make(map[string]int),
	}

	zones := sess.Zones()
	for i := range zones {
		z := &zones[i]
		r.Conditions[z.Cond.Description()]++
		if z.IsOpen() {
			r.OpenZones++
		}
		if z.IsOpen() || z.IsClosed() {
			r.ActiveZones++
		}
	}
	return r
}

func writeDeviceReport(w io.Writer, r *deviceReport) error {
	device := []ui.KeyValueRow{
		{Key: "path", Value: r.Device},
		{Key: "vendor", Value: r.VendorID},
		{Status: ui.StatusInfo, Key: "model", Value: r.Model},
		{Key: "capacity", Value: fmt.Sprintf("%s (%d B)", humanize.IBytes(r.Capacity), r.Capacity)},
		{Key: "zone size", Value: fmt.Sprintf("%s (%d B)", humanize.IBytes(r.ZoneSize), r.ZoneSize)},
		{Key: "zones", Value: fmt.Sprintf("%d (%d cnv, %d seq)", r.NrZones, r.NrConvZones, r.NrSeqZones)},
		{Key: "block size", Value: fmt.Sprintf("%d B logical, %d B physical", r.LogicalBlockSize, r.PhysicalBlockSize)},
		limitRow("open zones", r.OpenZones, r.MaxOpenZones),
		limitRow("active zones", r.ActiveZones, r.MaxActiveZones),
	}

	var conds []ui.KeyValueRow
	for _, c := range conditionOrder {
		n := r.Conditions[c.Description()]
		if n == 0 {
			continue
		}
		status := ui.StatusOK
		if c == zbd.ZoneCondReadOnly || c == zbd.ZoneCondOffline {
			status = ui.StatusFail
		}
		conds = append(conds, ui.KeyValueRow{
			Status: status,
			Key:    c.Description(),
			Value:  humanize.Comma(int64(n)),
		})
	}

	if _, err := fmt.Fprint(w, ui.RenderKeyValues("Device", device)); err != nil {
		return err
	}
	if len(conds) == 0 {
		return nil
	}
	_, err := fmt.Fprint(w, "\n"+ui.RenderKeyValues("Zone conditions", conds))
	return err
}

// limitRow shows n against a device limit; 0 means the device has none.
func limitRow(key string, n int, limit uint32) ui.KeyValueRow {
	if limit == 0 {
		return ui.KeyValueRow{Key: key, Value: fmt.Sprintf("%d (no limit)", n)}
	}
	status := ui.StatusOK
	if uint32(n) >= limit {
		status = ui.StatusWarn
	}
	return ui.KeyValueRow{Status: status, Key: key, Value: fmt.Sprintf("%d / %d", n, limit)}
}
