package outwriter

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/huangsam/trendplot/internal/contract"
	"github.com/huangsam/trendplot/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintSeriesStatus prints which series of a chart were drawn, skipped or empty.
func PrintSeriesStatus(statuses []schema.SeriesStatus, cfg *contract.Config) error {
	if len(statuses) == 0 {
		return nil
	}
	if err := writeSeriesStatus(os.Stdout, statuses, cfg); err != nil {
		return fmt.Errorf("error writing series status: %w", err)
	}
	return nil
}

// writeSeriesStatus renders one line per series with its status label and point count.
func writeSeriesStatus(w io.Writer, statuses []schema.SeriesStatus, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Series", "Status", "Points"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableCellWidth(cfg, 1)
	data := make([][]string, 0, len(statuses))
	drawn := 0
	for _, s := range statuses {
		label := s.Status
		if cfg.UseColors {
			label = contract.GetColorLabel(s.Status)
		}
		if s.Status == contract.DrawnValue {
			drawn++
		}
		data = append(data, []string{
			contract.TruncateText(s.Name, nameWidth),
			label,
			strconv.Itoa(s.Points),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Drew %d of %d series\n", drawn, len(statuses))
	return err
}
