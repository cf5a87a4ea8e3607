package cli

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
)

// newTable builds a borderless table in the compact style used for all
// list output.
func newTable(out io.Writer, headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.SetHeader(headers)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetColumnSeparator("")
	table.SetTablePadding("  ")
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func formatHours(hours float64) string {
	return fmt.Sprintf("%.2fh", hours)
}

func formatPercent(percent float64) string {
	return fmt.Sprintf("%.0f%%", percent)
}

func formatOptionalRate(rate *decimal.Decimal) string {
	if rate == nil {
		return "-"
	}
	return rate.StringFixed(2)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
