package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pkg/errors"

	"github.com/YoniEastwood/AuthSim-Research/internal/model"
)

var cellStyle = lipgloss.NewStyle().Align(lipgloss.Right)

// Table builds the console table: one header row, no index column, borders hidden
// so that only aligned columns separated by spaces remain.
func Table(rows []model.SummaryRow) *table.Table {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, cells(r, consoleFloat))
	}

	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(true).
		Headers(model.SummaryHeader...).
		Rows(data...).
		StyleFunc(func(_, _ int) lipgloss.Style {
			return cellStyle
		})
}

// RenderTable writes the console table for rows to w.
func RenderTable(w io.Writer, rows []model.SummaryRow) error {
	if _, err := fmt.Fprintln(w, Table(rows).Render()); err != nil {
		return errors.Wrap(err, "render summary table")
	}
	return nil
}
