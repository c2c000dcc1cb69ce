package report

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/YoniEastwood/AuthSim-Research/internal/model"
)

const defaultFileMode = 0644

// WriteCSV writes the header and one record per row to w.
func WriteCSV(w io.Writer, rows []model.SummaryRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(model.SummaryHeader); err != nil {
		return errors.Wrap(err, "write summary header")
	}
	for _, r := range rows {
		if err := cw.Write(cells(r, fileFloat)); err != nil {
			return errors.Wrapf(err, "write summary row %q", r.FileName)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush summary")
}

// WriteCSVFile replaces path with the summary table. The file is written to a
// temporary sibling, synced and renamed over path.
func WriteCSVFile(path string, rows []model.SummaryRow) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create summary tmp")
	}
	tmpPath := tmp.Name()

	if err := WriteCSV(tmp, rows); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "sync summary tmp")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "close summary tmp")
	}
	if err := os.Chmod(tmpPath, defaultFileMode); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "chmod summary tmp")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "rename summary file")
	}
	return nil
}
