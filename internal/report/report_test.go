package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YoniEastwood/AuthSim-Research/internal/model"
)

func sampleRows() []model.SummaryRow {
	nan := math.NaN()
	return []model.SummaryRow{
		{
			FileName:       "run1.csv",
			RuntimeMinutes: 0.33,
			TotalAttempts:  3,
			Successful:     2,
			SuccessRate:    66.67,
			RatePerSecond:  0.15,
			LatencyMean:    200,
			LatencyMedian:  200,
			Latency90:      280,
			Latency95:      290,
			MemoryMean:     128.5,
			CPULoadMean:    35,
		},
		{
			FileName:    "run2.csv",
			LatencyMean: nan, LatencyMedian: nan, Latency90: nan, Latency95: nan,
			MemoryMean: nan, CPULoadMean: nan,
		},
	}
}

const expectedHeader = "File Name,Runtime (min),Total Attempts,Successful,Success Rate (%),Rate (req/sec),Latency Mean,Latency Median,Latency 90%,Latency 95%,Avg Memory (MB),Avg CPU Load (%)"

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRows()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, expectedHeader, lines[0])
	assert.Equal(t, "run1.csv,0.33,3,2,66.67,0.15,200.0,200.0,280.0,290.0,128.5,35.0", lines[1])
	assert.Equal(t, "run2.csv,0.0,0,0,0.0,0.0,,,,,,", lines[2])
}

func TestWriteCSV_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, expectedHeader+"\n", buf.String())
}

func TestWriteCSVFile_Overwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, model.DefaultOutputFile)
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	require.NoError(t, WriteCSVFile(path, sampleRows()[:1]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), expectedHeader+"\n"))
	assert.NotContains(t, string(data), "stale")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestWriteCSVFile_MissingDir(t *testing.T) {
	err := WriteCSVFile(filepath.Join(t.TempDir(), "absent", "out.csv"), sampleRows())
	assert.Error(t, err)
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderTable(&buf, sampleRows()))

	out := strings.TrimRight(buf.String(), "\n")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3, "header plus one line per row:\n%s", out)

	for _, h := range model.SummaryHeader {
		assert.Contains(t, lines[0], h)
	}
	assert.Contains(t, lines[1], "run1.csv")
	assert.Contains(t, lines[1], "66.67")
	assert.Contains(t, lines[1], "280.00")
	assert.Contains(t, lines[2], "run2.csv")
	assert.Contains(t, lines[2], "NaN")

	width := lipgloss.Width(lines[0])
	for _, l := range lines[1:] {
		assert.Equal(t, width, lipgloss.Width(l), "rows are not fixed width:\n%s", out)
	}
}

func TestFileFloat(t *testing.T) {
	assert.Equal(t, "0.0", fileFloat(0))
	assert.Equal(t, "12.0", fileFloat(12))
	assert.Equal(t, "66.67", fileFloat(66.67))
	assert.Equal(t, "", fileFloat(math.NaN()))
	assert.Equal(t, "NaN", consoleFloat(math.NaN()))
	assert.Equal(t, "0.15", consoleFloat(0.15))
}
