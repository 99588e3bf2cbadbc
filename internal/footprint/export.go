package footprint

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/banshee-data/survey-planner/internal/fsutil"
	"github.com/banshee-data/survey-planner/internal/monitoring"
	"github.com/banshee-data/survey-planner/internal/security"
	"github.com/banshee-data/survey-planner/internal/survey"
)

// ExportOptions controls whether and where the table is written.
type ExportOptions struct {
	Enabled   bool
	OutputDir string
	TableName string // ".csv" is appended
}

// Exporter writes footprint tables as comma-delimited files.
type Exporter struct {
	fs   fsutil.FileSystem
	opts ExportOptions
}

// NewExporter returns an Exporter writing through fs (the OS filesystem when
// nil).
func NewExporter(fs fsutil.FileSystem, opts ExportOptions) *Exporter {
	if fs == nil {
		fs = fsutil.OSFileSystem{}
	}
	return &Exporter{fs: fs, opts: opts}
}

// Export writes t and returns the file path. A disabled exporter writes
// nothing and returns "". Every failure wraps survey.ErrIO.
func (e *Exporter) Export(t *Table) (string, error) {
	if !e.opts.Enabled {
		return "", nil
	}
	dir := e.opts.OutputDir
	if dir == "" {
		dir = "."
	}
	path, err := security.ExportPath(dir, e.opts.TableName, ".csv")
	if err != nil {
		return "", survey.IOError("resolve export path", err)
	}
	if err := e.fs.MkdirAll(dir, 0755); err != nil {
		return "", survey.IOError("create output directory", err)
	}

	f, err := e.fs.Create(path)
	if err != nil {
		return "", survey.IOError("create "+path, err)
	}
	if err := WriteCSV(f, t); err != nil {
		f.Close()
		return "", survey.IOError("write "+path, err)
	}
	if err := f.Close(); err != nil {
		return "", survey.IOError("close "+path, err)
	}

	monitoring.Debugf("exported %d rows to %s", t.Len(), path)
	return path, nil
}

// WriteCSV writes the header and one record per row of t to w.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range t.rows {
		if err := cw.Write(formatRow(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadTable parses a table written by WriteCSV back into rows.
func ReadTable(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty table")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i, name := range Header {
		if header[i] != name {
			return nil, fmt.Errorf("unexpected column %d: got %q, want %q", i, header[i], name)
		}
	}

	var rows []Row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(rec []string) (Row, error) {
	elev, err := strconv.Atoi(rec[0])
	if err != nil {
		return Row{}, fmt.Errorf("invalid %s %q: %w", ColElevation, rec[0], err)
	}
	var vals [4]float64
	for i := range vals {
		v, err := strconv.ParseFloat(rec[i+1], 64)
		if err != nil {
			return Row{}, fmt.Errorf("invalid %s %q: %w", Header[i+1], rec[i+1], err)
		}
		vals[i] = v
	}
	return Row{
		Elevation:  elev,
		HFootprint: vals[0],
		VFootprint: vals[1],
		GSD:        vals[2],
		DEMGSD:     vals[3],
	}, nil
}
