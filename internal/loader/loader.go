// Package loader discovers export files in a data directory and reads them
// into string records keyed by column name.
//
// Each source has a required-column contract. A file that is present but
// lacks one of its required columns yields a *MissingColumnError for that
// source only; the other sources load independently.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rewired-gh/linkedlens/internal/logger"
	"github.com/rewired-gh/linkedlens/internal/models"
)

// ErrMissingColumn is matched by every *MissingColumnError.
var ErrMissingColumn = errors.New("missing required column")

// MissingColumnError reports a required column absent from a source file.
type MissingColumnError struct {
	Source models.Source
	Path   string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: column %q not found in %s", e.Source, e.Column, e.Path)
}

// Is makes errors.Is(err, ErrMissingColumn) true.
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// Record is one CSV row keyed by trimmed header name.
type Record map[string]string

// Get returns the trimmed value of column, empty when absent.
func (r Record) Get(column string) string {
	return strings.TrimSpace(r[column])
}

// Spec describes where a source lives and which columns it must carry.
type Spec struct {
	Source   models.Source
	RelPath  string
	Required []string
}

var specs = []Spec{
	{Source: models.SourceReactions, RelPath: "Reactions.csv", Required: []string{"Date"}},
	{Source: models.SourceComments, RelPath: "Comments.csv", Required: []string{"Date"}},
	{Source: models.SourcePositions, RelPath: "Positions.csv", Required: []string{"Started On", "Finished On", "Title", "Company Name"}},
	{Source: models.SourceConnections, RelPath: "Connections.csv", Required: []string{"Connected On"}},
	{Source: models.SourceSavedJobs, RelPath: filepath.Join("jobs", "Saved Jobs.csv"), Required: []string{"Saved Date", "Company Name", "Job Title"}},
}

// Specs returns the contract of every analysed source.
func Specs() []Spec {
	out := make([]Spec, len(specs))
	copy(out, specs)
	return out
}

// SpecFor returns the contract of src.
func SpecFor(src models.Source) (Spec, bool) {
	for _, s := range specs {
		if s.Source == src {
			return s, true
		}
	}
	return Spec{}, false
}

// expectedFiles lists every export file reported in the status display,
// including the ones no analysis reads.
var expectedFiles = []struct {
	name    string
	relPath string
}{
	{"Reactions", "Reactions.csv"},
	{"Comments", "Comments.csv"},
	{"Positions", "Positions.csv"},
	{"Connections", "Connections.csv"},
	{"Profile", "Profile.csv"},
	{"Profile Summary", "Profile Summary.csv"},
	{"Messages", "messages.csv"},
	{"Logins", "Logins.csv"},
	{"Events", "Events.csv"},
	{"Saved Jobs", filepath.Join("jobs", "Saved Jobs.csv")},
}

// DetectFiles reports which expected export files exist under dir.
// Lookups are case-insensitive on the file name.
func DetectFiles(dir string) []models.FileStatus {
	out := make([]models.FileStatus, 0, len(expectedFiles))
	for _, f := range expectedFiles {
		_, err := resolvePath(dir, f.relPath)
		out = append(out, models.FileStatus{Name: f.name, Path: f.relPath, Present: err == nil})
	}
	return out
}

// Result holds the raw tables read from one data directory.
type Result struct {
	Files  []models.FileStatus
	Tables map[models.Source][]Record
	Errors map[models.Source]error
}

// Load reads every source under dir. Absent files are skipped silently;
// unreadable files and contract violations are recorded per source.
func Load(dir string) (*Result, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data path %s is not a directory", dir)
	}

	res := &Result{
		Files:  DetectFiles(dir),
		Tables: make(map[models.Source][]Record),
		Errors: make(map[models.Source]error),
	}

	for _, spec := range specs {
		path, err := resolvePath(dir, spec.RelPath)
		if err != nil {
			logger.Debug("Source %s not found at %s", spec.Source, spec.RelPath)
			continue
		}

		records, err := ReadFile(spec.Source, path, spec.Required)
		if err != nil {
			logger.Warn("Failed to load %s: %v", spec.Source, err)
			res.Errors[spec.Source] = err
			continue
		}
		logger.Debug("Loaded %d %s rows from %s", len(records), spec.Source, path)
		res.Tables[spec.Source] = records
	}

	return res, nil
}

// ReadFile opens path and parses it with ReadCSV.
func ReadFile(src models.Source, path string, required []string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	records, err := ReadCSV(f, required)
	if err != nil {
		var mce *MissingColumnError
		if errors.As(err, &mce) {
			mce.Source = src
			mce.Path = path
			return nil, mce
		}
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}

// ReadCSV parses CSV rows into records.
//
// The header is the first row containing every required column, which skips
// the free-text preamble some exports put above it. Header names are trimmed
// and a UTF-8 byte order mark is removed. Fully blank rows are ignored.
func ReadCSV(r io.Reader, required []string) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		if len(required) > 0 {
			return nil, &MissingColumnError{Column: required[0]}
		}
		return []Record{}, nil
	}
	if len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}

	headerIdx := -1
	for i, row := range rows {
		if missingColumn(row, required) == "" {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, &MissingColumnError{Column: missingColumn(rows[0], required)}
	}

	header := make([]string, len(rows[headerIdx]))
	for i, h := range rows[headerIdx] {
		header[i] = strings.TrimSpace(h)
	}

	records := make([]Record, 0, len(rows)-headerIdx-1)
	for _, row := range rows[headerIdx+1:] {
		if isBlank(row) {
			continue
		}
		rec := make(Record, len(header))
		for i, value := range row {
			if i >= len(header) {
				break
			}
			rec[header[i]] = value
		}
		records = append(records, rec)
	}
	return records, nil
}

// missingColumn returns the first required column absent from row.
func missingColumn(row []string, required []string) string {
	present := make(map[string]bool, len(row))
	for _, h := range row {
		present[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = true
	}
	for _, col := range required {
		if !present[col] {
			return col
		}
	}
	return ""
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// resolvePath finds relPath under dir, matching the final element
// case-insensitively.
func resolvePath(dir, relPath string) (string, error) {
	full := filepath.Join(dir, relPath)
	if _, err := os.Stat(full); err == nil {
		return full, nil
	}

	parent := filepath.Dir(full)
	entries, err := os.ReadDir(parent)
	if err != nil {
		return "", err
	}
	base := filepath.Base(full)
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(e.Name(), base) {
			return filepath.Join(parent, e.Name()), nil
		}
	}
	return "", os.ErrNotExist
}
