package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pfrederiksen/nfl-combine/internal/combine"
)

// ArchiveName is the SQLite archive file inside the data directory
const ArchiveName = "combine.db"

// Storage handles persistence of combine datasets
type Storage struct {
	dataDir string
}

// New creates a new Storage instance, creating the data directory if needed
func New(dataDir string) (*Storage, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// Dir returns the resolved data directory
func (s *Storage) Dir() string {
	return s.dataDir
}

// Path returns a path inside the data directory
func (s *Storage) Path(name string) string {
	return filepath.Join(s.dataDir, name)
}

// YearPath returns the path of a yearly snapshot
func (s *Storage) YearPath(year int) string {
	return s.Path(fmt.Sprintf("%d.csv", year))
}

// GroupPath returns the path of a per-position dataset
func (s *Storage) GroupPath(g combine.Group) string {
	return s.Path(fmt.Sprintf("%s.csv", g))
}

// SaveYear writes the augmented combine table for one year
func (s *Storage) SaveYear(year int, records []combine.Record) error {
	if err := writeCSV(s.YearPath(year), yearColumns, records); err != nil {
		return fmt.Errorf("writing %d snapshot: %w", year, err)
	}
	return nil
}

// LoadYear reads a yearly snapshot
func (s *Storage) LoadYear(year int) ([]combine.Record, error) {
	records, err := readCSV(s.YearPath(year), yearColumns)
	if err != nil {
		return nil, fmt.Errorf("reading %d snapshot: %w", year, err)
	}
	for i := range records {
		records[i].Year = year
	}
	return records, nil
}

// LoadYears reads and concatenates several yearly snapshots
func (s *Storage) LoadYears(years []int) ([]combine.Record, error) {
	var all []combine.Record
	for _, year := range years {
		records, err := s.LoadYear(year)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}

// SaveGroup writes one position group's cleaned rows
func (s *Storage) SaveGroup(g combine.Group, records []combine.Record) error {
	if err := writeCSV(s.GroupPath(g), groupColumns, records); err != nil {
		return fmt.Errorf("writing %s dataset: %w", g, err)
	}
	return nil
}

// SaveGroups writes every group in groups
func (s *Storage) SaveGroups(groups map[combine.Group][]combine.Record) error {
	for _, g := range combine.Groups() {
		if err := s.SaveGroup(g, groups[g]); err != nil {
			return err
		}
	}
	return nil
}

// LoadGroup reads one position group's cleaned rows
func (s *Storage) LoadGroup(g combine.Group) ([]combine.Record, error) {
	records, err := readCSV(s.GroupPath(g), groupColumns)
	if err != nil {
		return nil, fmt.Errorf("reading %s dataset: %w", g, err)
	}
	return records, nil
}

// SaveJSON writes v as indented JSON to a path relative to the data directory
func (s *Storage) SaveJSON(name string, v interface{}) error {
	path := s.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", name, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// LoadJSON reads a JSON file written by SaveJSON
func (s *Storage) LoadJSON(name string, v interface{}) error {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

// OpenArchive opens the SQLite archive inside the data directory
func (s *Storage) OpenArchive() (*Archive, error) {
	return OpenArchive(s.Path(ArchiveName))
}

func writeCSV(path string, columns []column, records []combine.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.name
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}

	for i := range records {
		row := make([]string, len(columns))
		for j, c := range columns {
			row[j] = c.get(&records[i])
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func readCSV(path string, columns []column) ([]combine.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty file")
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	records := make([]combine.Record, 0)
	for line := 2; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", line, err)
		}

		var rec combine.Record
		for _, c := range columns {
			i, ok := index[c.name]
			if !ok || i >= len(row) {
				continue
			}
			if err := c.set(&rec, row[i]); err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", line, c.name, err)
			}
		}
		records = append(records, rec)
	}

	return records, nil
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// parseFloat coerces a cell to float64, treating blanks as missing
func parseFloat(cell string) (*float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseInt(cell string) (*int, error) {
	f, err := parseFloat(cell)
	if err != nil || f == nil {
		return nil, err
	}
	v := int(*f)
	return &v, nil
}
