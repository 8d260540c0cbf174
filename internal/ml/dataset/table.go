package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Header is the CSV snapshot column order.
var Header = []string{"age", "gender", "bmi", "children", "smoker", "region", "premium"}

// Table is an in-memory corpus.
type Table struct {
	Records []Record
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.Records)
}

// Premiums returns the target column.
func (t *Table) Premiums() []float64 {
	out := make([]float64, len(t.Records))
	for i, r := range t.Records {
		out[i] = r.Premium
	}
	return out
}

// Genders returns the gender column.
func (t *Table) Genders() []string {
	out := make([]string, len(t.Records))
	for i, r := range t.Records {
		out[i] = r.Gender
	}
	return out
}

// Smokers returns the smoker column.
func (t *Table) Smokers() []string {
	out := make([]string, len(t.Records))
	for i, r := range t.Records {
		out[i] = r.Smoker
	}
	return out
}

// RegionColumn returns the region column.
func (t *Table) RegionColumn() []string {
	out := make([]string, len(t.Records))
	for i, r := range t.Records {
		out[i] = r.Region
	}
	return out
}

// WriteCSV persists the table as a CSV snapshot. The file is written to a
// temp file in the target directory and renamed into place so readers never
// observe a partial snapshot.
func (t *Table) WriteCSV(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("dataset: create snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("dataset: create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(Header); err != nil {
		tmp.Close()
		return fmt.Errorf("dataset: write snapshot header: %w", err)
	}
	for _, r := range t.Records {
		row := []string{
			strconv.Itoa(r.Age),
			r.Gender,
			strconv.FormatFloat(r.BMI, 'f', -1, 64),
			strconv.Itoa(r.Children),
			r.Smoker,
			r.Region,
			strconv.FormatFloat(r.Premium, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("dataset: write snapshot row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("dataset: flush snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("dataset: sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("dataset: close snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("dataset: publish snapshot: %w", err)
	}
	return nil
}

// ReadCSV loads a snapshot previously written by WriteCSV.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open snapshot: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset: read snapshot: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset: snapshot %s is empty", path)
	}
	if len(rows[0]) != len(Header) {
		return nil, fmt.Errorf("dataset: snapshot %s has %d columns, want %d", path, len(rows[0]), len(Header))
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseRecord(row)
		if err != nil {
			return nil, fmt.Errorf("dataset: snapshot row %d: %w", i+1, err)
		}
		records = append(records, rec)
	}
	return &Table{Records: records}, nil
}

func parseRecord(row []string) (Record, error) {
	age, err := strconv.Atoi(row[0])
	if err != nil {
		return Record{}, fmt.Errorf("age %q: %w", row[0], err)
	}
	bmi, err := strconv.ParseFloat(row[2], 64)
	if err != nil {
		return Record{}, fmt.Errorf("bmi %q: %w", row[2], err)
	}
	children, err := strconv.Atoi(row[3])
	if err != nil {
		return Record{}, fmt.Errorf("children %q: %w", row[3], err)
	}
	premium, err := strconv.ParseFloat(row[6], 64)
	if err != nil {
		return Record{}, fmt.Errorf("premium %q: %w", row[6], err)
	}
	return Record{
		Age:      age,
		Gender:   row[1],
		BMI:      bmi,
		Children: children,
		Smoker:   row[4],
		Region:   row[5],
		Premium:  premium,
	}, nil
}
