package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"catmodel/internal/model"

	"gonum.org/v1/gonum/mat"
)

// ErrEmpty indicates a source produced no examples.
var ErrEmpty = errors.New("dataset: no examples")

// table holds examples row by row before they are transposed into a Batch.
type table struct {
	features int
	rows     [][]float64
	labels   []float64
}

// ReadCSV parses one example per record: feature columns followed by a 0/1 label.
// A leading record in which no field parses as a number is treated as a header.
func ReadCSV(r io.Reader) (model.Batch, error) {
	t := &table{}
	if err := t.read(r); err != nil {
		return model.Batch{}, err
	}
	return t.batch()
}

// LoadCSV reads a single CSV file.
func LoadCSV(path string) (model.Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Batch{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	b, err := ReadCSV(f)
	if err != nil {
		return model.Batch{}, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Load discovers every CSV file under root and concatenates their examples.
// All files must agree on the feature count.
func Load(root string) (model.Batch, error) {
	files, err := DiscoverFiles(root)
	if err != nil {
		return model.Batch{}, err
	}
	if len(files) == 0 {
		return model.Batch{}, fmt.Errorf("%s: %w", root, ErrEmpty)
	}
	t := &table{}
	for _, path := range files {
		if err := t.readFile(path); err != nil {
			return model.Batch{}, err
		}
	}
	b, err := t.batch()
	if err != nil {
		return model.Batch{}, fmt.Errorf("%s: %w", root, err)
	}
	return b, nil
}

func (t *table) readFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	if err := t.read(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func (t *table) read(r io.Reader) error {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	first := true
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if first {
			first = false
			if isHeader(record) {
				continue
			}
		}
		values, err := parseRecord(record)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if len(values) < 2 {
			return fmt.Errorf("line %d: need at least one feature and a label", line)
		}
		n := len(values) - 1
		if t.features == 0 {
			t.features = n
		}
		if n != t.features {
			return fmt.Errorf("line %d: %w: %d features, want %d", line, model.ErrShapeMismatch, n, t.features)
		}
		t.rows = append(t.rows, values[:n])
		t.labels = append(t.labels, values[n])
	}
}

func (t *table) batch() (model.Batch, error) {
	m := len(t.rows)
	if m == 0 {
		return model.Batch{}, ErrEmpty
	}
	x := mat.NewDense(t.features, m, nil)
	for j, row := range t.rows {
		x.SetCol(j, row)
	}
	y := mat.NewDense(1, m, t.labels)
	return model.NewBatch(x, y)
}

func parseRecord(record []string) ([]float64, error) {
	values := make([]float64, len(record))
	for i, field := range record {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("column %d: %w: %q is not finite", i, model.ErrDomain, field)
		}
		values[i] = v
	}
	return values, nil
}

func isHeader(record []string) bool {
	for _, field := range record {
		if _, err := strconv.ParseFloat(strings.TrimSpace(field), 64); err == nil {
			return false
		}
	}
	return true
}
