package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

var header = []string{"x1", "x2", "label"}

// Save writes one x1,x2,label row per example after a header row.
func Save(w io.Writer, X, Y *tensor.Dense) error {
	if err := checkPair(X, Y); err != nil {
		return err
	}
	m := Y.Shape()[1]
	xs, ys := X.Float64s(), Y.Float64s()

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "dataset: write header")
	}
	for i := 0; i < m; i++ {
		row := []string{
			strconv.FormatFloat(xs[i], 'g', -1, 64),
			strconv.FormatFloat(xs[m+i], 'g', -1, 64),
			strconv.FormatFloat(ys[i], 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrapf(err, "dataset: write row %d", i)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "dataset: flush")
}

// Load reads the format written by Save. Labels must be 0 or 1.
func Load(r io.Reader) (X, Y *tensor.Dense, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, errors.Wrap(err, "dataset: read csv")
	}
	if len(records) > 0 && records[0][0] == header[0] {
		records = records[1:]
	}
	m := len(records)
	if m == 0 {
		return nil, nil, errors.New("dataset: no examples")
	}

	xs := make([]float64, Features*m)
	ys := make([]float64, m)
	for i, rec := range records {
		vals := make([]float64, len(rec))
		for k, field := range rec {
			if vals[k], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, nil, errors.Wrapf(err, "dataset: row %d column %s", i+1, header[k])
			}
		}
		if vals[2] != 0 && vals[2] != 1 {
			return nil, nil, errors.Errorf("dataset: row %d label %v is not 0 or 1", i+1, vals[2])
		}
		xs[i], xs[m+i], ys[i] = vals[0], vals[1], vals[2]
	}
	return tensor.New(tensor.WithShape(Features, m), tensor.WithBacking(xs)),
		tensor.New(tensor.WithShape(1, m), tensor.WithBacking(ys)), nil
}

// SaveFile writes the dataset to path, creating or truncating it.
func SaveFile(path string, X, Y *tensor.Dense) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "dataset")
	}
	if err := Save(f, X, Y); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "dataset")
}

// LoadFile reads a dataset written by SaveFile.
func LoadFile(path string) (X, Y *tensor.Dense, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "dataset")
	}
	defer f.Close()
	return Load(f)
}

func checkPair(X, Y *tensor.Dense) error {
	if X == nil || Y == nil {
		return errors.New("dataset: nil matrix")
	}
	xs, ys := X.Shape(), Y.Shape()
	if len(xs) != 2 || len(ys) != 2 || xs[0] != Features || ys[0] != 1 || xs[1] != ys[1] {
		return errors.Errorf("dataset: want X (%d, m) and Y (1, m), got %v and %v", Features, xs, ys)
	}
	return nil
}
