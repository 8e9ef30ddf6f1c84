// Package libsvm reads and writes sparse feature vectors in the LIBSVM/svmlight text format:
//
//	<label> <index>:<value> <index>:<value> ...
package libsvm

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xtgo/set"
)

// ErrRowMismatch is returned when two datasets that are stacked side by side have a different number of rows.
var ErrRowMismatch = errors.New("datasets have a different number of rows")

// Feature is a single non-zero entry of a sparse vector.
type Feature struct {
	ID    int
	Value float64
}

// Features is a sparse vector.
type Features []Feature

func (ff Features) Len() int           { return len(ff) }
func (ff Features) Swap(i, j int)      { ff[i], ff[j] = ff[j], ff[i] }
func (ff Features) Less(i, j int) bool { return ff[i].ID < ff[j].ID }

// Normalise sorts the features by index and removes repeated indices, keeping the first occurrence.
func (ff Features) Normalise() Features {
	sort.Stable(ff)
	return ff[:set.Uniq(ff)]
}

// String returns the features as `index:value` pairs.
func (ff Features) String() string {
	s := make([]string, len(ff))
	for i, f := range ff {
		s[i] = fmt.Sprintf("%v:%v", f.ID, f.Value)
	}
	return strings.Join(s, " ")
}

// Row is one labelled sparse vector.
type Row struct {
	Label float64
	Features
}

// Dataset is a sparse matrix with one label per row.
type Dataset []Row

// MaxFeature is the largest feature index used in the dataset.
func (ds Dataset) MaxFeature() int {
	max := 0
	for _, r := range ds {
		for _, f := range r.Features {
			if f.ID > max {
				max = f.ID
			}
		}
	}
	return max
}

// Labels returns the label column.
func (ds Dataset) Labels() []float64 {
	y := make([]float64, len(ds))
	for i, r := range ds {
		y[i] = r.Label
	}
	return y
}

// WriteLine writes a single line to a writer, with the features in the order given. Callers that need a strictly
// LIBSVM compatible line normalise the features first.
func WriteLine(w io.Writer, label interface{}, ff Features) (int, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%v", label)
	for _, f := range ff {
		fmt.Fprintf(&b, " %v:%v", f.ID, f.Value)
	}
	b.WriteByte('\n')
	return io.WriteString(w, b.String())
}

// Write writes every row of the dataset with its features normalised.
func Write(w io.Writer, ds Dataset) error {
	bw := bufio.NewWriter(w)
	for _, r := range ds {
		if _, err := WriteLine(bw, r.Label, r.Features.Normalise()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ParseLine parses a single line. Anything after a `#` is a comment, `qid:` tokens are skipped.
func ParseLine(line string) (Row, error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Row{}, errors.New("empty line")
	}

	label, err := strconv.ParseFloat(tokens[0], 64)
	if err != nil {
		return Row{}, errors.Wrap(err, "label")
	}

	row := Row{Label: label, Features: make(Features, 0, len(tokens)-1)}
	for _, tok := range tokens[1:] {
		if strings.HasPrefix(tok, "qid:") {
			continue
		}
		p := strings.SplitN(tok, ":", 2)
		if len(p) != 2 {
			return Row{}, errors.Errorf("malformed feature %q", tok)
		}
		id, err := strconv.Atoi(p[0])
		if err != nil {
			return Row{}, errors.Wrapf(err, "feature index %q", p[0])
		}
		v, err := strconv.ParseFloat(p[1], 64)
		if err != nil {
			return Row{}, errors.Wrapf(err, "feature value %q", p[1])
		}
		row.Features = append(row.Features, Feature{ID: id, Value: v})
	}
	return row, nil
}

// Read loads a dataset. Blank lines are skipped.
func Read(r io.Reader) (Dataset, error) {
	var ds Dataset
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 64*1024*1024)
	n := 0
	for s.Scan() {
		n++
		if strings.TrimSpace(s.Text()) == "" {
			continue
		}
		row, err := ParseLine(s.Text())
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", n)
		}
		ds = append(ds, row)
	}
	return ds, s.Err()
}

// HStack places b to the right of a: feature indices of b are shifted past the largest index of a.
// Labels are taken from a.
func HStack(a, b Dataset) (Dataset, error) {
	if len(a) != len(b) {
		return nil, errors.Wrapf(ErrRowMismatch, "%d != %d", len(a), len(b))
	}
	offset := a.MaxFeature()
	out := make(Dataset, len(a))
	for i := range a {
		ff := make(Features, 0, len(a[i].Features)+len(b[i].Features))
		ff = append(ff, a[i].Features...)
		for _, f := range b[i].Features {
			ff = append(ff, Feature{ID: f.ID + offset, Value: f.Value})
		}
		out[i] = Row{Label: a[i].Label, Features: ff}
	}
	return out, nil
}
