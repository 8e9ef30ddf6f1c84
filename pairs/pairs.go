// Package pairs converts plain-text `<entity> <feature>` pair files, as written by the pattern miners, into
// sparse feature vectors.
package pairs

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/hscells/svmgrid/labels"
	"github.com/hscells/svmgrid/libsvm"
	"github.com/pkg/errors"
)

// Pair is one line of a pair file.
type Pair struct {
	Entity  int
	Feature int
}

func parsePair(line string) (Pair, error) {
	tokens := strings.Fields(line)
	if len(tokens) != 2 {
		return Pair{}, errors.Errorf("expected two tokens, got %d", len(tokens))
	}
	e, err := strconv.Atoi(tokens[0])
	if err != nil {
		return Pair{}, err
	}
	f, err := strconv.Atoi(tokens[1])
	if err != nil {
		return Pair{}, err
	}
	return Pair{Entity: e, Feature: f}, nil
}

func scan(r io.Reader, fn func(n int, line string) error) error {
	s := bufio.NewScanner(r)
	n := 0
	for s.Scan() {
		n++
		if err := fn(n, s.Text()); err != nil {
			return errors.Wrapf(err, "line %d", n)
		}
	}
	return s.Err()
}

// ReadPairs reads every pair in the order they appear.
func ReadPairs(r io.Reader) ([]Pair, error) {
	var pp []Pair
	err := scan(r, func(_ int, line string) error {
		p, err := parsePair(line)
		if err != nil {
			return err
		}
		pp = append(pp, p)
		return nil
	})
	return pp, err
}

// Set is a set of feature ids.
type Set map[int]struct{}

// Contains reports whether id is in the set.
func (s Set) Contains(id int) bool {
	_, ok := s[id]
	return ok
}

// LoadSet reads a file containing exactly one integer per line.
func LoadSet(r io.Reader) (Set, error) {
	s := make(Set)
	err := scan(r, func(_ int, line string) error {
		v, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			return err
		}
		s[v] = struct{}{}
		return nil
	})
	return s, err
}

// LoadMap reads a file containing exactly one integer per line into a map with the value 1 for every key.
func LoadMap(r io.Reader) (map[int]int, error) {
	m := make(map[int]int)
	err := scan(r, func(_ int, line string) error {
		v, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			return err
		}
		m[v] = 1
		return nil
	})
	return m, err
}

// Filter copies to w exactly those lines of r whose second number satisfies keep. Lines are copied byte for byte,
// including their line endings, and in their original order.
func Filter(r io.Reader, w io.Writer, keep func(feature int) bool) error {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	for n := 1; ; n++ {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			p, perr := parsePair(line)
			if perr != nil {
				return errors.Wrapf(perr, "line %d", n)
			}
			if keep(p.Feature) {
				if _, werr := bw.WriteString(line); werr != nil {
					return werr
				}
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// FilterBySet keeps the lines whose second number is contained in s.
func FilterBySet(r io.Reader, s Set, w io.Writer) error {
	return Filter(r, w, s.Contains)
}

// FilterByMap keeps the lines whose second number is a key of m.
func FilterByMap(r io.Reader, m map[int]int, w io.Writer) error {
	return Filter(r, w, func(f int) bool {
		_, ok := m[f]
		return ok
	})
}

// Mapping maps an entity to the sorted list of its feature ids.
type Mapping map[int][]int

// Add appends a feature to an entity. The list is sorted again by Keys/Features.
func (m Mapping) Add(p Pair) {
	m[p.Entity] = append(m[p.Entity], p.Feature)
}

// Keys returns the entities in ascending order.
func (m Mapping) Keys() []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Features returns the sorted features of an entity.
func (m Mapping) Features(key int) []int {
	ff := m[key]
	sort.Ints(ff)
	return ff
}

// BuildMapping reads a pair file into a mapping.
func BuildMapping(r io.Reader) (Mapping, error) {
	m := make(Mapping)
	err := scan(r, func(_ int, line string) error {
		p, err := parsePair(line)
		if err != nil {
			return err
		}
		m.Add(p)
		return nil
	})
	return m, err
}

func unweighted(ids []int) libsvm.Features {
	ff := make(libsvm.Features, len(ids))
	for i, id := range ids {
		ff[i] = libsvm.Feature{ID: id, Value: 1}
	}
	return ff
}

// WriteSVM writes one line per entity: the entity id followed by every feature with the value 1. A feature paired
// with an entity more than once is written once per pair.
func (m Mapping) WriteSVM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, key := range m.Keys() {
		if _, err := libsvm.WriteLine(bw, key, unweighted(m.Features(key))); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteLabeledSVM writes one line per entity where the entity id is replaced with its label. Entities labelled
// 0 are filtered out.
func (m Mapping) WriteLabeledSVM(w io.Writer, ll labels.Labels) error {
	bw := bufio.NewWriter(w)
	for _, key := range m.Keys() {
		label, ok := ll[key]
		if !ok {
			return errors.Errorf("no label for %d", key)
		}
		if label == 0 {
			continue
		}
		if _, err := libsvm.WriteLine(bw, label, unweighted(m.Features(key))); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadSVM parses the output of WriteSVM back into a mapping. Feature values are ignored and repeated features are
// kept.
func ReadSVM(r io.Reader) (Mapping, error) {
	m := make(Mapping)
	err := scan(r, func(_ int, line string) error {
		row, err := libsvm.ParseLine(line)
		if err != nil {
			return err
		}
		key := int(row.Label)
		if float64(key) != row.Label {
			return errors.Errorf("key %v is not an integer", row.Label)
		}
		for _, f := range row.Features {
			m.Add(Pair{Entity: key, Feature: f.ID})
		}
		return nil
	})
	return m, err
}
