// Package labels loads graph activity labels and maps them onto binary classification targets.
//
// Activity labels are
//
//	0 = inactive
//	1 = moderately active
//	2 = active
//
// and are mapped to 1 (positive class), -1 (negative class) or 0 (filter out).
package labels

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrUnknownMode is returned for a mode name that has no mapping.
	ErrUnknownMode = errors.New("unknown label mode")
	// ErrUnknownLabel is returned when a label is outside the activity label space.
	ErrUnknownLabel = errors.New("unknown activity label")
)

// Labels maps a graph id to its label.
type Labels map[int]int

// Load reads the header of a graph database file. Lines beginning with `#` carry `# <id> <label>`, and the header
// ends at the first line beginning with `$`.
func Load(r io.Reader) (Labels, error) {
	ll := make(Labels)
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 64*1024*1024)
	n := 0
	for s.Scan() {
		n++
		line := s.Text()
		if strings.HasPrefix(line, "$") {
			break
		}
		if !strings.HasPrefix(line, "#") {
			continue
		}
		data := strings.Fields(line)
		if len(data) < 3 {
			return nil, errors.Errorf("line %d: expected `# <id> <label>`", n)
		}
		id, err := strconv.Atoi(data[1])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", n)
		}
		label, err := strconv.Atoi(data[2])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", n)
		}
		ll[id] = label
	}
	return ll, s.Err()
}

// Mode names one of the fixed activity label mappings.
type Mode string

const (
	// AvsI is active against inactive; moderately active graphs are filtered out.
	AvsI Mode = "AvsI"
	// AvsMI is active against moderately active and inactive.
	AvsMI Mode = "AvsMI"
	// AMvsI is active and moderately active against inactive.
	AMvsI Mode = "AMvsI"
)

var tables = map[Mode][3]int{
	AvsI:  {-1, 0, 1},
	AvsMI: {-1, -1, 1},
	AMvsI: {-1, 1, 1},
}

// Modes lists every known mode.
func Modes() []Mode {
	return []Mode{AvsI, AvsMI, AMvsI}
}

// ParseMode returns the mode with the given name.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if _, ok := tables[m]; !ok {
		return "", errors.Wrap(ErrUnknownMode, s)
	}
	return m, nil
}

// Map returns the binary target of an activity label.
func (m Mode) Map(label int) (int, error) {
	t, ok := tables[m]
	if !ok {
		return 0, errors.Wrap(ErrUnknownMode, string(m))
	}
	if label < 0 || label >= len(t) {
		return 0, errors.Wrapf(ErrUnknownLabel, "%d", label)
	}
	return t[label], nil
}

// Remap replaces every label with its target under m, in place.
func (ll Labels) Remap(m Mode) error {
	for id, label := range ll {
		v, err := m.Map(label)
		if err != nil {
			return errors.Wrapf(err, "graph %d", id)
		}
		ll[id] = v
	}
	return nil
}
