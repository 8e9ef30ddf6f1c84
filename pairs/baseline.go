package pairs

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// KeyValuePairs reads a graph database where a `#` line names a graph (its second token is the graph id) and the
// line following it lists the graph's feature tokens. For every token a `<graph id> <token>` line is written.
// When singleton is set, each token is written at most once per graph, in sorted order.
func KeyValuePairs(r io.Reader, w io.Writer, singleton bool) error {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 64*1024*1024)
	bw := bufio.NewWriter(w)
	n := 0
	for s.Scan() {
		n++
		line := s.Text()
		if !strings.HasPrefix(line, "#") {
			continue
		}
		header := strings.Fields(line)
		if len(header) < 2 {
			return errors.Errorf("line %d: graph header without id", n)
		}
		id := header[1]
		if !s.Scan() {
			return errors.Errorf("line %d: graph %s has no feature line", n, id)
		}
		n++
		tokens := strings.Fields(s.Text())
		if singleton {
			tokens = uniqStrings(tokens)
		}
		for _, tok := range tokens {
			if _, err := fmt.Fprintf(bw, "%s %s\n", id, tok); err != nil {
				return err
			}
		}
	}
	if err := s.Err(); err != nil {
		return err
	}
	return bw.Flush()
}

func uniqStrings(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	var out []string
	for _, t := range tokens {
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

// WeightedMapping counts how often each feature token occurs for each entity token.
type WeightedMapping map[string]map[string]int

// BuildWeightedMapping reads a pair file whose columns are arbitrary whitespace-free tokens.
func BuildWeightedMapping(r io.Reader) (WeightedMapping, error) {
	m := make(WeightedMapping)
	err := scan(r, func(_ int, line string) error {
		tokens := strings.Fields(line)
		if len(tokens) != 2 {
			return errors.Errorf("expected two tokens, got %d", len(tokens))
		}
		if _, ok := m[tokens[0]]; !ok {
			m[tokens[0]] = make(map[string]int)
		}
		m[tokens[0]][tokens[1]]++
		return nil
	})
	return m, err
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WriteSVM writes `<id> <token>:<count> ...` lines. Both ids and tokens are sorted lexically.
func (m WeightedMapping) WriteSVM(w io.Writer) error {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	bw := bufio.NewWriter(w)
	for _, id := range ids {
		counts := m[id]
		tokens := sortedKeys(counts)
		s := make([]string, len(tokens))
		for i, tok := range tokens {
			s[i] = fmt.Sprintf("%s:%d", tok, counts[tok])
		}
		if _, err := fmt.Fprintf(bw, "%s %s\n", id, strings.Join(s, " ")); err != nil {
			return err
		}
	}
	return bw.Flush()
}
