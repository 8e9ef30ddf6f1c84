package pairs_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hscells/svmgrid/labels"
	"github.com/hscells/svmgrid/pairs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMapping(t *testing.T) {
	m, err := pairs.BuildMapping(strings.NewReader("1 5\n1 3\n2 5\n"))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, m.Keys())
	assert.Equal(t, []int{3, 5}, m.Features(1))
	assert.Equal(t, []int{5}, m.Features(2))

	var b bytes.Buffer
	require.NoError(t, m.WriteSVM(&b))
	assert.Equal(t, "1 3:1 5:1\n2 5:1\n", b.String())
}

func TestRepeatedPairs(t *testing.T) {
	m, err := pairs.BuildMapping(strings.NewReader("1 3\n1 3\n1 5\n"))
	require.NoError(t, err)
	assert.Equal(t, []int{3, 3, 5}, m.Features(1))

	var b bytes.Buffer
	require.NoError(t, m.WriteSVM(&b))
	assert.Equal(t, "1 3:1 3:1 5:1\n", b.String())

	back, err := pairs.ReadSVM(&b)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 3, 5}, back.Features(1))
}

func TestRoundTrip(t *testing.T) {
	in := "7 2\n3 9\n7 1\n3 4\n10 100\n7 30\n1 3\n1 3\n"
	m, err := pairs.BuildMapping(strings.NewReader(in))
	require.NoError(t, err)

	var b bytes.Buffer
	require.NoError(t, m.WriteSVM(&b))

	back, err := pairs.ReadSVM(&b)
	require.NoError(t, err)
	require.Equal(t, m.Keys(), back.Keys())
	for _, k := range m.Keys() {
		assert.Equal(t, m.Features(k), back.Features(k))
	}
}

func TestMalformedPair(t *testing.T) {
	_, err := pairs.BuildMapping(strings.NewReader("1 2\n1 2 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, err = pairs.ReadPairs(strings.NewReader("1 x\n"))
	assert.Error(t, err)
}

func TestFilterKeepsLineEndings(t *testing.T) {
	var b bytes.Buffer
	err := pairs.Filter(strings.NewReader("1 5\r\n1 3\r\n2 5"), &b, func(f int) bool { return f == 5 })
	require.NoError(t, err)
	assert.Equal(t, "1 5\r\n2 5", b.String())
}

func TestFilterBySet(t *testing.T) {
	in := "1 5\n1 3\n2 5\n3   7\n4 3\n"
	s, err := pairs.LoadSet(strings.NewReader("3\n7\n"))
	require.NoError(t, err)

	var b bytes.Buffer
	require.NoError(t, pairs.FilterBySet(strings.NewReader(in), s, &b))
	assert.Equal(t, "1 3\n3   7\n4 3\n", b.String())
}

func TestFilterByMap(t *testing.T) {
	in := "1 5\n1 3\n2 5\n"
	m, err := pairs.LoadMap(strings.NewReader("5\n"))
	require.NoError(t, err)
	assert.Equal(t, map[int]int{5: 1}, m)

	var b bytes.Buffer
	require.NoError(t, pairs.FilterByMap(strings.NewReader(in), m, &b))
	assert.Equal(t, "1 5\n2 5\n", b.String())
}

func TestWriteLabeledSVM(t *testing.T) {
	m, err := pairs.BuildMapping(strings.NewReader("1 5\n1 3\n2 5\n3 1\n"))
	require.NoError(t, err)

	var b bytes.Buffer
	require.NoError(t, m.WriteLabeledSVM(&b, labels.Labels{1: 1, 2: 0, 3: -1}))
	assert.Equal(t, "1 3:1 5:1\n-1 1:1\n", b.String())

	assert.Error(t, m.WriteLabeledSVM(&b, labels.Labels{1: 1}))
}

const dataset = `# 10 0 1
c a c b
# 11 0 2
b b
$
`

func TestKeyValuePairs(t *testing.T) {
	var single, multi bytes.Buffer
	require.NoError(t, pairs.KeyValuePairs(strings.NewReader(dataset), &single, true))
	require.NoError(t, pairs.KeyValuePairs(strings.NewReader(dataset), &multi, false))
	assert.Equal(t, "10 a\n10 b\n10 c\n11 b\n", single.String())
	assert.Equal(t, "10 c\n10 a\n10 c\n10 b\n11 b\n11 b\n", multi.String())

	m, err := pairs.BuildWeightedMapping(&multi)
	require.NoError(t, err)
	var b bytes.Buffer
	require.NoError(t, m.WriteSVM(&b))
	assert.Equal(t, "10 a:1 b:1 c:2\n11 b:2\n", b.String())
}
