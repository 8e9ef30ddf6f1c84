// Package output provides different formats of output for experiments.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"strings"
)

// Formatter formats a table given as a header and rows. Every row must have one value per header.
type Formatter func(headers []string, rows [][]float64) (string, error)

func format(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// TabFormatter outputs a tab separated table with a `Header:` line.
func TabFormatter(headers []string, rows [][]float64) (string, error) {
	var b strings.Builder
	b.WriteString("Header: ")
	b.WriteString(strings.Join(headers, "\t"))
	b.WriteByte('\n')
	for _, row := range rows {
		s := make([]string, len(row))
		for i, v := range row {
			s[i] = format(v)
		}
		b.WriteString(strings.Join(s, "\t"))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// CsvFormatter outputs results in CSV format.
func CsvFormatter(headers []string, rows [][]float64) (string, error) {
	b := bytes.NewBufferString("")
	w := csv.NewWriter(b)
	if err := w.Write(headers); err != nil {
		return "", err
	}
	for _, row := range rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = format(v)
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	return b.String(), w.Error()
}

// JsonFormatter outputs one JSON object per row, keyed by header.
func JsonFormatter(headers []string, rows [][]float64) (string, error) {
	m := make([]map[string]float64, len(rows))
	for j, row := range rows {
		m[j] = make(map[string]float64, len(headers))
		for i, header := range headers {
			m[j][header] = row[i]
		}
	}

	v, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return "", err
	}
	return string(v), nil
}
