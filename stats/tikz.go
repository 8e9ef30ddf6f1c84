package stats

import (
	"fmt"
	"io"
	"strconv"
)

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type drawer struct {
	w   io.Writer
	err error
}

func (d *drawer) draw(style string, x1, y1, x2, y2 float64) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, "\\draw[%s] (%s, %s) -- (%s, %s);\n", style, num(x1), num(y1), num(x2), num(y2))
}

// bar draws an error bar at x with the given half width of its whiskers and the mean drawn in bold.
func (d *drawer) bar(style string, x, offset, half float64, s Summary) {
	d.draw(style, x+offset-half, s.Upper(), x+offset+half, s.Upper())
	d.draw(style, x+offset-half, s.Lower(), x+offset+half, s.Lower())
	d.draw(style, x+offset, s.Lower(), x+offset, s.Upper())
	d.draw(style+", line width=2pt", x+offset-half, s.Mean, x+offset+half, s.Mean)
}

// WriteTikZ draws the positive (right), negative (left) and overall (centre) error bars of one input at position x
// using the TikZ styles `plus`, `neg` and `neut`.
func WriteTikZ(w io.Writer, x float64, positive, negative, all Summary) error {
	d := &drawer{w: w}
	d.bar("plus", x, 0.25, 0.1, positive)
	d.bar("neg", x, -0.25, 0.1, negative)
	d.bar("neut", x, 0, 0.12, all)
	return d.err
}
