// Package chart renders payoff curves as ASCII diagrams.
package chart

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"options-payoff/internal/payoff"
)

// gutterWidth is the label column plus the vertical axis.
const gutterWidth = 10

const (
	ansiGreen = "\033[32m"
	ansiRed   = "\033[31m"
	ansiReset = "\033[0m"
)

// Options controls chart dimensions and coloring.
type Options struct {
	Width  int // total line width including the label gutter
	Height int // plot rows, excluding the border and price labels
	Color  bool
}

// DefaultOptions returns the dimensions used when none are configured.
func DefaultOptions() Options {
	return Options{Width: 72, Height: 18}
}

// Render draws the curve as terminal lines: profit rows top to bottom, a
// zero-profit axis when the curve spans it, a bottom border and a row of
// price labels with breakevens marked where they fit.
func Render(curve *payoff.Curve, opts Options) []string {
	if curve == nil || len(curve.Points) < 2 {
		return nil
	}

	if opts.Width < 16 {
		opts.Width = DefaultOptions().Width
	}
	if opts.Height < 4 {
		opts.Height = DefaultOptions().Height
	}

	plotW := opts.Width - gutterWidth
	height := opts.Height

	points := curve.Points
	minPrice := points[0].Price
	maxPrice := points[len(points)-1].Price

	// Profit at every column
	profits := make([]float64, plotW)
	for col := 0; col < plotW; col++ {
		price := minPrice + (maxPrice-minPrice)*float64(col)/float64(plotW-1)
		profits[col] = profitAt(points, price)
	}

	pMin, pMax := profits[0], profits[0]
	for _, p := range profits[1:] {
		pMin = math.Min(pMin, p)
		pMax = math.Max(pMax, p)
	}
	if pMax == pMin {
		// Flat curve still needs a vertical scale
		pMax++
		pMin--
	}

	rowFor := func(p float64) int {
		return int(math.Round((pMax - p) / (pMax - pMin) * float64(height-1)))
	}

	zeroRow := -1
	if pMin <= 0 && 0 <= pMax {
		zeroRow = rowFor(0)
	}

	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = make([]rune, plotW)
		for c := range grid[r] {
			grid[r][c] = ' '
		}
	}

	if zeroRow >= 0 {
		for c := 0; c < plotW; c++ {
			grid[zeroRow][c] = '─'
		}
	}

	rows := make([]int, plotW)
	for c, p := range profits {
		rows[c] = rowFor(p)
	}

	// Vertical fill keeps steep segments connected
	for c := 0; c < plotW-1; c++ {
		lo, hi := rows[c], rows[c+1]
		if lo > hi {
			lo, hi = hi, lo
		}
		for r := lo + 1; r < hi; r++ {
			if r == zeroRow {
				grid[r][c] = '╳'
			} else {
				grid[r][c] = '│'
			}
		}
	}

	for c := 0; c < plotW; c++ {
		var delta int
		if c+1 < plotW {
			delta = rows[c+1] - rows[c]
		} else {
			delta = rows[c] - rows[c-1]
		}

		glyph := '─'
		switch {
		case delta < 0:
			glyph = '╱'
		case delta > 0:
			glyph = '╲'
		}
		if rows[c] == zeroRow && glyph != '─' {
			glyph = '╳'
		}
		grid[rows[c]][c] = glyph
	}

	labels := make([]string, height)
	for r := range labels {
		labels[r] = strings.Repeat(" ", gutterWidth-1)
	}
	labels[0] = "  Profit "
	labels[height-1] = "    Loss "
	if zeroRow >= 0 {
		labels[zeroRow] = "      0  "
	}

	lines := make([]string, 0, height+2)
	for r := 0; r < height; r++ {
		var b strings.Builder
		b.WriteString(labels[r])
		b.WriteRune('│')
		for c := 0; c < plotW; c++ {
			ch := grid[r][c]
			if opts.Color && ch != ' ' && !(r == zeroRow && ch == '─') {
				if color := cellColor(r, zeroRow, pMin); color != "" {
					b.WriteString(color)
					b.WriteRune(ch)
					b.WriteString(ansiReset)
					continue
				}
			}
			b.WriteRune(ch)
		}
		lines = append(lines, b.String())
	}

	lines = append(lines, strings.Repeat(" ", gutterWidth-1)+"└"+strings.Repeat("─", plotW))
	lines = append(lines, priceAxis(minPrice, maxPrice, curve.Breakevens, plotW))

	return lines
}

// cellColor picks the ANSI color for a curve cell from its row relative to
// the zero axis: green above, red below.
func cellColor(row, zeroRow int, pMin float64) string {
	switch {
	case zeroRow < 0 && pMin > 0:
		return ansiGreen
	case zeroRow < 0:
		return ansiRed
	case row < zeroRow:
		return ansiGreen
	case row > zeroRow:
		return ansiRed
	default:
		return ""
	}
}

// profitAt interpolates the curve at an arbitrary price. Sampled points
// include every kink, so linear interpolation between neighbors is exact.
func profitAt(points []payoff.Point, price float64) float64 {
	if price <= points[0].Price {
		return points[0].Profit
	}
	last := len(points) - 1
	if price >= points[last].Price {
		return points[last].Profit
	}

	i := sort.Search(len(points), func(i int) bool { return points[i].Price >= price })
	a, b := points[i-1], points[i]
	if b.Price == a.Price {
		return a.Profit
	}
	t := (price - a.Price) / (b.Price - a.Price)
	return a.Profit + t*(b.Profit-a.Profit)
}

// priceAxis lays out min, max and breakeven labels under the plot. Labels
// that would overlap an earlier one are dropped.
func priceAxis(minPrice, maxPrice float64, breakevens []float64, plotW int) string {
	row := make([]rune, plotW)
	for i := range row {
		row[i] = ' '
	}

	place := func(start int, label string) {
		runes := []rune(label)
		if len(runes) > plotW {
			return
		}
		if start < 0 {
			start = 0
		}
		if start+len(runes) > plotW {
			start = plotW - len(runes)
		}
		for i := range runes {
			if row[start+i] != ' ' {
				return
			}
		}
		copy(row[start:], runes)
	}

	place(0, formatPrice(minPrice))
	maxLabel := formatPrice(maxPrice)
	place(plotW-len([]rune(maxLabel)), maxLabel)

	span := maxPrice - minPrice
	for _, be := range breakevens {
		if span <= 0 || be < minPrice || be > maxPrice {
			continue
		}
		label := formatPrice(be)
		col := int(math.Round((be - minPrice) / span * float64(plotW-1)))
		place(col-len([]rune(label))/2, label)
	}

	return strings.Repeat(" ", gutterWidth) + string(row) + "  Price"
}

// formatPrice renders a price with up to two decimals, trailing zeros
// removed.
func formatPrice(p float64) string {
	s := strconv.FormatFloat(p, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" {
		return "0"
	}
	return s
}
