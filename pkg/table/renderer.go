package table

import (
	"bufio"
	"io"
	"iter"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// Sink describes where a table is written and whether styling is realised
// as ANSI colors.
type Sink struct {
	Out          io.Writer
	ColorEnabled bool
}

type Renderer struct {
	sink   Sink
	styles map[Style]*color.Color
}

func NewRenderer(sink Sink) *Renderer {
	styles := map[Style]*color.Color{
		StyleOrigin:      color.New(color.FgGreen),
		StyleDestination: color.New(color.FgRed),
	}

	for _, c := range styles {
		if sink.ColorEnabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return &Renderer{
		sink:   sink,
		styles: styles,
	}
}

// Render lays out the header and rows as a bordered table and writes it to
// the sink. Rows are consumed once.
func (r *Renderer) Render(header []string, rows iter.Seq[Row]) error {
	headerRow := make(Row, len(header))
	for i, title := range header {
		headerRow[i] = Plain(title)
	}

	var body []Row
	for row := range rows {
		body = append(body, row)
	}

	widths := columnWidths(len(header), append([]Row{headerRow}, body...))

	out := bufio.NewWriter(r.sink.Out)

	rule := horizontalRule(widths)
	out.WriteString(rule)
	r.writeRow(out, headerRow, widths)
	out.WriteString(rule)
	for _, row := range body {
		r.writeRow(out, row, widths)
	}
	out.WriteString(rule)

	return out.Flush()
}

func columnWidths(columns int, rows []Row) []int {
	widths := make([]int, columns)

	for _, row := range rows {
		for i, cell := range row {
			if i >= columns {
				break
			}
			for _, line := range cell.Lines() {
				widths[i] = max(widths[i], runewidth.StringWidth(line))
			}
		}
	}

	return widths
}

func horizontalRule(widths []int) string {
	var builder strings.Builder

	builder.WriteByte('+')
	for _, width := range widths {
		builder.WriteString(strings.Repeat("-", width+2))
		builder.WriteByte('+')
	}
	builder.WriteByte('\n')

	return builder.String()
}

func (r *Renderer) writeRow(out *bufio.Writer, row Row, widths []int) {
	height := 1
	lines := make([][]string, len(widths))
	for i := range widths {
		if i < len(row) {
			lines[i] = row[i].Lines()
		}
		height = max(height, len(lines[i]))
	}

	for lineIndex := 0; lineIndex < height; lineIndex++ {
		out.WriteByte('|')

		for column, width := range widths {
			var cell Cell
			if column < len(row) {
				cell = row[column]
			}

			line := ""
			lineStart := 0
			if lineIndex < len(lines[column]) {
				line = lines[column][lineIndex]
				for _, previous := range lines[column][:lineIndex] {
					lineStart += len(previous) + 1
				}
			}

			padding := width - runewidth.StringWidth(line)
			left := padding / 2

			out.WriteString(strings.Repeat(" ", left+1))
			for _, seg := range cell.segments(lineStart, line) {
				out.WriteString(r.paint(seg))
			}
			out.WriteString(strings.Repeat(" ", padding-left+1))
			out.WriteByte('|')
		}

		out.WriteByte('\n')
	}
}

func (r *Renderer) paint(seg segment) string {
	c, styled := r.styles[seg.style]
	if !styled {
		return seg.text
	}

	return c.Sprint(seg.text)
}
