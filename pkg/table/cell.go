package table

import "strings"

type Style int

const (
	StyleNone Style = iota
	StyleOrigin
	StyleDestination
)

// Span marks Text[Start:End] of a cell with a Style. Offsets are in bytes.
type Span struct {
	Start int
	End   int
	Style Style
}

// Cell is plain text plus the styling annotations that apply to parts of it.
// Text may contain '\n' to stack several lines within a single table row.
type Cell struct {
	Text  string
	Spans []Span
}

type Row []Cell

func Plain(text string) Cell {
	return Cell{Text: text}
}

func Styled(text string, style Style) Cell {
	if style == StyleNone || text == "" {
		return Plain(text)
	}

	return Cell{
		Text:  text,
		Spans: []Span{{Start: 0, End: len(text), Style: style}},
	}
}

// Stack joins cells into a single multi-line cell, keeping each part's spans.
func Stack(cells ...Cell) Cell {
	var builder strings.Builder
	var spans []Span

	for i, cell := range cells {
		if i > 0 {
			builder.WriteByte('\n')
		}

		offset := builder.Len()
		for _, span := range cell.Spans {
			spans = append(spans, Span{
				Start: span.Start + offset,
				End:   span.End + offset,
				Style: span.Style,
			})
		}

		builder.WriteString(cell.Text)
	}

	return Cell{Text: builder.String(), Spans: spans}
}

func (c Cell) Lines() []string {
	return strings.Split(c.Text, "\n")
}

func (r Row) PlainText() []string {
	texts := make([]string, len(r))
	for i, cell := range r {
		texts[i] = cell.Text
	}

	return texts
}

type segment struct {
	text  string
	style Style
}

// segments splits the line starting at byte offset lineStart into styled and
// unstyled runs. Spans are clipped to the line so a reset never crosses into
// a neighbouring line or cell.
func (c Cell) segments(lineStart int, line string) []segment {
	lineEnd := lineStart + len(line)
	var result []segment
	cursor := lineStart

	for _, span := range c.Spans {
		start := max(span.Start, lineStart)
		end := min(span.End, lineEnd)
		if start >= end || start < cursor {
			continue
		}

		if start > cursor {
			result = append(result, segment{text: c.Text[cursor:start]})
		}
		result = append(result, segment{text: c.Text[start:end], style: span.Style})
		cursor = end
	}

	if cursor < lineEnd {
		result = append(result, segment{text: c.Text[cursor:lineEnd]})
	}

	return result
}
