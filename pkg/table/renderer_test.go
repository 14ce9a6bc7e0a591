package table

import (
	"bytes"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiEscape = regexp.MustCompile("\x1b\\[[0-9;]*m")

func render(t *testing.T, colorEnabled bool, header []string, rows ...Row) string {
	t.Helper()

	var buffer bytes.Buffer
	renderer := NewRenderer(Sink{Out: &buffer, ColorEnabled: colorEnabled})
	require.NoError(t, renderer.Render(header, slices.Values(rows)))

	return buffer.String()
}

func TestRenderLayout(t *testing.T) {
	output := render(t, false, []string{"a", "bb"},
		Row{Plain("xyz"), Stack(Plain("1"), Plain("22"))},
	)

	expected := strings.Join([]string{
		"+-----+----+",
		"|  a  | bb |",
		"+-----+----+",
		"| xyz | 1  |",
		"|     | 22 |",
		"+-----+----+",
		"",
	}, "\n")

	assert.Equal(t, expected, output)
}

func TestRenderWideCharacters(t *testing.T) {
	output := render(t, false, []string{"车次", "车站"},
		Row{Plain("G1"), Stack(Plain("北京南"), Plain("上海虹桥"))},
	)

	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	require.Len(t, lines, 6)

	assert.Equal(t, "+------+----------+", lines[0])
	assert.Equal(t, "| 车次 |   车站   |", lines[1])
	assert.Equal(t, "|  G1  |  北京南  |", lines[3])
	assert.Equal(t, "|      | 上海虹桥 |", lines[4])
}

func TestRenderColorDoesNotAffectWidths(t *testing.T) {
	row := Row{
		Plain("G103"),
		Stack(Styled("北京南", StyleOrigin), Styled("上海虹桥", StyleDestination)),
		Stack(Styled("06:20", StyleOrigin), Styled("11:29", StyleDestination)),
	}
	header := []string{"车次", "车站", "时间"}

	plain := render(t, false, header, row)
	colored := render(t, true, header, row)

	assert.NotEqual(t, plain, colored)
	assert.Contains(t, colored, "\x1b[32m北京南\x1b[0m")
	assert.Contains(t, colored, "\x1b[31m上海虹桥\x1b[0m")
	assert.Equal(t, plain, ansiEscape.ReplaceAllString(colored, ""))
}

func TestRenderIsIdempotent(t *testing.T) {
	rows := []Row{
		{Plain("G103"), Stack(Styled("北京南", StyleOrigin), Styled("上海虹桥", StyleDestination))},
		{Plain("K9"), Stack(Plain("-----"), Plain("-----"))},
	}
	header := []string{"车次", "时间"}

	first := render(t, true, header, rows...)
	second := render(t, true, header, rows...)

	assert.Equal(t, first, second)
}

func TestRenderEmptyBody(t *testing.T) {
	output := render(t, false, []string{"a"})

	assert.Equal(t, "+---+\n| a |\n+---+\n+---+\n", output)
}

func TestStackShiftsSpans(t *testing.T) {
	cell := Stack(Styled("ab", StyleOrigin), Plain("c"), Styled("de", StyleDestination))

	assert.Equal(t, "ab\nc\nde", cell.Text)
	assert.Equal(t, []Span{
		{Start: 0, End: 2, Style: StyleOrigin},
		{Start: 5, End: 7, Style: StyleDestination},
	}, cell.Spans)
}

func TestSegmentsClipToLine(t *testing.T) {
	cell := Cell{Text: "abc\ndef", Spans: []Span{{Start: 1, End: 6, Style: StyleOrigin}}}

	assert.Equal(t, []segment{
		{text: "a"},
		{text: "bc", style: StyleOrigin},
	}, cell.segments(0, "abc"))

	assert.Equal(t, []segment{
		{text: "de", style: StyleOrigin},
		{text: "f"},
	}, cell.segments(4, "def"))
}

func TestStyledEmptyOrNone(t *testing.T) {
	assert.Empty(t, Styled("", StyleOrigin).Spans)
	assert.Empty(t, Styled("x", StyleNone).Spans)
}
