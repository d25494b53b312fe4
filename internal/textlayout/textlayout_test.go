package textlayout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	green = "\x1b[32m"
	red   = "\x1b[31m"
	reset = "\x1b[0m"
)

func TestIndent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "single line", input: "a", expected: "    a"},
		{name: "multiple lines", input: "{\n\"a\": 1\n}", expected: "    {\n    \"a\": 1\n    }"},
		{name: "empty", input: "", expected: "    "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Indent(tt.input))
		})
	}
}

func TestIndent_Nests(t *testing.T) {
	twice := Indent(Indent("one\ntwo"))
	for _, line := range strings.Split(twice, "\n") {
		assert.True(t, strings.HasPrefix(line, "        "), "line %q should carry 8 spaces", line)
		assert.False(t, strings.HasPrefix(line, "         "))
	}
}

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "\"x\"", StripANSI(green+"\"x\""+reset))
	assert.Equal(t, "bold red", StripANSI("\x1b[1;31mbold red\x1b[0m"))
	assert.Equal(t, "plain", StripANSI("plain"))
}

func TestVisibleWidth(t *testing.T) {
	assert.Equal(t, 3, VisibleWidth(red+"abc"+reset))
	assert.Equal(t, 1, VisibleWidth("…"))
	assert.Equal(t, 2, VisibleWidth("╮│"))
}

func TestAnnotate_SingleLine(t *testing.T) {
	assert.Equal(t, "42 ╶ The answer.", Annotate("42", "The answer.", 0))
	// extra indent only matters for blocks
	assert.Equal(t, "42 ╶ The answer.", Annotate("42", "The answer.", 7))
}

func TestAnnotate_ThreeLines(t *testing.T) {
	expected := "Hallo    ╮ annotation.\n" +
		"Was      │\n" +
		"Ist Das? ╯"
	assert.Equal(t, expected, Annotate("Hallo\nWas\nIst Das?", "annotation.", 0))
}

func TestAnnotate_FourLinesUsesBranch(t *testing.T) {
	result := Annotate("{\n    \"c\": 1,\n    \"d\": 2\n}", "Nested.", 0)
	lines := strings.Split(result, "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "{           ╮", lines[0])
	assert.Equal(t, "    \"c\": 1, ├ Nested.", lines[1])
	assert.Equal(t, "    \"d\": 2  │", lines[2])
	assert.Equal(t, "}           ╯", lines[3])
}

func TestAnnotate_TwoLinesCaptionOnFirst(t *testing.T) {
	assert.Equal(t, "ab ╮ c\nx  ╯", Annotate("ab\nx", "c", 0))
}

func TestAnnotate_CaptionPlacement(t *testing.T) {
	for n := 2; n <= 9; n++ {
		block := strings.TrimSuffix(strings.Repeat("x\n", n), "\n")
		lines := strings.Split(Annotate(block, "caption", 0), "\n")
		require.Len(t, lines, n)

		for i, line := range lines {
			if i == n/2-1 {
				assert.True(t, strings.HasSuffix(line, " caption"), "n=%d line %d", n, i)
			} else {
				assert.NotContains(t, line, "caption", "n=%d line %d", n, i)
			}
		}
		assert.Contains(t, lines[0], GlyphTop)
		assert.Contains(t, lines[n-1], GlyphBottom)
	}
}

func TestAnnotate_ExtraIndentWidensFirstLine(t *testing.T) {
	expected := "{   ╮\n" +
		"    \"c\", ├ Nested.\n" +
		"    \"d\"  │\n" +
		"}        ╯"
	// the first line is preceded by a 5 column label on screen
	assert.Equal(t, expected, Annotate("{\n    \"c\",\n    \"d\"\n}", "Nested.", 5))
}

func TestAnnotate_IgnoresColorCodes(t *testing.T) {
	plain := Annotate("\"hello\",\n\"hi\"", "caption", 0)
	styled := Annotate(green+"\"hello\""+reset+",\n"+red+"\"hi\""+reset, "caption", 0)

	// same border column once the styling is gone
	assert.Equal(t, plain, StripANSI(styled))
	assert.Equal(t, "\"hello\", ╮ caption\n\"hi\"     ╯", plain)
}

func TestAnnotate_KeepsOriginalBytes(t *testing.T) {
	text := green + "a" + reset + "\n" + red + "bb" + reset
	result := Annotate(text, "c", 0)
	lines := strings.Split(result, "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], green+"a"+reset))
	assert.True(t, strings.HasPrefix(lines[1], red+"bb"+reset))
}
