package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-faster/jx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonmatch/internal/errors"
	"github.com/mcncl/jsonmatch/internal/models"
)

func TestParse_SimpleObject(t *testing.T) {
	root, err := Parse(strings.NewReader(`{"name": "John Doe", "age": 30, "isStudent": false, "city": null}`))
	require.NoError(t, err)

	assert.Equal(t, jx.Object, root.Type())
	assert.Equal(t, []string{"name", "age", "isStudent", "city"}, root.Keys())

	name, ok := root.Get("name")
	require.True(t, ok)
	assert.Equal(t, "John Doe", name.Str())

	age, _ := root.Get("age")
	assert.Equal(t, jx.Number, age.Type())
	assert.Equal(t, "30", age.Literal())

	student, _ := root.Get("isStudent")
	assert.Equal(t, jx.Bool, student.Type())
	assert.False(t, student.Boolean())

	city, _ := root.Get("city")
	assert.Equal(t, jx.Null, city.Type())
}

func TestParse_PreservesFieldOrder(t *testing.T) {
	root, err := ParseString(`{"z": 1, "a": 2, "m": {"y": true, "b": false}}`)
	require.NoError(t, err)

	assert.Equal(t, []string{"z", "a", "m"}, root.Keys())
	nested, _ := root.Get("m")
	assert.Equal(t, []string{"y", "b"}, nested.Keys())
}

func TestParse_DuplicateKeysKeepFirstPosition(t *testing.T) {
	root, err := ParseString(`{"a": 1, "b": 2, "a": 3}`)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, root.Keys())
	a, _ := root.Get("a")
	assert.Equal(t, "3", a.Literal())
}

func TestParse_SimpleArray(t *testing.T) {
	root, err := ParseString(`[1, "test", true, null, 3.14, [], {}]`)
	require.NoError(t, err)

	require.Equal(t, jx.Array, root.Type())
	expected := models.Array(
		models.Number("1"),
		models.String("test"),
		models.Bool(true),
		models.Null(),
		models.Number("3.14"),
		models.Array(),
		models.Object(),
	)
	assert.True(t, expected.Equal(root), "got %s", root)
	assert.Equal(t, 7, root.Len())
}

func TestParse_Scalars(t *testing.T) {
	tests := []struct {
		input    string
		expected models.Value
	}{
		{`"hello"`, models.String("hello")},
		{`"esc\"aped\n"`, models.String("esc\"aped\n")},
		{`-12.5e3`, models.Number("-12.5e3")},
		{`true`, models.Bool(true)},
		{`null`, models.Null()},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := ParseString(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(v), "got %s", v)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sentinel error
	}{
		{name: "syntax error", input: `{"a": }`, sentinel: errors.ErrInvalidJSON},
		{name: "unterminated object", input: `{"a": 1`, sentinel: errors.ErrInvalidJSON},
		{name: "bare word", input: `hello`, sentinel: errors.ErrInvalidJSON},
		{name: "multiple values", input: `{"a": 1} {"b": 2}`, sentinel: errors.ErrMultipleJSON},
		{name: "trailing garbage", input: `[1, 2] ]`, sentinel: errors.ErrInvalidJSON},
		{name: "whitespace only", input: "   \n\t ", sentinel: errors.ErrEmptyInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.ErrorIs(t, err, &errors.AppError{Type: errors.ErrorTypeParsing})
		})
	}
}

func TestParse_TrailingWhitespaceAllowed(t *testing.T) {
	_, err := ParseString("{\"a\": 1}\n\n  ")
	assert.NoError(t, err)
}

func TestParseString_Empty(t *testing.T) {
	_, err := ParseString("  ")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrEmptyInput)
	assert.ErrorIs(t, err, &errors.AppError{Type: errors.ErrorTypeInput})
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "valid.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"key": "value"}`), 0644))

		root, err := ParseFile(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"key"}, root.Keys())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ParseFile(filepath.Join(dir, "nope.json"))
		assert.ErrorIs(t, err, errors.ErrFileNotFound)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.json")
		require.NoError(t, os.WriteFile(path, nil, 0644))

		_, err := ParseFile(path)
		assert.ErrorIs(t, err, errors.ErrFileEmpty)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := ParseFile(" ")
		assert.ErrorIs(t, err, errors.ErrInvalidFilePath)
	})
}
