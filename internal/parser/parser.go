package parser

import (
	stderrors "errors" // Standard errors package
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-faster/jx"

	"github.com/mcncl/jsonmatch/internal/errors" // Custom errors package
	"github.com/mcncl/jsonmatch/internal/models"
)

// Parse reads a single JSON document from reader. Object fields keep the
// order in which they appear in the document.
func Parse(reader io.Reader) (models.Value, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.Value{}, errors.NewInputError("failed to read JSON input", err)
	}
	return ParseBytes(data)
}

// ParseBytes parses a single JSON document held in data.
func ParseBytes(data []byte) (models.Value, error) {
	if strings.TrimSpace(string(data)) == "" {
		return models.Value{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	d := jx.DecodeBytes(data)
	root, err := decodeValue(d)
	if err != nil {
		return models.Value{}, errors.NewParsingError(fmt.Sprintf("JSON syntax error: %v", err), errors.ErrInvalidJSON)
	}

	// Only whitespace may follow the root value.
	switch err := d.Skip(); {
	case err == nil:
		return models.Value{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	case stderrors.Is(err, io.EOF), stderrors.Is(err, io.ErrUnexpectedEOF):
	default:
		return models.Value{}, errors.NewParsingError(fmt.Sprintf("invalid trailing data after first JSON value: %v", err), errors.ErrInvalidJSON)
	}

	return root, nil
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.Value, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.Value{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return ParseBytes([]byte(jsonString))
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (models.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Value{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Value{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return ParseBytes(data)
}

// decodeValue reads the next value from d into the document model.
func decodeValue(d *jx.Decoder) (models.Value, error) {
	switch t := d.Next(); t {
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return models.Value{}, err
		}
		return models.String(s), nil
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return models.Value{}, err
		}
		return models.Number(n.String()), nil
	case jx.Bool:
		b, err := d.Bool()
		if err != nil {
			return models.Value{}, err
		}
		return models.Bool(b), nil
	case jx.Null:
		if err := d.Null(); err != nil {
			return models.Value{}, err
		}
		return models.Null(), nil
	case jx.Array:
		items := []models.Value{}
		err := d.Arr(func(d *jx.Decoder) error {
			item, err := decodeValue(d)
			if err != nil {
				return err
			}
			items = append(items, item)
			return nil
		})
		if err != nil {
			return models.Value{}, err
		}
		return models.Array(items...), nil
	case jx.Object:
		var fields []models.Field
		err := d.Obj(func(d *jx.Decoder, key string) error {
			val, err := decodeValue(d)
			if err != nil {
				return err
			}
			fields = append(fields, models.Field{Key: key, Value: val})
			return nil
		})
		if err != nil {
			return models.Value{}, err
		}
		// A repeated key keeps its first position and takes the last value.
		return models.Object(fields...), nil
	default:
		// Skip reports the offending token.
		if err := d.Skip(); err != nil {
			return models.Value{}, err
		}
		return models.Value{}, fmt.Errorf("unexpected token of type %s", t)
	}
}
