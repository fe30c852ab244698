package deck

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/rote/internal/question"
)

var (
	// ErrInvalidDeck is returned when a deck file does not match the record format.
	ErrInvalidDeck = errors.New("invalid deck")
	// ErrUnsupportedFormat is returned for files that are neither JSON nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported deck format")
)

// Format is the serialization of a deck file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatOf derives the deck format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
}

// Load reads, validates and decodes the deck at path.
func Load(path string) ([]question.Question, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}
	qs, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	return qs, nil
}

// Parse validates data against the deck schema and decodes it.
func Parse(data []byte, format Format) ([]question.Question, error) {
	doc, err := decodeDocument(data, format)
	if err != nil {
		return nil, err
	}
	if err := validate(doc); err != nil {
		return nil, err
	}

	var qs []question.Question
	switch format {
	case FormatYAML:
		qs, err = question.UnmarshalYAML(data)
	default:
		qs, err = question.UnmarshalJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDeck, err)
	}
	return qs, nil
}

// decodeDocument returns data as a generic JSON value for validation.
func decodeDocument(data []byte, format Format) (any, error) {
	var doc any
	switch format {
	case FormatYAML:
		var y any
		if err := yaml.Unmarshal(data, &y); err != nil {
			return nil, fmt.Errorf("%w: parse yaml: %v", ErrInvalidDeck, err)
		}
		// Normalize YAML scalars to the types encoding/json produces.
		raw, err := json.Marshal(y)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDeck, err)
		}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDeck, err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: parse json: %v", ErrInvalidDeck, err)
		}
	}
	return doc, nil
}

// Encode serializes qs in the given format.
func Encode(qs []question.Question, format Format) ([]byte, error) {
	if format == FormatYAML {
		return question.MarshalYAML(qs)
	}
	return question.MarshalJSON(qs)
}
