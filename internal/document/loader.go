package document

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidDocument is returned when a document parses but does not
	// describe a valid scene.
	ErrInvalidDocument = errors.New("invalid scene document")
	// ErrNoRoot is returned when encoding a graph without a root.
	ErrNoRoot = errors.New("graph has no root")
)

// LoadFile loads and parses a YAML scene file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse scene YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = CurrentVersion
	}
}

// Decode parses and builds a document. Any error diagnostic fails the decode.
func Decode(data []byte, opts DecodeOptions) (*Document, error) {
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}

	doc, diags := Build(f, opts)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, diags.Error())
	}

	return doc, nil
}

// Open loads and builds the scene file at path.
func Open(path string, opts DecodeOptions) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file %s: %w", path, err)
	}

	doc, err := Decode(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// Encode serializes the current state of a document.
func Encode(doc *Document) ([]byte, error) {
	f, err := Export(doc)
	if err != nil {
		return nil, err
	}

	return Marshal(f)
}

// WriteFile writes a document to the given path.
func WriteFile(doc *Document, path string) error {
	data, err := Encode(doc)
	if err != nil {
		return fmt.Errorf("failed to encode scene: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write scene file %s: %w", path, err)
	}

	return nil
}
