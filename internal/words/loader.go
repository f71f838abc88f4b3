package words

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/spellz/internal/spelling"
)

var (
	ErrEmptyList = errors.New("word list is empty")
	ErrBlankWord = errors.New("word list contains a blank word")
	ErrDuplicate = errors.New("word list contains duplicate words")
)

// Format is the encoding of a word list file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

//go:embed weekly.yaml
var weeklyYAML []byte

// Builtin returns the word list that ships with the binary.
func Builtin() List {
	list, err := Parse(weeklyYAML, FormatYAML)
	if err != nil {
		panic(fmt.Sprintf("builtin word list is invalid: %v", err))
	}
	return list
}

// FormatFor picks a format from a file extension. Unknown extensions are
// read as YAML, which also accepts JSON documents.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Loader reads and writes word list files.
type Loader struct {
	fs afero.Fs
}

// NewLoader creates a Loader on top of fs.
func NewLoader(fs afero.Fs) *Loader {
	return &Loader{fs: fs}
}

// NewOSLoader creates a Loader backed by the real filesystem.
func NewOSLoader() *Loader {
	return NewLoader(afero.NewOsFs())
}

// Load reads, validates and returns the word list at path.
func (l *Loader) Load(path string) (List, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return List{}, fmt.Errorf("read word list: %w", err)
	}
	list, err := Parse(data, FormatFor(path))
	if err != nil {
		return List{}, fmt.Errorf("%s: %w", path, err)
	}
	return list, nil
}

// Save validates list and writes it to path. The format follows the
// file extension.
func (l *Loader) Save(path string, list List) error {
	if err := Validate(list); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	switch FormatFor(path) {
	case FormatJSON:
		data, err = json.MarshalIndent(list, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	default:
		data, err = yaml.Marshal(list)
	}
	if err != nil {
		return fmt.Errorf("encode word list: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := l.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	if err := afero.WriteFile(l.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write word list: %w", err)
	}
	return nil
}

// Parse decodes a word list, checks it against ListSchema and applies
// the semantic checks in Validate.
func Parse(data []byte, format Format) (List, error) {
	jsonData := data
	if format == FormatYAML {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return List{}, fmt.Errorf("invalid YAML: %w", err)
		}
		if doc == nil {
			return List{}, ErrEmptyList
		}
		b, err := json.Marshal(doc)
		if err != nil {
			return List{}, fmt.Errorf("convert YAML: %w", err)
		}
		jsonData = b
	}

	if err := validateJSON(jsonData); err != nil {
		return List{}, fmt.Errorf("schema validation failed: %w", err)
	}

	var list List
	if err := json.Unmarshal(jsonData, &list); err != nil {
		return List{}, fmt.Errorf("decode word list: %w", err)
	}
	if err := Validate(list); err != nil {
		return List{}, err
	}
	return list, nil
}

// Validate checks the invariants the practice session relies on: at least
// one entry, no blank words, and no two words that compare equal.
func Validate(list List) error {
	if len(list.Entries) == 0 {
		return ErrEmptyList
	}
	for i, e := range list.Entries {
		if spelling.Normalize(e.Word) == "" {
			return fmt.Errorf("%w at position %d", ErrBlankWord, i+1)
		}
	}
	dups := lo.FindDuplicatesBy(list.Entries, func(e Entry) string {
		return spelling.Normalize(e.Word)
	})
	if len(dups) > 0 {
		names := lo.Map(dups, func(e Entry, _ int) string { return e.Word })
		return fmt.Errorf("%w: %s", ErrDuplicate, strings.Join(names, ", "))
	}
	return nil
}
