package words

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin(t *testing.T) {
	list := Builtin()
	require.NotEmpty(t, list.Entries)
	assert.Equal(t, "Weekly Words", list.Title)
	for _, e := range list.Entries {
		assert.NotEmpty(t, e.Word)
		assert.NotEmpty(t, e.Hint, "word %q has no hint", e.Word)
	}
	require.NoError(t, Validate(list))
}

func TestParse_YAML(t *testing.T) {
	data := []byte(`
title: Animals
words:
  - word: cat
    hint: It says meow.
  - word: dog
`)
	list, err := Parse(data, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "Animals", list.Title)
	assert.Equal(t, []string{"cat", "dog"}, list.Words())
	assert.Equal(t, "It says meow.", list.Entries[0].Hint)
	assert.Empty(t, list.Entries[1].Hint)
}

func TestParse_JSON(t *testing.T) {
	data := []byte(`{"words":[{"word":"sun","hint":"It shines."}]}`)
	list, err := Parse(data, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Len())
	assert.Equal(t, "sun", list.Entries[0].Word)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		target error
	}{
		{"empty document", "", FormatYAML, ErrEmptyList},
		{"no words", "words: []", FormatYAML, nil},
		{"missing words key", "title: x", FormatYAML, nil},
		{"blank word", `{"words":[{"word":"   "}]}`, FormatJSON, nil},
		{"unknown field", `{"words":[{"word":"cat","colour":"red"}]}`, FormatJSON, nil},
		{"duplicate", "words:\n  - word: Cat\n  - word: cat\n", FormatYAML, ErrDuplicate},
		{"broken yaml", "words: [", FormatYAML, nil},
		{"broken json", "{", FormatJSON, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			require.Error(t, err)
			if tt.target != nil {
				assert.True(t, errors.Is(err, tt.target), "got %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, Validate(List{}), ErrEmptyList)
	assert.ErrorIs(t, Validate(List{Entries: []Entry{{Word: ""}}}), ErrBlankWord)
	assert.ErrorIs(t, Validate(List{Entries: []Entry{{Word: "sun"}, {Word: " SUN "}}}), ErrDuplicate)
	assert.NoError(t, Validate(List{Entries: []Entry{{Word: "sun"}, {Word: "moon"}}}))
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFor("list.JSON"))
	assert.Equal(t, FormatYAML, FormatFor("list.yaml"))
	assert.Equal(t, FormatYAML, FormatFor("list.yml"))
	assert.Equal(t, FormatYAML, FormatFor("list"))
}

func TestLoader_SaveAndLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	loader := NewLoader(fs)
	list := List{
		Title: "Space",
		Entries: []Entry{
			{Word: "moon", Hint: "It shines at night."},
			{Word: "star", Hint: "It twinkles."},
		},
	}

	for _, path := range []string{"lists/space.yaml", "lists/space.json"} {
		t.Run(path, func(t *testing.T) {
			require.NoError(t, loader.Save(path, list))
			got, err := loader.Load(path)
			require.NoError(t, err)
			assert.Equal(t, list, got)
		})
	}
}

func TestLoader_LoadMissing(t *testing.T) {
	loader := NewLoader(afero.NewMemMapFs())
	_, err := loader.Load("nope.yaml")
	require.Error(t, err)
}

func TestLoader_SaveRejectsInvalid(t *testing.T) {
	fs := afero.NewMemMapFs()
	loader := NewLoader(fs)
	err := loader.Save("bad.yaml", List{})
	require.ErrorIs(t, err, ErrEmptyList)

	exists, _ := afero.Exists(fs, "bad.yaml")
	assert.False(t, exists)
}
