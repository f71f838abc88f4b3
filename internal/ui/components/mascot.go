package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/spellz/internal/ui/theme"
)

// Mood selects the mascot art.
type Mood int

const (
	MoodIdle Mood = iota
	MoodListening
	MoodHappy
	MoodOops
)

// The spelling bee.
var mascots = map[Mood]string{
	MoodIdle: `  \ /
 (o.o)
 /|=|\
  ^ ^`,
	MoodListening: `  \ /  )))
 (o.o)
 /|=|\
  ^ ^`,
	MoodHappy: ` \ * /
 (^.^)
 \|=|/
  ^ ^`,
	MoodOops: `  \ /
 (o.O)
 /|=|\
  ^ ^`,
}

var moodColors = map[Mood]color.Color{
	MoodIdle:      theme.Accent,
	MoodListening: theme.Listening,
	MoodHappy:     theme.Success,
	MoodOops:      theme.Error,
}

// RenderMascot returns the bee for mood.
func RenderMascot(mood Mood) string {
	art, ok := mascots[mood]
	if !ok {
		art, mood = mascots[MoodIdle], MoodIdle
	}
	return lipgloss.NewStyle().Foreground(moodColors[mood]).Render(art)
}
