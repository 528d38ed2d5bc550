package change

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/opencountrieslist/advisory-cli/internal/model"
)

func TestRenderPost(t *testing.T) {
	event := &model.ChangeEvent{
		Country:   "Wakanda",
		Narrative: "Wakanda is now open to U.S. travelers.",
	}

	post, ok := RenderPost(event)
	assert.True(t, ok)
	assert.True(t, strings.HasPrefix(post, event.Narrative))
	assert.Contains(t, post, "https://opencountrieslist.com")
	assert.LessOrEqual(t, len(post), maxPostLen)
}

func TestRenderPost_EmptyNarrative(t *testing.T) {
	_, ok := RenderPost(&model.ChangeEvent{Country: "Wakanda"})
	assert.False(t, ok)

	_, ok = RenderPost(nil)
	assert.False(t, ok)
}

func TestRenderPost_CountsRunesNotBytes(t *testing.T) {
	// 183 two-byte runes plus the 97-rune suffix sits exactly at the
	// limit by rune count while far exceeding it by byte count.
	event := &model.ChangeEvent{
		Country:   "Curaçao",
		Narrative: strings.Repeat("é", 183),
	}

	post, ok := RenderPost(event)
	assert.True(t, ok)
	assert.Greater(t, len(post), maxPostLen)
	assert.LessOrEqual(t, utf8.RuneCountInString(post), maxPostLen)
}

func TestRenderPost_Oversized(t *testing.T) {
	event := &model.ChangeEvent{
		Country:   "Wakanda",
		Narrative: strings.Repeat("Wakanda is now open to U.S. travelers. ", 8),
	}

	post, ok := RenderPost(event)
	assert.False(t, ok)
	assert.Empty(t, post)
}
