package reducer

import (
	"strings"

	"github.com/sandeepkv93/studyquest/internal/model"
)

func tagName(t model.Tag) string { return t.Name }

// AddTag appends a session tag. Names are unique; a missing or malformed
// colour falls back to the default blue.
func AddTag(s model.AppState, name, color string) model.AppState {
	name = strings.TrimSpace(name)
	if name == "" || indexOf(s.Tags, tagName, name) >= 0 {
		return s
	}
	if !model.IsHexColor(color) {
		color = model.DefaultTagColor
	}
	s.Tags = append(append([]model.Tag(nil), s.Tags...), model.Tag{Name: name, Color: color})
	return s
}

func RemoveTag(s model.AppState, name string) model.AppState {
	i := indexOf(s.Tags, tagName, name)
	if i < 0 {
		return s
	}
	s.Tags = without(s.Tags, i)
	return s
}
