package reducer

import (
	"strings"

	"github.com/sandeepkv93/studyquest/internal/model"
)

// UpdateProfile changes the avatar. The username is fixed for the life of a
// save, so it is not a parameter.
func UpdateProfile(s model.AppState, avatar string) model.AppState {
	avatar = strings.TrimSpace(avatar)
	if avatar == "" {
		avatar = model.PlaceholderAvatar(s.User.Username)
	}
	s.User.Avatar = avatar
	return s
}

func SetTheme(s model.AppState, theme model.Theme) model.AppState {
	if theme.IsValid() {
		s.Theme = theme
	}
	return s
}

func SetActiveTab(s model.AppState, tab model.Tab) model.AppState {
	if tab.IsValid() {
		s.ActiveTab = tab
	}
	return s
}

func SetBgImage(s model.AppState, url string) model.AppState {
	s.BgImage = strings.TrimSpace(url)
	return s
}

func SetBlurLevel(s model.AppState, level int) model.AppState {
	s.BlurLevel = min(max(level, 0), model.MaxBlurLevel)
	return s
}

func SetStrictMode(s model.AppState, on bool) model.AppState {
	s.StrictMode = on
	return s
}
