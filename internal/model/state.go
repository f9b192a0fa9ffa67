package model

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

var (
	ErrInvalidTheme = errors.New("model: invalid theme")
	ErrInvalidTab   = errors.New("model: invalid tab")
	ErrDuplicateID  = errors.New("model: duplicate id")
)

const (
	DefaultTagColor  = "#3b82f6"
	DefaultHabitIcon = "✨"
	DefaultBlurLevel = 10
	MaxBlurLevel     = 40

	avatarBaseURL = "https://api.dicebear.com/7.x/notionists/svg?seed="
)

type Theme string

const (
	ThemeDefault   Theme = "default"
	ThemeCyberpunk Theme = "cyberpunk"
	ThemePixel     Theme = "pixel"
	ThemeFilm      Theme = "film"
	ThemeBW        Theme = "bw"
	ThemeForest    Theme = "forest"
)

func (t Theme) IsValid() bool {
	switch t {
	case ThemeDefault, ThemeCyberpunk, ThemePixel, ThemeFilm, ThemeBW, ThemeForest:
		return true
	default:
		return false
	}
}

type Tab string

const (
	TabTimer    Tab = "timer"
	TabTasks    Tab = "tasks"
	TabHabits   Tab = "habits"
	TabStats    Tab = "stats"
	TabShop     Tab = "shop"
	TabRank     Tab = "rank"
	TabSettings Tab = "settings"
	TabMuseum   Tab = "museum"
)

func (t Tab) IsValid() bool {
	switch t {
	case TabTimer, TabTasks, TabHabits, TabStats, TabShop, TabRank, TabSettings, TabMuseum:
		return true
	default:
		return false
	}
}

type UserProfile struct {
	Username   string    `json:"username"`
	Avatar     string    `json:"avatar"`
	IsLoggedIn bool      `json:"isLoggedIn"`
	JoinedAt   time.Time `json:"joinedAt"`
}

// NewProfile builds the profile of a user logging in for the first time.
func NewProfile(username string, now time.Time) UserProfile {
	return UserProfile{
		Username:   username,
		Avatar:     PlaceholderAvatar(username),
		IsLoggedIn: true,
		JoinedAt:   now,
	}
}

func PlaceholderAvatar(username string) string {
	return avatarBaseURL + url.QueryEscape(username)
}

// AppState is the persisted aggregate for one user.
type AppState struct {
	User       UserProfile     `json:"user"`
	Energy     int             `json:"energy"`
	XP         int             `json:"xp"`
	Theme      Theme           `json:"theme"`
	BgImage    string          `json:"bgImage"`
	BlurLevel  int             `json:"blurLevel"`
	ActiveTab  Tab             `json:"activeTab"`
	StrictMode bool            `json:"strictMode"`
	Tasks      []Task          `json:"tasks"`
	Sessions   []SessionLog    `json:"sessions"`
	Inventory  []InventoryItem `json:"inventory"`
	Artifacts  []Artifact      `json:"artifacts"`
	ShopItems  []ShopItem      `json:"shopItems"`
	Habits     []Habit         `json:"habits"`
	Tags       []Tag           `json:"customTags"`
}

func DefaultHabits() []Habit {
	return []Habit{
		{ID: "1", Name: "Early rise", Icon: "🌅", History: []string{}},
		{ID: "2", Name: "Early sleep", Icon: "🌙", History: []string{}},
		{ID: "3", Name: "Workout", Icon: "💪", History: []string{}},
	}
}

func DefaultTags() []Tag {
	return []Tag{
		{Name: "Work", Color: DefaultTagColor},
		{Name: "Study", Color: "#10b981"},
	}
}

// DefaultState is the logged-out state: empty profile, zeroed economy and the
// seeded habit and tag lists.
func DefaultState() AppState {
	return AppState{
		Theme:     ThemeDefault,
		BlurLevel: DefaultBlurLevel,
		ActiveTab: TabTimer,
		Tasks:     []Task{},
		Sessions:  []SessionLog{},
		Inventory: []InventoryItem{},
		Artifacts: []Artifact{},
		ShopItems: []ShopItem{},
		Habits:    DefaultHabits(),
		Tags:      DefaultTags(),
	}
}

// Clone returns a deep copy so callers can never alias the live collections.
func (s AppState) Clone() AppState {
	out := s
	out.Tasks = append([]Task{}, s.Tasks...)
	out.Sessions = append([]SessionLog{}, s.Sessions...)
	out.Inventory = append([]InventoryItem{}, s.Inventory...)
	out.Artifacts = append([]Artifact{}, s.Artifacts...)
	out.ShopItems = append([]ShopItem{}, s.ShopItems...)
	out.Tags = append([]Tag{}, s.Tags...)
	out.Habits = make([]Habit, len(s.Habits))
	for i, h := range s.Habits {
		h.History = append([]string{}, h.History...)
		out.Habits[i] = h
	}
	return out
}

func (s AppState) Validate() error {
	if s.Energy < 0 {
		return fmt.Errorf("model: energy must not be negative, got %d", s.Energy)
	}
	if s.XP < 0 {
		return fmt.Errorf("model: xp must not be negative, got %d", s.XP)
	}
	if !s.Theme.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, s.Theme)
	}
	if !s.ActiveTab.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTab, s.ActiveTab)
	}
	if err := validateAll("task", s.Tasks, func(v Task) string { return v.ID }, Task.Validate); err != nil {
		return err
	}
	if err := validateAll("session", s.Sessions, func(v SessionLog) string { return v.ID }, SessionLog.Validate); err != nil {
		return err
	}
	if err := validateAll("inventory item", s.Inventory, func(v InventoryItem) string { return v.ID }, InventoryItem.Validate); err != nil {
		return err
	}
	if err := validateAll("artifact", s.Artifacts, func(v Artifact) string { return v.ID }, Artifact.Validate); err != nil {
		return err
	}
	if err := validateAll("shop item", s.ShopItems, func(v ShopItem) string { return v.ID }, ShopItem.Validate); err != nil {
		return err
	}
	if err := validateAll("habit", s.Habits, func(v Habit) string { return v.ID }, Habit.Validate); err != nil {
		return err
	}
	return validateAll("tag", s.Tags, func(v Tag) string { return v.Name }, Tag.Validate)
}

func validateAll[T any](kind string, items []T, key func(T) string, validate func(T) error) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if err := validate(item); err != nil {
			return err
		}
		id := key(item)
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s %q", ErrDuplicateID, kind, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// LoggedIn reports whether saves should be written for this state.
func (s AppState) LoggedIn() bool {
	return s.User.IsLoggedIn && strings.TrimSpace(s.User.Username) != ""
}

func (s AppState) FindTag(name string) (Tag, bool) {
	for _, t := range s.Tags {
		if t.Name == name {
			return t, true
		}
	}
	return Tag{}, false
}
