package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/studyquest/internal/model"
	"github.com/sandeepkv93/studyquest/internal/persist"
	"github.com/sandeepkv93/studyquest/internal/rewards"
	"github.com/sandeepkv93/studyquest/internal/store"
)

type StatusBar struct {
	Text    string
	IsError bool
}

// GlobalKeyMap binds the number row to tabs in display order.
type GlobalKeyMap struct {
	Tabs    map[string]model.Tab
	Palette string
	Help    string
	Quit    string
}

// TabOrder is the order tabs are shown and numbered in.
var TabOrder = []model.Tab{
	model.TabTimer,
	model.TabTasks,
	model.TabHabits,
	model.TabStats,
	model.TabShop,
	model.TabRank,
	model.TabSettings,
	model.TabMuseum,
}

type FocusState struct {
	Mode          model.SessionMode
	Tag           string
	TargetMinutes int
	Running       bool
	StartedAt     time.Time
	Elapsed       time.Duration
	// Run changes every time the timer starts or resumes. Ticks stamped with
	// an older run are ignored so only one tick loop ever counts.
	Run int
}

// Idle reports whether no run is in progress or paused.
func (f FocusState) Idle() bool {
	return f.StartedAt.IsZero()
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type Model struct {
	Store         *store.Store
	Config        RuntimeConfig
	Cursors       map[model.Tab]int
	Focus         FocusState
	Palette       CommandPaletteState
	HelpVisible   bool
	Notifications []Notification
	LastArtifact  *model.Artifact
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error
	Saving        bool

	saveResults <-chan persist.Result
	stories     *rewards.Library
	storyXP     int
	now         func() time.Time

	taskList       list.Model
	shopTable      table.Model
	inventoryTable table.Model
	loginInput     textinput.Model
	commandInput   textinput.Model
	focusProgress  progress.Model
	rankProgress   progress.Model
	saveSpinner    spinner.Model
	helpModel      help.Model
	storyViewport  viewport.Model
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type SwitchTabMsg struct {
	Tab model.Tab
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type FocusTickMsg struct {
	Run int
}

// SaveResultMsg carries one outcome from the background writer.
type SaveResultMsg struct {
	Result persist.Result
}

type Option func(*Model)

// WithSaveResults makes the model listen for writer outcomes.
func WithSaveResults(ch <-chan persist.Result) Option {
	return func(m *Model) { m.saveResults = ch }
}

func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

func WithStories(lib *rewards.Library) Option {
	return func(m *Model) { m.stories = lib }
}

func NewModel(st *store.Store, cfg RuntimeConfig, opts ...Option) Model {
	m := Model{
		Store:   st,
		Config:  cfg,
		Cursors: make(map[model.Tab]int),
		Focus: FocusState{
			Mode:          model.ModeCountdown,
			TargetMinutes: cfg.FocusMinutes,
		},
		Keys: GlobalKeyMap{
			Tabs:    make(map[string]model.Tab, len(TabOrder)),
			Palette: "/",
			Help:    "?",
			Quit:    "q",
		},
		stories: rewards.DefaultLibrary(),
		storyXP: -1,
		now:     time.Now,
	}
	for i, tab := range TabOrder {
		m.Keys.Tabs[string(rune('1'+i))] = tab
	}
	if m.Focus.TargetMinutes <= 0 {
		m.Focus.TargetMinutes = DefaultRuntimeConfig().FocusMinutes
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}
