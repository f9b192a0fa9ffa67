// Package store owns the live AppState of the signed-in user. Every action
// runs a reducer under one lock and hands the resulting save to an executor;
// login and logout swap the whole state.
package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/studyquest/internal/model"
	"github.com/sandeepkv93/studyquest/internal/namespace"
	"github.com/sandeepkv93/studyquest/internal/persist"
	"github.com/sandeepkv93/studyquest/internal/reducer"
	"github.com/sandeepkv93/studyquest/internal/rewards"
	"github.com/sandeepkv93/studyquest/internal/storage"
)

type Store struct {
	mu    sync.Mutex
	state model.AppState
	// readOnly is set when the user's save was written by a newer version.
	// Saves are withheld until the next login so that file is not clobbered.
	readOnly bool

	backend       storage.Backend
	exec          persist.Executor
	env           reducer.Env
	rng           rewards.Rand
	digger        *rewards.Digger
	logger        *slog.Logger
	strictDefault bool
}

type Option func(*Store)

// WithExecutor routes save commands to exec, typically a *persist.Writer.
func WithExecutor(exec persist.Executor) Option {
	return func(s *Store) { s.exec = exec }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.env.Now = now }
}

func WithIDs(newID func() string) Option {
	return func(s *Store) { s.env.NewID = newID }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRand seeds artifact drops from rng.
func WithRand(rng rewards.Rand) Option {
	return func(s *Store) { s.rng = rng }
}

// WithStrictDefault sets strict mode on states created for new users.
func WithStrictDefault(on bool) Option {
	return func(s *Store) { s.strictDefault = on }
}

func New(backend storage.Backend, opts ...Option) *Store {
	s := &Store{
		state:   model.DefaultState(),
		backend: backend,
		env:     reducer.Env{Now: time.Now, NewID: uuid.NewString},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.exec == nil {
		s.exec = &persist.Sync{Backend: backend, OnResult: s.ReportResult}
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	// Artifacts share the store's clock and id source.
	s.digger = rewards.NewDigger(s.rng,
		rewards.WithClock(s.env.Now),
		rewards.WithIDs(func() string { return "ART-" + s.env.NewID() }),
	)
	return s
}

// ReportResult logs failed saves. The shell feeds it the writer's results.
func (s *Store) ReportResult(r persist.Result) {
	if r.Err != nil {
		s.logger.Warn("save failed", slog.String("file", r.FileID), slog.Uint64("seq", r.Seq), slog.String("error", r.Err.Error()))
	}
}

// Snapshot returns a deep copy of the live state.
func (s *Store) Snapshot() model.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Store) ReadOnly() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readOnly
}

// Login replaces the live state with username's save, or with a fresh
// profile when there is no usable save. The lock is held for the whole
// load so no action can interleave with it. A blank username is ignored.
func (s *Store) Login(ctx context.Context, username string) {
	username = strings.TrimSpace(username)
	if username == "" {
		s.logger.Warn("login with a blank username ignored")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fileID := namespace.ResolveFileID(username)
	next, readOnly := s.restore(ctx, fileID, username)
	s.state = next
	s.readOnly = readOnly
	s.persistLocked()
}

func (s *Store) restore(ctx context.Context, fileID, username string) (model.AppState, bool) {
	data, err := s.backend.Load(ctx, fileID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return s.fresh(username), false
	case err != nil:
		s.logger.Warn("load save failed", slog.String("file", fileID), slog.String("error", err.Error()))
		return s.fresh(username), false
	}

	st, err := Decode(data)
	switch {
	case errors.Is(err, ErrUnsupportedVersion):
		s.logger.Warn("save written by a newer version, saves disabled until the next login", slog.String("file", fileID))
		return s.fresh(username), true
	case err != nil:
		s.logger.Warn("decode save failed", slog.String("file", fileID), slog.String("error", err.Error()))
		return s.fresh(username), false
	}

	stored := st.User.Username
	if stored == "" {
		st.User.Username = username
	} else if stored != username {
		s.logger.Warn("username shares a save file", slog.String("user", username), slog.String("file", fileID), slog.String("stored", stored))
	}
	if st.User.Avatar == "" {
		st.User.Avatar = model.PlaceholderAvatar(st.User.Username)
	}
	st.User.IsLoggedIn = true
	return st, false
}

func (s *Store) fresh(username string) model.AppState {
	st := model.DefaultState()
	st.User = model.NewProfile(username, s.env.Now())
	st.StrictMode = s.strictDefault
	return st
}

// Logout drops back to the default state without saving.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = model.DefaultState()
	s.readOnly = false
}

func (s *Store) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Encode(s.state)
}

// Import replaces the live state with a decoded save and reports whether the
// blob was usable. The signed-in identity is kept, so an imported blob is
// always saved to the current user's file.
func (s *Store) Import(blob []byte) bool {
	st, err := Decode(blob)
	if err != nil {
		s.logger.Warn("import rejected", slog.String("error", err.Error()))
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.LoggedIn() {
		st.User.Username = s.state.User.Username
		st.User.IsLoggedIn = true
	} else {
		st.User.IsLoggedIn = false
	}
	s.state = st
	s.persistLocked()
	return true
}

// Reset restores the defaults but keeps who is signed in.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := s.state.User
	s.state = model.DefaultState()
	s.state.StrictMode = s.strictDefault
	s.state.User = model.UserProfile{
		Username:   user.Username,
		Avatar:     user.Avatar,
		IsLoggedIn: user.IsLoggedIn,
		JoinedAt:   s.env.Now(),
	}
	s.persistLocked()
}

func (s *Store) persistLocked() {
	if !s.state.LoggedIn() {
		return
	}
	fileID := namespace.ResolveFileID(s.state.User.Username)
	if s.readOnly {
		s.logger.Warn("save skipped, newer save on disk", slog.String("file", fileID))
		return
	}
	data, err := Encode(s.state)
	if err != nil {
		s.logger.Error("encode state failed", slog.String("error", err.Error()))
		return
	}
	s.exec.Submit(persist.SaveCommand{FileID: fileID, Data: data})
}

func (s *Store) apply(fn func(model.AppState) model.AppState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fn(s.state)
	s.persistLocked()
}

func (s *Store) applyOK(fn func(model.AppState) (model.AppState, bool)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := fn(s.state)
	s.state = next
	s.persistLocked()
	return ok
}
