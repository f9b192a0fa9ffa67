package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/sandeepkv93/studyquest/internal/model"
	"github.com/sandeepkv93/studyquest/internal/persist"
	"github.com/sandeepkv93/studyquest/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	cmds []persist.SaveCommand
}

func (r *recorder) Submit(cmd persist.SaveCommand) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmds = append(r.cmds, cmd)
}

func (r *recorder) saves() []persist.SaveCommand {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]persist.SaveCommand(nil), r.cmds...)
}

type brokenBackend struct{}

func (brokenBackend) Save(context.Context, string, []byte) error { return errors.New("disk on fire") }
func (brokenBackend) Load(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk on fire")
}

// neverDrops makes every dig miss its gate.
type neverDrops struct{}

func (neverDrops) Float64() float64 { return 0.999999 }

var fixedNow = time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)

func newTestStore(t *testing.T, backend storage.Backend, opts ...Option) *Store {
	t.Helper()
	n := 0
	base := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDs(func() string { n++; return fmt.Sprintf("id-%d", n) }),
		WithRand(neverDrops{}),
	}
	return New(backend, append(base, opts...)...)
}

func completed(minutes int) model.SessionLog {
	return model.SessionLog{
		StartTime:       fixedNow.Add(-time.Duration(minutes) * time.Minute),
		EndTime:         fixedNow,
		DurationMinutes: minutes,
		Tag:             "Work",
		Status:          model.SessionCompleted,
		Mode:            model.ModeCountdown,
	}
}

func TestAliceEndToEnd(t *testing.T) {
	backend, err := storage.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	s := newTestStore(t, backend)

	s.Login(testContext(t), "Alice")
	st := s.Snapshot()
	require.True(t, st.LoggedIn())
	assert.Equal(t, 0, st.Energy)
	assert.Equal(t, 0, st.XP)
	assert.Len(t, st.Habits, 3)
	assert.Len(t, st.Tags, 2)
	assert.Equal(t, model.PlaceholderAvatar("Alice"), st.User.Avatar)

	s.AddSession(completed(30))
	want := s.Snapshot()
	assert.Equal(t, 300, want.XP)
	assert.Equal(t, 30, want.Energy)
	assert.Len(t, want.Sessions, 1)

	s.Logout()
	assert.False(t, s.Snapshot().LoggedIn())

	s.Login(testContext(t), "Alice")
	got := s.Snapshot()
	assert.Equal(t, want.XP, got.XP)
	assert.Equal(t, want.Energy, got.Energy)
	require.Len(t, got.Sessions, 1)
	assert.Equal(t, want.Sessions[0].ID, got.Sessions[0].ID)
	assert.True(t, want.Sessions[0].EndTime.Equal(got.Sessions[0].EndTime))
	assert.Equal(t, want.User.Username, got.User.Username)
}

func TestLoginEmitsExactlyOneSave(t *testing.T) {
	rec := &recorder{}
	s := newTestStore(t, storage.NewMemoryBackend(), WithExecutor(rec))
	s.Login(testContext(t), "bob smith")

	saves := rec.saves()
	require.Len(t, saves, 1)
	assert.Equal(t, "StudyQuest_bob_smith.json", saves[0].FileID)
	st, err := Decode(saves[0].Data)
	require.NoError(t, err)
	assert.Equal(t, "bob smith", st.User.Username)
}

func TestNoSavesWhileLoggedOut(t *testing.T) {
	rec := &recorder{}
	s := newTestStore(t, storage.NewMemoryBackend(), WithExecutor(rec))
	s.AddTask("orphan", model.PriorityHigh, "")
	s.Reset()
	assert.Empty(t, rec.saves())

	s.Login(testContext(t), "carol")
	s.AddTask("kept", model.PriorityHigh, "")
	s.Logout()
	s.AddTask("after logout", model.PriorityHigh, "")
	assert.Len(t, rec.saves(), 2, "login and one action")
}

func TestEveryActionPersistsOnce(t *testing.T) {
	rec := &recorder{}
	s := newTestStore(t, storage.NewMemoryBackend(), WithExecutor(rec))
	s.Login(testContext(t), "dora")

	s.AddTask("a", model.PriorityNormal, "")
	s.ToggleTask(s.Snapshot().Tasks[0].ID)
	s.CheckInHabit("1")
	s.AddTag("Reading", "")
	s.SetTheme(model.ThemeForest)
	assert.Len(t, rec.saves(), 6)

	last, err := Decode(rec.saves()[5].Data)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeForest, last.Theme)
	assert.True(t, last.Tasks[0].IsCompleted)
}

func TestCorruptSaveFallsBackToDefaults(t *testing.T) {
	backend := storage.NewMemoryBackend()
	require.NoError(t, backend.Save(testContext(t), "StudyQuest_erin.json", []byte("{not json")))

	var logs bytes.Buffer
	s := newTestStore(t, backend, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	s.Login(testContext(t), "erin")

	st := s.Snapshot()
	assert.True(t, st.LoggedIn())
	assert.Equal(t, 0, st.XP)
	assert.Len(t, st.Habits, 3)
	assert.Contains(t, logs.String(), `level=WARN msg="decode save failed" file=StudyQuest_erin.json`)

	// The fresh state overwrote the corrupt file.
	data, err := backend.Load(testContext(t), "StudyQuest_erin.json")
	require.NoError(t, err)
	_, err = Decode(data)
	assert.NoError(t, err)
}

func TestLoginForcesLoggedInFlag(t *testing.T) {
	backend := storage.NewMemoryBackend()
	blob := []byte(`{"state":{"user":{"username":"fay","avatar":"a.png","isLoggedIn":false,"joinedAt":""},"xp":70},"version":1}`)
	require.NoError(t, backend.Save(testContext(t), "StudyQuest_fay.json", blob))

	s := newTestStore(t, backend)
	s.Login(testContext(t), "fay")
	st := s.Snapshot()
	assert.True(t, st.User.IsLoggedIn)
	assert.Equal(t, 70, st.XP)
	assert.Equal(t, "a.png", st.User.Avatar)
}

func TestLoginReplacesPreviousUserWithoutMerging(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryBackend())
	s.Login(testContext(t), "gus")
	s.AddSession(completed(10))
	s.Login(testContext(t), "hana")
	st := s.Snapshot()
	assert.Equal(t, "hana", st.User.Username)
	assert.Equal(t, 0, st.XP)
	assert.Empty(t, st.Sessions)
}

func TestLoginBlocksConcurrentActions(t *testing.T) {
	backend := &slowBackend{MemoryBackend: storage.NewMemoryBackend(), loading: make(chan struct{}), release: make(chan struct{})}
	s := newTestStore(t, backend)

	done := make(chan struct{})
	go func() {
		s.Login(testContext(t), "ivy")
		close(done)
	}()
	<-backend.loading

	added := make(chan struct{})
	go func() {
		s.AddTask("during login", model.PriorityNormal, "")
		close(added)
	}()
	select {
	case <-added:
		t.Fatal("action ran while login held the store")
	case <-time.After(50 * time.Millisecond):
	}

	close(backend.release)
	<-done
	<-added
	st := s.Snapshot()
	assert.Equal(t, "ivy", st.User.Username)
	require.Len(t, st.Tasks, 1)
	assert.Equal(t, "during login", st.Tasks[0].Title)
}

type slowBackend struct {
	*storage.MemoryBackend
	once    sync.Once
	loading chan struct{}
	release chan struct{}
}

func (b *slowBackend) Load(ctx context.Context, fileID string) ([]byte, error) {
	b.once.Do(func() { close(b.loading) })
	<-b.release
	return b.MemoryBackend.Load(ctx, fileID)
}

func TestPurchaseFailureLeavesStateIdentical(t *testing.T) {
	rec := &recorder{}
	s := newTestStore(t, storage.NewMemoryBackend(), WithExecutor(rec))
	s.Login(testContext(t), "jay")
	s.AddShopItem("Coffee", 30, "☕")

	before := s.Snapshot()
	assert.False(t, s.PurchaseItem(before.ShopItems[0]))
	assert.Equal(t, before, s.Snapshot())

	s.AddSession(completed(30))
	assert.True(t, s.PurchaseItem(before.ShopItems[0]))
	st := s.Snapshot()
	assert.Equal(t, 0, st.Energy)
	require.Len(t, st.Inventory, 1)
}

func TestConcurrentPurchasesNeverOverspend(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryBackend())
	s.Login(testContext(t), "kim")
	s.AddSession(completed(100))
	item := model.ShopItem{ID: "x", Name: "Snack", Cost: 7, Icon: "🍪"}

	var wg sync.WaitGroup
	var mu sync.Mutex
	bought := 0
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.PurchaseItem(item) {
				mu.Lock()
				bought++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	st := s.Snapshot()
	assert.Equal(t, 14, bought)
	assert.Equal(t, 2, st.Energy)
	assert.Len(t, st.Inventory, 14)
}

func TestExportImportRoundTrip(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryBackend())
	s.Login(testContext(t), "lea")
	s.AddTask("essay", model.PriorityHigh, "2024-01-05")
	s.AddSession(completed(25))
	s.CheckInHabit("2")
	s.AddTag("Music", "#ff00aa")

	blob, err := s.Export()
	require.NoError(t, err)
	want := s.Snapshot()

	s.Reset()
	require.Equal(t, 0, s.Snapshot().XP)
	require.True(t, s.Import(blob))

	got := s.Snapshot()
	wantJSON, err := Encode(want)
	require.NoError(t, err)
	gotJSON, err := Encode(got)
	require.NoError(t, err)
	assert.JSONEq(t, string(wantJSON), string(gotJSON))
}

func TestImportRejectsMalformedBlob(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryBackend())
	s.Login(testContext(t), "max")
	s.AddSession(completed(5))
	before := s.Snapshot()

	for _, blob := range []string{"", "[]", "null", `{"version":1}`, `{"state":[1]}`, `{"state":{},"version":9}`} {
		assert.False(t, s.Import([]byte(blob)), "blob %q", blob)
	}
	assert.Equal(t, before, s.Snapshot())
}

func TestImportKeepsSignedInIdentity(t *testing.T) {
	rec := &recorder{}
	s := newTestStore(t, storage.NewMemoryBackend(), WithExecutor(rec))
	s.Login(testContext(t), "nia")
	require.True(t, s.Import([]byte(`{"state":{"user":{"username":"someone-else","isLoggedIn":true},"xp":500},"version":1}`)))

	st := s.Snapshot()
	assert.Equal(t, "nia", st.User.Username)
	assert.Equal(t, 500, st.XP)
	saves := rec.saves()
	assert.Equal(t, "StudyQuest_nia.json", saves[len(saves)-1].FileID)
}

func TestResetKeepsIdentity(t *testing.T) {
	later := fixedNow.Add(48 * time.Hour)
	now := fixedNow
	s := New(storage.NewMemoryBackend(), WithClock(func() time.Time { return now }), WithRand(neverDrops{}))
	s.Login(testContext(t), "oz")
	s.UpdateProfile("https://example.com/oz.png")
	s.AddSession(completed(60))

	now = later
	s.Reset()
	st := s.Snapshot()
	assert.Equal(t, "oz", st.User.Username)
	assert.True(t, st.User.IsLoggedIn)
	assert.Equal(t, "https://example.com/oz.png", st.User.Avatar)
	assert.True(t, st.User.JoinedAt.Equal(later))
	assert.Equal(t, 0, st.XP)
	assert.Empty(t, st.Sessions)
}

func TestFutureVersionSaveIsNotOverwritten(t *testing.T) {
	backend := storage.NewMemoryBackend()
	future := []byte(`{"state":{"xp":999},"version":7}`)
	require.NoError(t, backend.Save(testContext(t), "StudyQuest_pia.json", future))

	s := newTestStore(t, backend)
	s.Login(testContext(t), "pia")
	assert.True(t, s.ReadOnly())
	s.AddTask("x", model.PriorityNormal, "")

	data, err := backend.Load(testContext(t), "StudyQuest_pia.json")
	require.NoError(t, err)
	assert.Equal(t, future, data)

	s.Logout()
	assert.False(t, s.ReadOnly())
}

func TestFailedSavesAreLoggedNotFatal(t *testing.T) {
	var logs bytes.Buffer
	s := newTestStore(t, brokenBackend{}, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	s.Login(testContext(t), "quinn")
	s.AddTask("still works", model.PriorityNormal, "")

	assert.Len(t, s.Snapshot().Tasks, 1)
	assert.Contains(t, logs.String(), `level=WARN msg="save failed"`)
	assert.Contains(t, logs.String(), "disk on fire")
}

func TestSharedSanitizedNameWarns(t *testing.T) {
	backend := storage.NewMemoryBackend()
	var logs bytes.Buffer
	s := newTestStore(t, backend, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	s.Login(testContext(t), "a.b")
	s.Login(testContext(t), "a b")
	assert.Equal(t, "a.b", s.Snapshot().User.Username)
	assert.Contains(t, logs.String(), `level=WARN msg="username shares a save file" user="a b" file=StudyQuest_a_b.json stored=a.b`)
}

func TestRecordSessionDigsOnlyForCompleted(t *testing.T) {
	s := New(storage.NewMemoryBackend(), WithRand(alwaysDrops{}))
	s.Login(testContext(t), "rae")

	abandoned := completed(60)
	abandoned.Status = model.SessionAbandoned
	_, dug := s.RecordSession(abandoned)
	assert.False(t, dug)

	a, dug := s.RecordSession(completed(60))
	require.True(t, dug)
	st := s.Snapshot()
	require.Len(t, st.Artifacts, 1)
	assert.Equal(t, a.ID, st.Artifacts[0].ID)
	assert.Equal(t, 60, a.SourceDepth)
	assert.Len(t, st.Sessions, 2)
}

type alwaysDrops struct{}

func (alwaysDrops) Float64() float64 { return 0 }
