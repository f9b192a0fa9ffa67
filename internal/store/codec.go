package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sandeepkv93/studyquest/internal/model"
)

// CurrentVersion is written into every save. Version 0 marks saves written
// before the envelope carried a version and is read the same way.
const CurrentVersion = 1

var (
	ErrMalformedSave      = errors.New("store: malformed save")
	ErrUnsupportedVersion = errors.New("store: unsupported save version")
)

type envelope struct {
	State   model.AppState `json:"state"`
	Version int            `json:"version"`
}

func Encode(s model.AppState) ([]byte, error) {
	data, err := json.Marshal(envelope{State: s, Version: CurrentVersion})
	if err != nil {
		return nil, fmt.Errorf("store: encode save: %w", err)
	}
	return data, nil
}

// Decode parses a save envelope field by field. A field that is missing or
// fails validation keeps its default; collections keep their valid entries
// and the first of any duplicated id. Only a blob that is not an object with
// a state object, or one from a newer version, is rejected.
func Decode(blob []byte) (model.AppState, error) {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(blob, &env); err != nil || env == nil {
		return model.AppState{}, fmt.Errorf("%w: not a json object", ErrMalformedSave)
	}
	if raw, ok := env["version"]; ok && !isNull(raw) {
		var version float64
		if err := json.Unmarshal(raw, &version); err != nil {
			return model.AppState{}, fmt.Errorf("%w: version is not a number", ErrMalformedSave)
		}
		if int(version) > CurrentVersion {
			return model.AppState{}, fmt.Errorf("%w: %v", ErrUnsupportedVersion, version)
		}
	}
	rawState, ok := env["state"]
	if !ok {
		return model.AppState{}, fmt.Errorf("%w: missing state", ErrMalformedSave)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(rawState, &fields); err != nil || fields == nil {
		return model.AppState{}, fmt.Errorf("%w: state is not an object", ErrMalformedSave)
	}

	s := model.DefaultState()
	s.User = decodeUser(fields["user"])
	s.Energy = decodeCount(fields["energy"], s.Energy)
	s.XP = decodeCount(fields["xp"], s.XP)
	decodeField(fields["theme"], &s.Theme, model.Theme.IsValid)
	decodeField(fields["activeTab"], &s.ActiveTab, model.Tab.IsValid)
	decodeField(fields["bgImage"], &s.BgImage, nil)
	decodeField(fields["strictMode"], &s.StrictMode, nil)
	if blur := decodeCount(fields["blurLevel"], -1); blur >= 0 {
		s.BlurLevel = min(blur, model.MaxBlurLevel)
	}

	s.Tasks = decodeList(fields["tasks"], s.Tasks, model.Task.Validate, func(v model.Task) string { return v.ID })
	s.Sessions = decodeList(fields["sessions"], s.Sessions, model.SessionLog.Validate, func(v model.SessionLog) string { return v.ID })
	s.Inventory = decodeList(fields["inventory"], s.Inventory, model.InventoryItem.Validate, func(v model.InventoryItem) string { return v.ID })
	s.Artifacts = decodeList(fields["artifacts"], s.Artifacts, model.Artifact.Validate, func(v model.Artifact) string { return v.ID })
	s.ShopItems = decodeList(fields["shopItems"], s.ShopItems, model.ShopItem.Validate, func(v model.ShopItem) string { return v.ID })
	s.Habits = decodeList(fields["habits"], s.Habits, model.Habit.Validate, func(v model.Habit) string { return v.ID })
	s.Tags = decodeList(fields["customTags"], s.Tags, model.Tag.Validate, func(v model.Tag) string { return v.Name })
	for i := range s.Habits {
		if s.Habits[i].History == nil {
			s.Habits[i].History = []string{}
		}
	}
	return s, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeField[T any](raw json.RawMessage, dst *T, valid func(T) bool) {
	if isNull(raw) {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return
	}
	if valid != nil && !valid(v) {
		return
	}
	*dst = v
}

// decodeCount accepts any non-negative JSON number, truncates fractions and
// clamps values past the int range.
func decodeCount(raw json.RawMessage, fallback int) int {
	if isNull(raw) {
		return fallback
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil || f < 0 || math.IsNaN(f) {
		return fallback
	}
	if f >= float64(math.MaxInt) {
		return math.MaxInt
	}
	return int(f)
}

func decodeList[T any](raw json.RawMessage, fallback []T, validate func(T) error, key func(T) string) []T {
	if isNull(raw) {
		return fallback
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return fallback
	}
	out := make([]T, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			continue
		}
		if validate(v) != nil {
			continue
		}
		if _, dup := seen[key(v)]; dup {
			continue
		}
		seen[key(v)] = struct{}{}
		out = append(out, v)
	}
	return out
}

// userWire tolerates the empty joinedAt of a logged-out profile.
type userWire struct {
	Username   string `json:"username"`
	Avatar     string `json:"avatar"`
	IsLoggedIn bool   `json:"isLoggedIn"`
	JoinedAt   string `json:"joinedAt"`
}

func decodeUser(raw json.RawMessage) model.UserProfile {
	if isNull(raw) {
		return model.UserProfile{}
	}
	var w userWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return model.UserProfile{}
	}
	u := model.UserProfile{Username: w.Username, Avatar: w.Avatar, IsLoggedIn: w.IsLoggedIn}
	if t, err := time.Parse(time.RFC3339Nano, w.JoinedAt); err == nil {
		u.JoinedAt = t
	}
	return u
}
