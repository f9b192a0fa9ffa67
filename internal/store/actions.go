package store

import (
	"github.com/sandeepkv93/studyquest/internal/model"
	"github.com/sandeepkv93/studyquest/internal/reducer"
)

func (s *Store) AddTask(title string, priority model.Priority, dueDate string) {
	s.apply(func(st model.AppState) model.AppState { return reducer.AddTask(st, s.env, title, priority, dueDate) })
}

func (s *Store) ToggleTask(id string) {
	s.apply(func(st model.AppState) model.AppState { return reducer.ToggleTask(st, id) })
}

func (s *Store) DeleteTask(id string) {
	s.apply(func(st model.AppState) model.AppState { return reducer.DeleteTask(st, id) })
}

func (s *Store) UpdateTaskPriority(id string, priority model.Priority) {
	s.apply(func(st model.AppState) model.AppState { return reducer.UpdateTaskPriority(st, id, priority) })
}

func (s *Store) AddSession(log model.SessionLog) {
	s.apply(func(st model.AppState) model.AppState { return reducer.AddSession(st, s.env, log) })
}

// RecordSession adds the session and, when it completed, digs for an
// artifact at its depth. Both land in the same save.
func (s *Store) RecordSession(log model.SessionLog) (model.Artifact, bool) {
	var found model.Artifact
	dug := s.applyOK(func(st model.AppState) (model.AppState, bool) {
		st = reducer.AddSession(st, s.env, log)
		if log.Status != model.SessionCompleted {
			return st, false
		}
		a, ok := s.digger.Dig(log.DurationMinutes)
		if !ok {
			return st, false
		}
		found = a
		return reducer.AddArtifact(st, a), true
	})
	return found, dug
}

func (s *Store) AddArtifact(a model.Artifact) {
	s.apply(func(st model.AppState) model.AppState { return reducer.AddArtifact(st, a) })
}

func (s *Store) AddHabit(name, icon string) {
	s.apply(func(st model.AppState) model.AppState { return reducer.AddHabit(st, s.env, name, icon) })
}

func (s *Store) DeleteHabit(id string) {
	s.apply(func(st model.AppState) model.AppState { return reducer.DeleteHabit(st, id) })
}

func (s *Store) CheckInHabit(id string) bool {
	return s.applyOK(func(st model.AppState) (model.AppState, bool) { return reducer.CheckInHabit(st, s.env, id) })
}

func (s *Store) AddShopItem(name string, cost int, icon string) {
	s.apply(func(st model.AppState) model.AppState { return reducer.AddShopItem(st, s.env, name, cost, icon) })
}

func (s *Store) DeleteShopItem(id string) {
	s.apply(func(st model.AppState) model.AppState { return reducer.DeleteShopItem(st, id) })
}

// PurchaseItem checks and debits energy under the store lock.
func (s *Store) PurchaseItem(item model.ShopItem) bool {
	return s.applyOK(func(st model.AppState) (model.AppState, bool) { return reducer.PurchaseItem(st, s.env, item) })
}

func (s *Store) UseInventoryItem(id string) {
	s.apply(func(st model.AppState) model.AppState { return reducer.UseInventoryItem(st, id) })
}

func (s *Store) AddTag(name, color string) {
	s.apply(func(st model.AppState) model.AppState { return reducer.AddTag(st, name, color) })
}

func (s *Store) RemoveTag(name string) {
	s.apply(func(st model.AppState) model.AppState { return reducer.RemoveTag(st, name) })
}

func (s *Store) UpdateProfile(avatar string) {
	s.apply(func(st model.AppState) model.AppState { return reducer.UpdateProfile(st, avatar) })
}

func (s *Store) SetTheme(theme model.Theme) {
	s.apply(func(st model.AppState) model.AppState { return reducer.SetTheme(st, theme) })
}

func (s *Store) SetActiveTab(tab model.Tab) {
	s.apply(func(st model.AppState) model.AppState { return reducer.SetActiveTab(st, tab) })
}

func (s *Store) SetBgImage(url string) {
	s.apply(func(st model.AppState) model.AppState { return reducer.SetBgImage(st, url) })
}

func (s *Store) SetBlurLevel(level int) {
	s.apply(func(st model.AppState) model.AppState { return reducer.SetBlurLevel(st, level) })
}

func (s *Store) SetStrictMode(on bool) {
	s.apply(func(st model.AppState) model.AppState { return reducer.SetStrictMode(st, on) })
}
