package model

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestDefaultStateSeeds(t *testing.T) {
	s := DefaultState()
	if s.Energy != 0 || s.XP != 0 {
		t.Fatalf("expected zeroed economy, got energy=%d xp=%d", s.Energy, s.XP)
	}
	if len(s.Habits) != 3 || len(s.Tags) != 2 {
		t.Fatalf("expected 3 habits and 2 tags, got %d and %d", len(s.Habits), len(s.Tags))
	}
	if s.User.IsLoggedIn || s.User.Username != "" {
		t.Fatalf("expected logged-out profile, got %+v", s.User)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("default state must validate: %v", err)
	}
	if s.LoggedIn() {
		t.Fatal("default state must not be logged in")
	}
}

func TestNewProfileAvatarIsDerivedFromUsername(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewProfile("Alice Smith", now)
	if !p.IsLoggedIn || !p.JoinedAt.Equal(now) {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if !strings.HasSuffix(p.Avatar, "seed=Alice+Smith") {
		t.Fatalf("unexpected avatar: %s", p.Avatar)
	}
	if NewProfile("Alice Smith", now).Avatar != p.Avatar {
		t.Fatal("avatar must be deterministic")
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	s := DefaultState()
	c := s.Clone()
	c.Habits[0].History = append(c.Habits[0].History, "2024-01-01")
	c.Tags[0].Name = "changed"
	if len(s.Habits[0].History) != 0 || s.Tags[0].Name != "Work" {
		t.Fatalf("clone aliased the original: %+v", s)
	}
}

func TestValidateRejectsDuplicateIDs(t *testing.T) {
	s := DefaultState()
	s.Habits = append(s.Habits, Habit{ID: "1", Name: "dup", History: []string{}})
	if err := s.Validate(); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got: %v", err)
	}
}

func TestValidateRejectsNegativeEnergy(t *testing.T) {
	s := DefaultState()
	s.Energy = -1
	if err := s.Validate(); err == nil {
		t.Fatal("expected negative energy to be rejected")
	}
}

func TestEnumsRejectUnknownValues(t *testing.T) {
	if Theme("neon").IsValid() || Tab("inbox").IsValid() || Rarity("Mythic").IsValid() || InventoryStatus("broken").IsValid() {
		t.Fatal("expected unknown enum values to be invalid")
	}
	if !RarityGlitched.IsValid() || !ThemeForest.IsValid() || !TabMuseum.IsValid() {
		t.Fatal("expected known enum values to be valid")
	}
}
