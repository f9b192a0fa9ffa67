package commands

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/studyquest/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/task write essay !high due:2024-02-01", TypeTask},
		{"add read chapter 3", TypeTask},
		{"habit Read icon:📚", TypeHabit},
		{"checkin Read", TypeCheckIn},
		{"item Movie night 120 🎬", TypeItem},
		{"buy Movie night", TypeBuy},
		{"use Movie night", TypeUse},
		{"tag Music #ff00aa", TypeTag},
		{"focus 25 tag:Study", TypeFocus},
		{"theme cyberpunk", TypeTheme},
		{"go museum", TypeGo},
		{"strict on", TypeStrict},
		{"login Alice", TypeLogin},
		{"logout", TypeLogout},
		{"reset", TypeReset},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseTaskOptions(t *testing.T) {
	cmd, err := Parse("task write essay !h due:2024-02-01")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Task.Title != "write essay" || cmd.Task.Priority != model.PriorityHigh || cmd.Task.DueDate != "2024-02-01" {
		t.Fatalf("unexpected task args: %+v", *cmd.Task)
	}
}

func TestParseItemSplitsNameAndCost(t *testing.T) {
	cmd, err := Parse("item Movie night 120 🎬")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Item.Name != "Movie night" || cmd.Item.Cost != 120 || cmd.Item.Icon != "🎬" {
		t.Fatalf("unexpected item args: %+v", *cmd.Item)
	}
}

func TestParseFocusStopwatch(t *testing.T) {
	cmd, err := Parse("focus sw tag:Work")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Focus.Mode != model.ModeStopwatch || cmd.Focus.Tag != "Work" || cmd.Focus.Minutes != 0 {
		t.Fatalf("unexpected focus args: %+v", *cmd.Focus)
	}
}

func TestParseInvalidArguments(t *testing.T) {
	for _, in := range []string{
		"task !high",
		"task x !urgent",
		"task x due:tomorrow",
		"item 50",
		"item Snack -3",
		"tag Music #zzz",
		"focus -5",
		"theme neon",
		"go nowhere",
		"strict maybe",
		"buy",
	} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestParseEmpty(t *testing.T) {
	var ce *CommandError
	if _, err := Parse(" / "); !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
		t.Fatalf("expected empty input error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Task: func(a TaskArgs) (Result, error) {
			called = true
			if a.Title != "write docs" || a.Priority != model.PriorityNormal {
				t.Fatalf("unexpected args: %+v", a)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("logout")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}

func TestStrictValue(t *testing.T) {
	if !(ValueArgs{Value: "on"}).On() || (ValueArgs{Value: "off"}).On() || !(ValueArgs{Value: "true"}).On() {
		t.Fatal("unexpected strict value parsing")
	}
}
