package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/studyquest/internal/model"
)

type Type string

const (
	TypeTask    Type = "task"
	TypeDone    Type = "done"
	TypeHabit   Type = "habit"
	TypeCheckIn Type = "checkin"
	TypeItem    Type = "item"
	TypeBuy     Type = "buy"
	TypeUse     Type = "use"
	TypeTag     Type = "tag"
	TypeFocus   Type = "focus"
	TypeTheme   Type = "theme"
	TypeGo      Type = "go"
	TypeStrict  Type = "strict"
	TypeLogin   Type = "login"
	TypeLogout  Type = "logout"
	TypeReset   Type = "reset"
)

// aliases maps short forms typed in the palette to their command.
var aliases = map[string]Type{
	"add":   TypeTask,
	"t":     TypeTask,
	"do":    TypeCheckIn,
	"shop":  TypeItem,
	"timer": TypeFocus,
	"tab":   TypeGo,
}

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(format string, args ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

type TaskArgs struct {
	Title    string
	Priority model.Priority
	DueDate  string
}

type HabitArgs struct {
	Name string
	Icon string
}

type ItemArgs struct {
	Name string
	Cost int
	Icon string
}

type TagArgs struct {
	Name  string
	Color string
}

type FocusArgs struct {
	Minutes int
	Tag     string
	Mode    model.SessionMode
}

// TargetArgs names an existing entity by id or by name.
type TargetArgs struct {
	Target string
}

type ValueArgs struct {
	Value string
}

type Command struct {
	Type   Type
	Raw    string
	Task   *TaskArgs
	Habit  *HabitArgs
	Item   *ItemArgs
	Tag    *TagArgs
	Focus  *FocusArgs
	Target *TargetArgs
	Value  *ValueArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := Type(strings.ToLower(parts[0]))
	if alias, ok := aliases[string(head)]; ok {
		head = alias
	}
	args := parts[1:]

	switch head {
	case TypeTask:
		return parseTask(input, args)
	case TypeHabit:
		return parseHabit(input, args)
	case TypeItem:
		return parseItem(input, args)
	case TypeTag:
		return parseTag(input, args)
	case TypeFocus:
		return parseFocus(input, args)
	case TypeDone, TypeCheckIn, TypeBuy, TypeUse:
		return parseTarget(input, head, args)
	case TypeTheme, TypeGo, TypeStrict, TypeLogin:
		return parseValue(input, head, args)
	case TypeLogout, TypeReset:
		return Command{Type: head, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseTask reads "task <title> [!high|!low] [due:YYYY-MM-DD]".
func parseTask(raw string, args []string) (Command, error) {
	out := TaskArgs{Priority: model.PriorityNormal}
	var words []string
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "!") && len(arg) > 1:
			p, ok := model.ParsePriority(arg[1:])
			if !ok {
				return Command{}, invalid("unknown priority %q", arg[1:])
			}
			out.Priority = p
		case strings.HasPrefix(strings.ToLower(arg), "due:"):
			due := arg[len("due:"):]
			if !model.IsValidDate(due) {
				return Command{}, invalid("due date must be YYYY-MM-DD, got %q", due)
			}
			out.DueDate = due
		default:
			words = append(words, arg)
		}
	}
	out.Title = strings.TrimSpace(strings.Join(words, " "))
	if out.Title == "" {
		return Command{}, invalid("task requires a title")
	}
	return Command{Type: TypeTask, Raw: raw, Task: &out}, nil
}

// parseHabit reads "habit <name> [icon:X]".
func parseHabit(raw string, args []string) (Command, error) {
	out := HabitArgs{}
	var words []string
	for _, arg := range args {
		if strings.HasPrefix(strings.ToLower(arg), "icon:") {
			out.Icon = arg[len("icon:"):]
			continue
		}
		words = append(words, arg)
	}
	out.Name = strings.Join(words, " ")
	if out.Name == "" {
		return Command{}, invalid("habit requires a name")
	}
	return Command{Type: TypeHabit, Raw: raw, Habit: &out}, nil
}

// parseItem reads "item <name> <cost> [icon]"; the first number ends the name.
func parseItem(raw string, args []string) (Command, error) {
	for i, arg := range args {
		cost, err := strconv.Atoi(arg)
		if err != nil {
			continue
		}
		if i == 0 {
			return Command{}, invalid("item requires a name before the cost")
		}
		if cost <= 0 {
			return Command{}, invalid("item cost must be positive, got %d", cost)
		}
		return Command{Type: TypeItem, Raw: raw, Item: &ItemArgs{
			Name: strings.Join(args[:i], " "),
			Cost: cost,
			Icon: strings.Join(args[i+1:], " "),
		}}, nil
	}
	return Command{}, invalid("item requires a name and a cost")
}

func parseTag(raw string, args []string) (Command, error) {
	out := TagArgs{}
	var words []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "#") {
			if !model.IsHexColor(arg) {
				return Command{}, invalid("tag colour must look like #3b82f6, got %q", arg)
			}
			out.Color = arg
			continue
		}
		words = append(words, arg)
	}
	out.Name = strings.Join(words, " ")
	if out.Name == "" {
		return Command{}, invalid("tag requires a name")
	}
	return Command{Type: TypeTag, Raw: raw, Tag: &out}, nil
}

// parseFocus reads "focus [minutes|stopwatch] [tag:Name]". Minutes of zero
// mean the configured default.
func parseFocus(raw string, args []string) (Command, error) {
	out := FocusArgs{Mode: model.ModeCountdown}
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case lower == "stopwatch" || lower == "sw":
			out.Mode = model.ModeStopwatch
		case strings.HasPrefix(lower, "tag:"):
			out.Tag = arg[len("tag:"):]
		default:
			mins, err := strconv.Atoi(strings.TrimSuffix(lower, "m"))
			if err != nil || mins <= 0 {
				return Command{}, invalid("focus length must be a positive number of minutes, got %q", arg)
			}
			out.Minutes = mins
		}
	}
	return Command{Type: TypeFocus, Raw: raw, Focus: &out}, nil
}

func parseTarget(raw string, kind Type, args []string) (Command, error) {
	target := strings.TrimSpace(strings.Join(args, " "))
	if target == "" {
		return Command{}, invalid("%s requires an id or name", kind)
	}
	return Command{Type: kind, Raw: raw, Target: &TargetArgs{Target: target}}, nil
}

func parseValue(raw string, kind Type, args []string) (Command, error) {
	value := strings.TrimSpace(strings.Join(args, " "))
	if value == "" {
		return Command{}, invalid("%s requires a value", kind)
	}
	switch kind {
	case TypeTheme:
		if !model.Theme(strings.ToLower(value)).IsValid() {
			return Command{}, invalid("unknown theme %q", value)
		}
		value = strings.ToLower(value)
	case TypeGo:
		if !model.Tab(strings.ToLower(value)).IsValid() {
			return Command{}, invalid("unknown tab %q", value)
		}
		value = strings.ToLower(value)
	case TypeStrict:
		if _, err := strconv.ParseBool(value); err != nil && value != "on" && value != "off" {
			return Command{}, invalid("strict takes on or off, got %q", value)
		}
	}
	return Command{Type: kind, Raw: raw, Value: &ValueArgs{Value: value}}, nil
}

// On reports whether a strict value switches the mode on.
func (v ValueArgs) On() bool {
	if v.Value == "on" {
		return true
	}
	on, _ := strconv.ParseBool(v.Value)
	return on
}
