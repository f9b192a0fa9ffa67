package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Task    func(TaskArgs) (Result, error)
	Habit   func(HabitArgs) (Result, error)
	Item    func(ItemArgs) (Result, error)
	Tag     func(TagArgs) (Result, error)
	Focus   func(FocusArgs) (Result, error)
	Done    func(TargetArgs) (Result, error)
	CheckIn func(TargetArgs) (Result, error)
	Buy     func(TargetArgs) (Result, error)
	Use     func(TargetArgs) (Result, error)
	Theme   func(ValueArgs) (Result, error)
	Go      func(ValueArgs) (Result, error)
	Strict  func(ValueArgs) (Result, error)
	Login   func(ValueArgs) (Result, error)
	Logout  func() (Result, error)
	Reset   func() (Result, error)
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}

func call[A any](t Type, fn func(A) (Result, error), args *A) (Result, error) {
	if fn == nil {
		return Result{}, missing(t)
	}
	if args == nil {
		return Result{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s is missing its arguments", t)}
	}
	return fn(*args)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeTask:
		return call(cmd.Type, handlers.Task, cmd.Task)
	case TypeHabit:
		return call(cmd.Type, handlers.Habit, cmd.Habit)
	case TypeItem:
		return call(cmd.Type, handlers.Item, cmd.Item)
	case TypeTag:
		return call(cmd.Type, handlers.Tag, cmd.Tag)
	case TypeFocus:
		return call(cmd.Type, handlers.Focus, cmd.Focus)
	case TypeDone:
		return call(cmd.Type, handlers.Done, cmd.Target)
	case TypeCheckIn:
		return call(cmd.Type, handlers.CheckIn, cmd.Target)
	case TypeBuy:
		return call(cmd.Type, handlers.Buy, cmd.Target)
	case TypeUse:
		return call(cmd.Type, handlers.Use, cmd.Target)
	case TypeTheme:
		return call(cmd.Type, handlers.Theme, cmd.Value)
	case TypeGo:
		return call(cmd.Type, handlers.Go, cmd.Value)
	case TypeStrict:
		return call(cmd.Type, handlers.Strict, cmd.Value)
	case TypeLogin:
		return call(cmd.Type, handlers.Login, cmd.Value)
	case TypeLogout:
		if handlers.Logout == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Logout()
	case TypeReset:
		if handlers.Reset == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Reset()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
