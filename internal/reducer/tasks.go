package reducer

import (
	"strings"

	"github.com/sandeepkv93/studyquest/internal/model"
)

func taskID(t model.Task) string { return t.ID }

// AddTask prepends a new open task. A blank title is ignored, an unknown
// priority becomes normal and an unparseable due date is dropped.
func AddTask(s model.AppState, env Env, title string, priority model.Priority, dueDate string) model.AppState {
	title = strings.TrimSpace(title)
	if title == "" {
		return s
	}
	if !priority.IsValid() {
		priority = model.PriorityNormal
	}
	dueDate = strings.TrimSpace(dueDate)
	if dueDate != "" && !model.IsValidDate(dueDate) {
		dueDate = ""
	}
	task := model.Task{
		ID:        env.uniqueID(hasID(s.Tasks, taskID)),
		Title:     title,
		Priority:  priority,
		DueDate:   dueDate,
		CreatedAt: env.now(),
	}
	s.Tasks = prepend(s.Tasks, task)
	return s
}

func ToggleTask(s model.AppState, id string) model.AppState {
	i := indexOf(s.Tasks, taskID, id)
	if i < 0 {
		return s
	}
	task := s.Tasks[i]
	task.IsCompleted = !task.IsCompleted
	s.Tasks = replaced(s.Tasks, i, task)
	return s
}

func DeleteTask(s model.AppState, id string) model.AppState {
	i := indexOf(s.Tasks, taskID, id)
	if i < 0 {
		return s
	}
	s.Tasks = without(s.Tasks, i)
	return s
}

func UpdateTaskPriority(s model.AppState, id string, priority model.Priority) model.AppState {
	if !priority.IsValid() {
		return s
	}
	i := indexOf(s.Tasks, taskID, id)
	if i < 0 || s.Tasks[i].Priority == priority {
		return s
	}
	task := s.Tasks[i]
	task.Priority = priority
	s.Tasks = replaced(s.Tasks, i, task)
	return s
}
