package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"todo-folders.com/todo-folders/internal/constants"
	apperrors "todo-folders.com/todo-folders/internal/errors"
	model "todo-folders.com/todo-folders/internal/models"
	"todo-folders.com/todo-folders/internal/reminders"
	repository "todo-folders.com/todo-folders/internal/repositories"
)

type TodoService struct {
	todos     *repository.TodoRepository
	folders   *repository.FolderRepository
	reminders *reminders.Manager
}

type CreateTodoInput struct {
	Text             string
	Priority         constants.Priority
	ReminderInterval int
	DueDate          *time.Time
	FolderID         *string
}

// EditTodoInput is what the edit form submits. PriorReminderID is the
// reminder id the client saw when it opened the form; nil means use the
// stored one.
type EditTodoInput struct {
	Text             string
	Priority         constants.Priority
	ReminderInterval int
	DueDate          *time.Time
	PriorReminderID  *string
}

// TodoResult is a saved todo plus a reminder problem that did not block the
// save.
type TodoResult struct {
	Todo    *model.Todo
	Warning error
}

func NewTodoService(
	todos *repository.TodoRepository,
	folders *repository.FolderRepository,
	manager *reminders.Manager,
) *TodoService {
	return &TodoService{
		todos:     todos,
		folders:   folders,
		reminders: manager,
	}
}

func (s *TodoService) CreateTodo(ctx context.Context, ownerID string, in CreateTodoInput) (*TodoResult, error) {
	text, priority, err := normalizeTodo(in.Text, in.Priority, in.ReminderInterval)
	if err != nil {
		return nil, err
	}

	if in.FolderID != nil {
		if _, err := s.folders.FindByID(ctx, ownerID, *in.FolderID); err != nil {
			return nil, folderError(err)
		}
	}

	out := s.reminders.Create(ctx, text, in.ReminderInterval)

	todo := &model.Todo{
		OwnerID:          ownerID,
		FolderID:         in.FolderID,
		Text:             text,
		IsCompleted:      false,
		Priority:         priority,
		DueDate:          in.DueDate,
		ReminderInterval: in.ReminderInterval,
		ReminderID:       out.ReminderID,
	}

	if err := s.todos.Create(ctx, todo); err != nil {
		if rbErr := s.reminders.Rollback(context.WithoutCancel(ctx), reminders.Snapshot{}, out); rbErr != nil {
			log.Printf("todo create: reminder rollback incomplete: %v", rbErr)
		}
		return nil, fmt.Errorf("create todo: %w", err)
	}

	return &TodoResult{Todo: todo, Warning: out.Warning}, nil
}

func (s *TodoService) EditTodo(ctx context.Context, ownerID, id string, in EditTodoInput) (*TodoResult, error) {
	text, priority, err := normalizeTodo(in.Text, in.Priority, in.ReminderInterval)
	if err != nil {
		return nil, err
	}

	todo, err := s.findTodo(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	// the form was opened on an older copy of this todo
	if in.PriorReminderID != nil && !sameReminder(in.PriorReminderID, todo.ReminderID) {
		return nil, apperrors.ErrOptimisticLock
	}

	stored := snapshot(todo)
	out := s.reminders.Edit(ctx, stored, text, in.ReminderInterval)

	todo.Text = text
	todo.Priority = priority
	todo.DueDate = in.DueDate
	todo.ReminderInterval = in.ReminderInterval
	todo.ReminderID = out.ReminderID

	if err := s.todos.Update(ctx, todo); err != nil {
		rollback(ctx, s.todos, s.reminders, todo.OwnerID, todo.ID, stored, out)
		return nil, writeError(err)
	}

	return &TodoResult{Todo: todo, Warning: out.Warning}, nil
}

func (s *TodoService) ToggleTodo(ctx context.Context, ownerID, id string, isCompleted bool) (*TodoResult, error) {
	todo, err := s.findTodo(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if todo.IsCompleted == isCompleted {
		return &TodoResult{Todo: todo}, nil
	}

	stored := snapshot(todo)

	var out reminders.Outcome
	if isCompleted {
		out = s.reminders.Complete(ctx, stored)
	} else {
		out = s.reminders.Reopen(ctx, stored)
	}

	todo.IsCompleted = isCompleted
	todo.ReminderID = out.ReminderID

	if err := s.todos.Update(ctx, todo); err != nil {
		rollback(ctx, s.todos, s.reminders, todo.OwnerID, todo.ID, stored, out)
		return nil, writeError(err)
	}

	return &TodoResult{Todo: todo, Warning: out.Warning}, nil
}

func (s *TodoService) DeleteTodo(ctx context.Context, ownerID, id string) (*TodoResult, error) {
	todo, err := s.findTodo(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	stored := snapshot(todo)
	out := s.reminders.Delete(ctx, stored)

	if err := s.todos.Delete(ctx, todo); err != nil {
		rollback(ctx, s.todos, s.reminders, todo.OwnerID, todo.ID, stored, out)
		return nil, writeError(err)
	}

	todo.ReminderID = nil
	return &TodoResult{Todo: todo, Warning: out.Warning}, nil
}

func (s *TodoService) GetTodo(ctx context.Context, ownerID, id string) (*model.Todo, error) {
	return s.findTodo(ctx, ownerID, id)
}

func (s *TodoService) ListTodos(ctx context.Context, ownerID string) ([]model.Todo, error) {
	return s.todos.ListByOwner(ctx, ownerID)
}

func (s *TodoService) ListFolderTodos(ctx context.Context, ownerID, folderID string) ([]model.Todo, error) {
	if _, err := s.folders.FindByID(ctx, ownerID, folderID); err != nil {
		return nil, folderError(err)
	}
	return s.todos.ListByFolder(ctx, ownerID, folderID)
}

func (s *TodoService) findTodo(ctx context.Context, ownerID, id string) (*model.Todo, error) {
	if id == "" {
		return nil, apperrors.ErrTodoIDRequired
	}

	todo, err := s.todos.FindByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTodoNotFound
		}
		return nil, err
	}
	return todo, nil
}

func normalizeTodo(text string, priority constants.Priority, interval int) (string, constants.Priority, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", "", apperrors.ErrTextRequired
	}

	if priority == "" {
		priority = constants.PriorityMedium
	}
	if !priority.Valid() {
		return "", "", apperrors.ErrInvalidPriority
	}

	if interval < 0 || interval > constants.MaxReminderInterval {
		return "", "", apperrors.ErrInvalidReminderInterval
	}

	return text, priority, nil
}

func snapshot(todo *model.Todo) reminders.Snapshot {
	return reminders.Snapshot{
		Text:             todo.Text,
		IsCompleted:      todo.IsCompleted,
		ReminderInterval: todo.ReminderInterval,
		ReminderID:       todo.ReminderID,
	}
}

// rollback brings the scheduler back in line with the stored todo after a
// write of it failed. The row is read again first: if another writer already
// replaced or removed its reminder, the cancelled trigger stays gone.
func rollback(
	ctx context.Context,
	todos *repository.TodoRepository,
	manager *reminders.Manager,
	ownerID, id string,
	stored reminders.Snapshot,
	out reminders.Outcome,
) {
	ctx = context.WithoutCancel(ctx)

	current, err := todos.FindByID(ctx, ownerID, id)
	switch {
	case err == nil:
		stored = snapshot(current)
		if !sameReminder(current.ReminderID, out.Cancelled) {
			out.Cancelled = nil
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		out.Cancelled = nil
	}

	if err := manager.Rollback(ctx, stored, out); err != nil {
		log.Printf("todo %s: reminder rollback incomplete: %v", id, err)
	}
}

func sameReminder(a, b *string) bool {
	av, bv := "", ""
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return av == bv
}

func writeError(err error) error {
	switch {
	case errors.Is(err, repository.ErrOptimisticLock):
		return apperrors.ErrOptimisticLock
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrTodoNotFound
	default:
		return fmt.Errorf("save todo: %w", err)
	}
}

func folderError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrFolderNotFound
	}
	return err
}
