package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"todo-folders.com/todo-folders/internal/constants"
	apperrors "todo-folders.com/todo-folders/internal/errors"
	model "todo-folders.com/todo-folders/internal/models"
	"todo-folders.com/todo-folders/internal/reminders"
	repository "todo-folders.com/todo-folders/internal/repositories"
)

type FolderService struct {
	folders   *repository.FolderRepository
	todos     *repository.TodoRepository
	reminders *reminders.Manager
}

// FolderDeletion describes a removed folder and the todos removed with it.
type FolderDeletion struct {
	Folder       *model.Folder
	RemovedTodos int
	Warning      error
}

func NewFolderService(
	folders *repository.FolderRepository,
	todos *repository.TodoRepository,
	manager *reminders.Manager,
) *FolderService {
	return &FolderService{
		folders:   folders,
		todos:     todos,
		reminders: manager,
	}
}

func (s *FolderService) CreateFolder(ctx context.Context, ownerID, name, color string) (*model.Folder, error) {
	name, color, err := normalizeFolder(name, color)
	if err != nil {
		return nil, err
	}

	folder := &model.Folder{
		OwnerID: ownerID,
		Name:    name,
		Color:   color,
	}
	if err := s.folders.Create(ctx, folder); err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}

	return folder, nil
}

func (s *FolderService) UpdateFolder(ctx context.Context, ownerID, id, name, color string) (*model.Folder, error) {
	name, color, err := normalizeFolder(name, color)
	if err != nil {
		return nil, err
	}

	folder, err := s.GetFolder(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	folder.Name = name
	folder.Color = color
	if err := s.folders.Update(ctx, folder); err != nil {
		return nil, folderError(err)
	}

	return folder, nil
}

func (s *FolderService) GetFolder(ctx context.Context, ownerID, id string) (*model.Folder, error) {
	if id == "" {
		return nil, apperrors.ErrFolderIDRequired
	}

	folder, err := s.folders.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, folderError(err)
	}
	return folder, nil
}

func (s *FolderService) ListFolders(ctx context.Context, ownerID string) ([]model.FolderSummary, error) {
	return s.folders.ListWithCounts(ctx, ownerID)
}

// DeleteFolder cancels the reminders of every todo in the folder before the
// folder and its todos are removed. Todos that joined the folder in the
// meantime are found inside the delete and cancelled after it commits.
func (s *FolderService) DeleteFolder(ctx context.Context, ownerID, id string) (*FolderDeletion, error) {
	folder, err := s.GetFolder(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	todos, err := s.todos.ListByFolder(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("list folder todos: %w", err)
	}

	var warnings []error
	outcomes := make([]reminders.Outcome, len(todos))
	cancelled := make(map[string]bool)
	for i := range todos {
		outcomes[i] = s.reminders.Delete(ctx, snapshot(&todos[i]))
		if outcomes[i].Warning != nil {
			warnings = append(warnings, outcomes[i].Warning)
		}
		if outcomes[i].Cancelled != nil {
			cancelled[*outcomes[i].Cancelled] = true
		}
	}

	removed, err := s.folders.Delete(ctx, ownerID, id)
	if err != nil {
		for i := range todos {
			rollback(ctx, s.todos, s.reminders, ownerID, todos[i].ID, snapshot(&todos[i]), outcomes[i])
		}
		return nil, folderError(err)
	}

	for i := range removed {
		if !removed[i].HasReminder() || cancelled[*removed[i].ReminderID] {
			continue
		}
		out := s.reminders.Delete(ctx, snapshot(&removed[i]))
		if out.Warning != nil {
			warnings = append(warnings, out.Warning)
		}
	}

	return &FolderDeletion{
		Folder:       folder,
		RemovedTodos: len(removed),
		Warning:      errors.Join(warnings...),
	}, nil
}

func normalizeFolder(name, color string) (string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", apperrors.ErrFolderNameRequired
	}

	color = strings.ToUpper(strings.TrimSpace(color))
	if color == "" {
		color = constants.DefaultFolderColor()
	}
	if !constants.ValidFolderColor(color) {
		return "", "", apperrors.ErrInvalidFolderColor
	}

	return name, color, nil
}
