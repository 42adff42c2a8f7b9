package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "todo-folders.com/todo-folders/internal/models"
)

type TodoRepository struct {
	db *gorm.DB
}

var ErrOptimisticLock = errors.New("optimistic locking conflict")

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(ctx context.Context, todo *model.Todo) error {
	todo.ID = uuid.NewString()
	todo.Version = 1
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = time.Now().UTC()
	}

	return r.db.WithContext(ctx).Create(todo).Error
}

func (r *TodoRepository) FindByID(ctx context.Context, ownerID, id string) (*model.Todo, error) {
	var todo model.Todo
	err := r.db.WithContext(ctx).First(&todo, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Todo, error) {
	var todos []model.Todo
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&todos).Error
	return todos, err
}

func (r *TodoRepository) ListByFolder(ctx context.Context, ownerID, folderID string) ([]model.Todo, error) {
	var todos []model.Todo
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND folder_id = ?", ownerID, folderID).
		Order("created_at desc").
		Find(&todos).Error
	return todos, err
}

// Update writes the mutable fields of todo if nobody else changed it since it
// was read, and bumps its version.
func (r *TodoRepository) Update(ctx context.Context, todo *model.Todo) error {
	res := r.db.WithContext(ctx).Model(&model.Todo{}).
		Where("id = ? AND owner_id = ? AND version = ?", todo.ID, todo.OwnerID, todo.Version).
		Updates(map[string]interface{}{
			"text":              todo.Text,
			"is_completed":      todo.IsCompleted,
			"priority":          todo.Priority,
			"due_date":          todo.DueDate,
			"reminder_interval": todo.ReminderInterval,
			"reminder_id":       todo.ReminderID,
			"version":           gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrOptimisticLock
	}

	todo.Version++
	return nil
}

// Delete removes todo as long as it is still at the version that was read.
func (r *TodoRepository) Delete(ctx context.Context, todo *model.Todo) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ? AND version = ?", todo.ID, todo.OwnerID, todo.Version).
		Delete(&model.Todo{})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrOptimisticLock
	}

	return nil
}
