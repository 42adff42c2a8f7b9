package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "todo-folders.com/todo-folders/internal/models"
)

type FolderRepository struct {
	db *gorm.DB
}

func NewFolderRepository(db *gorm.DB) *FolderRepository {
	return &FolderRepository{db: db}
}

func (r *FolderRepository) Create(ctx context.Context, folder *model.Folder) error {
	now := time.Now().UTC()
	folder.ID = uuid.NewString()
	folder.CreatedAt = now
	folder.UpdatedAt = now

	return r.db.WithContext(ctx).Create(folder).Error
}

func (r *FolderRepository) FindByID(ctx context.Context, ownerID, id string) (*model.Folder, error) {
	var folder model.Folder
	err := r.db.WithContext(ctx).First(&folder, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

func (r *FolderRepository) ListWithCounts(ctx context.Context, ownerID string) ([]model.FolderSummary, error) {
	var folders []model.FolderSummary
	err := r.db.WithContext(ctx).
		Model(&model.Folder{}).
		Select("folders.*, COUNT(todos.id) AS todo_count").
		Joins("LEFT JOIN todos ON todos.folder_id = folders.id").
		Where("folders.owner_id = ?", ownerID).
		Group("folders.id").
		Order("folders.created_at desc").
		Scan(&folders).Error
	return folders, err
}

func (r *FolderRepository) Update(ctx context.Context, folder *model.Folder) error {
	folder.UpdatedAt = time.Now().UTC()

	res := r.db.WithContext(ctx).Model(&model.Folder{}).
		Where("id = ? AND owner_id = ?", folder.ID, folder.OwnerID).
		Updates(map[string]interface{}{
			"name":       folder.Name,
			"color":      folder.Color,
			"updated_at": folder.UpdatedAt,
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Delete removes the folder and every todo filed under it in one transaction.
// It returns the todos it removed, read inside the same transaction.
func (r *FolderRepository) Delete(ctx context.Context, ownerID, id string) ([]model.Todo, error) {
	var removed []model.Todo

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ? AND folder_id = ?", ownerID, id).Find(&removed).Error; err != nil {
			return err
		}

		if err := tx.Where("owner_id = ? AND folder_id = ?", ownerID, id).Delete(&model.Todo{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&model.Folder{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return removed, nil
}
