package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "todo-folders.com/todo-folders/internal/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindOrCreateByEmail returns the user registered under email, creating it
// with a fresh API token when there is none.
func (r *UserRepository) FindOrCreateByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where(model.User{Email: email}).
		Attrs(model.User{
			ID:        uuid.NewString(),
			APIToken:  uuid.NewString(),
			CreatedAt: time.Now().UTC(),
		}).
		FirstOrCreate(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByToken(ctx context.Context, token string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, "api_token = ?", token).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) RotateToken(ctx context.Context, user *model.User) error {
	token := uuid.NewString()

	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.ID).
		Update("api_token", token)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	user.APIToken = token
	return nil
}
