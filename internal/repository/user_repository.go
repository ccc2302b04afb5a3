package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yukikurage/task-assignment-api/internal/models"
	"github.com/yukikurage/task-assignment-api/internal/query"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

func preloadPending(db *gorm.DB) *gorm.DB {
	return db.Preload("PendingTasks", func(db *gorm.DB) *gorm.DB {
		return db.Order("pending_tasks.id ASC")
	})
}

// Create creates a new user. Pending tasks are written separately.
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = newID()
	user.DateCreated = now()
	return r.db.WithContext(ctx).Omit("PendingTasks").Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Scopes(preloadPending).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update writes the user's name and email
func (r *GormUserRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"name":  user.Name,
			"email": user.Email,
		}).Error
}

// Delete deletes a user
func (r *GormUserRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{}).Error
}

// List retrieves users matching a list query
func (r *GormUserRepository) List(ctx context.Context, q query.ListQuery) ([]models.User, error) {
	users := []models.User{}
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Scopes(listScope(q), preloadPending).
		Find(&users).Error
	return users, err
}

// Count counts users matching a list query
func (r *GormUserRepository) Count(ctx context.Context, q query.ListQuery) (int64, error) {
	return countMatching(r.db.WithContext(ctx), &models.User{}, q)
}
