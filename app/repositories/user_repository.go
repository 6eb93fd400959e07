package repositories

import (
	"github.com/shashiranjanraj/novamarket/app/models"
	"github.com/shashiranjanraj/novamarket/pkg/orm"
	"gorm.io/gorm"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	q *orm.Query
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{q: orm.New(db)}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := r.q.Model(&models.User{}).Where("email = ?", email).First(&user)
	return user, err
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	err := r.q.Model(&models.User{}).Where("id = ?", id).First(&user)
	return user, err
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	return r.q.Create(user)
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(user *models.User) error {
	return r.q.Save(user)
}

// All returns one page of users, newest first.
func (r *UserRepository) All(page, limit int) ([]models.User, orm.Pagination, error) {
	var users []models.User
	pagination, err := r.q.Model(&models.User{}).
		Order("created_at desc").
		GetWithPagination(&users, page, limit)
	return users, pagination, err
}
