package repository

import (
	"context" // Request scoped cancellation
	"strings" // Search normalization

	"booking_system/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// UserSortColumns maps the sortable JSON field names to columns
var UserSortColumns = map[string]string{
	"name":      "name",
	"gmail":     "gmail",
	"age":       "age",
	"gender":    "gender",
	"createdAt": "created_at",
}

// UserFilter narrows and orders List results; the zero value matches every user in store order
type UserFilter struct {
	Search    string // Case-insensitive match on name, gmail, address, phone
	Gender    string // Exact gender match
	MinAge    int    // Inclusive lower bound, 0 disables
	MaxAge    int    // Inclusive upper bound, 0 disables
	SortField string // Key of UserSortColumns, empty keeps store order
	Ascending bool   // Sort direction when SortField is set
}

// UserRepository persists users through GORM
type UserRepository struct {
	DB *gorm.DB
}

// NewUserRepository creates a UserRepository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return translate(r.DB.WithContext(ctx).Create(user).Error)
}

// FindAll returns users matching the filter in store order
func (r *UserRepository) FindAll(ctx context.Context, f UserFilter) ([]domain.User, error) {
	q := r.DB.WithContext(ctx).Model(&domain.User{})
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		like := "%" + s + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(gmail) LIKE ? OR LOWER(address) LIKE ? OR phone_number LIKE ?", like, like, like, like)
	}
	if f.Gender != "" {
		q = q.Where("gender = ?", f.Gender)
	}
	if f.MinAge > 0 {
		q = q.Where("age >= ?", f.MinAge)
	}
	if f.MaxAge > 0 {
		q = q.Where("age <= ?", f.MaxAge)
	}
	if column, ok := UserSortColumns[f.SortField]; ok {
		dir := " DESC"
		if f.Ascending {
			dir = " ASC"
		}
		q = q.Order(column + dir).Order("id" + dir)
	}
	users := []domain.User{}
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindByID loads a single user
func (r *UserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	var user domain.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return domain.User{}, translate(err)
	}
	return user, nil
}

// FindByGmail loads the user owning a login identifier
func (r *UserRepository) FindByGmail(ctx context.Context, gmail string) (domain.User, error) {
	var user domain.User
	if err := r.DB.WithContext(ctx).Where("gmail = ?", gmail).First(&user).Error; err != nil {
		return domain.User{}, translate(err)
	}
	return user, nil
}

// Update applies the given column values and returns the stored result.
// The read, write and re-read run in one transaction.
func (r *UserRepository) Update(ctx context.Context, id string, fields map[string]any) (domain.User, error) {
	var user domain.User
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			return err
		}
		if len(fields) > 0 {
			if err := tx.Model(&user).Updates(fields).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).First(&user).Error
	})
	if err != nil {
		return domain.User{}, translate(err)
	}
	return user, nil
}

// Delete removes a user
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.User{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
