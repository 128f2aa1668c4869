package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/room-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/room-scheduler/internal/dto"
	"github.com/BruksfildServices01/room-scheduler/internal/models"
)

type UserFilter struct {
	dto.ListQuery
}

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserGormRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserGormRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update writes every column, zero values included.
func (r *UserGormRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Select("*").Omit("created_at").Updates(user).Error
}

func (r *UserGormRepository) List(ctx context.Context, f UserFilter) ([]models.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.User{})

	if term := strings.TrimSpace(f.Query); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}
	if f.Date != nil {
		q = q.Where("created_at >= ? AND created_at < ?", *f.Date, f.Date.AddDate(0, 0, 1))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	direction := "DESC"
	if f.Order == dto.OrderAsc {
		direction = "ASC"
	}

	var users []models.User
	if err := q.
		Order("created_at " + direction).
		Limit(f.Limit).
		Offset(f.Offset()).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Principal implements the session lookup of the auth middleware.
func (r *UserGormRepository) Principal(ctx context.Context, id string) (*identity.Principal, error) {
	user, err := r.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p := user.Principal()
	return &p, nil
}
