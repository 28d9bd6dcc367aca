package repository

import (
	"context"
	"errors"

	"github.com/pakdocs/pakdocs/backend/go-services/internal/document"
	"gorm.io/gorm"
)

// GormRepo implements Repository on the relational documents table.
type GormRepo struct {
	db *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

func (r *GormRepo) Create(ctx context.Context, doc *document.Document) error {
	doc.ID = 0
	return r.db.WithContext(ctx).Omit("Owner").Create(doc).Error
}

func (r *GormRepo) Get(ctx context.Context, id uint) (*document.Document, error) {
	var d document.Document
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *GormRepo) ListByOwner(ctx context.Context, userID uint) ([]*document.Document, error) {
	out := []*document.Document{}
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&document.Document{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
