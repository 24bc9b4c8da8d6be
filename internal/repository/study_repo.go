package repository

import (
	"context"
	"errors"

	"github.com/mihkuno/RESPOCU/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudyRepository interface {
	Create(ctx context.Context, study *entity.Study) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Study, error)
	List(ctx context.Context, archived bool) ([]entity.Study, error)
	Update(ctx context.Context, study *entity.Study) error
	AddBookmark(ctx context.Context, id uuid.UUID, email string) error
	RemoveBookmark(ctx context.Context, id uuid.UUID, email string) error
	SetArchived(ctx context.Context, id uuid.UUID, archived bool) error
	SetBest(ctx context.Context, id uuid.UUID, best bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type studyRepository struct {
	db *gorm.DB
}

func NewStudyRepository(db *gorm.DB) StudyRepository {
	return &studyRepository{db: db}
}

func (r *studyRepository) Create(ctx context.Context, study *entity.Study) error {
	err := r.db.WithContext(ctx).Create(study).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (r *studyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Study, error) {
	var study entity.Study
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&study).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &study, nil
}

// List leaves the pdf column behind; it is only loaded by FindByID.
func (r *studyRepository) List(ctx context.Context, archived bool) ([]entity.Study, error) {
	var studies []entity.Study
	err := r.db.WithContext(ctx).
		Omit("file").
		Where("is_archived = ?", archived).
		Order("created_at DESC").
		Find(&studies).Error
	if err != nil {
		return nil, err
	}
	return studies, nil
}

func (r *studyRepository) Update(ctx context.Context, study *entity.Study) error {
	err := r.db.WithContext(ctx).Save(study).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

// AddBookmark appends the email in a single guarded UPDATE so concurrent
// bookmarkers cannot overwrite each other's entries.
func (r *studyRepository) AddBookmark(ctx context.Context, id uuid.UUID, email string) error {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE studies
		    SET bookmarked_by = coalesce(bookmarked_by, '[]'::jsonb) || to_jsonb(?::text)
		  WHERE id = ? AND NOT coalesce(bookmarked_by, '[]'::jsonb) @> to_jsonb(?::text)`,
		email, id, email)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// either the study is gone or the email was already present
		return r.exists(ctx, id)
	}
	return nil
}

func (r *studyRepository) RemoveBookmark(ctx context.Context, id uuid.UUID, email string) error {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE studies
		    SET bookmarked_by = coalesce(bookmarked_by, '[]'::jsonb) - ?
		  WHERE id = ?`,
		email, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *studyRepository) exists(ctx context.Context, id uuid.UUID) error {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Study{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *studyRepository) SetArchived(ctx context.Context, id uuid.UUID, archived bool) error {
	return r.setFlag(ctx, id, "is_archived", archived)
}

func (r *studyRepository) SetBest(ctx context.Context, id uuid.UUID, best bool) error {
	return r.setFlag(ctx, id, "is_best", best)
}

func (r *studyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.Study{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *studyRepository) setFlag(ctx context.Context, id uuid.UUID, column string, value bool) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Study{}).
		Where("id = ?", id).
		Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
