package service

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/mihkuno/RESPOCU/internal/entity"
	"github.com/mihkuno/RESPOCU/internal/repository"
	"github.com/mihkuno/RESPOCU/internal/utils"

	"github.com/google/uuid"
)

// StudyService covers the research-paper operations: publishing, listing,
// bookmarking, archiving and best-paper designation.
type StudyService struct {
	studies repository.StudyRepository
}

func NewStudyService(studies repository.StudyRepository) *StudyService {
	return &StudyService{studies: studies}
}

type PublishStudyInput struct {
	Title       string
	Description string
	Keywords    []string
	Authors     []string
	Publisher   string
	FileName    string
	FileType    string
	File        []byte
}

func (s *StudyService) Publish(ctx context.Context, input PublishStudyInput) (*entity.Study, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, ErrInvalidInput
	}
	if len(input.Authors) == 0 {
		return nil, ErrInvalidInput
	}
	if len(input.File) == 0 || strings.TrimSpace(input.FileName) == "" {
		return nil, ErrInvalidInput
	}

	study := &entity.Study{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Keywords:    input.Keywords,
		Authors:     input.Authors,
		Publisher:   utils.NormalizeEmail(input.Publisher),
		File:        input.File,
		FileName:    input.FileName,
		FileType:    input.FileType,
	}
	if err := s.studies.Create(ctx, study); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrStudyExists
		}
		return nil, err
	}
	return study, nil
}

type UpdateStudyInput struct {
	Title       string
	Description string
	Keywords    []string
	Authors     []string
	FileName    string
	FileType    string
	File        []byte
}

// Update rewrites an existing study in place. Only the account that
// published it may edit it. The pdf is replaced only when a new one is
// supplied.
func (s *StudyService) Update(ctx context.Context, id uuid.UUID, editorEmail string, input UpdateStudyInput) (*entity.Study, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, ErrInvalidInput
	}
	if len(input.Authors) == 0 {
		return nil, ErrInvalidInput
	}

	study, err := s.studies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if study == nil {
		return nil, ErrStudyNotFound
	}
	if study.Publisher != utils.NormalizeEmail(editorEmail) {
		return nil, ErrNotPublisher
	}

	study.Title = strings.TrimSpace(input.Title)
	study.Description = input.Description
	study.Keywords = input.Keywords
	study.Authors = input.Authors
	if len(input.File) > 0 {
		study.File = input.File
		study.FileName = input.FileName
		study.FileType = input.FileType
	}
	if err := s.studies.Update(ctx, study); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrStudyExists
		}
		return nil, err
	}
	return study, nil
}

// StudyFile is the stored paper pdf with the metadata needed to serve it.
type StudyFile struct {
	Name string
	Type string
	Data []byte
}

func (s *StudyService) File(ctx context.Context, id uuid.UUID) (*StudyFile, error) {
	study, err := s.studies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if study == nil {
		return nil, ErrStudyNotFound
	}
	return &StudyFile{Name: study.FileName, Type: study.FileType, Data: study.File}, nil
}

// List returns studies with the given archive state, annotated per caller.
func (s *StudyService) List(ctx context.Context, archived bool, viewerEmail string) ([]StudyView, error) {
	studies, err := s.studies.List(ctx, archived)
	if err != nil {
		return nil, err
	}

	viewerEmail = utils.NormalizeEmail(viewerEmail)
	views := make([]StudyView, 0, len(studies))
	for _, study := range studies {
		views = append(views, StudyView{
			Study:        study,
			IsBookmarked: slices.Contains(study.BookmarkedBy, viewerEmail),
		})
	}
	return views, nil
}

type StudyView struct {
	entity.Study
	IsBookmarked bool
}

// Bookmark adds the caller's email to the study's bookmark set. The store
// applies it atomically, so adding an email that is already present is a
// no-op and concurrent callers cannot drop each other's entries.
func (s *StudyService) Bookmark(ctx context.Context, id uuid.UUID, email string) error {
	return mapStudyNotFound(s.studies.AddBookmark(ctx, id, utils.NormalizeEmail(email)))
}

func (s *StudyService) Unbookmark(ctx context.Context, id uuid.UUID, email string) error {
	return mapStudyNotFound(s.studies.RemoveBookmark(ctx, id, utils.NormalizeEmail(email)))
}

func (s *StudyService) Archive(ctx context.Context, id uuid.UUID) error {
	return s.setArchived(ctx, id, true)
}

func (s *StudyService) Restore(ctx context.Context, id uuid.UUID) error {
	return s.setArchived(ctx, id, false)
}

func (s *StudyService) MarkBest(ctx context.Context, id uuid.UUID) error {
	return s.setBest(ctx, id, true)
}

func (s *StudyService) UnmarkBest(ctx context.Context, id uuid.UUID) error {
	return s.setBest(ctx, id, false)
}

func (s *StudyService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.studies.Delete(ctx, id); err != nil {
		return mapStudyNotFound(err)
	}
	return nil
}

func (s *StudyService) setArchived(ctx context.Context, id uuid.UUID, archived bool) error {
	if err := s.studies.SetArchived(ctx, id, archived); err != nil {
		return mapStudyNotFound(err)
	}
	return nil
}

func (s *StudyService) setBest(ctx context.Context, id uuid.UUID, best bool) error {
	if err := s.studies.SetBest(ctx, id, best); err != nil {
		return mapStudyNotFound(err)
	}
	return nil
}

func mapStudyNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrStudyNotFound
	}
	return err
}
