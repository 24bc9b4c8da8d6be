package service

import (
	"context"
	"slices"
	"testing"

	"github.com/mihkuno/RESPOCU/internal/entity"
	"github.com/mihkuno/RESPOCU/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStudyRepo struct {
	studies map[uuid.UUID]*entity.Study
}

func newMemoryStudyRepo() *memoryStudyRepo {
	return &memoryStudyRepo{studies: make(map[uuid.UUID]*entity.Study)}
}

func (r *memoryStudyRepo) Create(_ context.Context, study *entity.Study) error {
	for _, existing := range r.studies {
		if existing.Title == study.Title {
			return repository.ErrDuplicate
		}
	}
	if study.ID == uuid.Nil {
		study.ID = uuid.New()
	}
	r.studies[study.ID] = study
	return nil
}

func (r *memoryStudyRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Study, error) {
	return r.studies[id], nil
}

func (r *memoryStudyRepo) List(_ context.Context, archived bool) ([]entity.Study, error) {
	var studies []entity.Study
	for _, study := range r.studies {
		if study.IsArchived == archived {
			listed := *study
			listed.File = nil
			studies = append(studies, listed)
		}
	}
	return studies, nil
}

func (r *memoryStudyRepo) Update(_ context.Context, study *entity.Study) error {
	if _, ok := r.studies[study.ID]; !ok {
		return repository.ErrNotFound
	}
	for _, existing := range r.studies {
		if existing.ID != study.ID && existing.Title == study.Title {
			return repository.ErrDuplicate
		}
	}
	r.studies[study.ID] = study
	return nil
}

func (r *memoryStudyRepo) AddBookmark(_ context.Context, id uuid.UUID, email string) error {
	study, ok := r.studies[id]
	if !ok {
		return repository.ErrNotFound
	}
	if !slices.Contains(study.BookmarkedBy, email) {
		study.BookmarkedBy = append(study.BookmarkedBy, email)
	}
	return nil
}

func (r *memoryStudyRepo) RemoveBookmark(_ context.Context, id uuid.UUID, email string) error {
	study, ok := r.studies[id]
	if !ok {
		return repository.ErrNotFound
	}
	study.BookmarkedBy = slices.DeleteFunc(study.BookmarkedBy, func(e string) bool {
		return e == email
	})
	return nil
}

func (r *memoryStudyRepo) SetArchived(_ context.Context, id uuid.UUID, archived bool) error {
	study, ok := r.studies[id]
	if !ok {
		return repository.ErrNotFound
	}
	study.IsArchived = archived
	return nil
}

func (r *memoryStudyRepo) SetBest(_ context.Context, id uuid.UUID, best bool) error {
	study, ok := r.studies[id]
	if !ok {
		return repository.ErrNotFound
	}
	study.IsBest = best
	return nil
}

func (r *memoryStudyRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.studies[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.studies, id)
	return nil
}

func newStudyFixture() (*StudyService, *memoryStudyRepo) {
	repo := newMemoryStudyRepo()
	return NewStudyService(repo), repo
}

func publishStudy(t *testing.T, svc *StudyService, title string) *entity.Study {
	t.Helper()
	study, err := svc.Publish(context.Background(), PublishStudyInput{
		Title:       title,
		Description: "a study",
		Keywords:    []string{"testing"},
		Authors:     []string{"Author One"},
		Publisher:   "a@x.com",
		FileName:    "paper.pdf",
		FileType:    "application/pdf",
		File:        []byte("%PDF-1.4 stub"),
	})
	require.NoError(t, err)
	return study
}

func TestPublish(t *testing.T) {
	svc, repo := newStudyFixture()

	study := publishStudy(t, svc, "On Testing")
	assert.NotEqual(t, uuid.Nil, study.ID)
	assert.Contains(t, repo.studies, study.ID)

	_, err := svc.Publish(context.Background(), PublishStudyInput{
		Title:       "On Testing",
		Description: "same title",
		Keywords:    []string{"x"},
		Authors:     []string{"y"},
		Publisher:   "b@x.com",
		FileName:    "paper.pdf",
		File:        []byte("pdf"),
	})
	assert.ErrorIs(t, err, ErrStudyExists)
}

func TestPublishRejectsEmptyInput(t *testing.T) {
	svc, _ := newStudyFixture()

	_, err := svc.Publish(context.Background(), PublishStudyInput{Title: " ", Description: "d", Authors: []string{"a"}, FileName: "p.pdf", File: []byte("pdf")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Publish(context.Background(), PublishStudyInput{Title: "t", Description: "d", FileName: "p.pdf", File: []byte("pdf")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// the paper itself is mandatory
	_, err = svc.Publish(context.Background(), PublishStudyInput{Title: "t", Description: "d", Authors: []string{"a"}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStudy(t *testing.T) {
	svc, repo := newStudyFixture()
	ctx := context.Background()
	study := publishStudy(t, svc, "On Testing")

	updated, err := svc.Update(ctx, study.ID, "A@X.com", UpdateStudyInput{
		Title:       "On Better Testing",
		Description: "revised",
		Keywords:    []string{"testing", "revision"},
		Authors:     []string{"Author One", "Author Two"},
	})
	require.NoError(t, err)
	assert.Equal(t, "On Better Testing", updated.Title)
	assert.Equal(t, []string{"Author One", "Author Two"}, []string(updated.Authors))
	// no new pdf supplied, the stored one survives
	assert.Equal(t, []byte("%PDF-1.4 stub"), repo.studies[study.ID].File)

	_, err = svc.Update(ctx, study.ID, "a@x.com", UpdateStudyInput{
		Title:       "On Better Testing",
		Description: "new pdf",
		Authors:     []string{"Author One"},
		FileName:    "v2.pdf",
		File:        []byte("%PDF-1.4 v2"),
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 v2"), repo.studies[study.ID].File)
	assert.Equal(t, "v2.pdf", repo.studies[study.ID].FileName)
}

func TestUpdateStudyOwnership(t *testing.T) {
	svc, _ := newStudyFixture()
	ctx := context.Background()
	study := publishStudy(t, svc, "On Testing")

	_, err := svc.Update(ctx, study.ID, "intruder@x.com", UpdateStudyInput{
		Title:       "Hijacked",
		Description: "d",
		Authors:     []string{"a"},
	})
	assert.ErrorIs(t, err, ErrNotPublisher)

	_, err = svc.Update(ctx, uuid.New(), "a@x.com", UpdateStudyInput{
		Title:       "Gone",
		Description: "d",
		Authors:     []string{"a"},
	})
	assert.ErrorIs(t, err, ErrStudyNotFound)
}

func TestUpdateStudyDuplicateTitle(t *testing.T) {
	svc, _ := newStudyFixture()
	ctx := context.Background()
	publishStudy(t, svc, "Taken")
	study := publishStudy(t, svc, "On Testing")

	_, err := svc.Update(ctx, study.ID, "a@x.com", UpdateStudyInput{
		Title:       "Taken",
		Description: "d",
		Authors:     []string{"a"},
	})
	assert.ErrorIs(t, err, ErrStudyExists)
}

func TestStudyFile(t *testing.T) {
	svc, _ := newStudyFixture()
	ctx := context.Background()
	study := publishStudy(t, svc, "On Testing")

	file, err := svc.File(ctx, study.ID)
	require.NoError(t, err)
	assert.Equal(t, "paper.pdf", file.Name)
	assert.Equal(t, "application/pdf", file.Type)
	assert.Equal(t, []byte("%PDF-1.4 stub"), file.Data)

	_, err = svc.File(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrStudyNotFound)
}

func TestListLeavesFileBehind(t *testing.T) {
	svc, _ := newStudyFixture()
	ctx := context.Background()
	publishStudy(t, svc, "On Testing")

	views, err := svc.List(ctx, false, "reader@x.com")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Empty(t, views[0].File)
	assert.Equal(t, "paper.pdf", views[0].FileName)
}

func TestBookmarkSetSemantics(t *testing.T) {
	svc, repo := newStudyFixture()
	ctx := context.Background()
	study := publishStudy(t, svc, "On Testing")

	require.NoError(t, svc.Bookmark(ctx, study.ID, "Reader@X.com"))
	require.NoError(t, svc.Bookmark(ctx, study.ID, "reader@x.com"))
	assert.Equal(t, []string{"reader@x.com"}, []string(repo.studies[study.ID].BookmarkedBy))

	require.NoError(t, svc.Unbookmark(ctx, study.ID, "reader@x.com"))
	require.NoError(t, svc.Unbookmark(ctx, study.ID, "reader@x.com"))
	assert.Empty(t, repo.studies[study.ID].BookmarkedBy)
}

func TestBookmarkMissingStudy(t *testing.T) {
	svc, _ := newStudyFixture()

	err := svc.Bookmark(context.Background(), uuid.New(), "reader@x.com")
	assert.ErrorIs(t, err, ErrStudyNotFound)
}

func TestListAnnotatesBookmarks(t *testing.T) {
	svc, _ := newStudyFixture()
	ctx := context.Background()

	bookmarked := publishStudy(t, svc, "Bookmarked")
	publishStudy(t, svc, "Plain")
	require.NoError(t, svc.Bookmark(ctx, bookmarked.ID, "reader@x.com"))

	views, err := svc.List(ctx, false, "reader@x.com")
	require.NoError(t, err)
	require.Len(t, views, 2)

	byTitle := make(map[string]StudyView)
	for _, view := range views {
		byTitle[view.Title] = view
	}
	assert.True(t, byTitle["Bookmarked"].IsBookmarked)
	assert.False(t, byTitle["Plain"].IsBookmarked)
}

func TestArchiveAndRestore(t *testing.T) {
	svc, _ := newStudyFixture()
	ctx := context.Background()
	study := publishStudy(t, svc, "On Testing")

	require.NoError(t, svc.Archive(ctx, study.ID))
	active, err := svc.List(ctx, false, "a@x.com")
	require.NoError(t, err)
	assert.Empty(t, active)
	archived, err := svc.List(ctx, true, "a@x.com")
	require.NoError(t, err)
	assert.Len(t, archived, 1)

	require.NoError(t, svc.Restore(ctx, study.ID))
	active, err = svc.List(ctx, false, "a@x.com")
	require.NoError(t, err)
	assert.Len(t, active, 1)

	assert.ErrorIs(t, svc.Archive(ctx, uuid.New()), ErrStudyNotFound)
}

func TestBestPaperFlag(t *testing.T) {
	svc, repo := newStudyFixture()
	ctx := context.Background()
	study := publishStudy(t, svc, "On Testing")

	require.NoError(t, svc.MarkBest(ctx, study.ID))
	assert.True(t, repo.studies[study.ID].IsBest)

	require.NoError(t, svc.UnmarkBest(ctx, study.ID))
	assert.False(t, repo.studies[study.ID].IsBest)

	assert.ErrorIs(t, svc.MarkBest(ctx, uuid.New()), ErrStudyNotFound)
}

func TestDeleteStudy(t *testing.T) {
	svc, repo := newStudyFixture()
	ctx := context.Background()
	study := publishStudy(t, svc, "On Testing")

	require.NoError(t, svc.Delete(ctx, study.ID))
	assert.Empty(t, repo.studies)

	assert.ErrorIs(t, svc.Delete(ctx, study.ID), ErrStudyNotFound)
}
