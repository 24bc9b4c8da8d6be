package dto

import (
	"time"

	"github.com/mihkuno/RESPOCU/internal/service"
)

// StudyFileRequest carries the paper pdf; Data arrives base64-encoded in
// the JSON body.
type StudyFileRequest struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type"`
	Data []byte `json:"data" validate:"required"`
}

type PublishStudyRequest struct {
	Title       string           `json:"title" validate:"required"`
	Description string           `json:"description" validate:"required"`
	Keywords    []string         `json:"keywords" validate:"required,min=1"`
	Authors     []string         `json:"authors" validate:"required,min=1"`
	File        StudyFileRequest `json:"file" validate:"required"`
}

// UpdateStudyRequest edits a study in place; File is optional and keeps
// the stored pdf when omitted.
type UpdateStudyRequest struct {
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description" validate:"required"`
	Keywords    []string          `json:"keywords" validate:"required,min=1"`
	Authors     []string          `json:"authors" validate:"required,min=1"`
	File        *StudyFileRequest `json:"file"`
}

type StudyResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Keywords      []string  `json:"keywords"`
	Authors       []string  `json:"authors"`
	PublishedBy   string    `json:"publishedBy"`
	PublishedDate time.Time `json:"publishedDate"`
	IsBestPaper   bool      `json:"isBestPaper"`
	IsArchived    bool      `json:"isArchived"`
	IsBookmarked  bool      `json:"isBookmarked"`
}

func StudyResponseFromView(view service.StudyView) StudyResponse {
	return StudyResponse{
		ID:            view.ID.String(),
		Title:         view.Title,
		Description:   view.Description,
		Keywords:      view.Keywords,
		Authors:       view.Authors,
		PublishedBy:   view.Publisher,
		PublishedDate: view.CreatedAt,
		IsBestPaper:   view.IsBest,
		IsArchived:    view.IsArchived,
		IsBookmarked:  view.IsBookmarked,
	}
}

func StudyResponsesFromViews(views []service.StudyView) []StudyResponse {
	responses := make([]StudyResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, StudyResponseFromView(view))
	}
	return responses
}
