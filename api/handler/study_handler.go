package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mihkuno/RESPOCU/api/middleware"
	"github.com/mihkuno/RESPOCU/internal/dto"
	"github.com/mihkuno/RESPOCU/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type StudyHandler struct {
	Service  *service.StudyService
	Validate *validator.Validate
}

func NewStudyHandler(svc *service.StudyService, validate *validator.Validate) *StudyHandler {
	return &StudyHandler{Service: svc, Validate: validate}
}

func (h *StudyHandler) List(c echo.Context) error {
	return h.list(c, false)
}

func (h *StudyHandler) ListArchived(c echo.Context) error {
	return h.list(c, true)
}

func (h *StudyHandler) Publish(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	var req dto.PublishStudyRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			return writeError(c, http.StatusBadRequest, err)
		}
	}
	study, err := h.Service.Publish(c.Request().Context(), service.PublishStudyInput{
		Title:       req.Title,
		Description: req.Description,
		Keywords:    req.Keywords,
		Authors:     req.Authors,
		Publisher:   identity.Email,
		FileName:    req.File.Name,
		FileType:    req.File.Type,
		File:        req.File.Data,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	view := service.StudyView{Study: *study}
	return c.JSON(http.StatusCreated, dto.StudyResponseFromView(view))
}

func (h *StudyHandler) Update(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid study id"))
	}
	var req dto.UpdateStudyRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			return writeError(c, http.StatusBadRequest, err)
		}
	}
	input := service.UpdateStudyInput{
		Title:       req.Title,
		Description: req.Description,
		Keywords:    req.Keywords,
		Authors:     req.Authors,
	}
	if req.File != nil {
		input.FileName = req.File.Name
		input.FileType = req.File.Type
		input.File = req.File.Data
	}
	study, err := h.Service.Update(c.Request().Context(), id, identity.Email, input)
	if err != nil {
		return writeServiceError(c, err)
	}
	view := service.StudyView{Study: *study}
	return c.JSON(http.StatusOK, dto.StudyResponseFromView(view))
}

// Download serves the stored paper pdf; it is the only route that loads
// the file bytes.
func (h *StudyHandler) Download(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid study id"))
	}
	file, err := h.Service.File(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	contentType := file.Type
	if contentType == "" {
		contentType = "application/pdf"
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Name))
	return c.Blob(http.StatusOK, contentType, file.Data)
}

func (h *StudyHandler) Bookmark(c echo.Context) error {
	return h.bookmark(c, true)
}

func (h *StudyHandler) Unbookmark(c echo.Context) error {
	return h.bookmark(c, false)
}

func (h *StudyHandler) Archive(c echo.Context) error {
	return h.flag(c, h.Service.Archive)
}

func (h *StudyHandler) Restore(c echo.Context) error {
	return h.flag(c, h.Service.Restore)
}

func (h *StudyHandler) MarkBest(c echo.Context) error {
	return h.flag(c, h.Service.MarkBest)
}

func (h *StudyHandler) UnmarkBest(c echo.Context) error {
	return h.flag(c, h.Service.UnmarkBest)
}

func (h *StudyHandler) Delete(c echo.Context) error {
	return h.flag(c, h.Service.Delete)
}

func (h *StudyHandler) list(c echo.Context, archived bool) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	views, err := h.Service.List(c.Request().Context(), archived, identity.Email)
	if err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, dto.StudyResponsesFromViews(views))
}

func (h *StudyHandler) bookmark(c echo.Context, add bool) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid study id"))
	}
	if add {
		err = h.Service.Bookmark(c.Request().Context(), id, identity.Email)
	} else {
		err = h.Service.Unbookmark(c.Request().Context(), id, identity.Email)
	}
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *StudyHandler) flag(c echo.Context, apply func(ctx context.Context, id uuid.UUID) error) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid study id"))
	}
	if err := apply(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
