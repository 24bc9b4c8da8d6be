package handler

import (
	"errors"
	"net/http"

	"github.com/mihkuno/RESPOCU/internal/dto"
	"github.com/mihkuno/RESPOCU/internal/entity"
	"github.com/mihkuno/RESPOCU/internal/repository"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AccountHandler covers the admin account-management endpoints.
type AccountHandler struct {
	Accounts repository.AccountRepository
}

func NewAccountHandler(accounts repository.AccountRepository) *AccountHandler {
	return &AccountHandler{Accounts: accounts}
}

func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.Accounts.List(c.Request().Context())
	if err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, dto.AccountResponsesFromEntities(accounts))
}

func (h *AccountHandler) Promote(c echo.Context) error {
	return h.updateType(c, entity.AccountTypeAdmin)
}

func (h *AccountHandler) Demote(c echo.Context) error {
	return h.updateType(c, entity.AccountTypeUser)
}

func (h *AccountHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid account id"))
	}
	if err := h.Accounts.DeleteByID(c.Request().Context(), id); err != nil {
		return writeRepositoryError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AccountHandler) updateType(c echo.Context, accountType entity.AccountType) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid account id"))
	}
	if err := h.Accounts.UpdateType(c.Request().Context(), id, accountType); err != nil {
		return writeRepositoryError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func writeRepositoryError(c echo.Context, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return writeError(c, http.StatusNotFound, errors.New("account does not exist"))
	}
	return writeError(c, http.StatusInternalServerError, err)
}
