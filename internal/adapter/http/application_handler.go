package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"instantcredit-backend/internal/adapter/middleware"
	domain "instantcredit-backend/internal/domain/application"
	appuc "instantcredit-backend/internal/usecase/application"
)

// ApplicationHandler serves the customer-facing application routes. The
// acting customer is always taken from the token, never from the payload.
type ApplicationHandler struct {
	uc *appuc.Usecase
}

func NewApplicationHandler(uc *appuc.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type submitRequest struct {
	ApplicationData domain.ApplicationData `json:"application_data"`
	Documents       []appuc.DocumentInput  `json:"documents"`
}

type addDocumentRequest struct {
	FileName string `json:"file_name" validate:"required"`
	FilePath string `json:"file_path" validate:"required"`
}

// Submit scores the submission and creates a pending application.
func (h *ApplicationHandler) Submit(c echo.Context) error {
	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
	}

	dto, err := h.uc.Submit(c.Request().Context(), appuc.SubmitInput{
		CustomerID: middleware.UserID(c),
		Data:       req.ApplicationData,
		Documents:  req.Documents,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// Get returns one application. Customers only see their own; a foreign id
// reads the same as a missing one.
func (h *ApplicationHandler) Get(c echo.Context) error {
	applicationID := c.Param("application_id")
	if !ValidID32(applicationID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application id"})
	}

	dto, err := h.uc.Get(c.Request().Context(), applicationID)
	if err != nil {
		return writeError(c, err)
	}
	if middleware.Role(c) != "admin" && dto.CustomerID != middleware.UserID(c) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: domain.ErrNotFound.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

// List returns the acting customer's applications, newest first.
func (h *ApplicationHandler) List(c echo.Context) error {
	dtos, err := h.uc.ListByCustomer(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

// AddDocument attaches uploaded document metadata to an owned application.
func (h *ApplicationHandler) AddDocument(c echo.Context) error {
	applicationID := c.Param("application_id")
	if !ValidID32(applicationID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application id"})
	}
	var req addDocumentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	owned, err := h.uc.Get(c.Request().Context(), applicationID)
	if err != nil {
		return writeError(c, err)
	}
	if middleware.Role(c) != "admin" && owned.CustomerID != middleware.UserID(c) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: domain.ErrNotFound.Error()})
	}

	doc, err := h.uc.AddDocument(c.Request().Context(), applicationID, appuc.DocumentInput{
		FileName: req.FileName,
		FilePath: req.FilePath,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, doc)
}
