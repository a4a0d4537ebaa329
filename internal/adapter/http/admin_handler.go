package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"instantcredit-backend/internal/adapter/middleware"
	appuc "instantcredit-backend/internal/usecase/application"
	useruc "instantcredit-backend/internal/usecase/user"
)

// AdminHandler serves the back-office routes: user management, the review
// queue, and document verification. Every route behind it requires the
// admin role.
type AdminHandler struct {
	users *useruc.Usecase
	apps  *appuc.Usecase
}

func NewAdminHandler(users *useruc.Usecase, apps *appuc.Usecase) *AdminHandler {
	return &AdminHandler{users: users, apps: apps}
}

type createUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"role" validate:"omitempty,oneof=customer admin"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type reviewRequest struct {
	Status        string `json:"status" validate:"required,oneof=pending in-review completed rejected"`
	AdminComments string `json:"admin_comments"`
}

type verifyDocumentRequest struct {
	IsVerified *bool `json:"is_verified" validate:"required"`
}

func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	dto, err := h.users.Create(c.Request().Context(), useruc.CreateInput{
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	dtos, err := h.users.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *AdminHandler) GetUser(c echo.Context) error {
	userID := c.Param("user_id")
	if !ValidID32(userID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
	}
	dto, err := h.users.Get(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AdminHandler) UpdateUser(c echo.Context) error {
	userID := c.Param("user_id")
	if !ValidID32(userID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
	}
	var req useruc.UpdateInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
	}
	dto, err := h.users.Update(c.Request().Context(), userID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// DeleteUser cascades: the user's profile and applications go with them.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	userID := c.Param("user_id")
	if !ValidID32(userID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
	}
	if err := h.users.Delete(c.Request().Context(), userID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListPendingApplications returns the review queue.
func (h *AdminHandler) ListPendingApplications(c echo.Context) error {
	dtos, err := h.apps.ListPending(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *AdminHandler) GetApplication(c echo.Context) error {
	applicationID := c.Param("application_id")
	if !ValidID32(applicationID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application id"})
	}
	dto, err := h.apps.Get(c.Request().Context(), applicationID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// ReviewApplication moves an application to the requested status, stamping
// the acting admin as reviewer. Lost races surface as 409.
func (h *AdminHandler) ReviewApplication(c echo.Context) error {
	applicationID := c.Param("application_id")
	if !ValidID32(applicationID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application id"})
	}
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	dto, err := h.apps.Review(c.Request().Context(), appuc.ReviewInput{
		ApplicationID: applicationID,
		Status:        req.Status,
		ReviewerID:    middleware.UserID(c),
		AdminComments: req.AdminComments,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// VerifyDocument records a verification decision on one document.
func (h *AdminHandler) VerifyDocument(c echo.Context) error {
	applicationID := c.Param("application_id")
	documentID := c.Param("document_id")
	if !ValidID32(applicationID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application id"})
	}
	if !ValidID32(documentID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid document id"})
	}
	var req verifyDocumentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	dto, err := h.apps.VerifyDocument(c.Request().Context(), appuc.VerifyDocumentInput{
		ApplicationID: applicationID,
		DocumentID:    documentID,
		IsVerified:    *req.IsVerified,
		VerifierID:    middleware.UserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
