package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"instantcredit-backend/internal/usecase/auth"
)

type AuthHandler struct {
	uc *auth.Usecase
}

func NewAuthHandler(uc *auth.Usecase) *AuthHandler { return &AuthHandler{uc: uc} }

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login issues an access token for valid credentials.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	tok, err := h.uc.Login(c.Request().Context(), auth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, tok)
}
