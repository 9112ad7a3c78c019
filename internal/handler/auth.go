package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nd199/movie-booking/internal/service"
)

// AuthHandler serves login. Registration lives on the customer handler;
// both return the bearer token in the Authorization response header.
type AuthHandler struct {
	Customers *service.CustomerService
}

func NewAuthHandler(customers *service.CustomerService) *AuthHandler {
	return &AuthHandler{Customers: customers}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return Fail(c, http.StatusBadRequest, "email and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	view, token, err := h.Customers.Login(ctx, req.Email, req.Password)
	if err != nil {
		return writeErr(c, err)
	}
	c.Response().Header().Set(echo.HeaderAuthorization, "Bearer "+token)
	return c.JSON(http.StatusOK, view)
}
