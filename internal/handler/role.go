package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nd199/movie-booking/internal/service"
)

// RoleHandler serves role administration. Routes are guarded by
// ROLE_ADMIN in the router.
type RoleHandler struct {
	Customers *service.CustomerService
}

func NewRoleHandler(customers *service.CustomerService) *RoleHandler {
	return &RoleHandler{Customers: customers}
}

// Create handles POST /api/v1/roles.
func (h *RoleHandler) Create(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "invalid request body")
	}
	role, err := h.Customers.AddRole(c.Request().Context(), req.Name)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, role)
}

// List handles GET /api/v1/roles.
func (h *RoleHandler) List(c echo.Context) error {
	roles, err := h.Customers.ListRoles(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, roles)
}

// Delete handles DELETE /api/v1/roles/:id. Deleting a role that is still
// assigned is rejected with 409.
func (h *RoleHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return Fail(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.Customers.RemoveRole(c.Request().Context(), id); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
