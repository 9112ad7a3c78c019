package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nd199/movie-booking/internal/model"
	"github.com/nd199/movie-booking/internal/queue"
	"github.com/nd199/movie-booking/internal/service"
)

// CustomerHandler bundles the services behind the customer endpoints.
type CustomerHandler struct {
	Customers *service.CustomerService
	Movies    *service.MovieService
}

func NewCustomerHandler(customers *service.CustomerService, movies *service.MovieService) *CustomerHandler {
	return &CustomerHandler{Customers: customers, Movies: movies}
}

type registerReq struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber int64  `json:"phoneNumber"`
}

type updateReq struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	PhoneNumber *int64  `json:"phoneNumber"`
}

// parseID converts a numeric path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil
}

// Register handles POST /api/v1/customers. A new account gets ROLE_USER;
// the response carries the created view and the bearer token in the
// Authorization header.
func (h *CustomerHandler) Register(c echo.Context) error {
	return h.register(c, []string{model.RoleUser})
}

// RegisterAdmin handles POST /api/v1/admins, registering an account that
// additionally holds ROLE_ADMIN.
func (h *CustomerHandler) RegisterAdmin(c echo.Context) error {
	return h.register(c, []string{model.RoleUser, model.RoleAdmin})
}

func (h *CustomerHandler) register(c echo.Context, roleNames []string) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.PhoneNumber == 0 {
		return Fail(c, http.StatusBadRequest, "name, email, password and phoneNumber are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	view, token, err := h.Customers.Register(ctx, service.Registration{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	}, roleNames)
	if err != nil {
		return writeErr(c, err)
	}

	_ = queue.PublishActivity(ctx, queue.ActivityEvent{
		Kind:       queue.KindRegistered,
		CustomerID: view.ID,
		Email:      view.Email,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	c.Response().Header().Set(echo.HeaderAuthorization, "Bearer "+token)
	return c.JSON(http.StatusCreated, view)
}

// Get handles GET /api/v1/customers/:id.
func (h *CustomerHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return Fail(c, http.StatusBadRequest, "invalid id")
	}
	view, err := h.Customers.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// List handles GET /api/v1/customers.
func (h *CustomerHandler) List(c echo.Context) error {
	views, err := h.Customers.List(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, views)
}

// Update handles PUT /api/v1/customers/:id. Only supplied-and-changed
// fields are written; a request that changes nothing is rejected.
func (h *CustomerHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return Fail(c, http.StatusBadRequest, "invalid id")
	}
	var req updateReq
	if err := c.Bind(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "invalid request body")
	}
	err := h.Customers.Update(c.Request().Context(), id, service.UpdateRequest{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /api/v1/customers/:id.
func (h *CustomerHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return Fail(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.Customers.Delete(c.Request().Context(), id); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AddMovie handles PUT /api/v1/customers/add-movie/:customerId/:movieId.
func (h *CustomerHandler) AddMovie(c echo.Context) error {
	return h.mutateSubscription(c, queue.KindSubscribed, h.Customers.Subscribe)
}

// RemoveMovie handles PUT /api/v1/customers/remove-movie/:customerId/:movieId.
func (h *CustomerHandler) RemoveMovie(c echo.Context) error {
	return h.mutateSubscription(c, queue.KindUnsubscribed, h.Customers.Unsubscribe)
}

func (h *CustomerHandler) mutateSubscription(c echo.Context, kind string, op func(context.Context, uint64, uint64) error) error {
	customerID, ok := parseID(c, "customerId")
	if !ok {
		return Fail(c, http.StatusBadRequest, "invalid customer id")
	}
	movieID, ok := parseID(c, "movieId")
	if !ok {
		return Fail(c, http.StatusBadRequest, "invalid movie id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := op(ctx, customerID, movieID); err != nil {
		return writeErr(c, err)
	}

	ev := queue.ActivityEvent{
		Kind:       kind,
		CustomerID: customerID,
		MovieID:    movieID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	// Best effort enrichment; the event is useful even when lookups fail.
	if view, err := h.Customers.GetByID(ctx, customerID); err == nil {
		ev.Email = view.Email
	}
	if movie, err := h.Movies.GetByID(ctx, movieID); err == nil {
		ev.MovieName = movie.Name
	}
	_ = queue.PublishActivity(ctx, ev)

	return c.NoContent(http.StatusNoContent)
}
