package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nd199/movie-booking/internal/service"
)

// MovieHandler serves the movie catalogue. These endpoints are public by
// design; see the route table.
type MovieHandler struct {
	Movies *service.MovieService
}

func NewMovieHandler(movies *service.MovieService) *MovieHandler {
	return &MovieHandler{Movies: movies}
}

type movieCreateReq struct {
	Name   string  `json:"name"`
	Cost   float64 `json:"cost"`
	Rating float64 `json:"rating"`
}

type movieUpdateReq struct {
	Name   *string  `json:"name"`
	Cost   *float64 `json:"cost"`
	Rating *float64 `json:"rating"`
}

// Create handles POST /api/v1/movies.
func (h *MovieHandler) Create(c echo.Context) error {
	var req movieCreateReq
	if err := c.Bind(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return Fail(c, http.StatusBadRequest, "name is required")
	}
	if req.Cost < 0 {
		return Fail(c, http.StatusBadRequest, "cost must not be negative")
	}
	movie, err := h.Movies.Create(c.Request().Context(), req.Name, req.Cost, req.Rating)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, movie)
}

// Get handles GET /api/v1/movies/:id.
func (h *MovieHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return Fail(c, http.StatusBadRequest, "invalid id")
	}
	movie, err := h.Movies.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, movie)
}

// List handles GET /api/v1/movies.
func (h *MovieHandler) List(c echo.Context) error {
	movies, err := h.Movies.List(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, movies)
}

// Update handles PUT /api/v1/movies/:id with the partial-diff contract.
func (h *MovieHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return Fail(c, http.StatusBadRequest, "invalid id")
	}
	var req movieUpdateReq
	if err := c.Bind(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Cost != nil && *req.Cost < 0 {
		return Fail(c, http.StatusBadRequest, "cost must not be negative")
	}
	err := h.Movies.Update(c.Request().Context(), id, service.MovieUpdate{
		Name:   req.Name,
		Cost:   req.Cost,
		Rating: req.Rating,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /api/v1/movies/:id.
func (h *MovieHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return Fail(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.Movies.Delete(c.Request().Context(), id); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
