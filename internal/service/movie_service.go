package service

import (
	"context"
	"strings"

	"github.com/nd199/movie-booking/internal/model"
	"github.com/nd199/movie-booking/internal/repository"
)

// MovieStore is the persistence contract for the movie catalogue.
type MovieStore interface {
	Create(ctx context.Context, m *model.Movie) (uint64, error)
	GetByID(ctx context.Context, id uint64) (model.Movie, error)
	List(ctx context.Context) ([]model.Movie, error)
	Update(ctx context.Context, m *model.Movie) error
	Delete(ctx context.Context, id uint64) error
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// MovieService implements catalogue CRUD with the same diff-and-reject-no-op
// update contract as customer updates.
type MovieService struct {
	Movies MovieStore
}

func NewMovieService(movies MovieStore) *MovieService { return &MovieService{Movies: movies} }

// Create registers a movie after checking name uniqueness.
func (s *MovieService) Create(ctx context.Context, name string, cost, rating float64) (model.Movie, error) {
	name = strings.TrimSpace(name)
	if taken, err := s.Movies.ExistsByName(ctx, name); err != nil {
		return model.Movie{}, err
	} else if taken {
		return model.Movie{}, repository.ErrMovieNameExists
	}
	m := model.Movie{Name: name, Cost: cost, Rating: rating}
	id, err := s.Movies.Create(ctx, &m)
	if err != nil {
		return model.Movie{}, err
	}
	m.ID = id
	return m, nil
}

// GetByID fetches one movie.
func (s *MovieService) GetByID(ctx context.Context, id uint64) (model.Movie, error) {
	return s.Movies.GetByID(ctx, id)
}

// List returns the catalogue.
func (s *MovieService) List(ctx context.Context) ([]model.Movie, error) {
	return s.Movies.List(ctx)
}

// MovieUpdate is a partial update: nil fields are left untouched.
type MovieUpdate struct {
	Name   *string
	Cost   *float64
	Rating *float64
}

// Update applies the supplied fields that differ from the current values
// and rejects requests that change nothing.
func (s *MovieService) Update(ctx context.Context, id uint64, req MovieUpdate) error {
	m, err := s.Movies.GetByID(ctx, id)
	if err != nil {
		return err
	}

	changed := false
	if req.Name != nil && *req.Name != m.Name {
		m.Name = *req.Name
		changed = true
	}
	if req.Cost != nil && *req.Cost != m.Cost {
		m.Cost = *req.Cost
		changed = true
	}
	if req.Rating != nil && *req.Rating != m.Rating {
		m.Rating = *req.Rating
		changed = true
	}
	if !changed {
		return ErrNoChanges
	}
	return s.Movies.Update(ctx, &m)
}

// Delete removes a movie by id.
func (s *MovieService) Delete(ctx context.Context, id uint64) error {
	return s.Movies.Delete(ctx, id)
}
