package repository

import (
	"context"
	"database/sql"

	"github.com/nd199/movie-booking/internal/model"
)

// MovieRepo persists the movie catalogue.
type MovieRepo struct{ DB *sql.DB }

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{DB: db} }

// Create inserts a movie and returns its ID. A name collision surfaces as
// ErrMovieNameExists.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO movies (name, cost, rating) VALUES (?,?,?)",
		m.Name, m.Cost, m.Rating)
	if err != nil {
		if isDup(err, "movie_name_unique") {
			return 0, ErrMovieNameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a movie by id.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (model.Movie, error) {
	var m model.Movie
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,cost,rating FROM movies WHERE id=? LIMIT 1",
		id).Scan(&m.ID, &m.Name, &m.Cost, &m.Rating)
	if err == sql.ErrNoRows {
		return model.Movie{}, ErrMovieNotFound
	}
	return m, err
}

// List returns the full catalogue ordered by id.
func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id,name,cost,rating FROM movies ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Movie
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.ID, &m.Name, &m.Cost, &m.Rating); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Update writes name, cost and rating. Callers diff first.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE movies SET name=?, cost=?, rating=? WHERE id=?",
		m.Name, m.Cost, m.Rating, m.ID)
	if isDup(err, "movie_name_unique") {
		return ErrMovieNameExists
	}
	return err
}

// Delete removes a movie; subscription rows cascade.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM movies WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// ExistsByName reports whether the catalogue already has the name.
func (r *MovieRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var found bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM movies WHERE name=?)", name).Scan(&found)
	return found, err
}
