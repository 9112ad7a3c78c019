package repository

import (
	"context"
	"database/sql"

	"github.com/nd199/movie-booking/internal/model"
)

// RoleRepo persists roles. Roles are created administratively and only
// referenced by customers; deletion is blocked while any assignment exists.
type RoleRepo struct{ DB *sql.DB }

func NewRoleRepo(db *sql.DB) *RoleRepo { return &RoleRepo{DB: db} }

// Create inserts a role and returns it with its assigned ID. A name
// collision surfaces as ErrRoleExists.
func (r *RoleRepo) Create(ctx context.Context, name string) (model.Role, error) {
	res, err := r.DB.ExecContext(ctx, "INSERT INTO roles (name) VALUES (?)", name)
	if err != nil {
		if isDup(err, "role_name_unique") {
			return model.Role{}, ErrRoleExists
		}
		return model.Role{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Role{}, err
	}
	return model.Role{ID: uint64(id), Name: name}, nil
}

// GetByName resolves a role name, returning ErrRoleNotFound when absent.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (model.Role, error) {
	var role model.Role
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name FROM roles WHERE name=? LIMIT 1", name).Scan(&role.ID, &role.Name)
	if err == sql.ErrNoRows {
		return model.Role{}, ErrRoleNotFound
	}
	return role, err
}

// List returns all roles ordered by id.
func (r *RoleRepo) List(ctx context.Context) ([]model.Role, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id,name FROM roles ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Role
	for rows.Next() {
		var role model.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	return out, rows.Err()
}

// Delete removes a role unless it is still assigned to a customer. The
// assignment count and the delete run in one transaction so a concurrent
// grant cannot slip between them.
func (r *RoleRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var assigned int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM customers_roles WHERE role_id=?", id).Scan(&assigned); err != nil {
		return err
	}
	if assigned > 0 {
		return ErrRoleAssigned
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM roles WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrRoleNotFound
	}
	return tx.Commit()
}

// EnsureSeed inserts the built-in ROLE_USER and ROLE_ADMIN rows when they
// are missing so registration always has something to resolve.
func (r *RoleRepo) EnsureSeed(ctx context.Context) error {
	for _, name := range []string{model.RoleUser, model.RoleAdmin} {
		if _, err := r.DB.ExecContext(ctx,
			"INSERT IGNORE INTO roles (name) VALUES (?)", name); err != nil {
			return err
		}
	}
	return nil
}
