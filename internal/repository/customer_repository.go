package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/nd199/movie-booking/internal/model"
)

// CustomerRepo persists customers, their role links and their movie
// subscriptions. Mutations that pair an existence check with a write run
// inside a transaction; the unique keys and join-table primary keys declared
// in the schema are the final word against concurrent duplicates.
type CustomerRepo struct{ DB *sql.DB }

func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{DB: db} }

// isDup reports whether err is a MySQL duplicate-key error (1062) for the
// named unique key.
func isDup(err error, key string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "1062") && strings.Contains(msg, key)
}

// Create inserts the customer and its role links in one transaction and
// returns the new ID. Email and phone collisions surface as ErrEmailExists
// and ErrPhoneExists.
func (r *CustomerRepo) Create(ctx context.Context, c *model.Customer, roleIDs []uint64) (uint64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO customers (name, email, password_hash, phone_number) VALUES (?,?,?,?)",
		c.Name, c.Email, c.PasswordHash, c.PhoneNumber)
	if err != nil {
		switch {
		case isDup(err, "email_unique"):
			return 0, ErrEmailExists
		case isDup(err, "phone_number_unique"):
			return 0, ErrPhoneExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for _, roleID := range roleIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO customers_roles (customer_id, role_id) VALUES (?,?)",
			uint64(id), roleID); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a customer with roles and subscribed movies attached.
func (r *CustomerRepo) GetByID(ctx context.Context, id uint64) (model.Customer, error) {
	return r.get(ctx, "id=?", id)
}

// GetByEmail fetches a customer by normalized email. Used by login and by
// the bearer-token gate, whose token subject is the email.
func (r *CustomerRepo) GetByEmail(ctx context.Context, email string) (model.Customer, error) {
	return r.get(ctx, "email=?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *CustomerRepo) get(ctx context.Context, where string, arg any) (model.Customer, error) {
	var c model.Customer
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,email,password_hash,phone_number,created_at FROM customers WHERE "+where+" LIMIT 1",
		arg).Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.PhoneNumber, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Customer{}, ErrCustomerNotFound
	}
	if err != nil {
		return model.Customer{}, err
	}
	if c.Roles, err = r.rolesOf(ctx, c.ID); err != nil {
		return model.Customer{}, err
	}
	if c.Movies, err = r.moviesOf(ctx, c.ID); err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

// List returns all customers with their relations loaded.
func (r *CustomerRepo) List(ctx context.Context) ([]model.Customer, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,email,password_hash,phone_number,created_at FROM customers ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Customer
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.PhoneNumber, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].Roles, err = r.rolesOf(ctx, out[i].ID); err != nil {
			return nil, err
		}
		if out[i].Movies, err = r.moviesOf(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Update writes name, email and phone. Callers diff against the loaded row
// first, so an update always carries at least one real change.
func (r *CustomerRepo) Update(ctx context.Context, c *model.Customer) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE customers SET name=?, email=?, phone_number=? WHERE id=?",
		c.Name, c.Email, c.PhoneNumber, c.ID)
	switch {
	case isDup(err, "email_unique"):
		return ErrEmailExists
	case isDup(err, "phone_number_unique"):
		return ErrPhoneExists
	}
	return err
}

// Delete removes the customer; role links and subscriptions cascade.
func (r *CustomerRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM customers WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// ExistsByEmail reports whether any customer uses the email.
func (r *CustomerRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "SELECT EXISTS(SELECT 1 FROM customers WHERE email=?)",
		strings.ToLower(strings.TrimSpace(email)))
}

// ExistsByPhone reports whether any customer uses the phone number.
func (r *CustomerRepo) ExistsByPhone(ctx context.Context, phone int64) (bool, error) {
	return r.exists(ctx, "SELECT EXISTS(SELECT 1 FROM customers WHERE phone_number=?)", phone)
}

func (r *CustomerRepo) exists(ctx context.Context, query string, arg any) (bool, error) {
	var found bool
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(&found)
	return found, err
}

// Subscribe adds the customer–movie relation. Both sides must exist and the
// pair must not already be present; a repeated subscribe is an error, not a
// no-op. The whole check-then-act runs in one transaction.
func (r *CustomerRepo) Subscribe(ctx context.Context, customerID, movieID uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := r.checkPair(ctx, tx, customerID, movieID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO customer_movies (customer_id, movie_id) VALUES (?,?)",
		customerID, movieID); err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrAlreadySubscribed
		}
		return err
	}
	return tx.Commit()
}

// Unsubscribe removes the relation; removing an absent pair is rejected
// with ErrNotSubscribed.
func (r *CustomerRepo) Unsubscribe(ctx context.Context, customerID, movieID uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := r.checkPair(ctx, tx, customerID, movieID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx,
		"DELETE FROM customer_movies WHERE customer_id=? AND movie_id=?",
		customerID, movieID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotSubscribed
	}
	return tx.Commit()
}

// checkPair verifies that both the customer and the movie exist inside the
// caller's transaction.
func (r *CustomerRepo) checkPair(ctx context.Context, tx *sql.Tx, customerID, movieID uint64) error {
	var found bool
	if err := tx.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM customers WHERE id=?)", customerID).Scan(&found); err != nil {
		return err
	}
	if !found {
		return ErrCustomerNotFound
	}
	if err := tx.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM movies WHERE id=?)", movieID).Scan(&found); err != nil {
		return err
	}
	if !found {
		return ErrMovieNotFound
	}
	return nil
}

func (r *CustomerRepo) rolesOf(ctx context.Context, customerID uint64) ([]model.Role, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT r.id, r.name FROM roles r
		 JOIN customers_roles cr ON cr.role_id = r.id
		 WHERE cr.customer_id = ? ORDER BY r.id`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []model.Role
	for rows.Next() {
		var role model.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *CustomerRepo) moviesOf(ctx context.Context, customerID uint64) ([]model.Movie, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT m.id, m.name, m.cost, m.rating FROM movies m
		 JOIN customer_movies cm ON cm.movie_id = m.id
		 WHERE cm.customer_id = ? ORDER BY m.id`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movies []model.Movie
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.ID, &m.Name, &m.Cost, &m.Rating); err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}
