package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// schema lists the tables this service owns. Uniqueness of email, phone,
// movie name and role name is enforced here so that concurrent check-then-act
// sequences cannot both succeed; the repositories translate the resulting
// duplicate-key errors into sentinel values.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name TEXT NOT NULL,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		phone_number BIGINT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY email_unique (email),
		UNIQUE KEY phone_number_unique (phone_number)
	)`,
	`CREATE TABLE IF NOT EXISTS movies (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(255) NOT NULL,
		cost DECIMAL(10,2) NOT NULL,
		rating DECIMAL(3,1) NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY movie_name_unique (name)
	)`,
	`CREATE TABLE IF NOT EXISTS roles (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(64) NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY role_name_unique (name)
	)`,
	`CREATE TABLE IF NOT EXISTS customers_roles (
		customer_id BIGINT UNSIGNED NOT NULL,
		role_id BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (customer_id, role_id),
		CONSTRAINT fk_cr_customer FOREIGN KEY (customer_id) REFERENCES customers(id) ON DELETE CASCADE,
		CONSTRAINT fk_cr_role FOREIGN KEY (role_id) REFERENCES roles(id)
	)`,
	`CREATE TABLE IF NOT EXISTS customer_movies (
		customer_id BIGINT UNSIGNED NOT NULL,
		movie_id BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (customer_id, movie_id),
		CONSTRAINT fk_cm_customer FOREIGN KEY (customer_id) REFERENCES customers(id) ON DELETE CASCADE,
		CONSTRAINT fk_cm_movie FOREIGN KEY (movie_id) REFERENCES movies(id) ON DELETE CASCADE
	)`,
}

// Migrate creates the schema when it does not exist yet. Statements are
// idempotent so running at every startup is safe.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
