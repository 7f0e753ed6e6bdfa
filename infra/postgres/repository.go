package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/lib/pq"

	"itembox/domain"
)

const itemsSchema = `
CREATE TABLE IF NOT EXISTS items (
	id SERIAL PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	description TEXT,
	image_key VARCHAR(512),
	image_url VARCHAR(1024),
	created_at TIMESTAMPTZ DEFAULT NOW()
);`

type PgRepository struct {
	db *sqlx.DB
}

func NewPgRepository(host, database, user, password, port string) *PgRepository {
	db := sqlx.MustConnect("postgres", fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, database,
	))

	db.SetMaxOpenConns(15)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return &PgRepository{db: db}
}

func (r *PgRepository) Close() error {
	return r.db.Close()
}

// Migrate creates the items table if it does not exist. Runs once at startup.
func (r *PgRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, itemsSchema); err != nil {
		return fmt.Errorf("migrating items table: %w", err)
	}
	return nil
}

func (r *PgRepository) Insert(ctx context.Context, title string, description, imageKey, imageURL *string) (domain.Item, error) {
	var i domain.Item
	query := `
		INSERT INTO items (title, description, image_key, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING *`

	err := r.db.GetContext(ctx, &i, query, title, description, imageKey, imageURL)
	if err != nil {
		return i, err
	}

	return i, nil
}

// Update overwrites all mutable fields, image pair included.
func (r *PgRepository) Update(ctx context.Context, id int64, title string, description, imageKey, imageURL *string) (int64, error) {
	query := `
		UPDATE items SET
			title = :title,
			description = :description,
			image_key = :image_key,
			image_url = :image_url
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":          id,
		"title":       title,
		"description": description,
		"image_key":   imageKey,
		"image_url":   imageURL,
	})
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// UpdateMeta overwrites title and description only, leaving the image pair
// untouched.
func (r *PgRepository) UpdateMeta(ctx context.Context, id int64, title string, description *string) (int64, error) {
	query := `
		UPDATE items SET
			title = :title,
			description = :description
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":          id,
		"title":       title,
		"description": description,
	})
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *PgRepository) GetItem(ctx context.Context, id int64) (domain.Item, error) {
	var i domain.Item
	query := `SELECT * FROM items WHERE id = $1`

	err := r.db.GetContext(ctx, &i, query, id)

	if err != nil {
		return i, err
	}

	return i, nil
}

func (r *PgRepository) GetItems(ctx context.Context) ([]domain.Item, error) {
	items := make([]domain.Item, 0)
	query := `SELECT * FROM items ORDER BY id DESC`

	err := r.db.SelectContext(ctx, &items, query)

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *PgRepository) CountItems(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM items`

	err := r.db.GetContext(ctx, &count, query)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Delete removes the row by id. Deleting an absent id affects zero rows and
// is not an error.
func (r *PgRepository) Delete(ctx context.Context, id int64) (int64, error) {
	query := `DELETE FROM items WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
