package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lera-app/ticketing-api/internal/model"
)

// CategoryRepo provides CRUD operations for event categories.  Reads are
// public; all mutations are admin-gated in the handler layer so the repo
// itself carries no caller checks.
type CategoryRepo struct{ DB *sql.DB }

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{DB: db} }

var ErrCategoryNameExists = errors.New("category name already exists")

// List returns all categories ordered by name.
func (r *CategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	cats := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// Create inserts a category and returns it with its generated ID.
func (r *CategoryRepo) Create(ctx context.Context, name string) (model.Category, error) {
	name = strings.TrimSpace(name)
	res, err := r.DB.ExecContext(ctx, "INSERT INTO categories (name) VALUES (?)", name)
	if err != nil {
		if isDuplicateKey(err) {
			return model.Category{}, ErrCategoryNameExists
		}
		return model.Category{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Category{}, err
	}
	return model.Category{ID: uint64(id), Name: name}, nil
}

// Rename updates a category name. sql.ErrNoRows is returned when the
// category does not exist.
func (r *CategoryRepo) Rename(ctx context.Context, id uint64, name string) (model.Category, error) {
	name = strings.TrimSpace(name)
	res, err := r.DB.ExecContext(ctx, "UPDATE categories SET name=? WHERE id=?", name, id)
	if err != nil {
		if isDuplicateKey(err) {
			return model.Category{}, ErrCategoryNameExists
		}
		return model.Category{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Category{}, err
	}
	if n == 0 {
		// Either absent or unchanged; distinguish with a lookup.
		var c model.Category
		err := r.DB.QueryRowContext(ctx, "SELECT id, name FROM categories WHERE id=?", id).
			Scan(&c.ID, &c.Name)
		return c, err
	}
	return model.Category{ID: id, Name: name}, nil
}

// Delete removes a category. Events referencing it fall back to NULL via
// the foreign key. sql.ErrNoRows is returned when nothing was deleted.
func (r *CategoryRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM categories WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
