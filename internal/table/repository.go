package table

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"tablebook/internal/db"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, tableNumber, seats int, status string) (*Table, error) {
	query := `
		INSERT INTO tables (table_number, seats, status)
		VALUES ($1, $2, $3)
		RETURNING id, table_number, seats, status
	`

	var table Table
	err := r.db.GetContext(ctx, &table, query, tableNumber, seats, status)
	if err != nil {
		return nil, err
	}

	return &table, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Table, error) {
	query := `
		SELECT id, table_number, seats, status
		FROM tables
		WHERE id = $1
	`

	var table Table
	err := r.db.GetContext(ctx, &table, query, id)
	if err != nil {
		return nil, err
	}

	return &table, nil
}

func (r *repository) GetByNumber(ctx context.Context, tableNumber int) (*Table, error) {
	query := `
		SELECT id, table_number, seats, status
		FROM tables
		WHERE table_number = $1
	`

	var table Table
	err := r.db.GetContext(ctx, &table, query, tableNumber)
	if err != nil {
		return nil, err
	}

	return &table, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Table, error) {
	query := `SELECT id, table_number, seats, status FROM tables`

	var (
		conds []string
		args  []interface{}
	)

	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.MinSeats > 0 {
		args = append(args, filter.MinSeats)
		conds = append(conds, fmt.Sprintf("seats >= $%d", len(args)))
	}
	if filter.MaxSeats > 0 {
		args = append(args, filter.MaxSeats)
		conds = append(conds, fmt.Sprintf("seats <= $%d", len(args)))
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY table_number ASC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	var tables []Table
	err := r.db.SelectContext(ctx, &tables, query, args...)
	if err != nil {
		return nil, err
	}

	return tables, nil
}

func (r *repository) NumberExists(ctx context.Context, tableNumber int) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM tables WHERE table_number = $1)`, tableNumber)
}

func (r *repository) Update(ctx context.Context, id int, req UpdateTableRequest) error {
	var (
		sets []string
		args []interface{}
	)

	if req.TableNumber != nil {
		args = append(args, *req.TableNumber)
		sets = append(sets, fmt.Sprintf("table_number = $%d", len(args)))
	}
	if req.Seats != nil {
		args = append(args, *req.Seats)
		sets = append(sets, fmt.Sprintf("seats = $%d", len(args)))
	}
	if req.Status != nil {
		args = append(args, *req.Status)
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
	}

	if len(sets) == 0 {
		return ErrNoFields
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE tables SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrTableNotFound
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tables WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrTableNotFound
	}

	return nil
}

func (r *repository) Count(ctx context.Context, status string) (int, error) {
	query := `SELECT COUNT(*) FROM tables`
	var args []interface{}

	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, err
	}

	return count, nil
}
