package table

import "context"

type Repository interface {
	Create(ctx context.Context, tableNumber, seats int, status string) (*Table, error)
	GetByID(ctx context.Context, id int) (*Table, error)
	GetByNumber(ctx context.Context, tableNumber int) (*Table, error)
	List(ctx context.Context, filter ListFilter) ([]Table, error)
	NumberExists(ctx context.Context, tableNumber int) (bool, error)
	Update(ctx context.Context, id int, req UpdateTableRequest) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context, status string) (int, error)
}
