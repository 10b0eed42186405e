package user

import "context"

type Repository interface {
	Create(ctx context.Context, name, email string, phone *string, passwordHash, role string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]User, error)
	Update(ctx context.Context, id int, params UpdateParams) error
	Deactivate(ctx context.Context, id int) error
	HardDelete(ctx context.Context, id int) error
	Count(ctx context.Context, filter ListFilter) (int, error)
}
