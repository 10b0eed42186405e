package table

import (
	"context"
	"errors"
)

var (
	ErrTableNotFound   = errors.New("table not found")
	ErrInvalidSeats    = errors.New("seats must be greater than zero")
	ErrInvalidStatus   = errors.New("invalid table status")
	ErrDuplicateNumber = errors.New("table number already exists")
	ErrNoFields        = errors.New("no fields to update")
)

type Service interface {
	Create(ctx context.Context, req CreateTableRequest) (*Table, error)
	GetByID(ctx context.Context, id int) (*Table, error)
	GetByNumber(ctx context.Context, tableNumber int) (*Table, error)
	List(ctx context.Context, filter ListFilter) ([]Table, error)
	ListAvailable(ctx context.Context, minSeats, limit int) ([]Table, error)
	Update(ctx context.Context, id int, req UpdateTableRequest) error
	SetStatus(ctx context.Context, id int, status string) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context, status string) (int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) Create(ctx context.Context, req CreateTableRequest) (*Table, error) {
	if req.Seats <= 0 {
		return nil, ErrInvalidSeats
	}

	status := req.Status
	if status == "" {
		status = StatusAvailable
	}
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	exists, err := s.repo.NumberExists(ctx, req.TableNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateNumber
	}

	return s.repo.Create(ctx, req.TableNumber, req.Seats, status)
}

func (s *service) GetByID(ctx context.Context, id int) (*Table, error) {
	table, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrTableNotFound
	}
	return table, nil
}

func (s *service) GetByNumber(ctx context.Context, tableNumber int) (*Table, error) {
	table, err := s.repo.GetByNumber(ctx, tableNumber)
	if err != nil {
		return nil, ErrTableNotFound
	}
	return table, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]Table, error) {
	if filter.Status != "" && !ValidStatus(filter.Status) {
		return nil, ErrInvalidStatus
	}
	return s.repo.List(ctx, filter)
}

func (s *service) ListAvailable(ctx context.Context, minSeats, limit int) ([]Table, error) {
	return s.repo.List(ctx, ListFilter{
		Status:   StatusAvailable,
		MinSeats: minSeats,
		Limit:    limit,
	})
}

func (s *service) Update(ctx context.Context, id int, req UpdateTableRequest) error {
	if req.Seats != nil && *req.Seats <= 0 {
		return ErrInvalidSeats
	}
	if req.Status != nil && !ValidStatus(*req.Status) {
		return ErrInvalidStatus
	}

	if req.TableNumber != nil {
		existing, err := s.repo.GetByNumber(ctx, *req.TableNumber)
		if err == nil && existing.ID != id {
			return ErrDuplicateNumber
		}
	}

	return s.repo.Update(ctx, id, req)
}

func (s *service) SetStatus(ctx context.Context, id int, status string) error {
	return s.Update(ctx, id, UpdateTableRequest{Status: &status})
}

func (s *service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Count(ctx context.Context, status string) (int, error) {
	return s.repo.Count(ctx, status)
}
