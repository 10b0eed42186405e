package table

const (
	StatusAvailable   = "available"
	StatusUnavailable = "unavailable"
)

// ValidStatus reports whether s is an allowed administrative status.
func ValidStatus(s string) bool {
	return s == StatusAvailable || s == StatusUnavailable
}

type Table struct {
	ID          int    `db:"id" json:"id"`
	TableNumber int    `db:"table_number" json:"table_number"`
	Seats       int    `db:"seats" json:"seats"`
	Status      string `db:"status" json:"status"`
}

type CreateTableRequest struct {
	TableNumber int    `json:"table_number" binding:"required,min=1"`
	Seats       int    `json:"seats" binding:"required,min=1"`
	Status      string `json:"status" binding:"omitempty,oneof=available unavailable"`
}

type UpdateTableRequest struct {
	TableNumber *int    `json:"table_number,omitempty"`
	Seats       *int    `json:"seats,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	Status   string
	MinSeats int
	MaxSeats int
	Limit    int
}
