package api

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

type IDResponse struct {
	ID int `json:"id" example:"1"`
}

type AvailabilityResponse struct {
	TableID   int    `json:"table_id" example:"7"`
	Date      string `json:"date" example:"2025-06-01"`
	Time      string `json:"time" example:"19:30"`
	Available bool   `json:"available"`
}
