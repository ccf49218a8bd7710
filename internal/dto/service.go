package dto

import "github.com/shopspring/decimal"

type ServiceRequest struct {
	Name        string          `json:"name" binding:"required,notblank,max=100"`
	Description *string         `json:"description" binding:"omitempty,max=500"`
	HourlyRate  decimal.Decimal `json:"hourlyRate"`
}

type ServiceResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	HourlyRate  decimal.Decimal `json:"hourlyRate"`
}
