package service

import (
	"context"

	"github.com/Leganyst/provider-catalog/internal/dto"
)

// ExternalCountrySource: внешний справочник стран, только чтение.
type ExternalCountrySource interface {
	Countries(ctx context.Context) ([]dto.ExternalCountry, error)
}

// StaticCountrySource: заглушка справочника с фиксированным списком.
type StaticCountrySource struct{}

var staticCountries = []dto.ExternalCountry{
	{Name: "Colombia", IsoCode: "CO"},
	{Name: "Peru", IsoCode: "PE"},
	{Name: "Mexico", IsoCode: "MX"},
	{Name: "Chile", IsoCode: "CL"},
	{Name: "Argentina", IsoCode: "AR"},
}

func (StaticCountrySource) Countries(ctx context.Context) ([]dto.ExternalCountry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]dto.ExternalCountry, len(staticCountries))
	copy(out, staticCountries)
	return out, nil
}
