package service

import (
	"context"

	"github.com/Leganyst/provider-catalog/internal/dto"
	"github.com/Leganyst/provider-catalog/internal/repository"
)

// ReportService строит сводный отчёт по странам.
type ReportService struct {
	repo repository.ReportRepository
}

func NewReportService(repo repository.ReportRepository) *ReportService {
	return &ReportService{repo: repo}
}

func (s *ReportService) Summary(ctx context.Context) (*dto.SummaryReport, error) {
	sum, err := s.repo.Summary(ctx)
	if err != nil {
		return nil, err
	}

	out := &dto.SummaryReport{
		ProvidersByCountry: make([]dto.ProvidersByCountry, 0, len(sum.ProvidersByCountry)),
		ServicesByCountry:  make([]dto.ServicesByCountry, 0, len(sum.ServicesByCountry)),
	}
	for _, row := range sum.ProvidersByCountry {
		out.ProvidersByCountry = append(out.ProvidersByCountry, dto.ProvidersByCountry{
			CountryID:     row.CountryID,
			CountryName:   row.CountryName,
			ProviderCount: row.Total,
		})
	}
	for _, row := range sum.ServicesByCountry {
		out.ServicesByCountry = append(out.ServicesByCountry, dto.ServicesByCountry{
			CountryID:    row.CountryID,
			CountryName:  row.CountryName,
			ServiceCount: row.Total,
		})
	}
	return out, nil
}
