package service

import (
	"context"
	"log/slog"

	"github.com/Leganyst/provider-catalog/internal/catalog"
	"github.com/Leganyst/provider-catalog/internal/dto"
	"github.com/Leganyst/provider-catalog/internal/model"
	"github.com/Leganyst/provider-catalog/internal/repository"
)

// CountryService: CRUD стран.
type CountryService struct {
	repo repository.CountryRepository
	log  *slog.Logger
}

func NewCountryService(repo repository.CountryRepository, log *slog.Logger) *CountryService {
	if log == nil {
		log = slog.Default()
	}
	return &CountryService{repo: repo, log: log.With("service", "country")}
}

func (s *CountryService) List(ctx context.Context, req catalog.PageRequest) (catalog.Page[dto.CountryResponse], error) {
	page, err := s.repo.List(ctx, req)
	if err != nil {
		return catalog.Page[dto.CountryResponse]{}, err
	}
	return catalog.MapPage(page, mapCountry), nil
}

func (s *CountryService) Get(ctx context.Context, id int64) (*dto.CountryResponse, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapCountry(*c)
	return &resp, nil
}

func (s *CountryService) Create(ctx context.Context, req dto.CountryRequest) (*dto.CountryResponse, error) {
	c := model.Country{Name: req.Name, IsoCode: req.IsoCode}
	if err := s.repo.Create(ctx, &c); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "country created", "country_id", c.ID)
	resp := mapCountry(c)
	return &resp, nil
}

func (s *CountryService) Update(ctx context.Context, id int64, req dto.CountryRequest) (*dto.CountryResponse, error) {
	c := model.Country{ID: id, Name: req.Name, IsoCode: req.IsoCode}
	if err := s.repo.Update(ctx, &c); err != nil {
		return nil, err
	}
	resp := mapCountry(c)
	return &resp, nil
}

// Delete вернёт ErrConstraintViolation, если у страны есть поставщики.
func (s *CountryService) Delete(ctx context.Context, id int64) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if ok {
		s.log.InfoContext(ctx, "country deleted", "country_id", id)
	}
	return ok, nil
}
