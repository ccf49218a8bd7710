package service

import (
	"context"
	"log/slog"

	"github.com/Leganyst/provider-catalog/internal/catalog"
	"github.com/Leganyst/provider-catalog/internal/dto"
	"github.com/Leganyst/provider-catalog/internal/model"
	"github.com/Leganyst/provider-catalog/internal/repository"
)

// ServiceService: CRUD услуг каталога.
type ServiceService struct {
	repo repository.ServiceRepository
	log  *slog.Logger
}

func NewServiceService(repo repository.ServiceRepository, log *slog.Logger) *ServiceService {
	if log == nil {
		log = slog.Default()
	}
	return &ServiceService{repo: repo, log: log.With("service", "service")}
}

// Ставка хранится как decimal(18,2).
const rateScale = 2

func validateRate(req dto.ServiceRequest) error {
	if req.HourlyRate.IsNegative() {
		return catalog.NewValidationError("hourlyRate", "must not be negative")
	}
	return nil
}

// serviceFromRequest округляет ставку до копеек, чтобы ответ и все драйверы
// хранили одно и то же значение.
func serviceFromRequest(id int64, req dto.ServiceRequest) model.Service {
	return model.Service{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		HourlyRate:  req.HourlyRate.Round(rateScale),
	}
}

func (s *ServiceService) List(ctx context.Context, req catalog.PageRequest) (catalog.Page[dto.ServiceResponse], error) {
	page, err := s.repo.List(ctx, req)
	if err != nil {
		return catalog.Page[dto.ServiceResponse]{}, err
	}
	return catalog.MapPage(page, mapService), nil
}

func (s *ServiceService) Get(ctx context.Context, id int64) (*dto.ServiceResponse, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapService(*svc)
	return &resp, nil
}

func (s *ServiceService) Create(ctx context.Context, req dto.ServiceRequest) (*dto.ServiceResponse, error) {
	if err := validateRate(req); err != nil {
		return nil, err
	}
	svc := serviceFromRequest(0, req)
	if err := s.repo.Create(ctx, &svc); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "service created", "service_id", svc.ID)
	resp := mapService(svc)
	return &resp, nil
}

func (s *ServiceService) Update(ctx context.Context, id int64, req dto.ServiceRequest) (*dto.ServiceResponse, error) {
	if err := validateRate(req); err != nil {
		return nil, err
	}
	svc := serviceFromRequest(id, req)
	if err := s.repo.Update(ctx, &svc); err != nil {
		return nil, err
	}
	resp := mapService(svc)
	return &resp, nil
}

// Delete снимает услугу с поставщиков, поставщики остаются.
func (s *ServiceService) Delete(ctx context.Context, id int64) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if ok {
		s.log.InfoContext(ctx, "service deleted", "service_id", id)
	}
	return ok, nil
}
