package service

import (
	"context"
	"log/slog"

	"github.com/Leganyst/provider-catalog/internal/catalog"
	"github.com/Leganyst/provider-catalog/internal/dto"
	"github.com/Leganyst/provider-catalog/internal/model"
	"github.com/Leganyst/provider-catalog/internal/repository"
)

// ProviderService управляет поставщиками как агрегатом:
// услуги и кастомные поля всегда заменяются целиком.
type ProviderService struct {
	repo repository.ProviderRepository
	log  *slog.Logger
}

func NewProviderService(repo repository.ProviderRepository, log *slog.Logger) *ProviderService {
	if log == nil {
		log = slog.Default()
	}
	return &ProviderService{repo: repo, log: log.With("service", "provider")}
}

func providerFromRequest(id int64, req dto.ProviderRequest) model.Provider {
	return model.Provider{
		ID:           id,
		Nit:          req.Nit,
		Name:         req.Name,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		CountryID:    req.CountryID,
		CustomFields: customFieldRows(req.CustomFields),
	}
}

func (s *ProviderService) List(ctx context.Context, req catalog.PageRequest) (catalog.Page[dto.ProviderResponse], error) {
	page, err := s.repo.List(ctx, req)
	if err != nil {
		return catalog.Page[dto.ProviderResponse]{}, err
	}
	return catalog.MapPage(page, mapProvider), nil
}

func (s *ProviderService) Get(ctx context.Context, id int64) (*dto.ProviderResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapProvider(*p)
	return &resp, nil
}

// Create: несуществующие serviceIds молча отбрасываются,
// несуществующая страна даёт ErrConstraintViolation.
func (s *ProviderService) Create(ctx context.Context, req dto.ProviderRequest) (*dto.ProviderResponse, error) {
	p := providerFromRequest(0, req)
	if err := s.repo.Create(ctx, &p, req.ServiceIDs); err != nil {
		return nil, err
	}
	if dropped := len(uniqueIDs(req.ServiceIDs)) - len(p.Services); dropped > 0 {
		s.log.DebugContext(ctx, "unknown service ids dropped", "provider_id", p.ID, "dropped", dropped)
	}
	s.log.InfoContext(ctx, "provider created", "provider_id", p.ID)
	resp := mapProvider(p)
	return &resp, nil
}

// Update перезаписывает все поля. Пустой customFields удаляет все кастомные поля.
func (s *ProviderService) Update(ctx context.Context, id int64, req dto.ProviderRequest) (*dto.ProviderResponse, error) {
	p := providerFromRequest(id, req)
	if err := s.repo.Update(ctx, &p, req.ServiceIDs); err != nil {
		return nil, err
	}
	resp := mapProvider(p)
	return &resp, nil
}

func (s *ProviderService) Delete(ctx context.Context, id int64) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if ok {
		s.log.InfoContext(ctx, "provider deleted", "provider_id", id)
	}
	return ok, nil
}

func uniqueIDs(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
