package service

import (
	"context"

	"github.com/Leganyst/provider-catalog/internal/catalog"
	"github.com/Leganyst/provider-catalog/internal/dto"
	"github.com/Leganyst/provider-catalog/internal/model"
	"github.com/Leganyst/provider-catalog/internal/repository"
)

// EventService отдаёт журнал изменений каталога.
type EventService struct {
	repo repository.EventRepository
}

func NewEventService(repo repository.EventRepository) *EventService {
	return &EventService{repo: repo}
}

func (s *EventService) Recent(ctx context.Context, limit int) ([]dto.EventResponse, error) {
	events, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return mapEvents(events), nil
}

// ForEntity отдаёт историю одной сущности от старых событий к новым.
// История удалённой сущности тоже доступна.
func (s *EventService) ForEntity(ctx context.Context, entityType string, id int64) ([]dto.EventResponse, error) {
	entity, ok := model.ParseEntityType(entityType)
	if !ok {
		return nil, catalog.NewValidationError("entityType", "must be one of country, service, provider")
	}
	if id <= 0 {
		return nil, catalog.NewValidationError("entityId", "must be greater than 0")
	}
	events, err := s.repo.ListByEntity(ctx, entity, id)
	if err != nil {
		return nil, err
	}
	return mapEvents(events), nil
}

func mapEvents(events []model.CatalogEvent) []dto.EventResponse {
	out := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, mapEvent(e))
	}
	return out
}
