package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Leganyst/provider-catalog/internal/model"
)

const defaultEventsLimit = 50

type EventRepository interface {
	ListRecent(ctx context.Context, limit int) ([]model.CatalogEvent, error)
	ListByEntity(ctx context.Context, entity model.EntityType, id int64) ([]model.CatalogEvent, error)
}

type GormEventRepository struct {
	db *gorm.DB
}

func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

func (r *GormEventRepository) ListRecent(ctx context.Context, limit int) ([]model.CatalogEvent, error) {
	if limit <= 0 {
		limit = defaultEventsLimit
	}
	var events []model.CatalogEvent
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *GormEventRepository) ListByEntity(ctx context.Context, entity model.EntityType, id int64) ([]model.CatalogEvent, error) {
	var events []model.CatalogEvent
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entity, id).
		Order("id ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// recordEvent пишет событие аудита. Вызывается внутри транзакции изменения.
func recordEvent(tx *gorm.DB, eventType model.EventType, entity model.EntityType, id int64, details any) error {
	var payload datatypes.JSON
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("marshal event details: %w", err)
		}
		payload = datatypes.JSON(raw)
	}

	ev := model.CatalogEvent{
		EventType:  eventType,
		EntityType: entity,
		EntityID:   id,
		Details:    payload,
	}
	if err := tx.Create(&ev).Error; err != nil {
		return fmt.Errorf("record %s %s event: %w", entity, eventType, err)
	}
	return nil
}
