package model

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Тип события аудита.
type EventType string

const (
	EventTypeCreated EventType = "created"
	EventTypeUpdated EventType = "updated"
	EventTypeDeleted EventType = "deleted"
)

// Сущность, к которой относится событие.
type EntityType string

const (
	EntityCountry  EntityType = "country"
	EntityService  EntityType = "service"
	EntityProvider EntityType = "provider"
)

// ParseEntityType принимает имя сущности без учёта регистра.
func ParseEntityType(s string) (EntityType, bool) {
	switch et := EntityType(strings.ToLower(strings.TrimSpace(s))); et {
	case EntityCountry, EntityService, EntityProvider:
		return et, true
	default:
		return "", false
	}
}

// catalog_events: журнал изменений каталога.
// Пишется в той же транзакции, что и само изменение; внешних ключей нет,
// поэтому история переживает удаление сущности.
type CatalogEvent struct {
	ID int64 `gorm:"primaryKey;autoIncrement"`

	EventType  EventType  `gorm:"type:varchar(32);not null;index"`
	EntityType EntityType `gorm:"type:varchar(32);not null;index:idx_catalog_events_entity"`
	EntityID   int64      `gorm:"not null;index:idx_catalog_events_entity"`

	// Снимок полезной нагрузки в JSON (JSONB в Postgres).
	Details datatypes.JSON

	CreatedAt time.Time `gorm:"not null;index"`
}
