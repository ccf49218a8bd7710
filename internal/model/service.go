package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// services
type Service struct {
	ID int64 `gorm:"primaryKey;autoIncrement"`

	Name        string  `gorm:"type:varchar(100);not null"`
	Description *string `gorm:"type:varchar(500)"`

	// Ставка за час в USD, не отрицательная.
	HourlyRate decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// provider_services: кастомная join-таблица многие-ко-многим.
// Удаление любой из сторон удаляет только строку связи.
type ProviderService struct {
	ProviderID int64 `gorm:"primaryKey"`
	ServiceID  int64 `gorm:"primaryKey;index"`

	CreatedAt time.Time

	Provider *Provider `gorm:"foreignKey:ProviderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Service  *Service  `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
