package model

import "time"

// Provider: поставщик услуг, работает в одной стране.
// Агрегат: владеет набором связей с услугами и списком кастомных полей.
type Provider struct {
	ID int64 `gorm:"primaryKey;autoIncrement"`

	// Налоговый номер (NIT).
	Nit string `gorm:"type:varchar(50);not null"`

	Name        string `gorm:"type:varchar(150);not null"`
	Email       string `gorm:"type:varchar(200)"`
	PhoneNumber string `gorm:"type:varchar(50)"`

	// Внешний ключ на страну. Страну с поставщиками удалить нельзя.
	CountryID int64 `gorm:"not null;index"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Навигационные поля для Preload.
	Country *Country `gorm:"foreignKey:CountryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	Services []Service `gorm:"many2many:provider_services"`

	CustomFields []ProviderCustomField `gorm:"foreignKey:ProviderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// ServiceIDs возвращает id связанных услуг в порядке загрузки.
func (p *Provider) ServiceIDs() []int64 {
	ids := make([]int64, 0, len(p.Services))
	for _, s := range p.Services {
		ids = append(ids, s.ID)
	}
	return ids
}

// provider_custom_fields: произвольные атрибуты поставщика.
// Имена полей не уникальны, живут только вместе с поставщиком.
type ProviderCustomField struct {
	ID int64 `gorm:"primaryKey;autoIncrement"`

	ProviderID int64 `gorm:"not null;index"`

	FieldName  string `gorm:"type:varchar(200);not null"`
	FieldValue string `gorm:"type:varchar(1000);not null"`
}
