package model

import "gorm.io/gorm"

// AutoMigrate выполняет миграцию всех сущностей каталога.
func AutoMigrate(db *gorm.DB) error {
	// provider_services: своя модель, а не таблица, сгенерированная GORM.
	if err := db.SetupJoinTable(&Provider{}, "Services", &ProviderService{}); err != nil {
		return err
	}
	return db.AutoMigrate(
		&Country{},
		&Service{},
		&Provider{},
		&ProviderService{},
		&ProviderCustomField{},
		&CatalogEvent{},
	)
}
