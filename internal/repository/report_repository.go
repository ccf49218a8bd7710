package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// CountryCount описывает строку отчёта: страна и число сущностей в ней.
type CountryCount struct {
	CountryID   int64
	CountryName string
	Total       int64
}

// Summary: оба отчёта, посчитанные в одной транзакции.
type Summary struct {
	ProvidersByCountry []CountryCount
	ServicesByCountry  []CountryCount
}

type ReportRepository interface {
	Summary(ctx context.Context) (*Summary, error)
}

type GormReportRepository struct {
	db *gorm.DB
}

func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// Порядок строк: больше сущностей выше, при равенстве по имени страны, затем по id.
const reportOrder = "total DESC, countries.name ASC, countries.id ASC"

// INNER JOIN: поставщик без страны в отчёт не попадает.
func providersByCountry(db *gorm.DB) ([]CountryCount, error) {
	rows := []CountryCount{}
	err := db.
		Table("providers").
		Select("countries.id AS country_id, countries.name AS country_name, COUNT(providers.id) AS total").
		Joins("JOIN countries ON countries.id = providers.country_id").
		Group("countries.id, countries.name").
		Order(reportOrder).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("providers by country: %w", err)
	}
	return rows, nil
}

// Услуга, которую в одной стране оказывают несколько поставщиков, считается один раз.
func servicesByCountry(db *gorm.DB) ([]CountryCount, error) {
	rows := []CountryCount{}
	err := db.
		Table("provider_services").
		Select("countries.id AS country_id, countries.name AS country_name, COUNT(DISTINCT provider_services.service_id) AS total").
		Joins("JOIN providers ON providers.id = provider_services.provider_id").
		Joins("JOIN countries ON countries.id = providers.country_id").
		Group("countries.id, countries.name").
		Order(reportOrder).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("services by country: %w", err)
	}
	return rows, nil
}

func (r *GormReportRepository) Summary(ctx context.Context) (*Summary, error) {
	var out Summary
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if out.ProvidersByCountry, err = providersByCountry(tx); err != nil {
			return err
		}
		out.ServicesByCountry, err = servicesByCountry(tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
