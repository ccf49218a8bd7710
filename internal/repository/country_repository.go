package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Leganyst/provider-catalog/internal/catalog"
	"github.com/Leganyst/provider-catalog/internal/model"
)

type CountryRepository interface {
	List(ctx context.Context, req catalog.PageRequest) (catalog.Page[model.Country], error)
	GetByID(ctx context.Context, id int64) (*model.Country, error)
	Create(ctx context.Context, country *model.Country) error
	Update(ctx context.Context, country *model.Country) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type GormCountryRepository struct {
	db *gorm.DB
}

func NewGormCountryRepository(db *gorm.DB) *GormCountryRepository {
	return &GormCountryRepository{db: db}
}

func (r *GormCountryRepository) List(ctx context.Context, req catalog.PageRequest) (catalog.Page[model.Country], error) {
	return paginate[model.Country](ctx, r.db, catalog.CountryFields, req, nil)
}

func (r *GormCountryRepository) GetByID(ctx context.Context, id int64) (*model.Country, error) {
	var c model.Country
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

func (r *GormCountryRepository) Create(ctx context.Context, country *model.Country) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(country).Error; err != nil {
			return err
		}
		return recordEvent(tx, model.EventTypeCreated, model.EntityCountry, country.ID, countryDetails(country))
	})
	return translateError(err)
}

// Update перезаписывает имя и ISO-код. Отсутствующая страна -> ErrNotFound.
func (r *GormCountryRepository) Update(ctx context.Context, country *model.Country) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Country
		if err := tx.First(&existing, "id = ?", country.ID).Error; err != nil {
			return err
		}
		existing.Name = country.Name
		existing.IsoCode = country.IsoCode
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		*country = existing
		return recordEvent(tx, model.EventTypeUpdated, model.EntityCountry, country.ID, countryDetails(country))
	})
	return translateError(err)
}

// Delete: страну, на которую ссылаются поставщики, база не даст удалить
// (ErrConstraintViolation). Отсутствующая строка -> false, nil.
func (r *GormCountryRepository) Delete(ctx context.Context, id int64) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Country{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return recordEvent(tx, model.EventTypeDeleted, model.EntityCountry, id, nil)
	})
	if err != nil {
		return false, translateError(err)
	}
	return deleted, nil
}

func countryDetails(c *model.Country) map[string]any {
	return map[string]any{"name": c.Name, "isoCode": c.IsoCode}
}
