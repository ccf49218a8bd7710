package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/provider-catalog/internal/catalog"
	"github.com/Leganyst/provider-catalog/internal/model"
)

// ProviderRepository работает с агрегатом поставщика целиком:
// скалярные поля, набор услуг и список кастомных полей пишутся одной транзакцией.
type ProviderRepository interface {
	List(ctx context.Context, req catalog.PageRequest) (catalog.Page[model.Provider], error)
	GetByID(ctx context.Context, id int64) (*model.Provider, error)
	// Create сохраняет поставщика вместе с p.CustomFields и связями на serviceIDs.
	// Несуществующие id услуг отбрасываются.
	Create(ctx context.Context, p *model.Provider, serviceIDs []int64) error
	// Update заменяет скалярные поля, набор услуг и кастомные поля целиком.
	Update(ctx context.Context, p *model.Provider, serviceIDs []int64) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type GormProviderRepository struct {
	db *gorm.DB
}

func NewGormProviderRepository(db *gorm.DB) *GormProviderRepository {
	return &GormProviderRepository{db: db}
}

// preloadProvider всегда подтягивает страну, услуги и кастомные поля.
func preloadProvider(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Country").
		Preload("Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("services.id ASC")
		}).
		Preload("CustomFields", func(db *gorm.DB) *gorm.DB {
			return db.Order("provider_custom_fields.id ASC")
		})
}

func (r *GormProviderRepository) List(ctx context.Context, req catalog.PageRequest) (catalog.Page[model.Provider], error) {
	return paginate[model.Provider](ctx, r.db, catalog.ProviderFields, req, preloadProvider)
}

func (r *GormProviderRepository) GetByID(ctx context.Context, id int64) (*model.Provider, error) {
	p, err := loadProvider(r.db.WithContext(ctx), id)
	if err != nil {
		return nil, translateError(err)
	}
	return p, nil
}

func loadProvider(db *gorm.DB, id int64) (*model.Provider, error) {
	var p model.Provider
	if err := preloadProvider(db).First(&p, "providers.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormProviderRepository) Create(ctx context.Context, p *model.Provider, serviceIDs []int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fields := p.CustomFields
		p.ID = 0
		p.Country = nil
		p.Services = nil
		p.CustomFields = nil

		if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
			return err
		}
		linked, err := replaceChildren(tx, p.ID, serviceIDs, fields)
		if err != nil {
			return err
		}

		if err := recordEvent(tx, model.EventTypeCreated, model.EntityProvider, p.ID, providerDetails(p, linked, fields)); err != nil {
			return err
		}
		return reload(tx, p)
	})
	return translateError(err)
}

func (r *GormProviderRepository) Update(ctx context.Context, p *model.Provider, serviceIDs []int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Provider
		if err := tx.First(&existing, "id = ?", p.ID).Error; err != nil {
			return err
		}

		// скаляры перезаписываются без слияния
		existing.Nit = p.Nit
		existing.Name = p.Name
		existing.Email = p.Email
		existing.PhoneNumber = p.PhoneNumber
		existing.CountryID = p.CountryID
		if err := tx.Omit(clause.Associations).Save(&existing).Error; err != nil {
			return err
		}

		// clear-then-add для обеих коллекций
		if err := tx.Where("provider_id = ?", existing.ID).Delete(&model.ProviderService{}).Error; err != nil {
			return err
		}
		if err := tx.Where("provider_id = ?", existing.ID).Delete(&model.ProviderCustomField{}).Error; err != nil {
			return err
		}
		fields := p.CustomFields
		linked, err := replaceChildren(tx, existing.ID, serviceIDs, fields)
		if err != nil {
			return err
		}

		*p = existing
		if err := recordEvent(tx, model.EventTypeUpdated, model.EntityProvider, p.ID, providerDetails(p, linked, fields)); err != nil {
			return err
		}
		return reload(tx, p)
	})
	return translateError(err)
}

// Delete явно удаляет кастомные поля и связи, затем самого поставщика.
// Услуги и страна остаются на месте.
func (r *GormProviderRepository) Delete(ctx context.Context, id int64) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("provider_id = ?", id).Delete(&model.ProviderCustomField{}).Error; err != nil {
			return err
		}
		if err := tx.Where("provider_id = ?", id).Delete(&model.ProviderService{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Provider{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return recordEvent(tx, model.EventTypeDeleted, model.EntityProvider, id, nil)
	})
	if err != nil {
		return false, translateError(err)
	}
	return deleted, nil
}

// replaceChildren вставляет связи с существующими услугами и кастомные поля.
// Возвращает id услуг, которые реально привязаны.
func replaceChildren(tx *gorm.DB, providerID int64, serviceIDs []int64, fields []model.ProviderCustomField) ([]int64, error) {
	services, err := findServicesByIDs(tx, serviceIDs)
	if err != nil {
		return nil, err
	}

	linked := make([]int64, 0, len(services))
	if len(services) > 0 {
		links := make([]model.ProviderService, 0, len(services))
		for _, s := range services {
			links = append(links, model.ProviderService{ProviderID: providerID, ServiceID: s.ID})
			linked = append(linked, s.ID)
		}
		if err := tx.Omit(clause.Associations).Create(&links).Error; err != nil {
			return nil, err
		}
	}

	if len(fields) > 0 {
		rows := make([]model.ProviderCustomField, 0, len(fields))
		for _, f := range fields {
			rows = append(rows, model.ProviderCustomField{
				ProviderID: providerID,
				FieldName:  f.FieldName,
				FieldValue: f.FieldValue,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return nil, err
		}
	}
	return linked, nil
}

func reload(tx *gorm.DB, p *model.Provider) error {
	fresh, err := loadProvider(tx, p.ID)
	if err != nil {
		return err
	}
	*p = *fresh
	return nil
}

func providerDetails(p *model.Provider, serviceIDs []int64, fields []model.ProviderCustomField) map[string]any {
	custom := make([]map[string]string, 0, len(fields))
	for _, f := range fields {
		custom = append(custom, map[string]string{"name": f.FieldName, "value": f.FieldValue})
	}
	return map[string]any{
		"nit":          p.Nit,
		"name":         p.Name,
		"email":        p.Email,
		"phoneNumber":  p.PhoneNumber,
		"countryId":    p.CountryID,
		"serviceIds":   serviceIDs,
		"customFields": custom,
	}
}
