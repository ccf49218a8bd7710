package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Leganyst/provider-catalog/internal/catalog"
	"github.com/Leganyst/provider-catalog/internal/model"
)

type ServiceRepository interface {
	List(ctx context.Context, req catalog.PageRequest) (catalog.Page[model.Service], error)
	GetByID(ctx context.Context, id int64) (*model.Service, error)
	Create(ctx context.Context, service *model.Service) error
	Update(ctx context.Context, service *model.Service) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type GormServiceRepository struct {
	db *gorm.DB
}

func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

func (r *GormServiceRepository) List(ctx context.Context, req catalog.PageRequest) (catalog.Page[model.Service], error) {
	return paginate[model.Service](ctx, r.db, catalog.ServiceFields, req, nil)
}

func (r *GormServiceRepository) GetByID(ctx context.Context, id int64) (*model.Service, error) {
	var s model.Service
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &s, nil
}

// findServicesByIDs возвращает только существующие услуги, неизвестные id пропускаются.
func findServicesByIDs(db *gorm.DB, ids []int64) ([]model.Service, error) {
	if len(ids) == 0 {
		return []model.Service{}, nil
	}
	var services []model.Service
	err := db.
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *GormServiceRepository) Create(ctx context.Context, service *model.Service) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(service).Error; err != nil {
			return err
		}
		return recordEvent(tx, model.EventTypeCreated, model.EntityService, service.ID, serviceDetails(service))
	})
	return translateError(err)
}

func (r *GormServiceRepository) Update(ctx context.Context, service *model.Service) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Service
		if err := tx.First(&existing, "id = ?", service.ID).Error; err != nil {
			return err
		}
		existing.Name = service.Name
		existing.Description = service.Description
		existing.HourlyRate = service.HourlyRate
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		*service = existing
		return recordEvent(tx, model.EventTypeUpdated, model.EntityService, service.ID, serviceDetails(service))
	})
	return translateError(err)
}

// Delete снимает услугу со всех поставщиков, сами поставщики не трогаются.
func (r *GormServiceRepository) Delete(ctx context.Context, id int64) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", id).Delete(&model.ProviderService{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Service{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return recordEvent(tx, model.EventTypeDeleted, model.EntityService, id, nil)
	})
	if err != nil {
		return false, translateError(err)
	}
	return deleted, nil
}

func serviceDetails(s *model.Service) map[string]any {
	return map[string]any{
		"name":        s.Name,
		"description": s.Description,
		"hourlyRate":  s.HourlyRate.StringFixed(2),
	}
}
