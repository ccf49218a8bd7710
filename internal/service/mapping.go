package service

import (
	"sort"

	"github.com/Leganyst/provider-catalog/internal/dto"
	"github.com/Leganyst/provider-catalog/internal/model"
)

func mapCountry(c model.Country) dto.CountryResponse {
	return dto.CountryResponse{
		ID:      c.ID,
		Name:    c.Name,
		IsoCode: c.IsoCode,
	}
}

func mapService(s model.Service) dto.ServiceResponse {
	return dto.ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		HourlyRate:  s.HourlyRate,
	}
}

// mapProvider: при повторяющихся именах кастомных полей побеждает последнее.
func mapProvider(p model.Provider) dto.ProviderResponse {
	resp := dto.ProviderResponse{
		ID:           p.ID,
		Nit:          p.Nit,
		Name:         p.Name,
		Email:        p.Email,
		PhoneNumber:  p.PhoneNumber,
		CountryID:    p.CountryID,
		ServiceIDs:   p.ServiceIDs(),
		CustomFields: make(map[string]string, len(p.CustomFields)),
	}
	if p.Country != nil {
		resp.CountryName = p.Country.Name
	}
	for _, f := range p.CustomFields {
		resp.CustomFields[f.FieldName] = f.FieldValue
	}
	return resp
}

// customFieldRows раскладывает map в строки в порядке ключей,
// чтобы порядок в хранилище не зависел от обхода map.
func customFieldRows(fields map[string]string) []model.ProviderCustomField {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]model.ProviderCustomField, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, model.ProviderCustomField{FieldName: k, FieldValue: fields[k]})
	}
	return rows
}

func mapEvent(e model.CatalogEvent) dto.EventResponse {
	resp := dto.EventResponse{
		ID:         e.ID,
		EventType:  string(e.EventType),
		EntityType: string(e.EntityType),
		EntityID:   e.EntityID,
		CreatedAt:  e.CreatedAt,
	}
	if len(e.Details) > 0 {
		resp.Details = []byte(e.Details)
	}
	return resp
}
