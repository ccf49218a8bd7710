package dto

type CountryRequest struct {
	Name    string `json:"name" binding:"required,notblank,max=100"`
	IsoCode string `json:"isoCode" binding:"required,notblank,max=10"`
}

type CountryResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	IsoCode string `json:"isoCode"`
}

// ExternalCountry: запись внешнего справочника стран, в каталоге не хранится.
type ExternalCountry struct {
	Name    string `json:"name"`
	IsoCode string `json:"isoCode"`
}
