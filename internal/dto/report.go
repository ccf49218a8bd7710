package dto

type ProvidersByCountry struct {
	CountryID     int64  `json:"countryId"`
	CountryName   string `json:"countryName"`
	ProviderCount int64  `json:"providerCount"`
}

type ServicesByCountry struct {
	CountryID    int64  `json:"countryId"`
	CountryName  string `json:"countryName"`
	ServiceCount int64  `json:"serviceCount"`
}

// SummaryReport: два независимых списка, каждый упорядочен по убыванию счётчика.
type SummaryReport struct {
	ProvidersByCountry []ProvidersByCountry `json:"providersByCountry"`
	ServicesByCountry  []ServicesByCountry  `json:"servicesByCountry"`
}
