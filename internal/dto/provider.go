package dto

// ProviderRequest: полный набор полей поставщика.
// Update перезаписывает все поля, в том числе пустые коллекции.
type ProviderRequest struct {
	Nit          string            `json:"nit" binding:"required,notblank,max=50"`
	Name         string            `json:"name" binding:"required,notblank,max=150"`
	Email        string            `json:"email" binding:"omitempty,email,max=200"`
	PhoneNumber  string            `json:"phoneNumber" binding:"max=50"`
	CountryID    int64             `json:"countryId" binding:"required,gt=0"`
	ServiceIDs   []int64           `json:"serviceIds"`
	CustomFields map[string]string `json:"customFields" binding:"dive,keys,notblank,max=200,endkeys,max=1000"`
}

type ProviderResponse struct {
	ID           int64             `json:"id"`
	Nit          string            `json:"nit"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	PhoneNumber  string            `json:"phoneNumber"`
	CountryID    int64             `json:"countryId"`
	CountryName  string            `json:"countryName"`
	ServiceIDs   []int64           `json:"serviceIds"`
	CustomFields map[string]string `json:"customFields"`
}
