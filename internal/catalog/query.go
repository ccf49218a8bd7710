package catalog

import "strings"

// SortColumn: колонка сортировки. Join задаётся, если колонка живёт
// в связанной таблице и её нужно присоединить перед ORDER BY.
type SortColumn struct {
	Table  string
	Column string
	Join   string
}

// QueryFields задаёт статическую конфигурацию листинга для одной сущности:
// по каким колонкам ищем и по каким разрешено сортировать.
type QueryFields struct {
	Table      string
	Searchable []string
	Sortable   map[string]SortColumn // ключ в нижнем регистре
}

// ResolveSort ищет поле сортировки без учёта регистра.
// ok == false означает откат на сортировку по id по возрастанию.
func (f QueryFields) ResolveSort(field string) (SortColumn, bool) {
	key := strings.ToLower(strings.TrimSpace(field))
	if key == "" {
		return SortColumn{}, false
	}
	col, ok := f.Sortable[key]
	return col, ok
}

// IDColumn: колонка сортировки по умолчанию.
func (f QueryFields) IDColumn() SortColumn {
	return SortColumn{Table: f.Table, Column: "id"}
}

const providerCountryJoin = "LEFT JOIN countries ON countries.id = providers.country_id"

var (
	CountryFields = QueryFields{
		Table:      "countries",
		Searchable: []string{"name", "iso_code"},
		Sortable: map[string]SortColumn{
			"name":    {Table: "countries", Column: "name"},
			"isocode": {Table: "countries", Column: "iso_code"},
		},
	}

	ServiceFields = QueryFields{
		Table:      "services",
		Searchable: []string{"name", "description"},
		Sortable: map[string]SortColumn{
			"name":       {Table: "services", Column: "name"},
			"hourlyrate": {Table: "services", Column: "hourly_rate"},
		},
	}

	ProviderFields = QueryFields{
		Table:      "providers",
		Searchable: []string{"name", "nit", "email"},
		Sortable: map[string]SortColumn{
			"name":        {Table: "providers", Column: "name"},
			"nit":         {Table: "providers", Column: "nit"},
			"email":       {Table: "providers", Column: "email"},
			"country":     {Table: "countries", Column: "name", Join: providerCountryJoin},
			"countryname": {Table: "countries", Column: "name", Join: providerCountryJoin},
		},
	}
)
