package repository

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leganyst/provider-catalog/internal/catalog"
	"github.com/Leganyst/provider-catalog/internal/model"
)

func countryNames(items []model.Country) []string {
	out := make([]string, 0, len(items))
	for _, c := range items {
		out = append(out, c.Name)
	}
	return out
}

func TestPaginate_HugePageIsEmpty(t *testing.T) {
	gormDB := newTestDB(t)
	seedCountry(t, gormDB, "Colombia", "CO")
	seedCountry(t, gormDB, "Peru", "PE")
	repo := NewGormCountryRepository(gormDB)

	for _, req := range []catalog.PageRequest{
		{Page: math.MaxInt, PageSize: 2},
		{Page: math.MaxInt / 2, PageSize: 3},
		{Page: 2, PageSize: math.MaxInt},
	} {
		page, err := repo.List(context.Background(), req)
		require.NoError(t, err)
		assert.Empty(t, page.Items, "page %d size %d", req.Page, req.PageSize)
		assert.NotNil(t, page.Items)
		assert.EqualValues(t, 2, page.TotalCount)
		assert.Equal(t, req.Page, page.Page)
		assert.False(t, page.HasNext())
	}
}

func TestLikePattern_EscapesWildcards(t *testing.T) {
	assert.Equal(t, `%100\%%`, likePattern("100%"))
	assert.Equal(t, `%a\_b%`, likePattern("A_B"))
	assert.Equal(t, `%c:\\d%`, likePattern(`C:\D`))
}

func TestPaginate_NormalizesPageAndSize(t *testing.T) {
	gormDB := newTestDB(t)
	for i := 0; i < 12; i++ {
		seedCountry(t, gormDB, fmt.Sprintf("Country %02d", i), fmt.Sprintf("C%d", i))
	}
	repo := NewGormCountryRepository(gormDB)

	for _, req := range []catalog.PageRequest{
		{Page: 0, PageSize: 0},
		{Page: -5, PageSize: -1},
	} {
		page, err := repo.List(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 10, page.PageSize)
		assert.Len(t, page.Items, 10)
		assert.EqualValues(t, 12, page.TotalCount)
	}
}

func TestPaginate_WalkingPagesCoversTotal(t *testing.T) {
	gormDB := newTestDB(t)
	for i := 0; i < 23; i++ {
		seedCountry(t, gormDB, fmt.Sprintf("Land %02d", i), "XX")
	}
	repo := NewGormCountryRepository(gormDB)

	const size = 5
	first, err := repo.List(context.Background(), catalog.PageRequest{Page: 1, PageSize: size})
	require.NoError(t, err)

	seen := map[int64]bool{}
	pages := int((first.TotalCount + size - 1) / size)
	sum := 0
	for p := 1; p <= pages; p++ {
		page, err := repo.List(context.Background(), catalog.PageRequest{Page: p, PageSize: size})
		require.NoError(t, err)
		sum += len(page.Items)
		for _, c := range page.Items {
			assert.False(t, seen[c.ID], "country %d returned twice", c.ID)
			seen[c.ID] = true
		}
	}
	assert.EqualValues(t, first.TotalCount, sum)

	past, err := repo.List(context.Background(), catalog.PageRequest{Page: pages + 1, PageSize: size})
	require.NoError(t, err)
	assert.Empty(t, past.Items)
	assert.NotNil(t, past.Items)
	assert.EqualValues(t, 23, past.TotalCount)
}

func TestPaginate_SearchIsCaseInsensitiveSubstringOverAllowlist(t *testing.T) {
	gormDB := newTestDB(t)
	seedCountry(t, gormDB, "Colombia", "CO")
	seedCountry(t, gormDB, "Peru", "PE")
	seedCountry(t, gormDB, "Chile", "CL")
	repo := NewGormCountryRepository(gormDB)

	page, err := repo.List(context.Background(), catalog.PageRequest{Search: "  LOMB "})
	require.NoError(t, err)
	assert.Equal(t, []string{"Colombia"}, countryNames(page.Items))
	assert.EqualValues(t, 1, page.TotalCount)

	// ISO-код тоже в списке поиска
	page, err = repo.List(context.Background(), catalog.PageRequest{Search: "pe"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Peru"}, countryNames(page.Items))

	page, err = repo.List(context.Background(), catalog.PageRequest{Search: "   "})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.TotalCount)
}

func TestPaginate_SearchTreatsWildcardsLiterally(t *testing.T) {
	gormDB := newTestDB(t)
	seedCountry(t, gormDB, "Plain", "PL")
	seedCountry(t, gormDB, "Odd_Name", "ON")
	repo := NewGormCountryRepository(gormDB)

	page, err := repo.List(context.Background(), catalog.PageRequest{Search: "_"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Odd_Name"}, countryNames(page.Items))

	page, err = repo.List(context.Background(), catalog.PageRequest{Search: "%"})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestPaginate_UnknownSortFieldFallsBackToID(t *testing.T) {
	gormDB := newTestDB(t)
	seedCountry(t, gormDB, "Mexico", "MX")
	seedCountry(t, gormDB, "Argentina", "AR")
	seedCountry(t, gormDB, "Peru", "PE")
	repo := NewGormCountryRepository(gormDB)
	ctx := context.Background()

	none, err := repo.List(ctx, catalog.PageRequest{})
	require.NoError(t, err)
	unknown, err := repo.List(ctx, catalog.PageRequest{SortField: "population", SortDir: "desc"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Mexico", "Argentina", "Peru"}, countryNames(none.Items))
	assert.Equal(t, countryNames(none.Items), countryNames(unknown.Items))
}

func TestPaginate_SortByAllowlistedField(t *testing.T) {
	gormDB := newTestDB(t)
	seedCountry(t, gormDB, "Mexico", "MX")
	seedCountry(t, gormDB, "Argentina", "AR")
	seedCountry(t, gormDB, "Peru", "PE")
	repo := NewGormCountryRepository(gormDB)
	ctx := context.Background()

	asc, err := repo.List(ctx, catalog.PageRequest{SortField: "NAME", SortDir: "sideways"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Argentina", "Mexico", "Peru"}, countryNames(asc.Items))

	desc, err := repo.List(ctx, catalog.PageRequest{SortField: "isoCode", SortDir: "DESC"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Peru", "Mexico", "Argentina"}, countryNames(desc.Items))
}

func TestPaginate_ServiceSearchSkipsNullDescription(t *testing.T) {
	gormDB := newTestDB(t)
	seedService(t, gormDB, "Cloud hosting", strPtr("Managed servers"), "120")
	seedService(t, gormDB, "Audit", nil, "90.5")
	repo := NewGormServiceRepository(gormDB)
	ctx := context.Background()

	page, err := repo.List(ctx, catalog.PageRequest{Search: "servers"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Cloud hosting", page.Items[0].Name)

	page, err = repo.List(ctx, catalog.PageRequest{Search: "audit"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Nil(t, page.Items[0].Description)

	byRate, err := repo.List(ctx, catalog.PageRequest{SortField: "hourlyRate"})
	require.NoError(t, err)
	require.Len(t, byRate.Items, 2)
	assert.Equal(t, "Audit", byRate.Items[0].Name)
	assert.Equal(t, "90.5", byRate.Items[0].HourlyRate.String())
}

func TestPaginate_ProviderSortByCountryNameAndSearch(t *testing.T) {
	gormDB := newTestDB(t)
	peru := seedCountry(t, gormDB, "Peru", "PE")
	chile := seedCountry(t, gormDB, "Chile", "CL")
	repo := NewGormProviderRepository(gormDB)

	seedProvider(t, repo, model.Provider{Nit: "900-1", Name: "Andes Tech", Email: "hi@andes.pe", CountryID: peru.ID})
	seedProvider(t, repo, model.Provider{Nit: "800-2", Name: "Pacific Labs", Email: "info@pacific.cl", CountryID: chile.ID})

	ctx := context.Background()
	page, err := repo.List(ctx, catalog.PageRequest{SortField: "countryName"})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Pacific Labs", page.Items[0].Name)
	require.NotNil(t, page.Items[0].Country)
	assert.Equal(t, "Chile", page.Items[0].Country.Name)

	page, err = repo.List(ctx, catalog.PageRequest{SortField: "country", SortDir: "desc"})
	require.NoError(t, err)
	assert.Equal(t, "Andes Tech", page.Items[0].Name)

	page, err = repo.List(ctx, catalog.PageRequest{Search: "900"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Andes Tech", page.Items[0].Name)

	page, err = repo.List(ctx, catalog.PageRequest{Search: "PACIFIC.cl"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Pacific Labs", page.Items[0].Name)
}
