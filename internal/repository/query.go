package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/provider-catalog/internal/catalog"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern строит шаблон подстроки для LIKE с экранированием спецсимволов.
func likePattern(search string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
}

// applySearch добавляет OR по всем колонкам поиска сущности.
// Пустой поиск фильтра не добавляет.
func applySearch(q *gorm.DB, fields catalog.QueryFields, search string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" || len(fields.Searchable) == 0 {
		return q
	}

	pattern := likePattern(search)
	conds := make([]string, 0, len(fields.Searchable))
	args := make([]any, 0, len(fields.Searchable))
	for _, col := range fields.Searchable {
		conds = append(conds, fmt.Sprintf(`LOWER(%s.%s) LIKE ? ESCAPE '\'`, fields.Table, col))
		args = append(args, pattern)
	}
	return q.Where("("+strings.Join(conds, " OR ")+")", args...)
}

// applySort: неизвестное поле -> id по возрастанию, направление игнорируется.
func applySort(q *gorm.DB, fields catalog.QueryFields, req catalog.PageRequest) *gorm.DB {
	col, ok := fields.ResolveSort(req.SortField)
	desc := req.Descending()
	if !ok {
		col = fields.IDColumn()
		desc = false
	}
	if col.Join != "" {
		q = q.Joins(col.Join).Select(fields.Table + ".*")
	}
	return q.Order(clause.OrderByColumn{
		Column: clause.Column{Table: col.Table, Name: col.Column},
		Desc:   desc,
	})
}

// paginate реализует общий конвейер листинга: фильтр -> count -> сортировка -> offset/limit.
// preload вызывается только для выборки страницы, не для count.
func paginate[T any](
	ctx context.Context,
	db *gorm.DB,
	fields catalog.QueryFields,
	req catalog.PageRequest,
	preload func(*gorm.DB) *gorm.DB,
) (catalog.Page[T], error) {
	req = req.Normalize()

	filtered := func() *gorm.DB {
		q := db.WithContext(ctx).Model(new(T))
		return applySearch(q, fields, req.Search)
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return catalog.Page[T]{}, fmt.Errorf("count %s: %w", fields.Table, err)
	}

	page := catalog.Page[T]{
		Items:      []T{},
		TotalCount: total,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}

	// страница за пределами int: выборку не делаем, отдаём пустую
	offset, ok := req.Offset()
	if !ok {
		return page, nil
	}

	var items []T
	q := applySort(filtered(), fields, req).
		Offset(offset).
		Limit(req.PageSize)
	if preload != nil {
		q = preload(q)
	}
	if err := q.Find(&items).Error; err != nil {
		return catalog.Page[T]{}, fmt.Errorf("list %s: %w", fields.Table, err)
	}
	if items != nil {
		page.Items = items
	}
	return page, nil
}
