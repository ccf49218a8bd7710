package catalog

import (
	"encoding/json"
	"math"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// PageRequest: сырые параметры листинга в том виде, в каком их прислал вызывающий.
// Значения могут быть некорректными, их приводит в порядок Normalize.
type PageRequest struct {
	Page      int
	PageSize  int
	Search    string
	SortField string
	SortDir   string
}

// Normalize подставляет дефолты: page <= 0 -> 1, pageSize <= 0 -> 10.
// Верхняя граница pageSize не ограничивается.
func (r PageRequest) Normalize() PageRequest {
	if r.Page <= 0 {
		r.Page = DefaultPage
	}
	if r.PageSize <= 0 {
		r.PageSize = DefaultPageSize
	}
	r.Search = strings.TrimSpace(r.Search)
	return r
}

// Offset считает сдвиг для skip/take. Вызывать после Normalize.
// ok == false: сдвиг не помещается в int, такая страница заведомо пуста.
func (r PageRequest) Offset() (offset int, ok bool) {
	if r.Page < 1 || r.PageSize < 1 {
		return 0, true
	}
	if r.Page-1 > math.MaxInt/r.PageSize {
		return 0, false
	}
	return (r.Page - 1) * r.PageSize, true
}

// Descending: только "desc" (без учёта регистра) включает обратный порядок.
func (r PageRequest) Descending() bool {
	return strings.EqualFold(strings.TrimSpace(r.SortDir), "desc")
}

// Page описывает одну страницу элементов.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"` // совпадения после фильтра, до пагинации
	Page       int   `json:"page"`       // номер страницы (с 1)
	PageSize   int   `json:"pageSize"`
}

// HasNext сообщает, есть ли элементы за пределами текущей страницы.
// Page*PageSize < TotalCount считается делением, без переполнения.
func (p Page[T]) HasNext() bool {
	if p.TotalCount <= 0 || p.Page < 1 || p.PageSize < 1 {
		return false
	}
	return int64(p.Page) <= (p.TotalCount-1)/int64(p.PageSize)
}

// HasPrev сообщает, есть ли предыдущая страница.
func (p Page[T]) HasPrev() bool {
	return p.Page > 1
}

// MapPage переводит страницу в другой тип элементов, сохраняя метаданные.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, fn(it))
	}
	return Page[U]{
		Items:      items,
		TotalCount: p.TotalCount,
		Page:       p.Page,
		PageSize:   p.PageSize,
	}
}

type pageJSON[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// MarshalJSON добавляет к странице флаги навигации hasNext и hasPrev.
func (p Page[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(pageJSON[T]{
		Items:      p.Items,
		TotalCount: p.TotalCount,
		Page:       p.Page,
		PageSize:   p.PageSize,
		HasNext:    p.HasNext(),
		HasPrev:    p.HasPrev(),
	})
}
