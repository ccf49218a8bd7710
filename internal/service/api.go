package service

import (
	"context"

	"github.com/Leganyst/provider-catalog/internal/catalog"
	"github.com/Leganyst/provider-catalog/internal/dto"
)

// CRUD: общий контракт сервисов стран, услуг и поставщиков для транспортов.
type CRUD[Req, Resp any] interface {
	List(ctx context.Context, req catalog.PageRequest) (catalog.Page[Resp], error)
	Get(ctx context.Context, id int64) (*Resp, error)
	Create(ctx context.Context, req Req) (*Resp, error)
	Update(ctx context.Context, id int64, req Req) (*Resp, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type (
	CountryAPI  = CRUD[dto.CountryRequest, dto.CountryResponse]
	ServiceAPI  = CRUD[dto.ServiceRequest, dto.ServiceResponse]
	ProviderAPI = CRUD[dto.ProviderRequest, dto.ProviderResponse]
)

var (
	_ CountryAPI  = (*CountryService)(nil)
	_ ServiceAPI  = (*ServiceService)(nil)
	_ ProviderAPI = (*ProviderService)(nil)
)
