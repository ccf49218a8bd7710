package grpcapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Leganyst/provider-catalog/internal/catalog"
	"github.com/Leganyst/provider-catalog/internal/dto"
	"github.com/Leganyst/provider-catalog/internal/service"
	"github.com/Leganyst/provider-catalog/internal/validation"
)

// CatalogServer: методы catalog.v1.CatalogService.
type CatalogServer interface {
	ListCountries(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetCountry(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateCountry(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateCountry(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteCountry(context.Context, *structpb.Struct) (*structpb.Struct, error)

	ListServices(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetService(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateService(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateService(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteService(context.Context, *structpb.Struct) (*structpb.Struct, error)

	ListProviders(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetProvider(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateProvider(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateProvider(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteProvider(context.Context, *structpb.Struct) (*structpb.Struct, error)

	GetSummary(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListExternalCountries(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListEvents(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type ReportAPI interface {
	Summary(ctx context.Context) (*dto.SummaryReport, error)
}

type EventAPI interface {
	Recent(ctx context.Context, limit int) ([]dto.EventResponse, error)
	ForEntity(ctx context.Context, entityType string, id int64) ([]dto.EventResponse, error)
}

// Server реализует CatalogServer поверх сервисов каталога.
type Server struct {
	countries service.CountryAPI
	services  service.ServiceAPI
	providers service.ProviderAPI
	reports   ReportAPI
	events    EventAPI
	external  service.ExternalCountrySource
	log       *slog.Logger
}

func NewServer(
	countries service.CountryAPI,
	services service.ServiceAPI,
	providers service.ProviderAPI,
	reports ReportAPI,
	events EventAPI,
	external service.ExternalCountrySource,
	log *slog.Logger,
) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		countries: countries,
		services:  services,
		providers: providers,
		reports:   reports,
		events:    events,
		external:  external,
		log:       log.With("component", "grpc"),
	}
}

var _ CatalogServer = (*Server)(nil)

type idRequest struct {
	ID int64 `json:"id"`
}

type listRequest struct {
	Page      int    `json:"page"`
	PageSize  int    `json:"pageSize"`
	Search    string `json:"search"`
	SortField string `json:"sortField"`
	SortDir   string `json:"sortDir"`
}

// eventsRequest: limit для последних событий либо entityType и entityId
// для истории одной сущности.
type eventsRequest struct {
	Limit      int    `json:"limit"`
	EntityType string `json:"entityType"`
	EntityID   int64  `json:"entityId"`
}

// decode переносит Struct в обычную структуру через JSON:
// имена полей те же, что и в REST.
func decode(in *structpb.Struct, out any) error {
	if in == nil {
		in = &structpb.Struct{}
	}
	raw, err := protojson.Marshal(in)
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "decode request: %v", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return status.Errorf(codes.InvalidArgument, "decode request: %v", err)
	}
	return nil
}

func encode(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

// toStatus переводит ошибки каталога в коды gRPC.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case catalog.IsValidation(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, catalog.ErrConstraintViolation):
		return status.Error(codes.FailedPrecondition, "operation violates a data integrity constraint")
	case errors.Is(err, catalog.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func (r listRequest) pageRequest() catalog.PageRequest {
	return catalog.PageRequest{
		Page:      r.Page,
		PageSize:  r.PageSize,
		Search:    r.Search,
		SortField: r.SortField,
		SortDir:   r.SortDir,
	}
}

// Обобщённые обработчики CRUD, общие для трёх сущностей.

func list[Req, Resp any](ctx context.Context, svc service.CRUD[Req, Resp], in *structpb.Struct) (*structpb.Struct, error) {
	var req listRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	page, err := svc.List(ctx, req.pageRequest())
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(page)
}

func get[Req, Resp any](ctx context.Context, svc service.CRUD[Req, Resp], in *structpb.Struct) (*structpb.Struct, error) {
	var req idRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	item, err := svc.Get(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(item)
}

func create[Req, Resp any](ctx context.Context, svc service.CRUD[Req, Resp], in *structpb.Struct) (*structpb.Struct, error) {
	var req Req
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	if err := validation.Struct(&req); err != nil {
		return nil, toStatus(err)
	}
	item, err := svc.Create(ctx, req)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(item)
}

// update ждёт id и поля сущности в одном Struct.
func update[Req, Resp any](ctx context.Context, svc service.CRUD[Req, Resp], in *structpb.Struct) (*structpb.Struct, error) {
	var id idRequest
	if err := decode(in, &id); err != nil {
		return nil, err
	}
	var req Req
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	if err := validation.Struct(&req); err != nil {
		return nil, toStatus(err)
	}
	item, err := svc.Update(ctx, id.ID, req)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(item)
}

func remove[Req, Resp any](ctx context.Context, svc service.CRUD[Req, Resp], in *structpb.Struct) (*structpb.Struct, error) {
	var req idRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	deleted, err := svc.Delete(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	if !deleted {
		return nil, status.Errorf(codes.NotFound, "id %d not found", req.ID)
	}
	return encode(map[string]any{"id": req.ID, "deleted": true})
}

func (s *Server) ListCountries(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return list(ctx, s.countries, in)
}

func (s *Server) GetCountry(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return get(ctx, s.countries, in)
}

func (s *Server) CreateCountry(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return create(ctx, s.countries, in)
}

func (s *Server) UpdateCountry(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return update(ctx, s.countries, in)
}

func (s *Server) DeleteCountry(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return remove(ctx, s.countries, in)
}

func (s *Server) ListServices(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return list(ctx, s.services, in)
}

func (s *Server) GetService(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return get(ctx, s.services, in)
}

func (s *Server) CreateService(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return create(ctx, s.services, in)
}

func (s *Server) UpdateService(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return update(ctx, s.services, in)
}

func (s *Server) DeleteService(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return remove(ctx, s.services, in)
}

func (s *Server) ListProviders(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return list(ctx, s.providers, in)
}

func (s *Server) GetProvider(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return get(ctx, s.providers, in)
}

func (s *Server) CreateProvider(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return create(ctx, s.providers, in)
}

func (s *Server) UpdateProvider(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return update(ctx, s.providers, in)
}

func (s *Server) DeleteProvider(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return remove(ctx, s.providers, in)
}

func (s *Server) GetSummary(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	report, err := s.reports.Summary(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(report)
}

func (s *Server) ListExternalCountries(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	countries, err := s.external.Countries(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(map[string]any{"items": countries})
}

func (s *Server) ListEvents(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req eventsRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	var (
		events []dto.EventResponse
		err    error
	)
	if req.EntityType != "" || req.EntityID != 0 {
		events, err = s.events.ForEntity(ctx, req.EntityType, req.EntityID)
	} else {
		events, err = s.events.Recent(ctx, req.Limit)
	}
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(map[string]any{"items": events})
}

// unaryMethod строит MethodDesc для метода CatalogServer.
func unaryMethod(name string, call func(CatalogServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(CatalogServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(CatalogServer), ctx, req.(*structpb.Struct))
			})
		},
	}
}

// ServiceDesc: ручное описание сервиса вместо сгенерированного protoc кода.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("ListCountries", CatalogServer.ListCountries),
		unaryMethod("GetCountry", CatalogServer.GetCountry),
		unaryMethod("CreateCountry", CatalogServer.CreateCountry),
		unaryMethod("UpdateCountry", CatalogServer.UpdateCountry),
		unaryMethod("DeleteCountry", CatalogServer.DeleteCountry),
		unaryMethod("ListServices", CatalogServer.ListServices),
		unaryMethod("GetService", CatalogServer.GetService),
		unaryMethod("CreateService", CatalogServer.CreateService),
		unaryMethod("UpdateService", CatalogServer.UpdateService),
		unaryMethod("DeleteService", CatalogServer.DeleteService),
		unaryMethod("ListProviders", CatalogServer.ListProviders),
		unaryMethod("GetProvider", CatalogServer.GetProvider),
		unaryMethod("CreateProvider", CatalogServer.CreateProvider),
		unaryMethod("UpdateProvider", CatalogServer.UpdateProvider),
		unaryMethod("DeleteProvider", CatalogServer.DeleteProvider),
		unaryMethod("GetSummary", CatalogServer.GetSummary),
		unaryMethod("ListExternalCountries", CatalogServer.ListExternalCountries),
		unaryMethod("ListEvents", CatalogServer.ListEvents),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: protoFile,
}

func RegisterCatalogServer(s grpc.ServiceRegistrar, srv CatalogServer) {
	s.RegisterService(&ServiceDesc, srv)
}
