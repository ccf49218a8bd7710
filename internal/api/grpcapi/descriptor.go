package grpcapi

import (
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName = "catalog.v1.CatalogService"
	protoFile   = "catalog/v1/catalog.proto"
)

var methodNames = []string{
	"ListCountries", "GetCountry", "CreateCountry", "UpdateCountry", "DeleteCountry",
	"ListServices", "GetService", "CreateService", "UpdateService", "DeleteService",
	"ListProviders", "GetProvider", "CreateProvider", "UpdateProvider", "DeleteProvider",
	"GetSummary", "ListExternalCountries", "ListEvents",
}

// Описание сервиса регистрируется в глобальном реестре, чтобы reflection
// (grpcurl и т.п.) видел методы. Все сообщения: google.protobuf.Struct.
func init() {
	structName := "." + string((&structpb.Struct{}).ProtoReflect().Descriptor().FullName())

	methods := make([]*descriptorpb.MethodDescriptorProto, 0, len(methodNames))
	for _, name := range methodNames {
		name := name
		methods = append(methods, &descriptorpb.MethodDescriptorProto{
			Name:       &name,
			InputType:  &structName,
			OutputType: &structName,
		})
	}

	file := &descriptorpb.FileDescriptorProto{
		Name:       ptr(protoFile),
		Package:    ptr("catalog.v1"),
		Dependency: []string{"google/protobuf/struct.proto"},
		Syntax:     ptr("proto3"),
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name:   ptr("CatalogService"),
			Method: methods,
		}},
	}

	fd, err := protodesc.NewFile(file, protoregistry.GlobalFiles)
	if err != nil {
		panic("catalog descriptor: " + err.Error())
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic("register catalog descriptor: " + err.Error())
	}
}

func ptr[T any](v T) *T { return &v }
