package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Описание catalog.v1.CategoryService из proto/catalog/v1/category.proto.
// Сообщения сервиса: well-known типы protobuf, поэтому отдельный сгенерированный пакет не нужен.
const (
	CategoryServiceName                           = "catalog.v1.CategoryService"
	CategoryService_GetCategory_FullMethodName    = "/" + CategoryServiceName + "/GetCategory"
	CategoryService_CreateCategory_FullMethodName = "/" + CategoryServiceName + "/CreateCategory"
	CategoryService_UpdateCategory_FullMethodName = "/" + CategoryServiceName + "/UpdateCategory"
	CategoryService_DeleteCategory_FullMethodName = "/" + CategoryServiceName + "/DeleteCategory"
	CategoryService_ListCategories_FullMethodName = "/" + CategoryServiceName + "/ListCategories"
)

type CategoryServiceServer interface {
	GetCategory(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	CreateCategory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateCategory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteCategory(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	ListCategories(context.Context, *structpb.Struct) (*structpb.Struct, error)
	mustEmbedUnimplementedCategoryServiceServer()
}

// UnimplementedCategoryServiceServer встраивается в реализации сервиса.
// Методы, которые реализация не переопределила, отвечают codes.Unimplemented.
type UnimplementedCategoryServiceServer struct{}

func (UnimplementedCategoryServiceServer) GetCategory(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetCategory not implemented")
}

func (UnimplementedCategoryServiceServer) CreateCategory(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateCategory not implemented")
}

func (UnimplementedCategoryServiceServer) UpdateCategory(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateCategory not implemented")
}

func (UnimplementedCategoryServiceServer) DeleteCategory(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteCategory not implemented")
}

func (UnimplementedCategoryServiceServer) ListCategories(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ListCategories not implemented")
}

func (UnimplementedCategoryServiceServer) mustEmbedUnimplementedCategoryServiceServer() {}

func RegisterCategoryServiceServer(s grpc.ServiceRegistrar, srv CategoryServiceServer) {
	s.RegisterService(&CategoryService_ServiceDesc, srv)
}

var CategoryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: CategoryServiceName,
	HandlerType: (*CategoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetCategory",
			Handler:    unaryHandler(CategoryService_GetCategory_FullMethodName, CategoryServiceServer.GetCategory),
		},
		{
			MethodName: "CreateCategory",
			Handler:    unaryHandler(CategoryService_CreateCategory_FullMethodName, CategoryServiceServer.CreateCategory),
		},
		{
			MethodName: "UpdateCategory",
			Handler:    unaryHandler(CategoryService_UpdateCategory_FullMethodName, CategoryServiceServer.UpdateCategory),
		},
		{
			MethodName: "DeleteCategory",
			Handler:    unaryHandler(CategoryService_DeleteCategory_FullMethodName, CategoryServiceServer.DeleteCategory),
		},
		{
			MethodName: "ListCategories",
			Handler:    unaryHandler(CategoryService_ListCategories_FullMethodName, CategoryServiceServer.ListCategories),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "catalog/v1/category.proto",
}

// unaryHandler строит grpc.MethodHandler для метода CategoryServiceServer.
func unaryHandler[Req any, PReq interface{ *Req }, Resp any](
	fullMethod string,
	call func(CategoryServiceServer, context.Context, PReq) (Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := PReq(new(Req))
		if err := dec(in); err != nil {
			return nil, err
		}

		if interceptor == nil {
			return call(srv.(CategoryServiceServer), ctx, in)
		}

		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CategoryServiceServer), ctx, req.(PReq))
		}

		return interceptor(ctx, in, info, handler)
	}
}

// CategoryServiceClient: клиент catalog.v1.CategoryService.
type CategoryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCategoryServiceClient(cc grpc.ClientConnInterface) *CategoryServiceClient {
	return &CategoryServiceClient{cc: cc}
}

func (c *CategoryServiceClient) GetCategory(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CategoryService_GetCategory_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *CategoryServiceClient) CreateCategory(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CategoryService_CreateCategory_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *CategoryServiceClient) UpdateCategory(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CategoryService_UpdateCategory_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *CategoryServiceClient) DeleteCategory(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, CategoryService_DeleteCategory_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *CategoryServiceClient) ListCategories(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CategoryService_ListCategories_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}
