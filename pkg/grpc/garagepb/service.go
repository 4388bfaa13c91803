package garagepb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	CatalogService_QueryCars_FullMethodName = "/garage.v1.CatalogService/QueryCars"
	CatalogService_GetCar_FullMethodName    = "/garage.v1.CatalogService/GetCar"
	CatalogService_Home_FullMethodName      = "/garage.v1.CatalogService/Home"
	CatalogService_Status_FullMethodName    = "/garage.v1.CatalogService/Status"
)

// CatalogServiceServer is the server API of garage.v1.CatalogService.
type CatalogServiceServer interface {
	QueryCars(context.Context, *QueryCarsRequest) (*QueryCarsResponse, error)
	GetCar(context.Context, *GetCarRequest) (*GetCarResponse, error)
	Home(context.Context, *HomeRequest) (*HomeResponse, error)
	Status(context.Context, *StatusRequest) (*StatusResponse, error)
}

// UnimplementedCatalogServiceServer answers every method with Unimplemented.
type UnimplementedCatalogServiceServer struct{}

func (UnimplementedCatalogServiceServer) QueryCars(context.Context, *QueryCarsRequest) (*QueryCarsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method QueryCars not implemented")
}

func (UnimplementedCatalogServiceServer) GetCar(context.Context, *GetCarRequest) (*GetCarResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetCar not implemented")
}

func (UnimplementedCatalogServiceServer) Home(context.Context, *HomeRequest) (*HomeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Home not implemented")
}

func (UnimplementedCatalogServiceServer) Status(context.Context, *StatusRequest) (*StatusResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Status not implemented")
}

func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&CatalogService_ServiceDesc, srv)
}

func unary[Req any, Resp any](method string, call func(CatalogServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CatalogServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CatalogServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// CatalogService_ServiceDesc describes garage.v1.CatalogService.
var CatalogService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "garage.v1.CatalogService",
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "QueryCars",
			Handler: unary(CatalogService_QueryCars_FullMethodName, func(s CatalogServiceServer, ctx context.Context, in *QueryCarsRequest) (*QueryCarsResponse, error) {
				return s.QueryCars(ctx, in)
			}),
		},
		{
			MethodName: "GetCar",
			Handler: unary(CatalogService_GetCar_FullMethodName, func(s CatalogServiceServer, ctx context.Context, in *GetCarRequest) (*GetCarResponse, error) {
				return s.GetCar(ctx, in)
			}),
		},
		{
			MethodName: "Home",
			Handler: unary(CatalogService_Home_FullMethodName, func(s CatalogServiceServer, ctx context.Context, in *HomeRequest) (*HomeResponse, error) {
				return s.Home(ctx, in)
			}),
		},
		{
			MethodName: "Status",
			Handler: unary(CatalogService_Status_FullMethodName, func(s CatalogServiceServer, ctx context.Context, in *StatusRequest) (*StatusResponse, error) {
				return s.Status(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "garage/v1/catalog.proto",
}

// CatalogServiceClient is the client API of garage.v1.CatalogService.
type CatalogServiceClient interface {
	QueryCars(ctx context.Context, in *QueryCarsRequest, opts ...grpc.CallOption) (*QueryCarsResponse, error)
	GetCar(ctx context.Context, in *GetCarRequest, opts ...grpc.CallOption) (*GetCarResponse, error)
	Home(ctx context.Context, in *HomeRequest, opts ...grpc.CallOption) (*HomeResponse, error)
	Status(ctx context.Context, in *StatusRequest, opts ...grpc.CallOption) (*StatusResponse, error)
}

type catalogServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCatalogServiceClient wraps cc. Every call is sent with the JSON codec.
func NewCatalogServiceClient(cc grpc.ClientConnInterface) CatalogServiceClient {
	return &catalogServiceClient{cc: cc}
}

func (c *catalogServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *catalogServiceClient) QueryCars(ctx context.Context, in *QueryCarsRequest, opts ...grpc.CallOption) (*QueryCarsResponse, error) {
	out := new(QueryCarsResponse)
	if err := c.invoke(ctx, CatalogService_QueryCars_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *catalogServiceClient) GetCar(ctx context.Context, in *GetCarRequest, opts ...grpc.CallOption) (*GetCarResponse, error) {
	out := new(GetCarResponse)
	if err := c.invoke(ctx, CatalogService_GetCar_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *catalogServiceClient) Home(ctx context.Context, in *HomeRequest, opts ...grpc.CallOption) (*HomeResponse, error) {
	out := new(HomeResponse)
	if err := c.invoke(ctx, CatalogService_Home_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *catalogServiceClient) Status(ctx context.Context, in *StatusRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	out := new(StatusResponse)
	if err := c.invoke(ctx, CatalogService_Status_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
