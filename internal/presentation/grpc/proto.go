package grpc

// proto.go defines the gRPC server interface derived from premia/v1/quote.proto.
// This file serves as a stand-in for buf-generated code. Once `buf generate` is run,
// replace this file with the import from github.com/premialabs/premia/api/gen/go/premia/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// QuoteServiceServer is the server API for QuoteService.
type QuoteServiceServer interface {
	RequestQuote(context.Context, *RequestQuoteRequest) (*RequestQuoteResponse, error)
	GetModelReport(context.Context, *GetModelReportRequest) (*GetModelReportResponse, error)
	mustEmbedUnimplementedQuoteServiceServer()
}

// UnimplementedQuoteServiceServer provides forward-compatible default implementations.
type UnimplementedQuoteServiceServer struct{}

func (UnimplementedQuoteServiceServer) RequestQuote(context.Context, *RequestQuoteRequest) (*RequestQuoteResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RequestQuote not implemented")
}
func (UnimplementedQuoteServiceServer) GetModelReport(context.Context, *GetModelReportRequest) (*GetModelReportResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetModelReport not implemented")
}
func (UnimplementedQuoteServiceServer) mustEmbedUnimplementedQuoteServiceServer() {}

// RegisterQuoteServiceServer registers the QuoteServiceServer with the gRPC server.
func RegisterQuoteServiceServer(s *grpclib.Server, srv QuoteServiceServer) {
	s.RegisterService(&_QuoteService_serviceDesc, srv)
}

var _QuoteService_serviceDesc = grpclib.ServiceDesc{ //nolint:revive
	ServiceName: "premia.v1.QuoteService",
	HandlerType: (*QuoteServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "RequestQuote", Handler: _QuoteService_RequestQuote_Handler},
		{MethodName: "GetModelReport", Handler: _QuoteService_GetModelReport_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _QuoteService_RequestQuote_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) { //nolint:revive,errcheck // gRPC handler registration
	in := new(RequestQuoteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(QuoteServiceServer).RequestQuote(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/premia.v1.QuoteService/RequestQuote",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(QuoteServiceServer).RequestQuote(ctx, req.(*RequestQuoteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _QuoteService_GetModelReport_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) { //nolint:revive,errcheck // gRPC handler registration
	in := new(GetModelReportRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(QuoteServiceServer).GetModelReport(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/premia.v1.QuoteService/GetModelReport",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(QuoteServiceServer).GetModelReport(ctx, req.(*GetModelReportRequest))
	}
	return interceptor(ctx, in, info, handler)
}
