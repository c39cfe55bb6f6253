package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name. Messages are protobuf
// well-known types, so no generated code is needed on either side.
const ServiceName = "decisions.v1.DecisionQuery"

// ProtoFile is the descriptor path the service is registered under, so that
// server reflection can describe it.
const ProtoFile = "decisions/v1/decisions.proto"

const (
	methodGetDecision     = "/" + ServiceName + "/GetDecision"
	methodSampleDecisions = "/" + ServiceName + "/SampleDecisions"
	methodReply           = "/" + ServiceName + "/Reply"
)

// DecisionQueryServer is the server API for the DecisionQuery service.
type DecisionQueryServer interface {
	GetDecision(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	SampleDecisions(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	Reply(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
}

func RegisterDecisionQueryServer(s grpc.ServiceRegistrar, srv DecisionQueryServer) {
	s.RegisterService(&DecisionQueryServiceDesc, srv)
}

var DecisionQueryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DecisionQueryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetDecision", Handler: getDecisionHandler},
		{MethodName: "SampleDecisions", Handler: sampleDecisionsHandler},
		{MethodName: "Reply", Handler: replyHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: ProtoFile,
}

func init() {
	if err := registerFileDescriptor(); err != nil {
		panic(err)
	}
}

// registerFileDescriptor adds the service definition to the global protobuf
// registry. It stands in for the descriptor protoc would have generated.
func registerFileDescriptor() error {
	method := func(name, in, out string) *descriptorpb.MethodDescriptorProto {
		return &descriptorpb.MethodDescriptorProto{
			Name:       proto.String(name),
			InputType:  proto.String(in),
			OutputType: proto.String(out),
		}
	}
	fdp := &descriptorpb.FileDescriptorProto{
		Name:    proto.String(ProtoFile),
		Package: proto.String("decisions.v1"),
		Syntax:  proto.String("proto3"),
		Dependency: []string{
			"google/protobuf/empty.proto",
			"google/protobuf/struct.proto",
			"google/protobuf/wrappers.proto",
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("DecisionQuery"),
			Method: []*descriptorpb.MethodDescriptorProto{
				method("GetDecision", ".google.protobuf.Int64Value", ".google.protobuf.Struct"),
				method("SampleDecisions", ".google.protobuf.Empty", ".google.protobuf.ListValue"),
				method("Reply", ".google.protobuf.StringValue", ".google.protobuf.StringValue"),
			},
		}},
	}
	fd, err := protodesc.NewFile(fdp, protoregistry.GlobalFiles)
	if err != nil {
		return err
	}
	return protoregistry.GlobalFiles.RegisterFile(fd)
}

func getDecisionHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DecisionQueryServer).GetDecision(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetDecision}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DecisionQueryServer).GetDecision(ctx, req.(*wrapperspb.Int64Value))
	}
	return interceptor(ctx, in, info, handler)
}

func sampleDecisionsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DecisionQueryServer).SampleDecisions(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodSampleDecisions}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DecisionQueryServer).SampleDecisions(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func replyHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DecisionQueryServer).Reply(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodReply}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DecisionQueryServer).Reply(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}
