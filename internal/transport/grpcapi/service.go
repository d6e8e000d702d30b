// Package grpcapi exposes the odds table over gRPC using protobuf
// well-known types as messages.
package grpcapi

import (
	"context"
	"math"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/xtding233/particle-odds/internal/service"
)

const (
	ServiceName = "particleodds.v1.OddsTable"

	EvaluateMethod = "/" + ServiceName + "/Evaluate"
	SimulateMethod = "/" + ServiceName + "/Simulate"

	defaultRuns = 10000
)

// OddsTableServer is the server API for the OddsTable service.
type OddsTableServer interface {
	// Evaluate returns the display table for a hit count.
	Evaluate(context.Context, *wrapperspb.Int32Value) (*structpb.Struct, error)
	// Simulate takes {hits, runs, seed} and returns the Monte Carlo comparison.
	Simulate(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes OddsTable for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OddsTableServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Evaluate", Handler: evaluateHandler},
		{MethodName: "Simulate", Handler: simulateHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "particleodds/v1/odds_table.proto",
}

// RegisterOddsTableServer registers srv on s.
func RegisterOddsTableServer(s grpc.ServiceRegistrar, srv OddsTableServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func evaluateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.Int32Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OddsTableServer).Evaluate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: EvaluateMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OddsTableServer).Evaluate(ctx, req.(*wrapperspb.Int32Value))
	}
	return interceptor(ctx, in, info, handler)
}

func simulateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OddsTableServer).Simulate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SimulateMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OddsTableServer).Simulate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// oddsTable implements OddsTableServer on top of service.Service.
type oddsTable struct {
	svc *service.Service
}

// NewOddsTableServer adapts svc to the gRPC API.
func NewOddsTableServer(svc *service.Service) OddsTableServer {
	return &oddsTable{svc: svc}
}

func (o *oddsTable) Evaluate(ctx context.Context, in *wrapperspb.Int32Value) (*structpb.Struct, error) {
	trials := int(in.GetValue())
	if err := o.svc.CheckTrials(trials); err != nil {
		return nil, toStatus(err)
	}
	d, err := o.svc.Table(trials)
	if err != nil {
		return nil, toStatus(err)
	}
	out, err := structpb.NewStruct(service.NewTableView(d).AsMap())
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode table: %v", err)
	}
	return out, nil
}

func (o *oddsTable) Simulate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	fields := in.GetFields()
	trials := o.svc.Config().DefaultTrials
	if v, ok := fields["hits"]; ok {
		n, err := intField("hits", v)
		if err != nil {
			return nil, err
		}
		trials = n
	}
	if err := o.svc.CheckTrials(trials); err != nil {
		return nil, toStatus(err)
	}
	runs := defaultRuns
	if v, ok := fields["runs"]; ok {
		n, err := intField("runs", v)
		if err != nil {
			return nil, err
		}
		runs = n
	}
	var seed *uint64
	if v, ok := fields["seed"]; ok {
		n, err := intField("seed", v)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, status.Error(codes.InvalidArgument, "seed must be >= 0")
		}
		s := uint64(n)
		seed = &s
	}

	sim, err := o.svc.Simulate(trials, runs, seed)
	if err != nil {
		return nil, toStatus(err)
	}
	out, err := structpb.NewStruct(service.NewSimulationView(sim).AsMap())
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode simulation: %v", err)
	}
	return out, nil
}

// intField reads a whole number from a struct value.
func intField(name string, v *structpb.Value) (int, error) {
	nv, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be a number", name)
	}
	f := nv.NumberValue
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be an integer", name)
	}
	return int(f), nil
}

func toStatus(err error) error {
	if service.IsBadRequest(err) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
