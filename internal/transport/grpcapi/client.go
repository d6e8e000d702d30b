package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client calls the OddsTable service.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Evaluate fetches the display table for hits.
func (c *Client) Evaluate(ctx context.Context, hits int32, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, EvaluateMethod, wrapperspb.Int32(hits), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Simulate runs the Monte Carlo cross-check. A nil seed uses the server's
// crypto source.
func (c *Client) Simulate(ctx context.Context, hits, runs int, seed *uint64, opts ...grpc.CallOption) (*structpb.Struct, error) {
	fields := map[string]any{"hits": hits, "runs": runs}
	if seed != nil {
		fields["seed"] = *seed
	}
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, SimulateMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
