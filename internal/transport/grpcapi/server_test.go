package grpcapi

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/particle-odds/internal/config"
	"github.com/xtding233/particle-odds/internal/service"
)

func startServer(t *testing.T) *grpc.ClientConn {
	t.Helper()
	cfg, err := config.LoadFile("")
	if err != nil {
		t.Fatal(err)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	lis := bufconn.Listen(1 << 20)
	srv := NewServer(lis, service.New(cfg, log), log)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("serve: %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Errorf("server did not stop")
		}
	})
	return conn
}

func cell(t *testing.T, s *structpb.Struct, rank, rate int) map[string]any {
	t.Helper()
	rows := s.AsMap()["cells"].([]any)
	return rows[rank].([]any)[rate].(map[string]any)
}

func TestEvaluate(t *testing.T) {
	c := NewClient(startServer(t))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out, err := c.Evaluate(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	if hits := out.GetFields()["hits"].GetNumberValue(); hits != 5 {
		t.Fatalf("hits=%v", hits)
	}
	got := cell(t, out, 2, 4)
	if got["text"] != "92.2%" || got["highlight"] != true {
		t.Fatalf("R3 50%%: %v", got)
	}
}

func TestEvaluateInvalidArgument(t *testing.T) {
	c := NewClient(startServer(t))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, hits := range []int32{0, -2, 21} {
		_, err := c.Evaluate(ctx, hits)
		if status.Code(err) != codes.InvalidArgument {
			t.Fatalf("hits=%d: want InvalidArgument, got %v", hits, err)
		}
	}
}

func TestSimulate(t *testing.T) {
	c := NewClient(startServer(t))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	seed := uint64(5)
	out, err := c.Simulate(ctx, 4, 300, &seed)
	if err != nil {
		t.Fatal(err)
	}
	if runs := out.GetFields()["runs"].GetNumberValue(); runs != 300 {
		t.Fatalf("runs=%v", runs)
	}
	if got := cell(t, out, 4, 9); got["percent"] != 100.0 {
		t.Fatalf("R5 100%%: %v", got)
	}

	if _, err := c.Simulate(ctx, 4, 0, nil); status.Code(err) != codes.InvalidArgument {
		t.Fatalf("runs=0: want InvalidArgument, got %v", err)
	}
}

func TestSimulateRejectsNonInteger(t *testing.T) {
	conn := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	in, err := structpb.NewStruct(map[string]any{"hits": 2.5})
	if err != nil {
		t.Fatal(err)
	}
	err = conn.Invoke(ctx, SimulateMethod, in, new(structpb.Struct))
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("want InvalidArgument, got %v", err)
	}
}

func TestHealth(t *testing.T) {
	conn := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		t.Fatal(err)
	}
	if resp.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
		t.Fatalf("status=%v", resp.GetStatus())
	}
}
