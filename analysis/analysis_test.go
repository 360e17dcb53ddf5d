package analysis

import (
	"context"
	"net"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/nelhage/santorini/santest"
	"github.com/nelhage/santorini/wire"
)

func dial(t *testing.T) *Client {
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer(grpc.UnaryInterceptor(LogUnary(zerolog.Nop())))
	Register(s, &Server{MaxDepth: 2})
	go s.Serve(lis)
	t.Cleanup(s.Stop)

	cc, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { cc.Close() })
	return NewClient(cc)
}

var danger = wire.EncodeBoard(santest.Board(
	"2two1 3 0",
	"0 0 0",
	"0one1 0 0",
))

func TestCheckTurn(t *testing.T) {
	c := dial(t)
	ctx := context.Background()

	resp, err := c.CheckTurn(ctx, &CheckTurnRequest{
		Board:  danger,
		Player: "two",
		Turn:   []string{"two1", "EAST", "PUT"},
	})
	require.NoError(t, err)
	assert.True(t, resp.Legal)
	assert.True(t, resp.Won)

	resp, err = c.CheckTurn(ctx, &CheckTurnRequest{
		Board:  danger,
		Player: "one",
		Turn:   []string{"two1", "EAST", "PUT"},
	})
	require.NoError(t, err)
	assert.False(t, resp.Legal)
	assert.NotEmpty(t, resp.Reason)

	_, err = c.CheckTurn(ctx, &CheckTurnRequest{
		Board:  danger,
		Player: "one",
		Turn:   []string{"one1", "UP", "DOWN"},
	})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestLegalTurns(t *testing.T) {
	c := dial(t)
	resp, err := c.LegalTurns(context.Background(), &LegalTurnsRequest{
		Board:  danger,
		Player: "one",
	})
	require.NoError(t, err)
	assert.False(t, resp.Lost)
	require.NotEmpty(t, resp.Turns)
	assert.Equal(t, []string{"one1", "PUT", "NORTH", "EAST", "NORTH"}, resp.Turns[0])

	resp, err = c.LegalTurns(context.Background(), &LegalTurnsRequest{
		Board:  danger,
		Player: "nobody",
	})
	require.NoError(t, err)
	assert.True(t, resp.Lost)
	assert.Empty(t, resp.Turns)
}

func TestScore(t *testing.T) {
	c := dial(t)
	ctx := context.Background()
	for _, minimax := range []bool{false, true} {
		resp, err := c.Score(ctx, &ScoreRequest{
			Board:   danger,
			Turn:    []string{"one1", "PUT", "NORTH", "EAST", "NORTH"},
			Depth:   1,
			Minimax: minimax,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Score)
		assert.NotZero(t, resp.Visited)

		resp, err = c.Score(ctx, &ScoreRequest{
			Board:   danger,
			Turn:    []string{"one1", "EAST", "PUT", "PUT", "NORTH"},
			Depth:   1,
			Minimax: minimax,
		})
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Score)
	}

	_, err := c.Score(ctx, &ScoreRequest{
		Board: danger,
		Turn:  []string{"one1", "PUT", "NORTH", "EAST", "NORTH"},
		Depth: 9,
	})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = c.Score(ctx, &ScoreRequest{
		Board: wire.Board{},
		Turn:  []string{"one1", "PUT", "NORTH"},
		Depth: 1,
	})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
