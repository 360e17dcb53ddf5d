package relay

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nelhage/santorini/ai"
	"github.com/nelhage/santorini/referee"
	"github.com/nelhage/santorini/santest"
	"github.com/nelhage/santorini/santorini"
)

func newHub(t *testing.T) (*Hub, string) {
	hub := NewHub(HubConfig{Handshake: time.Second})
	srv := httptest.NewServer(hub)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

// join connects p to the hub and returns the hub's proxy for it.
func join(t *testing.T, ctx context.Context, hub *Hub, base string, p ai.Player) *Proxy {
	conn, err := Dial(ctx, base, p.Name())
	require.NoError(t, err)
	go Serve(ctx, conn, p, ClientConfig{})
	proxy, err := hub.Accept(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { proxy.Close() })
	return proxy
}

func TestProxyCalls(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub, base := newHub(t)
	remote := ai.NewStayAlive(ai.StayAliveConfig{Name: "remote", Priority: 7, Depth: 1})
	p := join(t, ctx, hub, base, remote)

	assert.Equal(t, "remote", p.Name())
	assert.Equal(t, 7, p.Priority())

	b := santest.Board(
		"0two1 0 0",
		"0 0 0",
		"0 0 0remote1",
	)
	r, c, err := p.PlaceWorker(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, [2]int{0, 1}, [2]int{r, c})

	want, err := remote.GetTurn(ctx, b)
	require.NoError(t, err)
	got, err := p.GetTurn(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	assert.NoError(t, p.GameOver(ctx, santorini.Result{Winner: "remote", Loser: "two"}))
}

func TestRemoteGame(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub, base := newHub(t)
	p := join(t, ctx, hub, base, ai.NewRandom("remote", 9))

	cfg := referee.Config{Board: santorini.Config{Rows: 4, Cols: 4}}
	r, err := referee.Play(ctx, cfg, p, ai.NewRandom("local", 10))
	require.NoError(t, err)
	assert.False(t, r.LoserCheated)
	assert.Contains(t, []string{"remote", "local"}, r.Winner)
}

func TestRemoteErrorForfeits(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub, base := newHub(t)
	cheat := &ai.Breaker{Player: ai.NewRandom("remote", 1), Kind: ai.BreakError}
	p := join(t, ctx, hub, base, cheat)

	_, _, err := p.PlaceWorker(ctx, santorini.New(santorini.Config{}))
	assert.ErrorIs(t, err, ErrRemote)

	r, err := referee.Play(ctx, referee.Config{}, ai.NewRandom("local", 2), p)
	require.NoError(t, err)
	assert.Equal(t, "local", r.Winner)
	assert.True(t, r.LoserCheated)
}

type stall struct{ ai.Player }

func (s stall) GetTurn(ctx context.Context, b *santorini.Board) (santorini.Turn, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestProxyDeadline(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub, base := newHub(t)
	p := join(t, ctx, hub, base, stall{ai.NewRandom("remote", 1)})

	tctx, tcancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer tcancel()
	_, err := p.GetTurn(tctx, santest.Board("0remote1 0"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, _, err = p.PlaceWorker(ctx, santest.Board("0remote1 0"))
	assert.Error(t, err, "proxy is closed after a transport failure")
}

func TestJoinNames(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub, base := newHub(t)

	_, err := Dial(ctx, base, "p1")
	assert.Error(t, err)

	p := join(t, ctx, hub, base, ai.NewRandom("dup", 1))
	_, err = Dial(ctx, base, "Dup")
	assert.Error(t, err)

	require.NoError(t, p.Close())
	join(t, ctx, hub, base, ai.NewRandom("dup", 2))
}

func TestAcceptClosed(t *testing.T) {
	hub, _ := newHub(t)
	hub.Close()
	_, err := hub.Accept(context.Background())
	assert.ErrorIs(t, err, ErrHubClosed)

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	_, err = NewHub(HubConfig{}).Accept(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
