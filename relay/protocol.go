// Package relay lets a player in another process take a seat at the
// board. The hub accepts websocket connections and hands out Proxy
// players; the remote side runs Serve.
//
// Every exchange is one Request from the hub followed by one Response.
package relay

import (
	"errors"

	"github.com/nelhage/santorini/wire"
)

type Op string

const (
	OpPriority Op = "priority"
	OpPlace    Op = "place"
	OpTurn     Op = "turn"
	OpResult   Op = "result"
)

type Request struct {
	Op     Op         `json:"op"`
	Board  wire.Board `json:"board,omitempty"`
	Result []string   `json:"result,omitempty"`
}

type Response struct {
	Priority int      `json:"priority"`
	Place    []int    `json:"place,omitempty"`
	Turn     []string `json:"turn,omitempty"`
	Error    string   `json:"error,omitempty"`
}

var (
	ErrRemote   = errors.New("remote player failed")
	ErrBadReply = errors.New("malformed reply")
	ErrBadOp    = errors.New("unknown op")
)
