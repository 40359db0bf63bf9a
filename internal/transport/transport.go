// Package transport wraps a remote game server connection behind a small
// GameServerClient interface, exactly the two operations the rest of the
// bot needs: starting a game and submitting one tick's actions.
//
// Grounded on turnforge-weewar's services/connectclient package (thin
// wrapper struct implementing a service interface, context-first methods
// delegating straight to a generated client) and
// original_source/src/swoq.rs's GameConnection/Game split (start/act,
// QuestQueued retry loop, typed start-failure error). The wire transport
// itself is a websocket rather than a generated gRPC/Connect client,
// since the protobuf-generated service stubs swoq.rs depends on were not
// part of the retrieval pack (see DESIGN.md).
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rcaelers/swoqbot/internal/model"
)

// ErrTransport covers connection-level failures: dial errors, read/write
// errors on an established socket, and unexpected disconnects.
var ErrTransport = errors.New("transport error")

// ErrStartFailed covers a non-Ok, non-QuestQueued start result, wrapping
// the server's reported StartResult string.
var ErrStartFailed = errors.New("start failed")

// ErrActionRejected covers a non-Ok act result returned by the server for
// a submitted action.
var ErrActionRejected = errors.New("action rejected")

// StartRequest is the outbound payload for starting a game.
type StartRequest struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Level    *int   `json:"level,omitempty"`
	Seed     *int64 `json:"seed,omitempty"`
}

// StartResponse is the server's reply to a start request.
type StartResponse struct {
	Result          string    `json:"result"`
	GameID          string    `json:"game_id"`
	MapWidth        int       `json:"map_width"`
	MapHeight       int       `json:"map_height"`
	VisibilityRange int       `json:"visibility_range"`
	Seed            int64     `json:"seed"`
	State           WireState `json:"state"`
}

// WirePlayer is one player's fields as reported over the wire.
type WirePlayer struct {
	X            int   `json:"x"`
	Y            int   `json:"y"`
	Health       int   `json:"health"`
	Inventory    int   `json:"inventory"`
	HasSword     bool  `json:"has_sword"`
	IsActive     bool  `json:"is_active"`
	Surroundings []int `json:"surroundings"`
}

// WireState is the per-tick server state shared by start and act
// responses.
type WireState struct {
	Tick    int          `json:"tick"`
	Level   int          `json:"level"`
	Status  string       `json:"status"`
	Players []WirePlayer `json:"players"`
}

// ActRequest is the outbound payload for one tick's actions. Action2 is
// nil outside two-player levels.
type ActRequest struct {
	GameID  string `json:"game_id"`
	Action  int    `json:"action"`
	Action2 *int   `json:"action2,omitempty"`
}

// ActResponse is the server's reply to an act request.
type ActResponse struct {
	Result string    `json:"result"`
	State  WireState `json:"state"`
}

// GameServerClient is the boundary between the game loop and whatever
// transport actually talks to the server.
type GameServerClient interface {
	Start(ctx context.Context, req StartRequest) (StartResponse, error)
	Act(ctx context.Context, gameID string, action model.Action, action2 *model.Action) (ActResponse, error)
	Close() error
}

// startRetryDelay is how long to wait between start attempts while the
// server reports the quest as queued.
const startRetryDelay = 500 * time.Millisecond

// WebsocketGameServerClient implements GameServerClient over a single
// gorilla/websocket connection, one game per connection.
type WebsocketGameServerClient struct {
	conn *websocket.Conn
}

// Dial opens a websocket connection to host and returns a client ready to
// call Start.
func Dial(ctx context.Context, host string) (*WebsocketGameServerClient, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, "ws://"+host+"/ws", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %w", ErrTransport, host, err)
	}
	return &WebsocketGameServerClient{conn: conn}, nil
}

type wireEnvelope struct {
	Type string          `json:"type"`
	Body json.RawMessage `json:"body"`
}

// Start sends a start request and retries on a QuestQueued result until
// the server returns Ok or a terminal failure.
func (c *WebsocketGameServerClient) Start(ctx context.Context, req StartRequest) (StartResponse, error) {
	for {
		if err := c.send("start", req); err != nil {
			return StartResponse{}, err
		}
		var resp StartResponse
		if err := c.receive(&resp); err != nil {
			return StartResponse{}, err
		}
		switch resp.Result {
		case "Ok":
			return resp, nil
		case "QuestQueued":
			select {
			case <-ctx.Done():
				return StartResponse{}, fmt.Errorf("%w: %w", ErrTransport, ctx.Err())
			case <-time.After(startRetryDelay):
			}
			continue
		default:
			return StartResponse{}, fmt.Errorf("%w: %s", ErrStartFailed, resp.Result)
		}
	}
}

// Act submits one tick's actions and returns the server's reply. A
// non-Ok result is surfaced as ErrActionRejected but the response state
// is still returned, since the world model still needs to ingest it.
func (c *WebsocketGameServerClient) Act(ctx context.Context, gameID string, action model.Action, action2 *model.Action) (ActResponse, error) {
	req := ActRequest{GameID: gameID, Action: int(action)}
	if action2 != nil {
		v := int(*action2)
		req.Action2 = &v
	}
	if err := c.send("act", req); err != nil {
		return ActResponse{}, err
	}
	var resp ActResponse
	if err := c.receive(&resp); err != nil {
		return ActResponse{}, err
	}
	if resp.Result != "Ok" {
		return resp, fmt.Errorf("%w: %s", ErrActionRejected, resp.Result)
	}
	return resp, nil
}

func (c *WebsocketGameServerClient) send(kind string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrTransport, kind, err)
	}
	env := wireEnvelope{Type: kind, Body: payload}
	if err := c.conn.WriteJSON(env); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrTransport, kind, err)
	}
	return nil
}

func (c *WebsocketGameServerClient) receive(out any) error {
	var env wireEnvelope
	if err := c.conn.ReadJSON(&env); err != nil {
		return fmt.Errorf("%w: read: %w", ErrTransport, err)
	}
	if err := json.Unmarshal(env.Body, out); err != nil {
		return fmt.Errorf("%w: decode %s: %w", ErrTransport, env.Type, err)
	}
	return nil
}

// Close closes the underlying websocket connection.
func (c *WebsocketGameServerClient) Close() error {
	return c.conn.Close()
}
