// Package telemetry announces a running node to the telemetry servers listed in
// its chain spec.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Siasom1/shinde-chain/chainspec"
	"github.com/Siasom1/shinde-chain/core/types"
	"github.com/Siasom1/shinde-chain/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Message verbosity levels. An endpoint receives every message whose level is at
// most its configured verbosity.
const (
	VerbosityInfo  uint8 = 0
	VerbosityDebug uint8 = 1
)

const writeTimeout = 5 * time.Second

// ErrNoEndpoints is returned by Connect when no endpoint could be reached.
var ErrNoEndpoints = errors.New("telemetry: no endpoint reachable")

// NodeInfo is the identity reported in system.connected.
type NodeInfo struct {
	Name           string
	Chain          string
	GenesisHash    string
	Implementation string
	Version        string
}

// Envelope is one telemetry message on the wire.
type Envelope struct {
	Ts      string      `json:"ts"`
	Level   uint8       `json:"level"`
	Payload interface{} `json:"payload"`
}

type connectedPayload struct {
	Msg            string `json:"msg"`
	Name           string `json:"name"`
	Chain          string `json:"chain"`
	GenesisHash    string `json:"genesis_hash"`
	Implementation string `json:"implementation"`
	Version        string `json:"version"`
	NetworkID      string `json:"network_id"`
	StartupTime    string `json:"startup_time"`
}

type blockImportPayload struct {
	Msg    string `json:"msg"`
	Best   string `json:"best"`
	Height uint64 `json:"height"`
}

type endpointConn struct {
	endpoint chainspec.TelemetryEndpoint
	conn     *websocket.Conn
}

// Client holds one websocket per reachable endpoint.
type Client struct {
	endpoints chainspec.TelemetryEndpoints
	info      NodeInfo
	sessionID string
	started   time.Time
	dialer    *websocket.Dialer
	logger    *log.Logger

	mu    sync.Mutex
	conns []*endpointConn
}

func NewClient(endpoints chainspec.TelemetryEndpoints, info NodeInfo, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Client{
		endpoints: append(chainspec.TelemetryEndpoints(nil), endpoints...),
		info:      info,
		sessionID: uuid.NewString(),
		started:   time.Now(),
		dialer:    websocket.DefaultDialer,
		logger:    logger.Named("telemetry"),
	}
}

// SessionID identifies this node run across all endpoints.
func (c *Client) SessionID() string {
	return c.sessionID
}

// Connect dials every endpoint and sends system.connected. Unreachable endpoints
// are logged and skipped; ErrNoEndpoints is returned only if none succeeded.
func (c *Client) Connect(ctx context.Context) error {
	if len(c.endpoints) == 0 {
		return nil
	}

	for _, ep := range c.endpoints {
		conn, _, err := c.dialer.DialContext(ctx, ep.URL, nil)
		if err != nil {
			c.logger.Warn("dial failed", zap.String("url", ep.URL), zap.Error(err))
			continue
		}
		c.mu.Lock()
		c.conns = append(c.conns, &endpointConn{endpoint: ep, conn: conn})
		c.mu.Unlock()
		c.logger.Debug("connected", zap.String("url", ep.URL), zap.Uint8("verbosity", ep.Verbosity))
	}

	if c.Connections() == 0 {
		return ErrNoEndpoints
	}
	return c.Send(VerbosityInfo, c.connectedPayload())
}

func (c *Client) connectedPayload() connectedPayload {
	return connectedPayload{
		Msg:            "system.connected",
		Name:           c.info.Name,
		Chain:          c.info.Chain,
		GenesisHash:    c.info.GenesisHash,
		Implementation: c.info.Implementation,
		Version:        c.info.Version,
		NetworkID:      c.sessionID,
		StartupTime:    fmt.Sprintf("%d", c.started.UnixMilli()),
	}
}

// Connections is the number of open endpoint connections.
func (c *Client) Connections() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.conns)
}

// Send writes payload to every endpoint whose verbosity admits level. A failed
// endpoint is dropped.
func (c *Client) Send(level uint8, payload interface{}) error {
	env := Envelope{
		Ts:      time.Now().UTC().Format(time.RFC3339Nano),
		Level:   level,
		Payload: payload,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	kept := c.conns[:0]
	for _, ec := range c.conns {
		if level > ec.endpoint.Verbosity {
			kept = append(kept, ec)
			continue
		}
		ec.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := ec.conn.WriteJSON(env); err != nil {
			c.logger.Warn("send failed", zap.String("url", ec.endpoint.URL), zap.Error(err))
			ec.conn.Close()
			errs = append(errs, fmt.Errorf("%s: %w", ec.endpoint.URL, err))
			continue
		}
		kept = append(kept, ec)
	}
	c.conns = kept
	return errors.Join(errs...)
}

// Run reports every block from blocks as block.import until ctx ends or blocks
// closes.
func (c *Client) Run(ctx context.Context, blocks <-chan *types.Block) {
	for {
		select {
		case <-ctx.Done():
			return
		case b, ok := <-blocks:
			if !ok {
				return
			}
			err := c.Send(VerbosityInfo, blockImportPayload{
				Msg:    "block.import",
				Best:   b.Hash().Hex(),
				Height: b.Number(),
			})
			if err != nil {
				c.logger.Debug("block.import not delivered", zap.Error(err))
			}
		}
	}
}

// Close closes every connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	for _, ec := range c.conns {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		ec.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		if err := ec.conn.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.conns = nil
	return errors.Join(errs...)
}
