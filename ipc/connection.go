package ipc

import (
	"context"
	"fmt"
	"log/slog"
	"net"
)

// Handler processes a received envelope. Return nil to send no reply; a
// returned error is answered with an error message.
type Handler func(ctx context.Context, env Envelope) (*Envelope, error)

// Connection is one host game talking to the engine. Client is set by the
// hello handshake.
type Connection struct {
	conn     net.Conn
	handlers map[string]Handler
	Client   string
}

func NewConnection(conn net.Conn, handlers map[string]Handler) *Connection {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}
	return &Connection{conn: conn, handlers: handlers}
}

func (c *Connection) RegisterHandler(msgType string, handler Handler) {
	c.handlers[msgType] = handler
}

func (c *Connection) Send(msgType string, data any) error {
	env, err := NewEnvelope(msgType, data)
	if err != nil {
		return err
	}
	return WriteEnvelope(c.conn, env)
}

// dispatch routes env to its handler and turns every failure into an error
// reply, so the host always hears back about a request it sent.
func (c *Connection) dispatch(ctx context.Context, env Envelope) *Envelope {
	handler, ok := c.handlers[env.Type]
	if !ok {
		return errorReply(fmt.Errorf("unknown message type %q", env.Type))
	}
	resp, err := handler(ctx, env)
	if err != nil {
		slog.Error("handler error", "type", env.Type, "client", c.Client, "error", err)
		return errorReply(err)
	}
	return resp
}

func errorReply(err error) *Envelope {
	env, mErr := NewEnvelope(TypeError, ErrorMessage{Message: err.Error()})
	if mErr != nil {
		return nil
	}
	return &env
}

// ReadLoop serves requests one at a time until the connection closes or ctx
// ends, then closes the connection. Replies keep request order.
func (c *Connection) ReadLoop(ctx context.Context) {
	defer c.conn.Close()
	stop := context.AfterFunc(ctx, func() { c.conn.Close() })
	defer stop()

	for {
		env, err := ReadEnvelope(c.conn)
		if err != nil {
			slog.Info("connection read ended", "client", c.Client, "error", err)
			return
		}
		resp := c.dispatch(ctx, env)
		if resp == nil {
			continue
		}
		if err := WriteEnvelope(c.conn, *resp); err != nil {
			slog.Error("failed to send response", "type", resp.Type, "error", err)
			return
		}
		slog.Debug("sent response", "type", resp.Type, "client", c.Client)
	}
}
