// Package agent serves reconfiguration requests arriving over ipc.
package agent

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nstehr/quartermaster/config"
	"github.com/nstehr/quartermaster/imperative"
	"github.com/nstehr/quartermaster/ipc"
	"github.com/nstehr/quartermaster/loadout"
	"github.com/nstehr/quartermaster/munitions"
	"github.com/nstehr/quartermaster/scenario"
)

// Agent owns one host connection. Engine, Catalog, Presets and Tuning are
// shared read-only across connections.
type Agent struct {
	Conn    *ipc.Connection
	Client  string
	Engine  *loadout.Engine
	Catalog *munitions.Catalog
	Presets *imperative.Tree
	Tuning  *config.Tuning
}

func New(conn *ipc.Connection, engine *loadout.Engine, cat *munitions.Catalog) *Agent {
	return &Agent{Conn: conn, Engine: engine, Catalog: cat}
}

// Register installs the agent's handlers on its connection.
func (a *Agent) Register() {
	a.Conn.RegisterHandler(ipc.TypeHello, a.HandleHello)
	a.Conn.RegisterHandler(ipc.TypeReconfigure, a.HandleReconfigure)
}

// HandleHello completes the handshake so the host knows the engine is ready.
func (a *Agent) HandleHello(_ context.Context, env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := env.Decode(&hello); err != nil {
		return nil, err
	}

	a.Client = hello.Client
	if a.Conn != nil {
		a.Conn.Client = hello.Client
	}
	slog.Info("client identified", "client", a.Client, "version", hello.Version)
	if hello.Version != 0 && hello.Version != ipc.ProtocolVersion {
		slog.Warn("protocol version mismatch", "client", a.Client, "theirs", hello.Version, "ours", ipc.ProtocolVersion)
	}

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok", Version: ipc.ProtocolVersion})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

// HandleReconfigure parses the carried scenario, runs one request and replies
// with the loadout. Bad scenarios and unknown teams get an error reply.
func (a *Agent) HandleReconfigure(ctx context.Context, env ipc.Envelope) (*ipc.Envelope, error) {
	var msg ipc.ReconfigureMessage
	if err := env.Decode(&msg); err != nil {
		return nil, err
	}

	session, err := scenario.Parse([]byte(msg.Scenario), a.Catalog)
	if err != nil {
		var ie *scenario.InvalidError
		if errors.As(err, &ie) {
			slog.Warn("rejected scenario", "client", a.Client, "request", msg.ID, "problems", len(ie.Problems))
			return a.reply(ipc.TypeError, ipc.ErrorMessage{ID: msg.ID, Message: "invalid scenario", Problems: ie.Problems})
		}
		return nil, err
	}

	res, err := a.Engine.Reconfigure(ctx, loadout.Request{
		ID:           msg.ID,
		Session:      session,
		Team:         msg.Team,
		Seed:         msg.Seed,
		FillRatio:    msg.FillRatio,
		RandomizeAll: msg.RandomizeAll,
		SkipBombs:    msg.SkipBombs,
		Presets:      a.Presets,
		Tuning:       a.Tuning,
	})
	if err != nil {
		if errors.Is(err, loadout.ErrUnknownTeam) {
			return a.reply(ipc.TypeError, ipc.ErrorMessage{ID: msg.ID, Message: err.Error()})
		}
		return nil, err
	}

	slog.Info("loadout generated", "client", a.Client, "request", res.RequestID, "team", res.Team, "units", len(res.Units))
	return a.reply(ipc.TypeLoadout, ipc.LoadoutMessage{Result: res})
}

func (a *Agent) reply(msgType string, data any) (*ipc.Envelope, error) {
	env, err := ipc.NewEnvelope(msgType, data)
	if err != nil {
		return nil, err
	}
	return &env, nil
}
