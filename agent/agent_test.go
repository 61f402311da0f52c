package agent

import (
	"context"
	"encoding/json"
	"net"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nstehr/quartermaster/ipc"
	"github.com/nstehr/quartermaster/loadout"
	"github.com/nstehr/quartermaster/munitions"
)

func startAgent(t *testing.T) net.Conn {
	t.Helper()
	server, client := net.Pipe()
	cat := munitions.DefaultCatalog()
	c := ipc.NewConnection(server, nil)
	a := New(c, loadout.NewEngine(cat, nil), cat)
	a.Register()

	ctx, cancel := context.WithCancel(context.Background())
	go c.ReadLoop(ctx)
	t.Cleanup(func() {
		cancel()
		client.Close()
	})
	return client
}

func roundTrip(t *testing.T, conn net.Conn, msgType string, data any) ipc.Envelope {
	t.Helper()
	env, err := ipc.NewEnvelope(msgType, data)
	require.NoError(t, err)
	require.NoError(t, ipc.WriteEnvelope(conn, env))
	resp, err := ipc.ReadEnvelope(conn)
	require.NoError(t, err)
	return resp
}

func skirmish(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../scenario/testdata/skirmish.yaml")
	require.NoError(t, err)
	return string(data)
}

func TestHello(t *testing.T) {
	conn := startAgent(t)
	resp := roundTrip(t, conn, ipc.TypeHello, ipc.HelloMessage{Client: "host", Version: ipc.ProtocolVersion})
	require.Equal(t, ipc.TypeAck, resp.Type)

	var ack ipc.AckMessage
	require.NoError(t, json.Unmarshal(resp.Data, &ack))
	assert.Equal(t, "ok", ack.Status)
	assert.Equal(t, ipc.ProtocolVersion, ack.Version)
}

func TestReconfigure(t *testing.T) {
	conn := startAgent(t)
	resp := roundTrip(t, conn, ipc.TypeReconfigure, ipc.ReconfigureMessage{
		ID: "req-1", Team: "Lyran Guard", Scenario: skirmish(t), Seed: 11,
	})
	require.Equal(t, ipc.TypeLoadout, resp.Type, string(resp.Data))

	var msg ipc.LoadoutMessage
	require.NoError(t, json.Unmarshal(resp.Data, &msg))
	require.NotNil(t, msg.Result)
	assert.Equal(t, "req-1", msg.Result.RequestID)
	assert.Equal(t, int64(11), msg.Result.Seed)
	assert.Len(t, msg.Result.Units, 3)
}

func TestReconfigureErrors(t *testing.T) {
	conn := startAgent(t)

	resp := roundTrip(t, conn, ipc.TypeReconfigure, ipc.ReconfigureMessage{ID: "bad", Team: "x", Scenario: "year: 3050\n"})
	require.Equal(t, ipc.TypeError, resp.Type)
	var em ipc.ErrorMessage
	require.NoError(t, json.Unmarshal(resp.Data, &em))
	assert.Equal(t, "bad", em.ID)
	assert.NotEmpty(t, em.Problems)

	resp = roundTrip(t, conn, ipc.TypeReconfigure, ipc.ReconfigureMessage{ID: "who", Team: "Nobody", Scenario: skirmish(t)})
	require.Equal(t, ipc.TypeError, resp.Type)
	em = ipc.ErrorMessage{}
	require.NoError(t, json.Unmarshal(resp.Data, &em))
	assert.Contains(t, em.Message, "unknown team")

	resp = roundTrip(t, conn, ipc.TypeReconfigure, json.RawMessage(`"not an object"`))
	assert.Equal(t, ipc.TypeError, resp.Type)
}
