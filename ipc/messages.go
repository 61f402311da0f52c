package ipc

import "github.com/nstehr/quartermaster/loadout"

// Message types exchanged with a host game.
const (
	TypeHello       = "hello"
	TypeAck         = "ack"
	TypeReconfigure = "reconfigure"
	TypeLoadout     = "loadout"
	TypeError       = "error"
)

// ProtocolVersion is reported in the ack so hosts can refuse a mismatched engine.
const ProtocolVersion = 1

type HelloMessage struct {
	Client  string `json:"client"`
	Version int    `json:"version,omitempty"`
}

type AckMessage struct {
	Status  string `json:"status"`
	Version int    `json:"version"`
}

// ReconfigureMessage asks for one team's loadout. Scenario is a scenario
// document in YAML (or JSON, which YAML accepts).
type ReconfigureMessage struct {
	ID           string  `json:"id,omitempty"`
	Team         string  `json:"team"`
	Scenario     string  `json:"scenario"`
	Seed         int64   `json:"seed,omitempty"`
	FillRatio    float64 `json:"fill_ratio,omitempty"`
	RandomizeAll bool    `json:"randomize_all,omitempty"`
	SkipBombs    bool    `json:"skip_bombs,omitempty"`
}

// LoadoutMessage answers a reconfigure request.
type LoadoutMessage struct {
	Result *loadout.Result `json:"result"`
}

// ErrorMessage reports a request that could not be served. Problems carries
// scenario validation findings when there are any.
type ErrorMessage struct {
	ID       string   `json:"id,omitempty"`
	Message  string   `json:"message"`
	Problems []string `json:"problems,omitempty"`
}
