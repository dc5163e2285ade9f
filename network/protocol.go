package network

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lixenwraith/skirmish/world"
)

// Event names carried in the envelope
const (
	// Server → client
	EventPlayerID  = "player_id"
	EventGameState = "game_state"
	EventDevData   = "dev_data"
	EventPong      = "pong"

	// Client → server
	EventPing        = "ping"
	EventSpawnTroops = "spawn_troops"
	EventMoveTroops  = "move_troops"

	// Lifecycle, produced locally by the transport, never on the wire
	EventConnect    = "connect"
	EventDisconnect = "disconnect"
)

// ErrMalformedFrame wraps every envelope decode failure
var ErrMalformedFrame = errors.New("malformed frame")

// Envelope is one websocket text frame: {"event": name, "data": payload}
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Encode marshals a payload into an envelope frame; nil payload omits data
func Encode(event string, payload any) ([]byte, error) {
	env := Envelope{Event: event}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", event, err)
		}
		env.Data = data
	}
	return json.Marshal(env)
}

// DecodeEnvelope parses a frame, leaving the payload raw
func DecodeEnvelope(frame []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	if env.Event == "" {
		return Envelope{}, fmt.Errorf("%w: missing event name", ErrMalformedFrame)
	}
	return env, nil
}

// DecodePayload unmarshals the envelope data into T
func DecodePayload[T any](env Envelope) (T, error) {
	var v T
	if len(env.Data) == 0 {
		return v, fmt.Errorf("%w: %s without data", ErrMalformedFrame, env.Event)
	}
	if err := json.Unmarshal(env.Data, &v); err != nil {
		return v, fmt.Errorf("%w: %s: %v", ErrMalformedFrame, env.Event, err)
	}
	return v, nil
}

// EventFor maps an outbound intent to its event name
func EventFor(intent world.Intent) (string, error) {
	switch intent.(type) {
	case world.SpawnIntent, *world.SpawnIntent:
		return EventSpawnTroops, nil
	case world.MoveIntent, *world.MoveIntent:
		return EventMoveTroops, nil
	}
	return "", fmt.Errorf("unsupported intent %T", intent)
}
