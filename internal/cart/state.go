package cart

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultSlot is the storage slot holding the serialized cart.
const DefaultSlot = "shopnex-cart-storage"

const stateVersion = 0

// ErrMalformedState is returned when a stored cart cannot be decoded.
var ErrMalformedState = errors.New("cart: malformed stored state")

// persistedState is the slot layout: {"state":{"cart":[...]},"version":0}.
type persistedState struct {
	State   *cartState `json:"state"`
	Version *int       `json:"version"`
}

type cartState struct {
	Cart []Line `json:"cart"`
}

// EncodeState serializes the ordered lines into the slot layout.
func EncodeState(lines []Line) ([]byte, error) {
	if lines == nil {
		lines = []Line{}
	}
	version := stateVersion
	return json.Marshal(persistedState{
		State:   &cartState{Cart: lines},
		Version: &version,
	})
}

// DecodeState parses a stored slot value. Blank input is an empty cart.
// Lines that would break the cart invariants (quantity below one, or an id
// already seen earlier in the list) are dropped and counted.
func DecodeState(data []byte) (lines []Line, dropped int, err error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []Line{}, 0, nil
	}

	var stored persistedState
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrMalformedState, err)
	}
	if stored.State == nil {
		return nil, 0, fmt.Errorf("%w: missing state", ErrMalformedState)
	}
	if stored.Version != nil && *stored.Version != stateVersion {
		return nil, 0, fmt.Errorf("%w: unsupported version %d", ErrMalformedState, *stored.Version)
	}

	lines, dropped = normalize(stored.State.Cart)
	return lines, dropped, nil
}

func normalize(in []Line) ([]Line, int) {
	out := make([]Line, 0, len(in))
	seen := make(map[int]struct{}, len(in))
	for _, l := range in {
		if l.Quantity < 1 {
			continue
		}
		if _, dup := seen[l.ID]; dup {
			continue
		}
		seen[l.ID] = struct{}{}
		out = append(out, l)
	}
	return out, len(in) - len(out)
}
