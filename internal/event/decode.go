package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload decodes an event payload into T via type assertion then JSON fallback.
// In-process MemoryBus payloads are already the typed struct; anything else goes
// through a JSON round-trip.
func DecodePayload[T any](input interface{}) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}
	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, fmt.Errorf("encode payload: %w", err)
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("decode payload into %T: %w", result, err)
	}
	return result, nil
}
