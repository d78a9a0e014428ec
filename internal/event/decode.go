package event

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrPayloadMismatch is returned when a payload cannot be read as the requested type
var ErrPayloadMismatch = errors.New("event payload does not match expected type")

// DecodePayload reads a game event payload as T.
//
// Events published in-process carry T or *T. Events replayed from the dead-letter
// file carry decoded JSON (maps) or raw bytes, which are converted through JSON.
func DecodePayload[T any](input any) (T, error) {
	var result T
	if v, ok := input.(T); ok {
		return v, nil
	}
	if p, ok := input.(*T); ok {
		if p == nil {
			return result, fmt.Errorf("%w: nil %T", ErrPayloadMismatch, input)
		}
		return *p, nil
	}

	var data []byte
	switch v := input.(type) {
	case nil:
		return result, fmt.Errorf("%w: missing payload for %T", ErrPayloadMismatch, result)
	case json.RawMessage:
		data = v
	case []byte:
		data = v
	default:
		var err error
		if data, err = json.Marshal(input); err != nil {
			return result, fmt.Errorf("%w: %T: %v", ErrPayloadMismatch, input, err)
		}
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("%w: %T into %T: %v", ErrPayloadMismatch, input, result, err)
	}
	return result, nil
}
