package client

import (
	"encoding/json"
	"fmt"
)

// List is a JSON list that accepts every collection shape the clinic API
// returns: a bare array, the paginated {"results": [...]} envelope, and the
// {"success": true, "data": ...} wrapper where data is either of the first
// two. Envelopes may nest, so /queue/current's wrapped status object decodes
// the same way an unwrapped one does.
type List[T any] struct {
	Items []T
}

func (l *List[T]) UnmarshalJSON(data []byte) error {
	var bare []T
	if err := json.Unmarshal(data, &bare); err == nil {
		l.Items = bare
		return nil
	}

	var envelope struct {
		Results []T             `json:"results"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("response is neither an array nor a known envelope: %w", err)
	}
	if envelope.Results != nil {
		l.Items = envelope.Results
		return nil
	}
	if len(envelope.Data) > 0 {
		var inner List[T]
		if err := inner.UnmarshalJSON(envelope.Data); err != nil {
			return err
		}
		l.Items = inner.Items
		return nil
	}
	l.Items = nil
	return nil
}
