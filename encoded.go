package nativestorage

import (
	"encoding/json"
	"fmt"

	"go.uber.org/multierr"
)

var _ SyncArea = (*EncodedSyncArea)(nil)

// EncodedSyncArea is a SyncArea that keeps JSON encoded items in a LocalArea.
//
// Like a browser synced area, numbers come back as float64 and objects as map[string]any.
type EncodedSyncArea struct {
	area LocalArea
}

// Get reads and decodes the item for the given key.
func (a *EncodedSyncArea) Get(key string, callback func(items map[string]any, err error)) {
	go func() {
		d, found, err := a.area.GetItem(key)
		if err != nil {
			callback(nil, fmt.Errorf("failed to read item: %w", err))

			return
		}

		items := make(map[string]any, 1)

		if found {
			var v any

			if err := json.Unmarshal([]byte(d), &v); err != nil {
				callback(nil, fmt.Errorf("failed to decode item: %w", err))

				return
			}

			items[key] = v
		}

		callback(items, nil)
	}()
}

// Set encodes and writes every item. Failures are combined, the items that could be written stay written.
func (a *EncodedSyncArea) Set(items map[string]any, callback func(err error)) {
	go func() {
		var err error

		for k, v := range items {
			b, mErr := json.Marshal(v)
			if mErr != nil {
				err = multierr.Append(err, fmt.Errorf("failed to encode item %q: %w", k, mErr))

				continue
			}

			if sErr := a.area.SetItem(k, string(b)); sErr != nil {
				err = multierr.Append(err, fmt.Errorf("failed to write item %q: %w", k, sErr))
			}
		}

		callback(err)
	}()
}

// NewEncodedSyncArea creates a new EncodedSyncArea on top of the given area.
func NewEncodedSyncArea(area LocalArea) *EncodedSyncArea {
	return &EncodedSyncArea{area: area}
}
