package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Document names used by the repositories.
const (
	DocPointsLedger  = "points_ledger"
	DocOrders        = "orders"
	DocTripBookings  = "tripbookings"
	DocTrips         = "trips"
	DocNotifications = "notifications"
	DocRoutes        = "routes"
	DocStations      = "stations"
	DocReschedules   = "reschedules"
	DocReceipts      = "receipts"
)

var ErrSchemaVersion = errors.New("unsupported schema version")

// DocumentStore is a whole-document load/replace store. Load reports
// found=false and leaves v untouched when the document does not exist yet.
type DocumentStore interface {
	Load(ctx context.Context, name string, v any) (bool, error)
	Save(ctx context.Context, name string, v any) error
	Close() error
}

// envelope wraps every persisted document with its schema version.
type envelope struct {
	SchemaVersion int             `json:"schemaVersion"`
	Data          json.RawMessage `json:"data"`
}

func encodeEnvelope(version int, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return json.MarshalIndent(envelope{SchemaVersion: version, Data: data}, "", "  ")
}

func decodeEnvelope(name string, want int, raw []byte, v any) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode %s envelope: %w", name, err)
	}
	return decodeBody(name, want, env.SchemaVersion, env.Data, v)
}

func decodeBody(name string, want, got int, body []byte, v any) error {
	if got != want {
		return fmt.Errorf("document %s has version %d, want %d: %w", name, got, want, ErrSchemaVersion)
	}
	if len(body) == 0 || string(body) == "null" {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
