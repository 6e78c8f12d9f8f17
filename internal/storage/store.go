// Package storage defines the durable-record contract: the wire records for
// the two on-disk documents and the Store capability the ledger persists
// through.
package storage

import "context"

// CustomerRecord is the wire form of a customer entry. Field names are fixed
// by the durable record layout.
type CustomerRecord struct {
	CustomerID     string   `json:"customer_id"`
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	AccountNumbers []string `json:"account_numbers"`
}

// AccountRecord is the wire form of an account entry. InterestRate and
// OverdraftLimit are pointers so that absent optional fields can fall back to
// the variant defaults on load.
type AccountRecord struct {
	AccountNumber   string   `json:"account_number"`
	AccountHolderID string   `json:"account_holder_id"`
	Balance         float64  `json:"balance"`
	Type            string   `json:"type"`
	InterestRate    *float64 `json:"interest_rate,omitempty"`
	OverdraftLimit  *float64 `json:"overdraft_limit,omitempty"`
}

// Snapshot is the full state of the ledger as two mappings keyed by
// identifier, mirroring the two durable documents.
type Snapshot struct {
	Customers map[string]CustomerRecord
	Accounts  map[string]AccountRecord
}

// Store persists full snapshots. Save overwrites the whole durable record;
// Load returns an empty snapshot when no usable record exists.
type Store interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
	Clear(ctx context.Context) error
}

// EmptySnapshot returns a snapshot with initialized, empty mappings.
func EmptySnapshot() Snapshot {
	return Snapshot{
		Customers: make(map[string]CustomerRecord),
		Accounts:  make(map[string]AccountRecord),
	}
}
