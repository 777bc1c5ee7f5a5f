package ledger

import (
	"encoding/json"
	"fmt"
)

type persistedData struct {
	Transactions []Transaction `json:"transactions"`
}

// LoadData replaces the store's transactions with the contents of a
// previously saved blob. An empty blob resets the store.
func (s *Store) LoadData(blob []byte) error {
	if len(blob) == 0 {
		s.transactions = nil

		return nil
	}

	var data persistedData
	if err := json.Unmarshal(blob, &data); err != nil {
		return fmt.Errorf("failed to decode ledger data: %w", err)
	}

	s.transactions = data.Transactions

	return nil
}

// DataForSave serializes the store's transactions for persistence.
func (s *Store) DataForSave() ([]byte, error) {
	blob, err := json.MarshalIndent(persistedData{Transactions: s.transactions}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode ledger data: %w", err)
	}

	return blob, nil
}
