package postgres

import (
	"context"
	"fmt"

	"defter/pkg/numerator"
)

// Sequences implements numerator.Sequences on the sys_sequences table.
// The UPSERT ... RETURNING form makes increments atomic, so concurrent
// creations cannot receive the same value.
type Sequences struct {
	txm *TxManager
}

// NewSequences creates a sequence store backed by sys_sequences.
func NewSequences(txm *TxManager) *Sequences {
	return &Sequences{txm: txm}
}

// Next increments the counter for key and returns the new value.
func (s *Sequences) Next(ctx context.Context, key string) (int64, error) {
	var num int64
	err := s.txm.GetQuerier(ctx).QueryRow(ctx, `
        INSERT INTO sys_sequences (key, current_val)
        VALUES ($1, 1)
        ON CONFLICT (key) DO UPDATE SET current_val = sys_sequences.current_val + 1
        RETURNING current_val
	`, key).Scan(&num)
	if err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", key, err)
	}
	return num, nil
}

// Advance raises the counter for key to at least value. Used when
// loading data whose numbers were already issued.
func (s *Sequences) Advance(ctx context.Context, key string, value int64) error {
	_, err := s.txm.GetQuerier(ctx).Exec(ctx, `
        INSERT INTO sys_sequences (key, current_val)
        VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE
        SET current_val = GREATEST(sys_sequences.current_val, EXCLUDED.current_val)
	`, key, value)
	if err != nil {
		return fmt.Errorf("advance sequence %s: %w", key, err)
	}
	return nil
}

var _ numerator.Sequences = (*Sequences)(nil)
