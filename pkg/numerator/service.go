// Package numerator provides document auto-numbering.
//
// Numbers have the form PREFIX-YEAR-SEQ (e.g. ALI-2024-001). The sequence is
// a monotonic counter scoped to (prefix, year) and stored independently of
// record survival, so deleting a document never causes a later number to be
// reused or to collide with one already issued.
package numerator

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Sequences is the backing store for monotonic counters.
// Implementations must guarantee that Next never returns the same value
// twice for the same key.
type Sequences interface {
	// Next increments the counter for key and returns the new value (1-based).
	Next(ctx context.Context, key string) (int64, error)
}

// Config holds numbering configuration for one document kind.
type Config struct {
	// Prefix added to all numbers (e.g. "ALI", "SAT")
	Prefix string

	// PadWidth is the minimum width of the sequence part (default 3)
	PadWidth int
}

// DefaultConfig returns standard options for a prefix.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:   prefix,
		PadWidth: 3,
	}
}

// Service issues document numbers backed by a Sequences store.
type Service struct {
	seqs Sequences
}

// New creates a numerator service.
func New(seqs Sequences) *Service {
	return &Service{seqs: seqs}
}

// Next generates the next document number for the given period.
// The year segment is derived from period, and the counter is scoped to
// (prefix, year): ALI-2024-001, ALI-2024-002, ... ALI-2025-001.
func (s *Service) Next(ctx context.Context, cfg Config, period time.Time) (string, error) {
	if s == nil || s.seqs == nil {
		return "", fmt.Errorf("numerator service is not initialized")
	}

	key := buildKey(cfg.Prefix, period)
	num, err := s.seqs.Next(ctx, key)
	if err != nil {
		return "", fmt.Errorf("next %s: %w", key, err)
	}

	return formatNumber(cfg, period, num), nil
}

// buildKey creates the sequence key for a prefix and period.
func buildKey(prefix string, period time.Time) string {
	return fmt.Sprintf("%s_%s", prefix, period.Format("2006"))
}

// formatNumber creates the final number string.
func formatNumber(cfg Config, period time.Time, num int64) string {
	padWidth := cfg.PadWidth
	if padWidth == 0 {
		padWidth = 3
	}
	return fmt.Sprintf("%s-%s-%0*d", cfg.Prefix, period.Format("2006"), padWidth, num)
}

// ParseNumber extracts the numeric part from a formatted number.
// Returns -1 if parsing fails.
func ParseNumber(formatted string) int64 {
	parts := strings.Split(formatted, "-")
	if len(parts) != 3 {
		return -1
	}
	num, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return -1
	}
	return num
}
