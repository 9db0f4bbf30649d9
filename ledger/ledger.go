package ledger

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"referral-engine/models"
)

// Ledger is the append-only audit trail of every commission and reward
// payout. It abstracts the storage layer from the commission engine; appends
// never surface errors to the caller.
type Ledger interface {
	// Append records a payout. A nil sourceID marks a system-originated
	// reward such as a personal mining payout.
	Append(recipientID int64, sourceID *int64, typ models.RewardType, amount float64, description string, remaining float64)
	// All returns every entry in append order.
	All() []models.RewardLog
	// ForRecipient returns the entries credited to one recipient, in append
	// order.
	ForRecipient(recipientID int64) []models.RewardLog
	// Clear drops all entries. Test and reset hook only.
	Clear()
}

// Memory is the in-process Ledger. The clock is injectable so tests get
// deterministic timestamps.
type Memory struct {
	mu   sync.Mutex
	now  func() time.Time
	logs []models.RewardLog
}

// Option configures a Memory ledger.
type Option func(*Memory)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(m *Memory) {
		m.now = now
	}
}

// NewMemory creates an empty in-memory ledger.
func NewMemory(opts ...Option) *Memory {
	m := &Memory{now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Append(recipientID int64, sourceID *int64, typ models.RewardType, amount float64, description string, remaining float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logs = append(m.logs, models.RewardLog{
		ID:          uuid.NewString(),
		Timestamp:   m.now(),
		RecipientID: recipientID,
		SourceID:    sourceID,
		Type:        typ,
		Amount:      amount,
		Description: description,
		Remaining:   remaining,
	})
}

func (m *Memory) All() []models.RewardLog {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.RewardLog, len(m.logs))
	copy(out, m.logs)
	return out
}

func (m *Memory) ForRecipient(recipientID int64) []models.RewardLog {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.RewardLog
	for _, l := range m.logs {
		if l.RecipientID == recipientID {
			out = append(out, l)
		}
	}
	return out
}

func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = nil
}
