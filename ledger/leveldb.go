package ledger

import (
	"encoding/binary"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"referral-engine/db"
	"referral-engine/logger"
	"referral-engine/models"
)

var rewardKeyPrefix = []byte("reward:")

// LevelDBLedger persists reward entries as JSON rows keyed by a big-endian
// sequence number, so iteration order is append order. It satisfies the same
// contract as Memory: appends do not surface errors, a failed write is logged
// and dropped.
type LevelDBLedger struct {
	mu   sync.Mutex
	db   *db.LevelDB
	now  func() time.Time
	next uint64
}

// NewLevelDBLedger builds a ledger on top of an open LevelDB, resuming the
// sequence counter from whatever is already stored.
func NewLevelDBLedger(store *db.LevelDB, opts ...LevelDBOption) (*LevelDBLedger, error) {
	l := &LevelDBLedger{db: store, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}

	iter := store.NewIterator(rewardKeyPrefix)
	defer iter.Release()
	for iter.Next() {
		key := iter.Key()
		if len(key) == len(rewardKeyPrefix)+8 {
			l.next = binary.BigEndian.Uint64(key[len(rewardKeyPrefix):]) + 1
		}
	}
	return l, iter.Error()
}

// LevelDBOption configures a LevelDBLedger.
type LevelDBOption func(*LevelDBLedger)

// WithLevelDBClock overrides the timestamp source.
func WithLevelDBClock(now func() time.Time) LevelDBOption {
	return func(l *LevelDBLedger) {
		l.now = now
	}
}

func (l *LevelDBLedger) key(seq uint64) []byte {
	key := make([]byte, len(rewardKeyPrefix)+8)
	copy(key, rewardKeyPrefix)
	binary.BigEndian.PutUint64(key[len(rewardKeyPrefix):], seq)
	return key
}

func (l *LevelDBLedger) Append(recipientID int64, sourceID *int64, typ models.RewardType, amount float64, description string, remaining float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := models.RewardLog{
		ID:          uuid.NewString(),
		Timestamp:   l.now(),
		RecipientID: recipientID,
		SourceID:    sourceID,
		Type:        typ,
		Amount:      amount,
		Description: description,
		Remaining:   remaining,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		logger.Logger.Warn("Failed encoding reward entry",
			zap.Int64("recipient_id", recipientID), zap.Error(err))
		return
	}
	if err := l.db.Put(l.key(l.next), data); err != nil {
		logger.Logger.Warn("Failed writing reward entry",
			zap.Int64("recipient_id", recipientID), zap.Error(err))
		return
	}
	l.next++
}

func (l *LevelDBLedger) All() []models.RewardLog {
	l.mu.Lock()
	defer l.mu.Unlock()

	iter := l.db.NewIterator(rewardKeyPrefix)
	defer iter.Release()

	var out []models.RewardLog
	for iter.Next() {
		var entry models.RewardLog
		if err := json.Unmarshal(iter.Value(), &entry); err != nil {
			logger.Logger.Warn("Skipping undecodable reward entry", zap.Error(err))
			continue
		}
		out = append(out, entry)
	}
	return out
}

func (l *LevelDBLedger) ForRecipient(recipientID int64) []models.RewardLog {
	var out []models.RewardLog
	for _, entry := range l.All() {
		if entry.RecipientID == recipientID {
			out = append(out, entry)
		}
	}
	return out
}

func (l *LevelDBLedger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	iter := l.db.NewIterator(rewardKeyPrefix)
	defer iter.Release()
	for iter.Next() {
		key := make([]byte, len(iter.Key()))
		copy(key, iter.Key())
		if err := l.db.Delete(key); err != nil {
			logger.Logger.Warn("Failed deleting reward entry", zap.Error(err))
		}
	}
	l.next = 0
}
