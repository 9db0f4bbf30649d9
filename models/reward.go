package models

import "time"

// RewardType tags a ledger entry with the kind of payout it records.
type RewardType string

const (
	RewardTypeBuyLicenseCommission RewardType = "buy_license_commission"
	RewardTypeMiningReward         RewardType = "mining_reward"
	RewardTypeMiningCommission     RewardType = "mining_reward_commission"
	RewardTypeSharedCommission     RewardType = "mining_reward_shared_commission"
)

// RewardLog is one immutable row of the reward ledger. Entries are never
// mutated or deleted after creation.
type RewardLog struct {
	ID          string     `json:"id"`           // unique entry id
	Timestamp   time.Time  `json:"timestamp"`    // when the payout happened
	RecipientID int64      `json:"recipient_id"` // who was credited
	SourceID    *int64     `json:"source_id"`    // who generated the reward, nil when the system did
	Type        RewardType `json:"type"`
	Amount      float64    `json:"amount"`
	Description string     `json:"description"`
	// Remaining is the unallocated portion of the commission pool returned to
	// the system after this payout, zero when the pool was fully claimed.
	Remaining float64 `json:"remaining_amount"`
}
