package tree

import (
	"fmt"

	"go.uber.org/zap"

	"referral-engine/logger"
	"referral-engine/models"
	"referral-engine/tier"
)

// MiningRewardResult reports how a gross mining amount was split.
type MiningRewardResult struct {
	// MiningReward is the personal payout credited to the miner.
	MiningReward float64
	// MiningRewardCommission is the direct commission actually paid to the
	// miner's parent.
	MiningRewardCommission float64
	// RemainingReward is the unclaimed portion of the direct commission pool
	// returned to the system.
	RemainingReward float64
	// MiningRewardSharedCommission is the nominal shared-pool size carved out
	// of the gross amount. It is informational; shared payouts are computed
	// independently by RewardMiningShared.
	MiningRewardSharedCommission float64
	// MiningRewardOtherCommission is the pool reserved for other activities,
	// not further allocated by this engine.
	MiningRewardOtherCommission float64
}

// SharedMiningResult reports the outcome of a shared-commission distribution.
type SharedMiningResult struct {
	Success                   bool
	SharedCommission          float64
	RemainingSharedCommission float64
}

// RewardMining distributes a gross mining amount: 92% to the miner, up to 3%
// to a qualified direct parent, with the shared and other pool sizes reported
// back for the caller. The gross amount accrues into the miner's cumulative
// mined total, which downstream shared-commission eligibility is based on.
func (n *Node) RewardMining(amount float64) (MiningRewardResult, error) {
	if amount <= 0 {
		return MiningRewardResult{}, ErrNonPositiveAmount
	}

	nw := n.net
	nw.mu.Lock()
	defer nw.mu.Unlock()

	logger.Logger.Info("Distributing mining reward",
		zap.String("username", n.username), zap.Float64("amount", amount))

	personal := amount * tier.MiningRewardRate
	n.miningReward += personal
	n.totalMining += amount
	nw.ledger.Append(n.id, nil, models.RewardTypeMiningReward, personal,
		fmt.Sprintf("Mining reward for user %s", n.username), 0)

	pool := amount * tier.MiningCommissionPoolRate
	commission := n.payMiningCommission(amount, pool)

	return MiningRewardResult{
		MiningReward:                 personal,
		MiningRewardCommission:       commission,
		RemainingReward:              pool - commission,
		MiningRewardSharedCommission: amount * tier.SharedCommissionPoolRate,
		MiningRewardOtherCommission:  amount * tier.OtherCommissionPoolRate,
	}, nil
}

// payMiningCommission pays the direct mining commission to a qualified parent
// and returns the amount actually paid.
func (n *Node) payMiningCommission(amount, pool float64) float64 {
	parent := n.parent
	if parent == nil {
		return 0
	}
	if !parent.QualifiesFor(parent.level) {
		logger.Logger.Info("Parent does not qualify for mining commission",
			zap.String("username", parent.username), zap.Int("level", parent.level))
		return 0
	}

	rate, _ := tier.MiningCommissionRate(parent.level)
	commission := amount * rate
	parent.miningRewardCommission += commission

	sourceID := n.id
	n.net.ledger.Append(parent.id, &sourceID, models.RewardTypeMiningCommission, commission,
		fmt.Sprintf("Mining commission from user %s", n.username), pool-commission)
	logger.Payout("Mining commission paid",
		zap.String("parent", parent.username),
		zap.Float64("commission", commission))

	return commission
}

// RewardMiningShared pays a leader its cut of a shared reward fund. The
// payout goes to this node only; eligibility requires qualifying at level 4
// thresholds, holding level 4 or above, and nonzero downline mining activity
// within MaxLeaderLayers layers. Ineligibility is a soft failure, not an
// error.
func (n *Node) RewardMiningShared(fund float64) SharedMiningResult {
	nw := n.net
	nw.mu.Lock()
	defer nw.mu.Unlock()

	if fund <= 0 {
		logger.Logger.Warn("Shared reward fund must be greater than 0",
			zap.Float64("fund", fund))
		return SharedMiningResult{}
	}
	if n.level < tier.SharedCommissionMinLevel || !n.QualifiesFor(tier.SharedCommissionMinLevel) {
		logger.Logger.Info("Node is not eligible for shared mining commission",
			zap.String("username", n.username), zap.Int("level", n.level))
		return SharedMiningResult{}
	}
	if n.descendantMiningWithin(tier.MaxLeaderLayers) <= 0 {
		logger.Logger.Info("Node has no downline mining activity within the leader window",
			zap.String("username", n.username))
		return SharedMiningResult{}
	}

	pool := fund * tier.SharedCommissionPoolRate
	rate, _ := tier.SharedCommissionRate(n.level)
	commission := pool * rate
	n.miningRewardSharedCommission += commission

	nw.ledger.Append(n.id, nil, models.RewardTypeSharedCommission, commission,
		fmt.Sprintf("Shared mining commission for leader %s at level %d", n.username, n.level), pool-commission)
	logger.Payout("Shared mining commission paid",
		zap.String("leader", n.username),
		zap.Float64("commission", commission))

	return SharedMiningResult{
		Success:                   true,
		SharedCommission:          commission,
		RemainingSharedCommission: pool - commission,
	}
}
