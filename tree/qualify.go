package tree

import (
	"go.uber.org/zap"

	"referral-engine/logger"
	"referral-engine/tier"
)

// QualifiesFor reports whether the node currently meets all three thresholds
// for the given level: cumulative license units, cumulative system sales and
// qualifying first-line count. The check never mutates state and is evaluated
// fresh on every commission opportunity. Levels outside the benefit tables,
// including level 0, never qualify.
func (n *Node) QualifiesFor(level int) bool {
	licenses, err := tier.LicenseRequirement(level)
	if err != nil {
		return false
	}
	if n.totalLicensePurchase < licenses {
		logger.Logger.Info("Node does not meet the license requirement",
			zap.String("username", n.username), zap.Int("level", level))
		return false
	}

	sales, _ := tier.SalesRequirement(level)
	if n.totalSystemSales < sales {
		logger.Logger.Info("Node does not meet the sales requirement",
			zap.String("username", n.username), zap.Int("level", level))
		return false
	}

	f1s, _ := tier.F1CountRequirement(level)
	if n.totalF1Count < f1s {
		logger.Logger.Info("Node does not have enough qualifying first-line members",
			zap.String("username", n.username), zap.Int("level", level))
		return false
	}

	return true
}

// Qualified reports whether the node qualifies for the benefits of its own
// current level.
func (n *Node) Qualified() bool {
	return n.QualifiesFor(n.level)
}

// updateLevel promotes the node to the highest level whose thresholds are met
// contiguously above the current one. Called after any counter change that
// could affect qualification. A node never moves backward.
func (n *Node) updateLevel() {
	level := n.level
	for next := level + 1; next <= tier.MaxLevel; next++ {
		licenses, _ := tier.LicenseRequirement(next)
		sales, _ := tier.SalesRequirement(next)
		f1s, _ := tier.F1CountRequirement(next)
		if n.totalLicensePurchase < licenses || n.totalSystemSales < sales || n.totalF1Count < f1s {
			break
		}
		level = next
	}
	if level != n.level {
		logger.Success("Node leveled up",
			zap.String("username", n.username),
			zap.Int("from", n.level), zap.Int("to", level))
		n.level = level
	}
}
