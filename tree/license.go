package tree

import (
	"fmt"

	"go.uber.org/zap"

	"referral-engine/logger"
	"referral-engine/models"
	"referral-engine/tier"
)

// BuyLicense records a purchase of quantity license units at the default
// license price.
func (n *Node) BuyLicense(quantity int) (int, error) {
	return n.BuyLicenseAtPrice(quantity, tier.LicensePrice)
}

// BuyLicenseAtPrice records a purchase of quantity license units at the given
// unit price. The buyer's counters are updated and its level re-scanned; a
// qualified direct parent earns a maxout-clamped commission, system-sales
// credit and, the first time this buyer crosses the qualifying threshold, a
// first-line credit. An unqualified or absent parent is skipped quietly.
// Returns the buyer's new cumulative unit count.
func (n *Node) BuyLicenseAtPrice(quantity int, unitPrice float64) (int, error) {
	if quantity <= 0 {
		return 0, ErrNonPositiveQuantity
	}

	nw := n.net
	nw.mu.Lock()
	defer nw.mu.Unlock()

	logger.Logger.Info("Buying licenses",
		zap.String("username", n.username),
		zap.Int("quantity", quantity),
		zap.Float64("unit_price", unitPrice))

	unitsBefore := n.totalLicensePurchase
	value := float64(quantity) * unitPrice
	n.totalLicensePurchase += quantity
	n.totalLicensePurchaseValue += value
	n.updateLevel()

	parent := n.parent
	if parent == nil {
		return n.totalLicensePurchase, nil
	}
	if !parent.QualifiesFor(parent.level) {
		logger.Logger.Info("Parent does not qualify for license commission",
			zap.String("username", parent.username), zap.Int("level", parent.level))
		return n.totalLicensePurchase, nil
	}

	rate, _ := tier.BuyLicenseCommissionRate(parent.level)
	commission := parent.clampLicenseCommission(value*rate, unitPrice)

	parent.buyLicenseCommission += commission
	parent.buyLicenseCommissionReceived += commission
	parent.totalSystemSales += value
	if unitsBefore <= tier.F1LicenseUnits && n.totalLicensePurchase > tier.F1LicenseUnits {
		parent.totalF1Count++
	}
	parent.updateLevel()

	sourceID := n.id
	nw.ledger.Append(parent.id, &sourceID, models.RewardTypeBuyLicenseCommission, commission,
		fmt.Sprintf("License purchase commission from user %s (%d x %.2f)", n.username, quantity, unitPrice), 0)
	logger.Payout("License commission paid",
		zap.String("parent", parent.username),
		zap.Float64("commission", commission))

	return n.totalLicensePurchase, nil
}

// clampLicenseCommission applies the lifetime maxout cap: a node may receive
// at most MaxoutMultiplier times its own license purchase value in license
// commission. Falls back to units times the current unit price when the value
// counter was never set.
func (n *Node) clampLicenseCommission(raw, unitPrice float64) float64 {
	value := n.totalLicensePurchaseValue
	if value == 0 {
		value = float64(n.totalLicensePurchase) * unitPrice
	}
	maxCommission := value * tier.MaxoutMultiplier

	received := n.buyLicenseCommissionReceived
	if received >= maxCommission {
		logger.Logger.Warn("Node has already received the maximum license commission",
			zap.String("username", n.username),
			zap.Float64("received", received),
			zap.Float64("max", maxCommission))
		return 0
	}
	if received+raw > maxCommission {
		return maxCommission - received
	}
	return raw
}
