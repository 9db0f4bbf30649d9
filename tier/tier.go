package tier

import "errors"

// Level bounds for the policy tables. Level 0 is the entry level and has no
// thresholds of its own; qualification tables cover levels 1 through 10.
const (
	MinLevel = 0
	MaxLevel = 10
)

// Global policy constants.
const (
	// LicensePrice is the default price of one license unit.
	LicensePrice = 600

	// MiningRewardRate is the share of a gross mining amount paid to the miner.
	MiningRewardRate = 0.92

	// MiningCommissionPoolRate caps the direct commission pool taken from a
	// gross mining amount. Whatever the parent does not claim reverts to the
	// system.
	MiningCommissionPoolRate = 0.03

	// SharedCommissionPoolRate caps the shared commission pool taken from a
	// reward fund.
	SharedCommissionPoolRate = 0.03

	// OtherCommissionPoolRate is reserved for other activities and is not
	// further allocated by this engine.
	OtherCommissionPoolRate = 0.02

	// MaxoutMultiplier caps lifetime license commission at this multiple of a
	// node's own license purchase value.
	MaxoutMultiplier = 2

	// MaxLeaderLayers bounds how deep below a leader downline mining activity
	// counts toward shared-commission eligibility.
	MaxLeaderLayers = 20

	// SharedCommissionMinLevel is the lowest level eligible for shared
	// mining commission.
	SharedCommissionMinLevel = 4

	// F1LicenseUnits is the cumulative unit count a direct child must exceed
	// to count as a qualifying first-line member.
	F1LicenseUnits = 3
)

// ErrLevelOutOfRange is returned by lookups for levels outside the table.
var ErrLevelOutOfRange = errors.New("tier: level out of range")

// Threshold tables indexed by level. Index 0 is unused padding so the tables
// read naturally as level -> value.
var (
	licenseRequirements = [MaxLevel + 1]int{0, 1, 2, 5, 10, 20, 30, 60, 80, 100, 150}

	salesRequirements = [MaxLevel + 1]float64{
		0,
		100,
		250,
		500,
		1_000_000,
		2_000_000,
		4_000_000,
		6_000_000,
		8_000_000,
		10_000_000,
		15_000_000,
	}

	f1CountRequirements = [MaxLevel + 1]int{0, 2, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	// Flat 10% on license purchases across all levels under current policy.
	buyLicenseCommissionRates = [MaxLevel + 1]float64{
		0, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1,
	}

	miningCommissionRates = [MaxLevel + 1]float64{
		0, 0.01, 0.01, 0.015, 0.015, 0.02, 0.02, 0.025, 0.025, 0.03, 0.03,
	}

	// Shared mining commission is defined for levels 4-10 only.
	sharedCommissionRates = [MaxLevel + 1]float64{
		0, 0, 0, 0, 0.01, 0.01, 0.015, 0.015, 0.02, 0.02, 0.03,
	}
)

// ValidLevel reports whether level is within [MinLevel, MaxLevel].
func ValidLevel(level int) bool {
	return level >= MinLevel && level <= MaxLevel
}

// LicenseRequirement returns the minimum cumulative license units for level.
func LicenseRequirement(level int) (int, error) {
	if level < 1 || level > MaxLevel {
		return 0, ErrLevelOutOfRange
	}
	return licenseRequirements[level], nil
}

// SalesRequirement returns the minimum cumulative system sales for level.
func SalesRequirement(level int) (float64, error) {
	if level < 1 || level > MaxLevel {
		return 0, ErrLevelOutOfRange
	}
	return salesRequirements[level], nil
}

// F1CountRequirement returns the minimum number of qualifying first-line
// members for level.
func F1CountRequirement(level int) (int, error) {
	if level < 1 || level > MaxLevel {
		return 0, ErrLevelOutOfRange
	}
	return f1CountRequirements[level], nil
}

// BuyLicenseCommissionRate returns the license-purchase commission rate paid
// to a qualified parent at level.
func BuyLicenseCommissionRate(level int) (float64, error) {
	if level < 1 || level > MaxLevel {
		return 0, ErrLevelOutOfRange
	}
	return buyLicenseCommissionRates[level], nil
}

// MiningCommissionRate returns the direct mining commission rate for level.
func MiningCommissionRate(level int) (float64, error) {
	if level < 1 || level > MaxLevel {
		return 0, ErrLevelOutOfRange
	}
	return miningCommissionRates[level], nil
}

// SharedCommissionRate returns the shared mining commission rate for level.
// Only levels 4-10 carry a shared rate.
func SharedCommissionRate(level int) (float64, error) {
	if level < SharedCommissionMinLevel || level > MaxLevel {
		return 0, ErrLevelOutOfRange
	}
	return sharedCommissionRates[level], nil
}
