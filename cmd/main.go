package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"referral-engine/db"
	"referral-engine/ledger"
	"referral-engine/logger"
	"referral-engine/tier"
	"referral-engine/tree"
)

func main() {
	// Load config
	viper.SetConfigFile("config/config.yaml")
	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("Config file error:", err)
		os.Exit(1)
	}

	appLogFile := viper.GetString("log.app_log_file")
	logLevel := viper.GetString("log.level")

	if err := logger.InitLogger(appLogFile, logLevel); err != nil {
		fmt.Println("Failed to initialize logger:", err)
		os.Exit(1)
	}

	logger.Logger.Info("Starting referral commission engine...")

	// Connect to LevelDB for the durable reward ledger
	leveldbPath := viper.GetString("leveldb.path")
	ldb, err := db.NewLevelDB(leveldbPath)
	if err != nil {
		logger.Logger.Fatal("Failed to open leveldb", zap.Error(err))
	}
	defer ldb.Close()

	led, err := ledger.NewLevelDBLedger(ldb)
	if err != nil {
		logger.Logger.Fatal("Failed to open reward ledger", zap.Error(err))
	}

	licensePrice := viper.GetFloat64("license.unit_price")
	if licensePrice <= 0 {
		licensePrice = tier.LicensePrice
	}

	nw := tree.NewNetwork(led)

	// Sample network: a leader with a small first line and one deep branch.
	leader := nw.NewNode(1, "leader")
	var branch *tree.Node
	for i := int64(2); i <= 6; i++ {
		member := nw.NewNode(i, fmt.Sprintf("member-%d", i))
		if err := leader.AddChild(member); err != nil {
			logger.Logger.Fatal("Failed to attach member", zap.Error(err))
		}
		branch = member
	}

	// First-line purchases qualify the leader and earn it commission.
	if _, err := leader.BuyLicenseAtPrice(5, licensePrice); err != nil {
		logger.Logger.Fatal("Leader purchase failed", zap.Error(err))
	}
	for _, member := range leader.Children() {
		if _, err := member.BuyLicenseAtPrice(4, licensePrice); err != nil {
			logger.Logger.Fatal("Member purchase failed", zap.Error(err))
		}
	}

	// A mining season on the deepest branch member.
	result, err := branch.RewardMining(1000)
	if err != nil {
		logger.Logger.Fatal("Mining reward failed", zap.Error(err))
	}
	logger.Logger.Info("Mining reward distributed",
		zap.Float64("personal", result.MiningReward),
		zap.Float64("commission", result.MiningRewardCommission),
		zap.Float64("returned_to_system", result.RemainingReward))

	shared := leader.RewardMiningShared(viper.GetFloat64("rewards.shared_fund"))
	logger.Logger.Info("Shared commission run",
		zap.Bool("success", shared.Success),
		zap.Float64("commission", shared.SharedCommission))

	for _, entry := range led.All() {
		fmt.Printf("%s  recipient=%d  type=%-32s  amount=%10.2f  %s\n",
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.RecipientID, entry.Type, entry.Amount, entry.Description)
	}

	logger.Logger.Info("Done",
		zap.Int("ledger_entries", len(led.All())),
		zap.Int("leader_level", leader.Level()),
		zap.Float64("leader_commission", leader.TotalCommission()))
}
