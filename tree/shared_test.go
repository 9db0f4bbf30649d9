package tree_test

import (
	"fmt"
	"testing"

	"referral-engine/models"
	"referral-engine/tree"
)

// miningChain builds a single-file downline under root, each member at depth
// i having mined 100*i, and returns the deepest member.
func miningChain(t *testing.T, nw *tree.Network, root *tree.Node, depth int) *tree.Node {
	t.Helper()
	current := root
	for i := 1; i <= depth; i++ {
		child := nw.NewNode(root.ID()*1000+int64(i), fmt.Sprintf("downline-%d", i))
		if err := child.SetTotalMining(float64(100 * i)); err != nil {
			t.Fatalf("SetTotalMining failed: %v", err)
		}
		if err := current.AddChild(child); err != nil {
			t.Fatalf("AddChild at depth %d failed: %v", i, err)
		}
		current = child
	}
	return current
}

func TestRewardMiningShared_BelowLevel4(t *testing.T) {
	nw := newTestNetwork()
	leader := nw.NewNode(1, "leader")
	configureAt(t, leader, 3)
	miningChain(t, nw, leader, 5)

	result := leader.RewardMiningShared(5000)
	if result.Success {
		t.Fatalf("level 3 leader must not receive shared commission")
	}
	if result.SharedCommission != 0 || leader.MiningRewardSharedCommission() != 0 {
		t.Fatalf("expected zero amounts on soft failure")
	}
	if len(nw.Ledger().All()) != 0 {
		t.Fatalf("soft failure must not write the ledger")
	}
}

func TestRewardMiningShared_NonPositiveFund(t *testing.T) {
	nw := newTestNetwork()
	leader := nw.NewNode(1, "leader")
	configureAt(t, leader, 5)
	miningChain(t, nw, leader, 3)

	if result := leader.RewardMiningShared(0); result.Success {
		t.Fatalf("zero fund must fail softly")
	}
	if result := leader.RewardMiningShared(-100); result.Success {
		t.Fatalf("negative fund must fail softly")
	}
}

func TestRewardMiningShared_NoDownlineMining(t *testing.T) {
	nw := newTestNetwork()
	leader := nw.NewNode(1, "leader")
	configureAt(t, leader, 5)
	if err := leader.AddChild(nw.NewNode(2, "idle")); err != nil {
		t.Fatalf("AddChild failed: %v", err)
	}

	result := leader.RewardMiningShared(5000)
	if result.Success {
		t.Fatalf("leader with an idle downline must not receive shared commission")
	}
}

func TestRewardMiningShared_CommissionByLevel(t *testing.T) {
	const fund = 100000

	cases := []struct {
		level      int
		commission float64
	}{
		{4, 30},
		{7, 45},
		{10, 90},
	}
	for _, tc := range cases {
		nw := newTestNetwork()
		leader := nw.NewNode(1, "leader")
		configureAt(t, leader, tc.level)
		miningChain(t, nw, leader, 21)

		result := leader.RewardMiningShared(fund)
		if !result.Success {
			t.Fatalf("level %d: expected success", tc.level)
		}
		if !closeTo(result.SharedCommission, tc.commission) {
			t.Fatalf("level %d: expected commission %v, got %v",
				tc.level, tc.commission, result.SharedCommission)
		}
		if !closeTo(leader.MiningRewardSharedCommission(), tc.commission) {
			t.Fatalf("level %d: expected counter %v, got %v",
				tc.level, tc.commission, leader.MiningRewardSharedCommission())
		}
		// The pool is 3% of the fund; the leader takes its level rate of it.
		if !closeTo(result.RemainingSharedCommission, fund*0.03-tc.commission) {
			t.Fatalf("level %d: expected remainder %v, got %v",
				tc.level, fund*0.03-tc.commission, result.RemainingSharedCommission)
		}

		logs := entriesOfType(nw.Ledger().ForRecipient(leader.ID()), models.RewardTypeSharedCommission)
		if len(logs) != 1 {
			t.Fatalf("level %d: expected one shared-commission entry, got %d", tc.level, len(logs))
		}
		if logs[0].SourceID != nil {
			t.Fatalf("shared commission is system-originated")
		}
		if !closeTo(logs[0].Remaining, fund*0.03-tc.commission) {
			t.Fatalf("level %d: entry remainder mismatch: %v", tc.level, logs[0].Remaining)
		}
	}
}

func TestRewardMiningShared_TwentyLayerWindow(t *testing.T) {
	nw := newTestNetwork()
	leader := nw.NewNode(1, "leader")
	configureAt(t, leader, 4)

	// A 21-deep chain with mining activity only on the deepest member, one
	// layer past the leader window.
	current := leader
	for i := 1; i <= 21; i++ {
		child := nw.NewNode(int64(100+i), fmt.Sprintf("downline-%d", i))
		if err := current.AddChild(child); err != nil {
			t.Fatalf("AddChild failed: %v", err)
		}
		current = child
	}
	if err := current.SetTotalMining(5000); err != nil {
		t.Fatalf("SetTotalMining failed: %v", err)
	}

	if result := leader.RewardMiningShared(100000); result.Success {
		t.Fatalf("mining outside the 20-layer window must not qualify the leader")
	}

	// The same activity one layer higher is inside the window.
	parent := current.Parent()
	if err := parent.SetTotalMining(5000); err != nil {
		t.Fatalf("SetTotalMining failed: %v", err)
	}
	if result := leader.RewardMiningShared(100000); !result.Success {
		t.Fatalf("mining at layer 20 must qualify the leader")
	}
}

func TestRewardMiningShared_AccumulatesAcrossRuns(t *testing.T) {
	nw := newTestNetwork()
	leader := nw.NewNode(1, "leader")
	configureAt(t, leader, 10)
	miningChain(t, nw, leader, 2)

	if result := leader.RewardMiningShared(100000); !result.Success {
		t.Fatalf("expected success on first run")
	}
	if result := leader.RewardMiningShared(100000); !result.Success {
		t.Fatalf("expected success on second run")
	}
	if !closeTo(leader.MiningRewardSharedCommission(), 180) {
		t.Fatalf("expected accumulated commission 180, got %v", leader.MiningRewardSharedCommission())
	}
	if len(nw.Ledger().All()) != 2 {
		t.Fatalf("expected two ledger entries, got %d", len(nw.Ledger().All()))
	}
}
