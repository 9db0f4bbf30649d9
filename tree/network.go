package tree

import (
	"sync"

	"referral-engine/ledger"
)

// Network ties a referral tree to the reward ledger its payouts are audited
// in. The mutex serializes the top-level commission operations so partial
// ancestor updates are never observed mid-flight; state is mutated in place
// and commission math reads live parent counters.
type Network struct {
	mu     sync.Mutex
	ledger ledger.Ledger
}

// NewNetwork creates a network writing to led. A nil ledger falls back to a
// fresh in-memory one.
func NewNetwork(led ledger.Ledger) *Network {
	if led == nil {
		led = ledger.NewMemory()
	}
	return &Network{ledger: led}
}

// Ledger exposes the network's reward ledger for querying.
func (nw *Network) Ledger() ledger.Ledger {
	return nw.ledger
}

// NewNode creates a detached level-0 node with all counters zero.
func (nw *Network) NewNode(id int64, username string) *Node {
	return &Node{net: nw, id: id, username: username}
}

// NewNodeAtLevel creates a detached node starting at the given level.
func (nw *Network) NewNodeAtLevel(id int64, username string, level int) (*Node, error) {
	n := nw.NewNode(id, username)
	if err := n.SetLevel(level); err != nil {
		return nil, err
	}
	return n, nil
}
