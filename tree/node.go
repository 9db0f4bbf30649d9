package tree

import (
	"errors"

	"referral-engine/tier"
)

var (
	// ErrHasParent is returned when attaching a child that is already linked
	// to a parent.
	ErrHasParent = errors.New("tree: child already has a parent")
	// ErrWouldCycle is returned when attaching a child would make a node its
	// own ancestor.
	ErrWouldCycle = errors.New("tree: node cannot become its own ancestor")
	// ErrChildNotFound is returned when detaching a node that is not a direct
	// child.
	ErrChildNotFound = errors.New("tree: child not found in this node's children")
	// ErrLevelOutOfRange is returned for levels outside [0, 10].
	ErrLevelOutOfRange = errors.New("tree: level must be between 0 and 10")
	// ErrNonPositiveQuantity is returned for license purchases of zero or
	// fewer units.
	ErrNonPositiveQuantity = errors.New("tree: quantity must be greater than 0")
	// ErrNonPositiveAmount is returned for zero or negative reward amounts.
	ErrNonPositiveAmount = errors.New("tree: amount must be greater than 0")
	// ErrNegativeValue is returned by counter setters for negative values.
	ErrNegativeValue = errors.New("tree: value cannot be negative")
)

// Node is one participant in the affiliate tree. The parent link is a
// non-owning back-reference used for upward traversal; the children slice is
// the owning side and the two are kept mutually consistent. All counters are
// cumulative and never go negative.
type Node struct {
	net      *Network
	id       int64
	username string
	level    int
	parent   *Node
	children []*Node

	totalLicensePurchase      int     // cumulative license units bought
	totalLicensePurchaseValue float64 // cumulative value of own purchases
	totalSystemSales          float64 // license revenue attributed by downline purchases
	totalF1Count              int     // direct children past the qualifying unit threshold
	totalMining               float64 // cumulative gross mined amount

	buyLicenseCommission         float64
	buyLicenseCommissionReceived float64 // lifetime total, checked against maxout
	miningReward                 float64
	miningRewardCommission       float64
	miningRewardSharedCommission float64
	miningRewardOtherCommission  float64
}

func (n *Node) ID() int64 {
	return n.id
}

func (n *Node) Username() string {
	return n.username
}

func (n *Node) SetUsername(username string) {
	n.username = username
}

func (n *Node) Level() int {
	return n.level
}

// SetLevel overrides the node's level. Levels reached through purchases go
// through the level-up scan instead; this is the administrative hook.
func (n *Node) SetLevel(level int) error {
	if !tier.ValidLevel(level) {
		return ErrLevelOutOfRange
	}
	n.level = level
	return nil
}

func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the direct children in creation order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// AddChild links child under n. The child must not already have a parent and
// the link must not create a cycle.
func (n *Node) AddChild(child *Node) error {
	if child.parent != nil {
		return ErrHasParent
	}
	if child == n {
		return ErrWouldCycle
	}
	for cur := n.parent; cur != nil; cur = cur.parent {
		if cur == child {
			return ErrWouldCycle
		}
	}
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// RemoveChild detaches child from n. Counters on both sides persist.
func (n *Node) RemoveChild(child *Node) error {
	for i, c := range n.children {
		if c == child {
			child.parent = nil
			n.children = append(n.children[:i], n.children[i+1:]...)
			return nil
		}
	}
	return ErrChildNotFound
}

// Ancestors returns the chain of parents from the immediate parent up to the
// root.
func (n *Node) Ancestors() []*Node {
	var ancestors []*Node
	for cur := n.parent; cur != nil; cur = cur.parent {
		ancestors = append(ancestors, cur)
	}
	return ancestors
}

// Descendants returns every node reachable through children, unordered.
func (n *Node) Descendants() []*Node {
	var descendants []*Node
	stack := make([]*Node, len(n.children))
	copy(stack, n.children)

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		descendants = append(descendants, cur)
		stack = append(stack, cur.children...)
	}
	return descendants
}

// Layer returns the node's depth from the root, where the root is layer 0.
func (n *Node) Layer() int {
	layer := 0
	for cur := n.parent; cur != nil; cur = cur.parent {
		layer++
	}
	return layer
}

// descendantMiningWithin sums the cumulative mined amounts of all descendants
// at most layers levels below n.
func (n *Node) descendantMiningWithin(layers int) float64 {
	type frame struct {
		node  *Node
		depth int
	}

	var total float64
	stack := make([]frame, 0, len(n.children))
	for _, c := range n.children {
		stack = append(stack, frame{c, 1})
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		total += cur.node.totalMining
		if cur.depth < layers {
			for _, c := range cur.node.children {
				stack = append(stack, frame{c, cur.depth + 1})
			}
		}
	}
	return total
}

func (n *Node) TotalLicensePurchase() int {
	return n.totalLicensePurchase
}

func (n *Node) SetTotalLicensePurchase(units int) error {
	if units < 0 {
		return ErrNegativeValue
	}
	n.totalLicensePurchase = units
	return nil
}

func (n *Node) TotalLicensePurchaseValue() float64 {
	return n.totalLicensePurchaseValue
}

func (n *Node) SetTotalLicensePurchaseValue(value float64) error {
	if value < 0 {
		return ErrNegativeValue
	}
	n.totalLicensePurchaseValue = value
	return nil
}

func (n *Node) TotalSystemSales() float64 {
	return n.totalSystemSales
}

func (n *Node) SetTotalSystemSales(sales float64) error {
	if sales < 0 {
		return ErrNegativeValue
	}
	n.totalSystemSales = sales
	return nil
}

func (n *Node) TotalF1Count() int {
	return n.totalF1Count
}

func (n *Node) SetTotalF1Count(count int) error {
	if count < 0 {
		return ErrNegativeValue
	}
	n.totalF1Count = count
	return nil
}

func (n *Node) TotalMining() float64 {
	return n.totalMining
}

func (n *Node) SetTotalMining(amount float64) error {
	if amount < 0 {
		return ErrNegativeValue
	}
	n.totalMining = amount
	return nil
}

func (n *Node) BuyLicenseCommission() float64 {
	return n.buyLicenseCommission
}

func (n *Node) BuyLicenseCommissionReceived() float64 {
	return n.buyLicenseCommissionReceived
}

func (n *Node) SetBuyLicenseCommissionReceived(received float64) error {
	if received < 0 {
		return ErrNegativeValue
	}
	n.buyLicenseCommissionReceived = received
	return nil
}

func (n *Node) MiningReward() float64 {
	return n.miningReward
}

func (n *Node) MiningRewardCommission() float64 {
	return n.miningRewardCommission
}

func (n *Node) MiningRewardSharedCommission() float64 {
	return n.miningRewardSharedCommission
}

func (n *Node) MiningRewardOtherCommission() float64 {
	return n.miningRewardOtherCommission
}

// TotalCommission sums every commission counter on the node. The personal
// mining reward is not a commission and is excluded.
func (n *Node) TotalCommission() float64 {
	return n.buyLicenseCommission +
		n.miningRewardCommission +
		n.miningRewardSharedCommission +
		n.miningRewardOtherCommission
}
