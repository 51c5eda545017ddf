package domain

import "time"

// RoomStatus is the round state of a room
type RoomStatus string

const (
	RoomStatusBetting        RoomStatus = "betting"
	RoomStatusResultsPending RoomStatus = "resultsPending"
	RoomStatusResults        RoomStatus = "results"
	RoomStatusClosed         RoomStatus = "closed"
)

// roomTransitions lists every allowed status edge. Closing is allowed from any open status.
var roomTransitions = map[RoomStatus][]RoomStatus{
	RoomStatusBetting:        {RoomStatusResultsPending, RoomStatusClosed},
	RoomStatusResultsPending: {RoomStatusResults, RoomStatusBetting, RoomStatusClosed},
	RoomStatusResults:        {RoomStatusBetting, RoomStatusClosed},
}

// CanTransitionTo reports whether the round state machine allows s -> next
func (s RoomStatus) CanTransitionTo(next RoomStatus) bool {
	for _, allowed := range roomTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AcceptsWagers reports whether wagers may be mutated in this status
func (s RoomStatus) AcceptsWagers() bool {
	return s == RoomStatusBetting
}

// Room is one active wagering session
type Room struct {
	ID            string       `json:"id"`
	Code          string       `json:"code"`
	DealerID      string       `json:"dealer_id"`
	MemberIDs     []string     `json:"member_ids"`
	Status        RoomStatus   `json:"status"`
	RevealedUnits []Unit       `json:"revealed_units"`
	Wagers        []WagerEntry `json:"wagers"`
	Round         int          `json:"round"`
	Version       int64        `json:"version"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// WagerEntry is the amount a member holds on one spot. Amount is always > 0.
type WagerEntry struct {
	MemberID string `json:"member_id"`
	Spot     Spot   `json:"spot"`
	Amount   int64  `json:"amount"`
}

// WagerDelta is one requested change to a member's wager on a spot.
// Positive amounts add to the wager, negative amounts remove from it.
type WagerDelta struct {
	SpotID string `json:"spot_id"`
	Amount int64  `json:"amount"`
}

// BatchResult describes an applied wager batch
type BatchResult struct {
	MemberID  string       `json:"member_id"`
	Deltas    []WagerDelta `json:"deltas"`
	NetChange int64        `json:"net_change"`
	Balance   int64        `json:"balance"`
}

// HasMember reports whether memberID belongs to the room
func (r *Room) HasMember(memberID string) bool {
	for _, id := range r.MemberIDs {
		if id == memberID {
			return true
		}
	}
	return false
}

// AddMember adds memberID if it is not present yet
func (r *Room) AddMember(memberID string) bool {
	if r.HasMember(memberID) {
		return false
	}
	r.MemberIDs = append(r.MemberIDs, memberID)
	return true
}

// WagerAmount returns the recorded amount for (memberID, spotID), or 0
func (r *Room) WagerAmount(memberID, spotID string) int64 {
	for _, w := range r.Wagers {
		if w.MemberID == memberID && w.Spot.ID == spotID {
			return w.Amount
		}
	}
	return 0
}

// AdjustWager adds delta to the (memberID, spot) entry. A negative delta never creates an
// entry, and entries that drop to zero or below are removed.
func (r *Room) AdjustWager(memberID string, spot Spot, delta int64) {
	for i := range r.Wagers {
		if r.Wagers[i].MemberID == memberID && r.Wagers[i].Spot.ID == spot.ID {
			r.Wagers[i].Amount += delta
			if r.Wagers[i].Amount <= 0 {
				r.Wagers = append(r.Wagers[:i], r.Wagers[i+1:]...)
			}
			return
		}
	}
	if delta > 0 {
		r.Wagers = append(r.Wagers, WagerEntry{MemberID: memberID, Spot: spot, Amount: delta})
	}
}

// MemberStake sums every wager the member currently holds
func (r *Room) MemberStake(memberID string) int64 {
	var total int64
	for _, w := range r.Wagers {
		if w.MemberID == memberID {
			total += w.Amount
		}
	}
	return total
}

// ClearRound drops revealed units and wagers
func (r *Room) ClearRound() {
	r.RevealedUnits = nil
	r.Wagers = nil
}

// Clone returns a deep copy so stores can hand out rooms without sharing slices
func (r *Room) Clone() *Room {
	c := *r
	c.MemberIDs = append([]string(nil), r.MemberIDs...)
	c.RevealedUnits = append([]Unit(nil), r.RevealedUnits...)
	c.Wagers = make([]WagerEntry, len(r.Wagers))
	for i, w := range r.Wagers {
		w.Spot.Suits = append([]Suit(nil), w.Spot.Suits...)
		c.Wagers[i] = w
	}
	if len(r.Wagers) == 0 {
		c.Wagers = nil
	}
	return &c
}
