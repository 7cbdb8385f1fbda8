package battle

import "github.com/walterdalec/hexfield/internal/hexmap"

// OrderKind is the closed set of intents a commander can queue.
type OrderKind string

const (
	OrderMove     OrderKind = "move"
	OrderAttack   OrderKind = "attack"
	OrderCast     OrderKind = "cast"
	OrderAbility  OrderKind = "ability"
	OrderItem     OrderKind = "item"
	OrderGuard    OrderKind = "guard"
	OrderWait     OrderKind = "wait"
	OrderInteract OrderKind = "interact"
)

// TimingBucket interleaves same-round orders deterministically: all early
// orders resolve before standard, standard before late.
type TimingBucket string

const (
	TimingEarly    TimingBucket = "early"
	TimingStandard TimingBucket = "standard"
	TimingLate     TimingBucket = "late"
)

// Rank orders buckets for sorting (early < standard < late).
func (t TimingBucket) Rank() int {
	switch t {
	case TimingEarly:
		return 0
	case TimingLate:
		return 2
	default:
		return 1
	}
}

// ReasonCode enumerates why an order failed validation.
type ReasonCode string

const (
	ReasonUnknownActor    ReasonCode = "unknown_actor"
	ReasonActorCannotAct  ReasonCode = "actor_cannot_act"
	ReasonInsufficientAP  ReasonCode = "insufficient_ap"
	ReasonInsufficientSta ReasonCode = "insufficient_stamina"
	ReasonOutOfRange      ReasonCode = "out_of_range"
	ReasonNoLineOfSight   ReasonCode = "no_line_of_sight"
	ReasonImpassable      ReasonCode = "impassable_destination"
	ReasonOccupied        ReasonCode = "occupied_destination"
	ReasonUnknownAbility  ReasonCode = "unknown_ability"
	ReasonUnknownItem     ReasonCode = "unknown_item"
	ReasonInvalidTarget   ReasonCode = "invalid_target"
	ReasonBadPath         ReasonCode = "bad_path"
	ReasonDuplicateOrder  ReasonCode = "duplicate_order"
)

// QueuedOrder is one declared intent. It is created by the submission layer,
// stamped by the validator and consumed exactly once by the orchestrator;
// after validation it is never mutated.
type QueuedOrder struct {
	ActorID string       `json:"actor_id"`
	Kind    OrderKind    `json:"kind"`
	Timing  TimingBucket `json:"timing"`

	// Move/flee target data.
	Dest hexmap.Axial   `json:"dest,omitempty"`
	Path []hexmap.Axial `json:"path,omitempty"`
	// Disengage completes an intercepted move at the price of opportunity
	// attacks from every zone-of-control holder left behind.
	Disengage bool `json:"disengage,omitempty"`

	// Attack/cast/ability/item target data.
	TargetID  string `json:"target_id,omitempty"`
	AbilityID string `json:"ability_id,omitempty"`
	ItemID    string `json:"item_id,omitempty"`

	// InteractID names the objective an interact order works on.
	InteractID string `json:"interact_id,omitempty"`

	APCost int `json:"ap_cost"`

	Valid   bool         `json:"valid"`
	Reasons []ReasonCode `json:"reasons,omitempty"`
}
