package battle

// ObjectiveType is the closed set of objective semantics the core evaluates.
type ObjectiveType string

const (
	ObjectiveAnnihilate ObjectiveType = "annihilate"
	ObjectiveRout       ObjectiveType = "rout"
	ObjectiveHold       ObjectiveType = "hold"
	ObjectiveControl    ObjectiveType = "control"
	ObjectiveEscort     ObjectiveType = "escort"
	ObjectiveDestroy    ObjectiveType = "destroy"
	ObjectiveSurvive    ObjectiveType = "survive"
	ObjectiveCapture    ObjectiveType = "capture"
)

// Objective is a victory condition authored by the encounter layer and only
// evaluated by the core.
type Objective struct {
	ID       string        `json:"id"`
	Type     ObjectiveType `json:"type"`
	Side     Side          `json:"side"`
	Required bool          `json:"required"`

	// TargetUnitID names the escort or destroy subject where relevant.
	TargetUnitID string `json:"target_unit_id,omitempty"`

	Progress  int  `json:"progress"`
	Target    int  `json:"target"`
	Completed bool `json:"completed"`
	Failed    bool `json:"failed"`

	BonusReward int `json:"bonus_reward"`
}
