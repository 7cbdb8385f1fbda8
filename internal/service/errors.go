package service

import "errors"

var (
	ErrBattleNotFound     = errors.New("battle not found")
	ErrBattleFinished     = errors.New("battle already finished")
	ErrBattleNotFinished  = errors.New("battle not finished yet")
	ErrOrdersLocked       = errors.New("orders are locked; resolving current round")
	ErrUnknownBoardKind   = errors.New("unknown board kind")
	ErrNoUnits            = errors.New("at least one unit per side is required")
	ErrDuplicateUnitID    = errors.New("duplicate unit id in roster")
	ErrDeploymentOverflow = errors.New("roster does not fit the deployment zone")
	ErrUnknownSide        = errors.New("unknown side")
)
