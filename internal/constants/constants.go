package constants

// Centralized constants for env keys, routes and response fields.
const (
	// Environment variable keys
	EnvConfigPath = "HEXFIELD_CONFIG"
	EnvDBPath     = "HEXFIELD_DB"
	EnvBoardKinds = "HEXFIELD_BOARD_KINDS"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// Routes used by the backend router
const (
	RouteAPIPrefix     = "/api"
	RouteVersion       = "/version"
	RouteBoardKinds    = "/board-kinds"
	RouteBattles       = "/battles"
	RouteBattleByID    = "/battles/:battleID"
	RouteBattleOrders  = "/battles/:battleID/orders"
	RouteBattleResolve = "/battles/:battleID/resolve"
	RouteBattleEvents  = "/battles/:battleID/events"
	RouteBattleResult  = "/battles/:battleID/result"
	RouteBattleStream  = "/battles/:battleID/stream"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyStatus  = "status"
	JSONKeyDetails = "details"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest      = "Invalid request"
	ErrInvalidBattleID     = "Invalid battle ID"
	ErrBattleNotFound      = "Battle not found"
	ErrFailedCreateBattle  = "Failed to create battle"
	ErrFailedFetchBattles  = "Failed to fetch battles"
	ErrFailedFetchEvents   = "Failed to fetch events"
	ErrFailedEncodeBattle  = "Failed to encode battle"
	ErrFailedUpdateBattle  = "Failed to update battle"
	ErrFailedDeleteBattle  = "Failed to delete battle"
	ErrBattleFinished      = "Battle already finished"
	ErrBattleNotFinished   = "Battle not finished yet"
	ErrUnknownBoardKind    = "Unknown board kind"
	ErrNoUnitsProvided     = "At least one unit per side is required"
	ErrOrdersNotAccepted   = "Orders are not being accepted in this phase"
	ErrFailedStreamUpgrade = "Failed to upgrade event stream"
)

// Logging field names
const (
	LogFieldBattleID = "battle_id"
	LogFieldKind     = "board_kind"
	LogFieldSeed     = "seed"
	LogFieldRound    = "round"
	LogFieldPhase    = "phase"
	LogFieldAddr     = "addr"
)
