package api

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/walterdalec/hexfield/internal/constants"
	"github.com/walterdalec/hexfield/internal/service"
)

// BattleHandler exposes the arena over HTTP.
type BattleHandler struct {
	arena *service.Arena
}

func NewBattleHandler(arena *service.Arena) *BattleHandler {
	return &BattleHandler{arena: arena}
}

var battleIDRegex = regexp.MustCompile("^[0-9a-f]{16}$")

// battleID extracts and validates the route param. An empty return means the
// handler already wrote a 400.
func battleID(c *gin.Context) string {
	id := c.Param("battleID")
	if !battleIDRegex.MatchString(id) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return ""
	}
	return id
}

// writeServiceError maps arena sentinel errors onto HTTP responses.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBattleNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
	case errors.Is(err, service.ErrBattleFinished):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleFinished})
	case errors.Is(err, service.ErrBattleNotFinished):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleNotFinished})
	case errors.Is(err, service.ErrOrdersLocked):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrOrdersNotAccepted})
	case errors.Is(err, service.ErrUnknownBoardKind):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownBoardKind})
	case errors.Is(err, service.ErrNoUnits):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrNoUnitsProvided})
	case errors.Is(err, service.ErrDuplicateUnitID),
		errors.Is(err, service.ErrDeploymentOverflow),
		errors.Is(err, service.ErrUnknownSide):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
	}
}
