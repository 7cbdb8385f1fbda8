package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/walterdalec/hexfield/internal/battle"
	"github.com/walterdalec/hexfield/internal/constants"
)

// SubmitOrders queues one side's orders for the current round. When the other
// side has already submitted, the round resolves and the response carries the
// post-round state.
func (h *BattleHandler) SubmitOrders(c *gin.Context) {
	id := battleID(c)
	if id == "" {
		return
	}
	var req struct {
		Side   battle.Side           `json:"side"`
		Orders []*battle.QueuedOrder `json:"orders"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	st, resolved, err := h.arena.SubmitOrders(id, req.Side, req.Orders)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	// Echo validation verdicts so the client can show reason codes.
	c.JSON(http.StatusOK, gin.H{
		"resolved": resolved,
		"orders":   req.Orders,
		"state":    st,
	})
}

// Resolve forces the current round to resolve with whatever orders are queued.
func (h *BattleHandler) Resolve(c *gin.Context) {
	id := battleID(c)
	if id == "" {
		return
	}
	st, err := h.arena.ForceResolve(id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
