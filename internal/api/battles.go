package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/walterdalec/hexfield/internal/constants"
	"github.com/walterdalec/hexfield/internal/service"
)

// CreateBattle sets up a new battle from a roster pair and a board kind.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req service.CreateBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	st, err := h.arena.CreateBattle(req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

// GetBattle returns the current battle state by ID.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	id := battleID(c)
	if id == "" {
		return
	}
	st, err := h.arena.GetState(id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// ListOpenBattles returns summaries of every unfinished battle.
func (h *BattleHandler) ListOpenBattles(c *gin.Context) {
	recs, err := h.arena.ListOpenBattles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	out := make([]gin.H, 0, len(recs))
	for _, r := range recs {
		out = append(out, gin.H{
			"battle_id":  r.ID,
			"board_kind": r.BoardKind,
			"phase":      r.Phase,
			"round":      r.Round,
			"created_at": r.CreatedAt,
			"updated_at": r.UpdatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

// DeleteBattle removes a battle and its event trail.
func (h *BattleHandler) DeleteBattle(c *gin.Context) {
	id := battleID(c)
	if id == "" {
		return
	}
	if err := h.arena.DeleteBattle(id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "deleted"})
}

// BoardKinds lists the board kinds available for battle creation.
func (h *BattleHandler) BoardKinds(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"kinds": h.arena.BoardKinds()})
}
