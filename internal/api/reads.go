package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Events returns the persisted event trail, optionally from a given round on
// via ?from=N.
func (h *BattleHandler) Events(c *gin.Context) {
	id := battleID(c)
	if id == "" {
		return
	}
	from := 0
	if s := c.Query("from"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			from = n
		}
	}
	events, err := h.arena.Events(id, from)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetResult returns the terminal summary of a finished battle.
func (h *BattleHandler) GetResult(c *gin.Context) {
	id := battleID(c)
	if id == "" {
		return
	}
	res, err := h.arena.GetResult(id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
