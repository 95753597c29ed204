package api

import (
	"net/http"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"

	"github.com/paw-chain/multiswap/x/multiswap/keeper"
	"github.com/paw-chain/multiswap/x/multiswap/types"
)

// handleSwap runs a single swap action for the caller.
func (s *Server) handleSwap(c *gin.Context) {
	var action types.SwapAction
	if err := c.ShouldBindJSON(&action); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	account := callerAccount(c)

	var resp SwapResponse
	if !s.execute(c, func(ctx sdk.Context, k *keeper.Keeper) error {
		var err error
		resp.AmountOut, err = k.Swap(ctx, account, action)
		return err
	}) {
		return
	}
	c.JSON(http.StatusOK, resp)
}

// handleExecute runs a routed trade. Either every action lands or none does.
func (s *Server) handleExecute(c *gin.Context) {
	var req ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	account := callerAccount(c)

	var resp ExecuteResponse
	if !s.execute(c, func(ctx sdk.Context, k *keeper.Keeper) error {
		var err error
		resp.AmountsOut, err = k.Execute(ctx, account, req.Actions)
		return err
	}) {
		return
	}
	c.JSON(http.StatusOK, resp)
}
