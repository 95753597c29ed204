package api

import (
	"net/http"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"

	"github.com/paw-chain/multiswap/x/multiswap/keeper"
	"github.com/paw-chain/multiswap/x/multiswap/types"
)

// handleCustodyDeposit credits funds the custodian has received for an account.
func (s *Server) handleCustodyDeposit(c *gin.Context) {
	var req CustodyDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	if !requireInt(c, "amount", req.Amount) {
		return
	}
	account, err := sdk.AccAddressFromBech32(req.Account)
	if err != nil {
		badRequest(c, "Invalid account", err)
		return
	}
	coin := sdk.Coin{Denom: req.Denom, Amount: req.Amount}

	var balance sdk.Coin
	if !s.execute(c, func(ctx sdk.Context, k *keeper.Keeper) error {
		if err := k.NotifyDeposit(ctx, account, coin); err != nil {
			return err
		}
		balance = sdk.NewCoin(coin.Denom, k.BalanceOf(ctx, account, coin.Denom))
		return nil
	}) {
		return
	}
	s.logger.Info("deposit credited", "custodian", c.GetString(ctxKeySubject), "account", req.Account, "amount", coin.String())
	c.JSON(http.StatusOK, DepositsResponse{Account: account.String(), Balances: sdk.NewCoins(balance)})
}

func (s *Server) handleGetPendingWithdrawals(c *gin.Context) {
	var pending []types.PendingWithdrawal
	if !s.query(c, func(ctx sdk.Context, k *keeper.Keeper) error {
		var err error
		pending, err = k.GetPendingWithdrawals(ctx)
		return err
	}) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawals": pending})
}

// handleConfirmWithdrawal settles (success=true) or reverts a pending withdrawal.
func (s *Server) handleConfirmWithdrawal(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req ConfirmWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}

	var w types.PendingWithdrawal
	if !s.execute(c, func(ctx sdk.Context, k *keeper.Keeper) error {
		var err error
		w, err = k.ConfirmWithdrawal(ctx, id, *req.Success)
		return err
	}) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawal": w, "success": *req.Success})
}
