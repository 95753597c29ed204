package api

import (
	"errors"
	"net/http"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"

	"github.com/paw-chain/multiswap/x/multiswap/keeper"
	"github.com/paw-chain/multiswap/x/multiswap/types"
)

func (s *Server) handleGetDeposits(c *gin.Context) {
	account, ok := addressParam(c)
	if !ok {
		return
	}
	resp := DepositsResponse{Account: account.String()}
	if !s.query(c, func(ctx sdk.Context, k *keeper.Keeper) error {
		resp.Balances = k.GetDeposits(ctx, account)
		return nil
	}) {
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGetDeposit(c *gin.Context) {
	account, ok := addressParam(c)
	if !ok {
		return
	}
	denom := c.Param("denom")
	if err := sdk.ValidateDenom(denom); err != nil {
		badRequest(c, "Invalid denom", err)
		return
	}
	var balance sdk.Coin
	if !s.query(c, func(ctx sdk.Context, k *keeper.Keeper) error {
		balance = sdk.NewCoin(denom, k.BalanceOf(ctx, account, denom))
		return nil
	}) {
		return
	}
	c.JSON(http.StatusOK, balance)
}

// handleRequestWithdrawal moves funds out of the caller's ledger toward the
// custodian. The withdrawal is settled when the custodian completed it right
// after the request committed, and pending otherwise.
func (s *Server) handleRequestWithdrawal(c *gin.Context) {
	var req WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	if !requireInt(c, "amount", req.Amount) {
		return
	}
	account := callerAccount(c)
	coin := sdk.Coin{Denom: req.Denom, Amount: req.Amount}

	var resp WithdrawalResponse
	if !s.execute(c, func(ctx sdk.Context, k *keeper.Keeper) error {
		var err error
		resp.Withdrawal, resp.Settled, err = k.RequestWithdrawal(ctx, account, coin)
		return err
	}) {
		return
	}
	if !resp.Settled && !s.query(c, func(ctx sdk.Context, k *keeper.Keeper) error {
		_, err := k.GetPendingWithdrawal(ctx, resp.Withdrawal.Id)
		if errors.Is(err, types.ErrNotFound) {
			resp.Settled = true
			return nil
		}
		return err
	}) {
		return
	}

	status := http.StatusAccepted
	if resp.Settled {
		status = http.StatusOK
	}
	c.JSON(status, resp)
}
