package engine

import "Dominion/modules/kit/errx"

// 全部是业务拒绝：只回给发起方，不广播，不留下半套状态。
var (
	ErrNotYourTurn       = errx.NewBiz("NOT_YOUR_TURN", "It's not your turn.")
	ErrTerritoryNotFound = errx.NewBiz("TERRITORY_NOT_FOUND", "Territory not found.")
	ErrAlreadyClaimed    = errx.NewBiz("ALREADY_CLAIMED", "Territory is already claimed.")
	ErrInsufficientFunds = errx.NewBiz("INSUFFICIENT_FUNDS", "Insufficient funds.")
	ErrNoLandAvailable   = errx.NewBiz("NO_LAND_AVAILABLE", "No unclaimed land available.")
	ErrNoOwnedTerritory  = errx.NewBiz("NO_OWNED_TERRITORY", "You don't own any territory.")
	ErrTargetNotFound    = errx.NewBiz("TARGET_NOT_FOUND", "Target not found.")
	ErrNoAttackForce     = errx.NewBiz("NO_ATTACK_FORCE", "No territory with units to attack from.")
	ErrUnknownAction     = errx.NewBiz("UNKNOWN_ACTION", "Unknown action.")
	ErrGameEnded         = errx.NewBiz("GAME_ENDED", "The game has ended.")
)
