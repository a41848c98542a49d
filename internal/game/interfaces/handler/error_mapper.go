package handler

import (
	"context"

	gameactor "Dominion/internal/game/actor"
	"Dominion/internal/shared/transport"
)

// HandleError 把 actor 门面抛出的技术错误翻译成协议码与客户端文案。
// 业务拒绝不走这里：它们以 Fail 回执的形式从 actor 返回。
func HandleError(ctx context.Context, err error) (int, string) {
	if err == nil {
		return transport.OK, ""
	}
	transport.SetErrorReason(ctx, err.Error())
	return gameactor.CodeFromError(err), "Server is busy. Please try again."
}
