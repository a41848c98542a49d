package http

import (
	"context"
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	gameactor "Dominion/internal/game/actor"
	"Dominion/internal/game/interfaces/handler"
	"Dominion/internal/game/interfaces/handler/http/dto"
	"Dominion/internal/shared/actor/messages"
	"Dominion/internal/shared/transport"
)

type HttpHandler struct {
	rt *gameactor.Runtime
}

func NewHttpHandler(rt *gameactor.Runtime) *HttpHandler {
	return &HttpHandler{rt: rt}
}

func (h *HttpHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/rooms", h.ListRooms)
}

// ListRooms 提供给大厅页的 REST 房间列表，与 ws 的 server.list 同源。
func (h *HttpHandler) ListRooms(c *gin.Context) {
	ctx := c.Request.Context()

	reply, err := h.rt.ListRooms(ctx, &messages.ListRooms{})
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, reply.Rooms)
}

func (h *HttpHandler) ok(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, dto.Success(transport.OK, data))
}

func (h *HttpHandler) fail(c *gin.Context, code int, msg string) {
	c.JSON(nethttp.StatusOK, dto.Error(code, msg))
}

func (h *HttpHandler) error(ctx context.Context, c *gin.Context, err error) {
	code, msg := handler.HandleError(ctx, err)
	h.fail(c, code, msg)
}
