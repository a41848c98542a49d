package ws

import (
	"context"

	gameactor "Dominion/internal/game/actor"
	"Dominion/internal/game/interfaces/handler"
	"Dominion/internal/game/interfaces/handler/ws/dto"
	"Dominion/internal/shared/actor/messages"
	"Dominion/internal/shared/transport"
	"Dominion/internal/shared/transport/ws"
	"Dominion/modules/kit/logx"
)

const (
	defaultRoomName = "New Server"
	defaultHostName = "Host"
)

type WsHandler struct {
	rt  *gameactor.Runtime
	log logx.Logger
}

func NewWsHandler(rt *gameactor.Runtime, log logx.Logger) *WsHandler {
	return &WsHandler{rt: rt, log: log}
}

func (h *WsHandler) RegisterRoutes(r *ws.Router) {
	serverGroup := r.Group("server")
	serverGroup.Handle("create", h.createServer)
	serverGroup.Handle("list", h.listServers)
	serverGroup.Handle("join", h.joinServer)

	gameGroup := r.Group("game")
	gameGroup.Handle("action", h.playerAction)
	gameGroup.Handle("chat", h.chat)
}

func (h *WsHandler) createServer(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	if wsReq == nil || wsReq.Body == nil || wsReq.Conn == nil || wsResp == nil || wsResp.Body == nil {
		h.fail(wsResp, transport.InvalidParam, "Invalid request.")
		return
	}

	var req dto.CreateServerReq
	if err := ws.BindJSON(wsReq, &req); err != nil {
		h.fail(wsResp, transport.InvalidParam, "Invalid request.")
		return
	}

	sid, ok := ws.SessionID(wsReq.Conn)
	if !ok {
		h.fail(wsResp, transport.SessionInvalid, "Session is invalid.")
		return
	}

	// 缺省兜底：名字缺失不是错误。
	if req.Name == "" {
		req.Name = defaultRoomName
	}
	if req.HostName == "" {
		req.HostName = defaultHostName
	}

	reply, err := h.rt.CreateRoom(ctx, &messages.CreateRoom{
		GameBaseMessage: messages.GameBaseMessage{SessionId: sid},
		Name:            req.Name,
		Password:        req.Password,
		MapSize:         req.MapSize,
		Speed:           req.Speed,
		HostName:        req.HostName,
	})
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	if reply.Fail != nil {
		h.reject(ctx, wsResp, reply.Fail)
		return
	}

	wsReq.Conn.Push("serverCreated", dto.CreateServerResp{RoomID: reply.RoomID})

	// 创建者随后入座：首位入座者激活房间并拿到回合。
	join, err := h.rt.JoinRoom(ctx, &messages.JoinRoom{
		GameBaseMessage: messages.GameBaseMessage{SessionId: sid},
		RoomID:          reply.RoomID,
		Password:        req.Password,
		Name:            req.HostName,
	})
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	if join.Fail != nil {
		wsReq.Conn.Push("joinFailed", map[string]string{"reason": join.Fail.Message})
		h.reject(ctx, wsResp, join.Fail)
		return
	}

	wsReq.Conn.Push("initialState", join.State)
	h.ok(wsResp, dto.CreateServerResp{RoomID: reply.RoomID})
}

func (h *WsHandler) listServers(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	if wsReq == nil || wsReq.Body == nil || wsReq.Conn == nil || wsResp == nil || wsResp.Body == nil {
		h.fail(wsResp, transport.InvalidParam, "Invalid request.")
		return
	}

	sid, ok := ws.SessionID(wsReq.Conn)
	if !ok {
		h.fail(wsResp, transport.SessionInvalid, "Session is invalid.")
		return
	}

	reply, err := h.rt.ListRooms(ctx, &messages.ListRooms{
		GameBaseMessage: messages.GameBaseMessage{SessionId: sid},
	})
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}

	wsReq.Conn.Push("serverList", reply.Rooms)
	h.ok(wsResp, reply.Rooms)
}

func (h *WsHandler) joinServer(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	if wsReq == nil || wsReq.Body == nil || wsReq.Conn == nil || wsResp == nil || wsResp.Body == nil {
		h.fail(wsResp, transport.InvalidParam, "Invalid request.")
		return
	}

	var req dto.JoinServerReq
	if err := ws.BindJSON(wsReq, &req); err != nil {
		h.fail(wsResp, transport.InvalidParam, "Invalid request.")
		return
	}

	sid, ok := ws.SessionID(wsReq.Conn)
	if !ok {
		h.fail(wsResp, transport.SessionInvalid, "Session is invalid.")
		return
	}
	if req.DisplayName == "" {
		req.DisplayName = defaultHostName
	}

	reply, err := h.rt.JoinRoom(ctx, &messages.JoinRoom{
		GameBaseMessage: messages.GameBaseMessage{SessionId: sid},
		RoomID:          req.RoomID,
		Password:        req.Password,
		Name:            req.DisplayName,
	})
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	if reply.Fail != nil {
		// 入房失败只通知发起方。
		wsReq.Conn.Push("joinFailed", map[string]string{"reason": reply.Fail.Message})
		h.reject(ctx, wsResp, reply.Fail)
		return
	}

	wsReq.Conn.Push("initialState", reply.State)
	h.ok(wsResp, reply.State)
}

func (h *WsHandler) playerAction(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	if wsReq == nil || wsReq.Body == nil || wsReq.Conn == nil || wsResp == nil || wsResp.Body == nil {
		h.fail(wsResp, transport.InvalidParam, "Invalid request.")
		return
	}

	var req dto.PlayerActionReq
	if err := ws.BindJSON(wsReq, &req); err != nil {
		h.fail(wsResp, transport.InvalidParam, "Invalid request.")
		return
	}

	sid, ok := ws.SessionID(wsReq.Conn)
	if !ok {
		h.fail(wsResp, transport.SessionInvalid, "Session is invalid.")
		return
	}

	reply, err := h.rt.PlayerAction(ctx, &messages.PlayerAction{
		GameBaseMessage: messages.GameBaseMessage{SessionId: sid},
		Type:            req.Type,
		TerritoryID:     req.TerritoryID,
		TargetID:        req.TargetID,
		Duration:        req.Duration,
		Terms:           req.Terms,
	})
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	if reply.Fail != nil {
		wsReq.Conn.Push("actionFailed", map[string]string{
			"reason":  reply.Fail.Reason,
			"message": reply.Fail.Message,
		})
		h.reject(ctx, wsResp, reply.Fail)
		return
	}

	h.ok(wsResp, nil)
}

func (h *WsHandler) chat(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	if wsReq == nil || wsReq.Body == nil || wsReq.Conn == nil || wsResp == nil || wsResp.Body == nil {
		h.fail(wsResp, transport.InvalidParam, "Invalid request.")
		return
	}

	var req dto.ChatReq
	if err := ws.BindJSON(wsReq, &req); err != nil {
		h.fail(wsResp, transport.InvalidParam, "Invalid request.")
		return
	}

	sid, ok := ws.SessionID(wsReq.Conn)
	if !ok {
		h.fail(wsResp, transport.SessionInvalid, "Session is invalid.")
		return
	}

	h.rt.Chat(&messages.Chat{
		GameBaseMessage: messages.GameBaseMessage{SessionId: sid},
		Text:            req.Text,
	})
	h.ok(wsResp, nil)
}

func (h *WsHandler) ok(resp *ws.WsMsgResp, data any) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = transport.OK
	resp.Body.Msg = data
}

func (h *WsHandler) fail(resp *ws.WsMsgResp, code int, msg string) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = code
	if msg != "" {
		resp.Body.Msg = msg
	}
}

func (h *WsHandler) reject(ctx context.Context, resp *ws.WsMsgResp, f *messages.Fail) {
	transport.SetErrorReason(ctx, f.Reason)
	logx.ReportBizReject(ctx, h.log, transport.Action(ctx), f.Reason, f.Message)
	h.fail(resp, transport.BizRejected, f.Message)
}

func (h *WsHandler) error(ctx context.Context, resp *ws.WsMsgResp, err error) {
	logx.ReportSysError(ctx, h.log, transport.Action(ctx), err)
	code, msg := handler.HandleError(ctx, err)
	h.fail(resp, code, msg)
}
