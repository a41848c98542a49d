package actors

import (
	"errors"
	"fmt"

	"github.com/asynkron/protoactor-go/actor"

	"Dominion/internal/game/engine"
	"Dominion/internal/shared/actor/messages"
	"Dominion/modules/kit/errx"
)

type GameHandler struct{}

var GH = &GameHandler{}

func (h *GameHandler) HandleCreateRoom(ctx actor.Context, p *GameActor, req *messages.CreateRoom) {
	if req.SessionID() == "" {
		ctx.Respond(&messages.CreateRoomReply{Fail: &messages.Fail{
			Reason:  "INVALID_SESSION",
			Message: "Session is invalid.",
		}})
		return
	}

	// 房间建出来是空的 LOBBY：创建者随后照常走 Join 入座。
	room := p.registry.Create(req.Name, req.Password, req.MapSize, req.Speed, req.SessionID(), req.HostName)
	ctx.Respond(&messages.CreateRoomReply{RoomID: room.ID})
}

func (h *GameHandler) HandleListRooms(ctx actor.Context, p *GameActor, req *messages.ListRooms) {
	rooms := make([]messages.RoomSummary, 0, p.registry.Count())
	for s := range p.registry.List() {
		rooms = append(rooms, messages.RoomSummary{
			ID:          s.ID,
			Name:        s.Name,
			Host:        s.Host,
			Players:     s.Players,
			MaxPlayers:  s.MaxPlayers,
			Phase:       string(s.Phase),
			HasPassword: s.HasPassword,
		})
	}
	ctx.Respond(&messages.RoomListReply{Rooms: rooms})
}

func (h *GameHandler) HandleJoinRoom(ctx actor.Context, p *GameActor, req *messages.JoinRoom) {
	room, player, err := p.registry.Join(req.RoomID, req.SessionID(), req.Password, req.Name)
	if err != nil {
		ctx.Respond(&messages.JoinRoomReply{Fail: failFrom(err)})
		return
	}

	state := snapshot(room)
	ctx.Respond(&messages.JoinRoomReply{State: state})

	p.gw.System(members(room), fmt.Sprintf("%s joined the game.", player.Name))
	p.gw.Broadcast(members(room), "stateUpdate", state)
}

func (h *GameHandler) HandlePlayerAction(ctx actor.Context, p *GameActor, req *messages.PlayerAction) {
	room, ok := p.registry.FindBySession(req.SessionID())
	if !ok {
		// 不在房间里的动作静默忽略。
		ctx.Respond(&messages.ActionReply{})
		return
	}

	act, err := engine.Decode(req.Type, req.TerritoryID, req.TargetID, req.Duration, req.Terms)
	if err != nil {
		ctx.Respond(&messages.ActionReply{Fail: failFrom(err)})
		return
	}

	res, err := p.processor.Apply(room, req.SessionID(), act, false)
	if err != nil {
		// 业务拒绝只回给发起方，不惊动房间。
		ctx.Respond(&messages.ActionReply{Fail: failFrom(err)})
		return
	}

	ctx.Respond(&messages.ActionReply{})

	if res.DirectTo != "" {
		p.gw.Push(res.DirectTo, res.DirectEvent, res.DirectPayload)
	}
	if res.StateChanged {
		if res.Notice != "" {
			p.gw.System(members(room), res.Notice)
		}
		p.gw.Broadcast(members(room), "stateUpdate", snapshot(room))
	}
}

func (h *GameHandler) HandleChat(ctx actor.Context, p *GameActor, req *messages.Chat) {
	room, ok := p.registry.FindBySession(req.SessionID())
	if !ok || req.Text == "" {
		return
	}
	from := room.Players[req.SessionID()]
	if from == nil {
		return
	}
	p.gw.Chat(members(room), from.Name, req.Text)
}

// HandleDisconnect 走离场流程：持回合者先被系统代发 END_TURN 让出回合，
// 再移出房间；房主离开则迁移房主；房间空了就地销毁。
func (h *GameHandler) HandleDisconnect(ctx actor.Context, p *GameActor, req *messages.Disconnect) {
	room, ok := p.registry.FindBySession(req.SessionID())
	if !ok {
		return
	}

	leaver := room.Players[req.SessionID()]
	name := req.SessionID()
	if leaver != nil {
		name = leaver.Name
	}

	if room.CurrentTurnID == req.SessionID() && len(room.TurnOrder) > 1 {
		if _, err := p.processor.Apply(room, req.SessionID(), engine.EndTurn{}, true); err != nil {
			ctx.Logger().Error("代发回合结束失败", "room_id", room.ID, "err", err)
		}
	}

	room, migrated, newHost, destroyed := p.registry.Leave(room.ID, req.SessionID())
	if destroyed {
		return
	}

	p.gw.System(members(room), fmt.Sprintf("%s left the game.", name))
	if migrated && newHost != nil {
		p.gw.System(members(room), fmt.Sprintf("%s is now the host.", newHost.Name))
	}
	p.gw.Broadcast(members(room), "stateUpdate", snapshot(room))
}

func failFrom(err error) *messages.Fail {
	var e *errx.Error
	if errors.As(err, &e) {
		return &messages.Fail{Reason: e.CodeText(), Message: e.Msg()}
	}
	return &messages.Fail{Reason: "INTERNAL", Message: "Internal error."}
}
