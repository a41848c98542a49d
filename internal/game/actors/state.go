package actors

import (
	"Dominion/internal/game/entity"
	"Dominion/internal/shared/actor/messages"
)

// snapshot 把房间实体转成对客户端的权威状态视图。
// 不复用实体的 json tag：线缆形态与领域模型各自演化。
func snapshot(room *entity.Room) *messages.RoomState {
	terrs := make(map[string]messages.TerritoryState, len(room.Territories))
	for id, t := range room.Territories {
		terrs[id] = messages.TerritoryState{
			ID:         t.ID,
			Name:       t.Name,
			OwnerID:    t.OwnerID,
			Units:      t.Units,
			Production: t.Production,
			X:          t.X,
			Y:          t.Y,
		}
	}

	players := make(map[string]messages.PlayerState, len(room.Players))
	for id, pl := range room.Players {
		players[id] = messages.PlayerState{
			ID:         pl.ID,
			Name:       pl.Name,
			Color:      pl.Color,
			Ready:      pl.Ready,
			Money:      pl.Resources.Money,
			Military:   pl.Resources.Military,
			Production: pl.Resources.Production,
			Research:   pl.Resources.Research,
		}
	}

	order := make([]string, len(room.TurnOrder))
	copy(order, room.TurnOrder)

	return &messages.RoomState{
		ID:            room.ID,
		Name:          room.Name,
		HostID:        room.HostID,
		HostName:      room.HostName,
		Phase:         string(room.Phase),
		Turn:          room.Turn,
		CurrentTurnID: room.CurrentTurnID,
		MapSize:       room.Settings.MapSize,
		MaxPlayers:    room.Settings.MaxPlayers,
		Territories:   terrs,
		Players:       players,
		TurnOrder:     order,
	}
}

// members 返回房间当前所有成员的会话 id（广播目标）。
func members(room *entity.Room) []string {
	out := make([]string, len(room.TurnOrder))
	copy(out, room.TurnOrder)
	return out
}
