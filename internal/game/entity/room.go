package entity

// Phase 是房间的粗粒度生命周期状态。
type Phase string

const (
	PhaseLobby  Phase = "LOBBY"
	PhaseActive Phase = "ACTIVE"
	PhaseEnded  Phase = "ENDED"
)

// Settings 在房间创建后不再变化。
type Settings struct {
	MapSize    string `json:"mapSize"`
	Speed      string `json:"speed"`
	MaxPlayers int    `json:"maxPlayers"`
	StartMoney int    `json:"startMoney"`
}

// Room 是一局游戏的权威状态。
//
// 所有写入都发生在单一 actor 邮箱内（见 actors 包），实体本身不加锁。
// TurnOrder 显式维护回合顺序：依赖 map 遍历顺序在玩家进出后是不可靠的。
type Room struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	HostID   string   `json:"hostId"`
	HostName string   `json:"hostName"`
	Password string   `json:"-"`
	Settings Settings `json:"settings"`

	Phase         Phase  `json:"phase"`
	Turn          int    `json:"turn"`
	CurrentTurnID string `json:"currentTurnId"`

	Territories    map[string]*Territory `json:"territories"`
	TerritoryOrder []string              `json:"-"` // 生成顺序 T-1..T-N，保证遍历确定性
	Players        map[string]*Player    `json:"players"`
	TurnOrder      []string              `json:"turnOrder"`
}

func NewRoom(id, name, hostID, hostName, password string, settings Settings, territories map[string]*Territory, order []string) *Room {
	return &Room{
		ID:             id,
		Name:           name,
		HostID:         hostID,
		HostName:       hostName,
		Password:       password,
		Settings:       settings,
		Phase:          PhaseLobby,
		Turn:           1,
		Territories:    territories,
		TerritoryOrder: order,
		Players:        make(map[string]*Player),
	}
}

// AddPlayer 把玩家加入房间。首位玩家成为回合持有者，房间进入 ACTIVE。
func (r *Room) AddPlayer(p *Player) {
	r.Players[p.ID] = p
	r.TurnOrder = append(r.TurnOrder, p.ID)
	if len(r.TurnOrder) == 1 {
		r.CurrentTurnID = p.ID
		r.Phase = PhaseActive
	}
}

// RemovePlayer 把玩家移出房间并维护 TurnOrder。
// 调用方约定：若该玩家持有回合，必须先走 END_TURN 流转再调用本方法。
func (r *Room) RemovePlayer(id string) {
	delete(r.Players, id)
	for i, pid := range r.TurnOrder {
		if pid == id {
			r.TurnOrder = append(r.TurnOrder[:i], r.TurnOrder[i+1:]...)
			break
		}
	}
	if r.CurrentTurnID == id {
		// 兜底：调用方没先转走回合时，不允许留下失效指针。
		if len(r.TurnOrder) > 0 {
			r.CurrentTurnID = r.TurnOrder[0]
		} else {
			r.CurrentTurnID = ""
		}
	}
}

// MigrateHost 在房主离开后指定新房主（TurnOrder 首位），返回新房主。
func (r *Room) MigrateHost() (*Player, bool) {
	if len(r.TurnOrder) == 0 {
		return nil, false
	}
	next, ok := r.Players[r.TurnOrder[0]]
	if !ok {
		return nil, false
	}
	r.HostID = next.ID
	r.HostName = next.Name
	return next, true
}

// NextPlayer 计算下一个回合持有者；房间没人时返回 false。
// 规则：未设持有者 → 顺序首位；否则顺序中的下一位，末位回绕到首位。
func (r *Room) NextPlayer() (string, bool) {
	if len(r.TurnOrder) == 0 {
		return "", false
	}
	if r.CurrentTurnID == "" {
		return r.TurnOrder[0], true
	}
	for i, pid := range r.TurnOrder {
		if pid == r.CurrentTurnID {
			return r.TurnOrder[(i+1)%len(r.TurnOrder)], true
		}
	}
	// 当前持有者已不在顺序里（理论上不该发生），回到首位。
	return r.TurnOrder[0], true
}

// UnclaimedIDs 按生成顺序返回所有无主领土 id。
func (r *Room) UnclaimedIDs() []string {
	out := make([]string, 0, len(r.TerritoryOrder))
	for _, id := range r.TerritoryOrder {
		if t := r.Territories[id]; t != nil && !t.Owned() {
			out = append(out, id)
		}
	}
	return out
}

// OwnedIDs 按生成顺序返回某玩家拥有的领土 id。
func (r *Room) OwnedIDs(playerID string) []string {
	out := make([]string, 0, 8)
	for _, id := range r.TerritoryOrder {
		if t := r.Territories[id]; t != nil && t.OwnerID == playerID {
			out = append(out, id)
		}
	}
	return out
}

func (r *Room) OwnedCount(playerID string) int {
	n := 0
	for _, t := range r.Territories {
		if t.OwnerID == playerID {
			n++
		}
	}
	return n
}

func (r *Room) Empty() bool {
	return len(r.Players) == 0
}
