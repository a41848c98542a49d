// Package registry 维护进程内的房间表与玩家→房间索引。
//
// 不做并发防护：所有调用都来自同一个 GameActor 的邮箱。
package registry

import (
	"iter"
	"math/rand"

	"Dominion/internal/game/entity"
	"Dominion/internal/game/mapgen"
	"Dominion/internal/shared/gameconfig/rules"
)

// 去掉易混淆字符（0/O、1/I/L）的房间号字母表。
const idAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const idLength = 6

// Summary 是房间列表里的一行。
type Summary struct {
	ID          string
	Name        string
	Host        string
	Players     int
	MaxPlayers  int
	Phase       entity.Phase
	HasPassword bool
}

type Registry struct {
	rooms    map[string]*entity.Room
	byPlayer map[string]string // sessionID -> roomID
	rules    rules.Rules
	rng      *rand.Rand
}

func New(r rules.Rules, rng *rand.Rand) *Registry {
	return &Registry{
		rooms:    make(map[string]*entity.Room),
		byPlayer: make(map[string]string),
		rules:    r,
		rng:      rng,
	}
}

// Create 生成地图、分配房间号并登记一个空房间（LOBBY）。
// 创建者随后和其他玩家一样走 Join 入座：首位入座者拿到回合并激活房间。
func (g *Registry) Create(name, password, mapSize, speed, hostID, hostName string) *entity.Room {
	terrs, order := mapgen.Generate(mapSize, g.rng, g.rules)
	settings := entity.Settings{
		MapSize:    mapSize,
		Speed:      speed,
		MaxPlayers: g.rules.MaxPlayers,
		StartMoney: g.rules.StartMoney,
	}
	room := entity.NewRoom(g.newID(), name, hostID, hostName, password, settings, terrs, order)
	g.rooms[room.ID] = room
	return room
}

// Join 校验密码与容量后把玩家加入房间。
func (g *Registry) Join(roomID, sessionID, password, name string) (*entity.Room, *entity.Player, error) {
	if _, ok := g.byPlayer[sessionID]; ok {
		return nil, nil, ErrAlreadyInRoom
	}
	room, ok := g.rooms[roomID]
	if !ok {
		return nil, nil, ErrRoomNotFound
	}
	if room.Password != "" && room.Password != password {
		return nil, nil, ErrWrongPassword
	}
	if len(room.Players) >= room.Settings.MaxPlayers {
		return nil, nil, ErrRoomFull
	}
	p := g.newPlayer(room, sessionID, name)
	room.AddPlayer(p)
	g.byPlayer[sessionID] = room.ID
	return room, p, nil
}

// Leave 把玩家移出房间。返回值依次为：房间、是否发生房主迁移、新房主、房间是否已被销毁。
// 回合流转是调用方的事：若离开者持有回合，先走回合结算再调用 Leave。
func (g *Registry) Leave(roomID, sessionID string) (room *entity.Room, migrated bool, newHost *entity.Player, destroyed bool) {
	room, ok := g.rooms[roomID]
	if !ok {
		return nil, false, nil, false
	}
	wasHost := room.HostID == sessionID
	room.RemovePlayer(sessionID)
	delete(g.byPlayer, sessionID)
	if room.Empty() {
		delete(g.rooms, room.ID)
		return room, false, nil, true
	}
	if wasHost {
		newHost, migrated = room.MigrateHost()
	}
	return room, migrated, newHost, false
}

func (g *Registry) Get(id string) (*entity.Room, bool) {
	room, ok := g.rooms[id]
	return room, ok
}

// FindBySession 返回玩家所在的房间。
func (g *Registry) FindBySession(sessionID string) (*entity.Room, bool) {
	id, ok := g.byPlayer[sessionID]
	if !ok {
		return nil, false
	}
	room, ok := g.rooms[id]
	return room, ok
}

func (g *Registry) Count() int { return len(g.rooms) }

// List 惰性产出所有房间的摘要，供大厅列表使用。
func (g *Registry) List() iter.Seq[Summary] {
	return func(yield func(Summary) bool) {
		for _, room := range g.rooms {
			s := Summary{
				ID:          room.ID,
				Name:        room.Name,
				Host:        room.HostName,
				Players:     len(room.Players),
				MaxPlayers:  room.Settings.MaxPlayers,
				Phase:       room.Phase,
				HasPassword: room.Password != "",
			}
			if !yield(s) {
				return
			}
		}
	}
}

func (g *Registry) newPlayer(room *entity.Room, sessionID, name string) *entity.Player {
	return &entity.Player{
		ID:    sessionID,
		Name:  name,
		Color: entity.ColorForIndex(len(room.Players)),
		Resources: entity.Resources{
			Money: room.Settings.StartMoney,
		},
	}
}

func (g *Registry) newID() string {
	for {
		b := make([]byte, idLength)
		for i := range b {
			b[i] = idAlphabet[g.rng.Intn(len(idAlphabet))]
		}
		id := string(b)
		if _, ok := g.rooms[id]; !ok {
			return id
		}
	}
}
