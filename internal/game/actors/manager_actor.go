package actors

import (
	"math/rand"

	"github.com/asynkron/protoactor-go/actor"

	"Dominion/internal/game/gateway"
	"Dominion/internal/shared/actor/messages"
	"Dominion/internal/shared/gameconfig/rules"
)

// gameShard 预留给将来按分片拆多个 GameActor；目前全部房间走同一个。
type gameShard int

const defaultShard = gameShard(0)

type ManagerActor struct {
	rules      rules.Rules
	rng        *rand.Rand
	gw         gateway.Gateway
	gameActors map[gameShard]*actor.PID
}

func NewManagerActor(r rules.Rules, rng *rand.Rand, gw gateway.Gateway) *ManagerActor {
	return &ManagerActor{
		rules:      r,
		rng:        rng,
		gw:         gw,
		gameActors: make(map[gameShard]*actor.PID),
	}
}

func (m *ManagerActor) Receive(ctx actor.Context) {
	req, ok := ctx.Message().(messages.GameMessage)
	if !ok {
		return
	}
	if req == nil {
		ctx.Respond("nil request")
		return
	}

	ctx.Forward(m.getOrSpawn(ctx, defaultShard))
}

func (m *ManagerActor) getOrSpawn(ctx actor.Context, shard gameShard) *actor.PID {
	if pid, ok := m.gameActors[shard]; ok && pid != nil {
		return pid
	}

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewGameActor(m.rules, m.rng, m.gw)
	})
	pid := ctx.Spawn(props)
	m.gameActors[shard] = pid
	return pid
}
