package actors

import (
	"math/rand"

	"github.com/asynkron/protoactor-go/actor"

	"Dominion/internal/game/engine"
	"Dominion/internal/game/gateway"
	"Dominion/internal/game/registry"
	"Dominion/internal/shared/actor/messages"
	"Dominion/internal/shared/gameconfig/rules"
)

type State int

const (
	None State = iota
	Online
	Stopping
	Offline
)

// GameActor 独占全部房间状态：注册表、处理器都只在这个邮箱里被触碰，
// 事件跑完一条再跑下一条，房间状态不需要锁。
type GameActor struct {
	state      State
	registry   *registry.Registry
	processor  *engine.Processor
	gw         gateway.Gateway
	dispatcher *Dispatcher
}

func NewGameActor(r rules.Rules, rng *rand.Rand, gw gateway.Gateway) *GameActor {
	return &GameActor{
		state:      None,
		registry:   registry.New(r, rng),
		processor:  engine.NewProcessor(r, rng, nil),
		gw:         gw,
		dispatcher: NewDispatcher(),
	}
}

func (p *GameActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		p.state = Online
		return
	case *actor.Stopping:
		p.state = Stopping
		return
	case *actor.Stopped:
		p.state = Offline
		return
	case *actor.Restarting:
		p.state = None
		return
	case messages.GameMessage:
		if msg == nil {
			ctx.Respond("nil request")
			return
		}
		if p.state != Online {
			ctx.Respond("game actor not online")
			return
		}
		p.dispatcher.Dispatch(ctx, p, msg)
	default:
		return
	}
}

func (p *GameActor) Registry() *registry.Registry {
	return p.registry
}
