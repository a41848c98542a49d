// Package engine 实现动作处理状态机：校验 → 落状态 → 给出广播内容。
package engine

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"Dominion/internal/game/entity"
	"Dominion/internal/shared/gameconfig/rules"
	"Dominion/modules/kit/logx"
)

// Result 告诉调用方动作落地后要做什么。
type Result struct {
	StateChanged bool   // true 则向全房间广播最新状态
	Notice       string // 非空则随状态广播附一条系统消息

	// 定向通知（目前只有停战提议用到），不触发状态广播。
	DirectTo      string
	DirectEvent   string
	DirectPayload any
}

type Processor struct {
	rules rules.Rules
	rng   *rand.Rand
	log   logx.Logger
}

func NewProcessor(r rules.Rules, rng *rand.Rand, l logx.Logger) *Processor {
	if l == nil {
		l = logx.NewZapLogger(nil)
	}
	return &Processor{rules: r, rng: rng, log: l}
}

// Apply 对房间执行一个动作。system 为 true 表示这是系统代发的动作
// （玩家掉线时代发 END_TURN），豁免回合持有者校验。
//
// 约定：任何错误返回都意味着房间状态没有被改动过；校验全部在变更之前完成。
func (p *Processor) Apply(room *entity.Room, actorID string, act Action, system bool) (*Result, error) {
	if room.Phase == entity.PhaseEnded {
		return nil, ErrGameEnded
	}
	if !system && room.CurrentTurnID != actorID {
		return nil, ErrNotYourTurn
	}

	switch a := act.(type) {
	case Claim:
		return p.claim(room, actorID, a.TerritoryID)
	case Expand:
		return p.expand(room, actorID)
	case BuildUnit:
		return p.buildUnit(room, actorID)
	case Attack:
		return p.attack(room, actorID, a.TargetID)
	case ProposeTruce:
		return p.proposeTruce(room, actorID, a)
	case EndTurn:
		return p.endTurn(room)
	default:
		// Decode 已挡掉未知标签，走到这里说明有变体没接上。
		p.log.Error("动作变体未接入处理器", zap.String("kind", string(act.Kind())))
		return nil, ErrUnknownAction
	}
}

func (p *Processor) claim(room *entity.Room, actorID, territoryID string) (*Result, error) {
	t, ok := room.Territories[territoryID]
	if !ok {
		return nil, ErrTerritoryNotFound
	}
	if t.Owned() {
		return nil, ErrAlreadyClaimed
	}
	player := room.Players[actorID]
	if player.Resources.Money < p.rules.ClaimCost {
		return nil, ErrInsufficientFunds
	}

	player.Resources.Money -= p.rules.ClaimCost
	t.OwnerID = actorID
	t.Units = p.rules.StartGarrison
	// 驻军同步记入兵力账目，战斗结算时的扣减才不会把兵力扣成负数。
	player.Resources.Military += p.rules.StartGarrison
	player.Resources.Production += t.Production

	return &Result{
		StateChanged: true,
		Notice:       fmt.Sprintf("%s claimed %s.", player.Name, t.Name),
	}, nil
}

func (p *Processor) expand(room *entity.Room, actorID string) (*Result, error) {
	unclaimed := room.UnclaimedIDs()
	if len(unclaimed) == 0 {
		return nil, ErrNoLandAvailable
	}
	player := room.Players[actorID]
	if player.Resources.Money < p.rules.ClaimCost {
		return nil, ErrInsufficientFunds
	}
	// 选取策略：均匀随机。rng 由外部注入，测试可给定种子。
	return p.claim(room, actorID, unclaimed[p.rng.Intn(len(unclaimed))])
}

func (p *Processor) buildUnit(room *entity.Room, actorID string) (*Result, error) {
	owned := room.OwnedIDs(actorID)
	if len(owned) == 0 {
		return nil, ErrNoOwnedTerritory
	}
	player := room.Players[actorID]
	if player.Resources.Money < p.rules.UnitCost {
		return nil, ErrInsufficientFunds
	}

	t := room.Territories[owned[p.rng.Intn(len(owned))]]
	player.Resources.Money -= p.rules.UnitCost
	t.Units++
	player.Resources.Military++

	return &Result{
		StateChanged: true,
		Notice:       fmt.Sprintf("%s trained a unit at %s.", player.Name, t.Name),
	}, nil
}

// attack 的结算规则：进攻方从自己兵力最多的领土出兵（留守 1），
// 攻 > 防 则夺取目标并驻留差值兵力，产量随领土转移；
// 否则守方保住领土，剩余兵力为 max(1, 防-攻)。出征兵力无论胜负都离开出发地。
func (p *Processor) attack(room *entity.Room, actorID, targetID string) (*Result, error) {
	target, ok := room.Territories[targetID]
	if !ok {
		return nil, ErrTerritoryNotFound
	}
	if !target.Owned() || target.OwnerID == actorID {
		return nil, ErrTargetNotFound
	}

	var source *entity.Territory
	for _, id := range room.OwnedIDs(actorID) {
		t := room.Territories[id]
		if source == nil || t.Units > source.Units {
			source = t
		}
	}
	if source == nil || source.Units < 2 {
		return nil, ErrNoAttackForce
	}

	attacker := room.Players[actorID]
	defender := room.Players[target.OwnerID]
	force := source.Units - 1
	defense := target.Units
	source.Units = 1
	attacker.Resources.Military -= force

	if force > defense {
		if defender != nil {
			defender.Resources.Production -= target.Production
			defender.Resources.Military -= defense
		}
		target.OwnerID = actorID
		target.Units = force - defense
		attacker.Resources.Production += target.Production
		attacker.Resources.Military += target.Units
		return &Result{
			StateChanged: true,
			Notice:       fmt.Sprintf("%s conquered %s!", attacker.Name, target.Name),
		}, nil
	}

	held := defense - force
	if held < 1 {
		held = 1
	}
	if defender != nil {
		defender.Resources.Military -= defense - held
	}
	target.Units = held
	return &Result{
		StateChanged: true,
		Notice:       fmt.Sprintf("%s's attack on %s was repelled.", attacker.Name, target.Name),
	}, nil
}

func (p *Processor) proposeTruce(room *entity.Room, actorID string, a ProposeTruce) (*Result, error) {
	if _, ok := room.Players[a.TargetID]; !ok {
		return nil, ErrTargetNotFound
	}
	from := room.Players[actorID]
	return &Result{
		DirectTo:    a.TargetID,
		DirectEvent: "truceProposal",
		DirectPayload: map[string]any{
			"from":     actorID,
			"fromName": from.Name,
			"duration": a.Duration,
			"terms":    a.Terms,
		},
	}, nil
}

func (p *Processor) endTurn(room *entity.Room) (*Result, error) {
	// 回合结算先于流转：所有玩家同时计收入、扣维护费。
	for _, pid := range room.TurnOrder {
		player := room.Players[pid]
		income := player.Resources.Production + player.Resources.Research
		upkeep := p.rules.UpkeepPerLand * room.OwnedCount(pid)
		player.Resources.Money += income - upkeep
		if player.Resources.Money < 0 {
			player.Resources.Money = 0
		}
	}

	next, ok := room.NextPlayer()
	if !ok {
		return &Result{StateChanged: true}, nil
	}
	if next == room.TurnOrder[0] && room.Phase == entity.PhaseActive {
		room.Turn++
	}
	room.CurrentTurnID = next

	return &Result{
		StateChanged: true,
		Notice:       fmt.Sprintf("It's %s's turn.", room.Players[next].Name),
	}, nil
}
