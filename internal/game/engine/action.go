package engine

// Kind 是动作的线缆标签。
type Kind string

const (
	KindClaim        Kind = "CLAIM_TERRITORY"
	KindExpand       Kind = "EXPAND_LAND"
	KindBuildUnit    Kind = "BUILD_UNIT"
	KindAttack       Kind = "ATTACK_TERRITORY"
	KindProposeTruce Kind = "PROPOSE_TRUCE"
	KindEndTurn      Kind = "END_TURN"
)

// Action 是封闭的动作集合：新增动作必须在这里加变体，
// 处理器里的 switch 才能在编译期暴露遗漏。
type Action interface {
	Kind() Kind
	sealed()
}

type Claim struct{ TerritoryID string }
type Expand struct{}
type BuildUnit struct{}
type Attack struct{ TargetID string }
type ProposeTruce struct {
	TargetID string
	Duration int
	Terms    string
}
type EndTurn struct{}

func (Claim) Kind() Kind        { return KindClaim }
func (Expand) Kind() Kind       { return KindExpand }
func (BuildUnit) Kind() Kind    { return KindBuildUnit }
func (Attack) Kind() Kind       { return KindAttack }
func (ProposeTruce) Kind() Kind { return KindProposeTruce }
func (EndTurn) Kind() Kind      { return KindEndTurn }

func (Claim) sealed()        {}
func (Expand) sealed()       {}
func (BuildUnit) sealed()    {}
func (Attack) sealed()       {}
func (ProposeTruce) sealed() {}
func (EndTurn) sealed()      {}

// Decode 把客户端报文里的字符串标签解析成动作变体。
// 未知标签返回 ErrUnknownAction，不改动任何状态。
func Decode(typ, territoryID, targetID string, duration int, terms string) (Action, error) {
	switch Kind(typ) {
	case KindClaim:
		return Claim{TerritoryID: territoryID}, nil
	case KindExpand:
		return Expand{}, nil
	case KindBuildUnit:
		return BuildUnit{}, nil
	case KindAttack:
		return Attack{TargetID: targetID}, nil
	case KindProposeTruce:
		return ProposeTruce{TargetID: targetID, Duration: duration, Terms: terms}, nil
	case KindEndTurn:
		return EndTurn{}, nil
	default:
		return nil, ErrUnknownAction
	}
}
