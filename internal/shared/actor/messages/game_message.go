package messages

// GameMessage 是进入 GameActor 邮箱的所有请求的公共形态：
// 每条消息都带发起连接的会话 id。
type GameMessage interface {
	SessionID() string
}

type GameBaseMessage struct {
	SessionId string
}

func (m GameBaseMessage) SessionID() string {
	return m.SessionId
}

type CreateRoom struct {
	GameBaseMessage
	Name     string
	Password string
	MapSize  string
	Speed    string
	HostName string
}

type ListRooms struct {
	GameBaseMessage
}

type JoinRoom struct {
	GameBaseMessage
	RoomID   string
	Password string
	Name     string
}

type PlayerAction struct {
	GameBaseMessage
	Type        string
	TerritoryID string
	TargetID    string
	Duration    int
	Terms       string
}

type Chat struct {
	GameBaseMessage
	Text string
}

// Disconnect 由传输层在连接关闭时代发，没有回执。
type Disconnect struct {
	GameBaseMessage
}

// Fail 是业务拒绝的回执：Reason 给日志，Message 直接展示给客户端。
type Fail struct {
	Reason  string
	Message string
}

type CreateRoomReply struct {
	RoomID string
	Fail   *Fail
}

type RoomListReply struct {
	Rooms []RoomSummary
}

type JoinRoomReply struct {
	State *RoomState
	Fail  *Fail
}

type ActionReply struct {
	Fail *Fail
}
