// Package gateway 把房间事件投递到各个连接。
package gateway

import (
	"fmt"
	"time"

	"Dominion/internal/shared/session"
	"Dominion/internal/shared/utils"
)

// Gateway 是动作处理结果的出口：
// 房间广播、定向推送、系统消息与聊天消息。
type Gateway interface {
	Push(sessionID, event string, payload any)
	Broadcast(sessionIDs []string, event string, payload any)
	System(sessionIDs []string, text string)
	Chat(sessionIDs []string, fromName, text string)
}

// ChatPayload 是 globalChat 事件的报文。
type ChatPayload struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
	Kind string `json:"kind"`
	TS   int64  `json:"ts"`
}

type SessionGateway struct {
	sess session.Manager
	ids  *utils.Snowflake
}

func NewSessionGateway(sess session.Manager, ids *utils.Snowflake) *SessionGateway {
	return &SessionGateway{sess: sess, ids: ids}
}

// Push 向单个会话推送事件。会话已掉线时静默丢弃。
func (g *SessionGateway) Push(sessionID, event string, payload any) {
	conn, ok := g.sess.GetConn(sessionID)
	if !ok {
		return
	}
	conn.Push(event, payload)
}

func (g *SessionGateway) Broadcast(sessionIDs []string, event string, payload any) {
	for _, sid := range sessionIDs {
		g.Push(sid, event, payload)
	}
}

func (g *SessionGateway) System(sessionIDs []string, text string) {
	g.Broadcast(sessionIDs, "globalChat", g.payload(text, "system"))
}

func (g *SessionGateway) Chat(sessionIDs []string, fromName, text string) {
	g.Broadcast(sessionIDs, "globalChat", g.payload(fmt.Sprintf("%s: %s", fromName, text), "chat"))
}

func (g *SessionGateway) payload(text, kind string) ChatPayload {
	var id int64
	if g.ids != nil {
		id = g.ids.NextID()
	}
	return ChatPayload{
		ID:   id,
		Text: text,
		Kind: kind,
		TS:   time.Now().UnixMilli(),
	}
}
