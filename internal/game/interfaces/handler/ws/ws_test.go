package ws

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	gameactor "Dominion/internal/game/actor"
	"Dominion/internal/game/interfaces/handler/ws/dto"
	"Dominion/internal/shared/gameconfig/rules"
	"Dominion/internal/shared/transport"
	"Dominion/internal/shared/transport/ws"
	"Dominion/modules/kit/logx"
)

type fakeConn struct {
	mu     sync.Mutex
	props  map[string]any
	pushed []struct {
		event   string
		payload any
	}
}

func newFakeConn(sessionID string) *fakeConn {
	return &fakeConn{props: map[string]any{ws.ConnKeySession: sessionID}}
}

func (f *fakeConn) SetProperty(key string, value any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.props[key] = value
}

func (f *fakeConn) GetProperty(key string) any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.props[key]
}

func (f *fakeConn) RemoveProperty(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.props, key)
}

func (f *fakeConn) Addr() string { return "test" }

func (f *fakeConn) Push(name string, data any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushed = append(f.pushed, struct {
		event   string
		payload any
	}{name, data})
}

func (f *fakeConn) Close()                {}
func (f *fakeConn) Done() <-chan struct{} { return nil }

func (f *fakeConn) lastEvent(name string) (any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.pushed) - 1; i >= 0; i-- {
		if f.pushed[i].event == name {
			return f.pushed[i].payload, true
		}
	}
	return nil, false
}

type noopGateway struct{}

func (noopGateway) Push(sessionID, event string, payload any)          {}
func (noopGateway) Broadcast(sessionIDs []string, event string, p any) {}
func (noopGateway) System(sessionIDs []string, text string)            {}
func (noopGateway) Chat(sessionIDs []string, fromName, text string)    {}

func newHandler(t *testing.T) *WsHandler {
	t.Helper()
	rt := gameactor.NewRuntime(rules.Defaults(), rand.New(rand.NewSource(1)), noopGateway{}, time.Second)
	t.Cleanup(rt.Shutdown)
	return NewWsHandler(rt, nil)
}

// spyLogger 只记录级别与字段，供拒绝/异常上报断言用。
type spyLogger struct {
	mu      sync.Mutex
	entries []spyEntry
}

type spyEntry struct {
	level  string
	msg    string
	fields []zap.Field
}

func (s *spyLogger) append(level, msg string, fields []zap.Field) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, spyEntry{level: level, msg: msg, fields: fields})
}

func (s *spyLogger) Debug(msg string, fields ...zap.Field) { s.append("debug", msg, fields) }
func (s *spyLogger) Info(msg string, fields ...zap.Field)  { s.append("info", msg, fields) }
func (s *spyLogger) Warn(msg string, fields ...zap.Field)  { s.append("warn", msg, fields) }
func (s *spyLogger) Error(msg string, fields ...zap.Field) { s.append("error", msg, fields) }
func (s *spyLogger) WithContext(ctx context.Context) logx.Logger {
	return s
}

func (s *spyLogger) find(level, fieldKey, fieldVal string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.level != level {
			continue
		}
		for _, f := range e.fields {
			if f.Key == fieldKey && f.String == fieldVal {
				return true
			}
		}
	}
	return false
}

func newExchange(conn ws.WSConn, msg any) (*ws.WsMsgReq, *ws.WsMsgResp) {
	req := &ws.WsMsgReq{
		Body: &ws.ReqBody{Seq: 1, Msg: msg},
		Conn: conn,
	}
	resp := &ws.WsMsgResp{Body: &ws.RespBody{Seq: 1, Code: transport.SystemError}}
	return req, resp
}

func TestCreateServer_缺名字兜底且推送serverCreated(t *testing.T) {
	h := newHandler(t)
	conn := newFakeConn("s1")

	req, resp := newExchange(conn, map[string]any{"mapSize": "small"})
	h.createServer(context.Background(), req, resp)

	if resp.Body.Code != transport.OK {
		t.Fatalf("建房应成功: code=%d msg=%v", resp.Body.Code, resp.Body.Msg)
	}
	payload, ok := conn.lastEvent("serverCreated")
	if !ok {
		t.Fatalf("应收到 serverCreated")
	}
	created := payload.(dto.CreateServerResp)
	if len(created.RoomID) != 6 {
		t.Fatalf("房间号应为 6 位: %q", created.RoomID)
	}
}

func TestJoinServer_失败走joinFailed事件(t *testing.T) {
	h := newHandler(t)
	conn := newFakeConn("s2")

	req, resp := newExchange(conn, map[string]any{"roomId": "NOPE42", "displayName": "bob"})
	h.joinServer(context.Background(), req, resp)

	if resp.Body.Code != transport.BizRejected {
		t.Fatalf("业务拒绝应回 BizRejected, got %d", resp.Body.Code)
	}
	payload, ok := conn.lastEvent("joinFailed")
	if !ok {
		t.Fatalf("应收到 joinFailed")
	}
	if payload.(map[string]string)["reason"] != "Server not found." {
		t.Fatalf("拒绝文案不对: %v", payload)
	}
}

func Test业务拒绝上报带动作与原因(t *testing.T) {
	spy := &spyLogger{}
	rt := gameactor.NewRuntime(rules.Defaults(), rand.New(rand.NewSource(1)), noopGateway{}, time.Second)
	t.Cleanup(rt.Shutdown)
	h := NewWsHandler(rt, spy)
	conn := newFakeConn("s9")

	ctx := transport.NewContext("server.join")
	req, resp := newExchange(conn, map[string]any{"roomId": "NOPE42", "displayName": "bob"})
	h.joinServer(ctx, req, resp)

	if resp.Body.Code != transport.BizRejected {
		t.Fatalf("预期业务拒绝, got %d", resp.Body.Code)
	}
	if !spy.find("info", "reason", "ROOM_NOT_FOUND") {
		t.Fatalf("拒绝应以 INFO 上报 reason: %+v", spy.entries)
	}
	if !spy.find("info", "action", "server.join") {
		t.Fatalf("上报应带请求动作: %+v", spy.entries)
	}
}

func TestPlayerAction_未绑定会话被拦(t *testing.T) {
	h := newHandler(t)
	conn := &fakeConn{props: map[string]any{}}

	req, resp := newExchange(conn, map[string]any{"type": "END_TURN"})
	h.playerAction(context.Background(), req, resp)

	if resp.Body.Code != transport.SessionInvalid {
		t.Fatalf("无会话应回 SessionInvalid, got %d", resp.Body.Code)
	}
}

func TestPlayerAction_业务拒绝走actionFailed事件(t *testing.T) {
	h := newHandler(t)
	host := newFakeConn("s1")

	req, resp := newExchange(host, map[string]any{"name": "demo", "mapSize": "small", "hostName": "alice"})
	h.createServer(context.Background(), req, resp)
	if resp.Body.Code != transport.OK {
		t.Fatalf("建房失败: %v", resp.Body.Msg)
	}

	req, resp = newExchange(host, map[string]any{"type": "CLAIM_TERRITORY", "territoryId": "T-404"})
	h.playerAction(context.Background(), req, resp)
	if resp.Body.Code != transport.BizRejected {
		t.Fatalf("应为业务拒绝, got %d", resp.Body.Code)
	}
	payload, ok := host.lastEvent("actionFailed")
	if !ok {
		t.Fatalf("应收到 actionFailed")
	}
	m := payload.(map[string]string)
	if m["reason"] != "TERRITORY_NOT_FOUND" || m["message"] == "" {
		t.Fatalf("拒绝内容不对: %v", m)
	}
}
