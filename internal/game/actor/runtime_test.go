package actor

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"Dominion/internal/shared/actor/messages"
	"Dominion/internal/shared/gameconfig/rules"
)

type pushRecord struct {
	sessionID string
	event     string
	payload   any
}

// fakeGateway 会被 actor 协程并发调用，需要加锁。
type fakeGateway struct {
	mu     sync.Mutex
	pushed []pushRecord
}

func (f *fakeGateway) Push(sessionID, event string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushed = append(f.pushed, pushRecord{sessionID, event, payload})
}

func (f *fakeGateway) Broadcast(sessionIDs []string, event string, payload any) {
	for _, sid := range sessionIDs {
		f.Push(sid, event, payload)
	}
}

func (f *fakeGateway) System(sessionIDs []string, text string) {
	f.Broadcast(sessionIDs, "globalChat", text)
}

func (f *fakeGateway) Chat(sessionIDs []string, fromName, text string) {
	f.Broadcast(sessionIDs, "globalChat", fromName+": "+text)
}

func (f *fakeGateway) events(sessionID, event string) []pushRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []pushRecord
	for _, r := range f.pushed {
		if r.sessionID == sessionID && r.event == event {
			out = append(out, r)
		}
	}
	return out
}

func newTestRuntime(t *testing.T) (*Runtime, *fakeGateway) {
	t.Helper()
	gw := &fakeGateway{}
	rt := NewRuntime(rules.Defaults(), rand.New(rand.NewSource(1)), gw, time.Second)
	t.Cleanup(rt.Shutdown)
	return rt, gw
}

func createRoom(t *testing.T, rt *Runtime, sid, name string) string {
	t.Helper()
	reply, err := rt.CreateRoom(context.Background(), &messages.CreateRoom{
		GameBaseMessage: messages.GameBaseMessage{SessionId: sid},
		Name:            name,
		MapSize:         "small",
		HostName:        sid,
	})
	if err != nil {
		t.Fatal(err)
	}
	if reply.Fail != nil {
		t.Fatalf("建房被拒: %+v", reply.Fail)
	}
	// 创建者照常入座（接口层在 serverCreated 之后代发这次 Join）。
	join, err := rt.JoinRoom(context.Background(), &messages.JoinRoom{
		GameBaseMessage: messages.GameBaseMessage{SessionId: sid},
		RoomID:          reply.RoomID,
		Name:            sid,
	})
	if err != nil {
		t.Fatal(err)
	}
	if join.Fail != nil {
		t.Fatalf("创建者入座被拒: %+v", join.Fail)
	}
	return reply.RoomID
}

func TestRuntime_新房间是空的LOBBY(t *testing.T) {
	rt, _ := newTestRuntime(t)

	reply, err := rt.CreateRoom(context.Background(), &messages.CreateRoom{
		GameBaseMessage: messages.GameBaseMessage{SessionId: "s1"},
		Name:            "demo",
		MapSize:         "small",
		HostName:        "alice",
	})
	if err != nil || reply.Fail != nil {
		t.Fatalf("建房失败: %v %+v", err, reply.Fail)
	}

	list, err := rt.ListRooms(context.Background(), &messages.ListRooms{})
	if err != nil {
		t.Fatal(err)
	}
	if len(list.Rooms) != 1 || list.Rooms[0].Players != 0 || list.Rooms[0].Phase != "LOBBY" {
		t.Fatalf("新房间应为空的 LOBBY: %+v", list.Rooms)
	}

	// 创建者入座后房间激活。
	join, err := rt.JoinRoom(context.Background(), &messages.JoinRoom{
		GameBaseMessage: messages.GameBaseMessage{SessionId: "s1"},
		RoomID:          reply.RoomID,
		Name:            "alice",
	})
	if err != nil || join.Fail != nil {
		t.Fatalf("创建者入座失败: %v %+v", err, join.Fail)
	}
	if join.State.Phase != "ACTIVE" || join.State.CurrentTurnID != "s1" {
		t.Fatalf("首位入座者应激活房间: %+v", join.State)
	}
}

func TestRuntime_建房入房与状态下发(t *testing.T) {
	rt, gw := newTestRuntime(t)

	roomID := createRoom(t, rt, "s1", "demo")
	if len(roomID) != 6 {
		t.Fatalf("房间号应为 6 位: %q", roomID)
	}

	join, err := rt.JoinRoom(context.Background(), &messages.JoinRoom{
		GameBaseMessage: messages.GameBaseMessage{SessionId: "s2"},
		RoomID:          roomID,
		Name:            "bob",
	})
	if err != nil {
		t.Fatal(err)
	}
	if join.Fail != nil {
		t.Fatalf("入房被拒: %+v", join.Fail)
	}
	state := join.State
	if state.Phase != "ACTIVE" || state.CurrentTurnID != "s1" || len(state.Players) != 2 {
		t.Fatalf("入房状态不对: %+v", state)
	}
	if len(state.Territories) != rules.Defaults().MapSizeSmall {
		t.Fatalf("small 地图应有 %d 块领土", rules.Defaults().MapSizeSmall)
	}
	// 入房广播到全房间。
	if got := gw.events("s1", "stateUpdate"); len(got) == 0 {
		t.Fatalf("老成员应收到 stateUpdate")
	}
}

func TestRuntime_错误密码入房失败且不落人(t *testing.T) {
	rt, _ := newTestRuntime(t)

	reply, err := rt.CreateRoom(context.Background(), &messages.CreateRoom{
		GameBaseMessage: messages.GameBaseMessage{SessionId: "s1"},
		Name:            "locked",
		Password:        "pw",
		MapSize:         "small",
		HostName:        "alice",
	})
	if err != nil || reply.Fail != nil {
		t.Fatalf("建房失败: %v %+v", err, reply.Fail)
	}
	host, err := rt.JoinRoom(context.Background(), &messages.JoinRoom{
		GameBaseMessage: messages.GameBaseMessage{SessionId: "s1"},
		RoomID:          reply.RoomID,
		Password:        "pw",
		Name:            "alice",
	})
	if err != nil || host.Fail != nil {
		t.Fatalf("创建者入座失败: %v %+v", err, host.Fail)
	}

	join, err := rt.JoinRoom(context.Background(), &messages.JoinRoom{
		GameBaseMessage: messages.GameBaseMessage{SessionId: "s2"},
		RoomID:          reply.RoomID,
		Password:        "wrong",
		Name:            "bob",
	})
	if err != nil {
		t.Fatal(err)
	}
	if join.Fail == nil || join.Fail.Message != "Incorrect password." {
		t.Fatalf("应拒绝并给出固定文案: %+v", join.Fail)
	}

	list, err := rt.ListRooms(context.Background(), &messages.ListRooms{})
	if err != nil {
		t.Fatal(err)
	}
	if len(list.Rooms) != 1 || list.Rooms[0].Players != 1 {
		t.Fatalf("人数不应变化: %+v", list.Rooms)
	}
	if !list.Rooms[0].HasPassword {
		t.Fatalf("列表应标记有密码")
	}
}

func TestRuntime_动作流水线与回合流转(t *testing.T) {
	rt, gw := newTestRuntime(t)
	roomID := createRoom(t, rt, "s1", "demo")
	_ = roomID

	act := func(sid, typ, terrID string) *messages.ActionReply {
		reply, err := rt.PlayerAction(context.Background(), &messages.PlayerAction{
			GameBaseMessage: messages.GameBaseMessage{SessionId: sid},
			Type:            typ,
			TerritoryID:     terrID,
		})
		if err != nil {
			t.Fatal(err)
		}
		return reply
	}

	if reply := act("s1", "CLAIM_TERRITORY", "T-1"); reply.Fail != nil {
		t.Fatalf("占领被拒: %+v", reply.Fail)
	}
	if got := gw.events("s1", "stateUpdate"); len(got) == 0 {
		t.Fatalf("成功动作应广播状态")
	}

	if reply := act("s1", "CLAIM_TERRITORY", "T-1"); reply.Fail == nil || reply.Fail.Reason != "ALREADY_CLAIMED" {
		t.Fatalf("重复占领应拒绝: %+v", reply.Fail)
	}
	if reply := act("s1", "DANCE", ""); reply.Fail == nil || reply.Fail.Reason != "UNKNOWN_ACTION" {
		t.Fatalf("未知动作应拒绝: %+v", reply.Fail)
	}
	// 不在房间的玩家动作静默忽略。
	if reply := act("ghost", "END_TURN", ""); reply.Fail != nil {
		t.Fatalf("无房玩家应静默: %+v", reply.Fail)
	}
}

func TestRuntime_断线清场与房间销毁(t *testing.T) {
	rt, _ := newTestRuntime(t)
	roomID := createRoom(t, rt, "s1", "demo")

	rt.Disconnect("s1")

	deadline := time.Now().Add(2 * time.Second)
	for {
		list, err := rt.ListRooms(context.Background(), &messages.ListRooms{})
		if err != nil {
			t.Fatal(err)
		}
		if len(list.Rooms) == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("空房间应被销毁: %+v", list.Rooms)
		}
		time.Sleep(10 * time.Millisecond)
	}

	join, err := rt.JoinRoom(context.Background(), &messages.JoinRoom{
		GameBaseMessage: messages.GameBaseMessage{SessionId: "s2"},
		RoomID:          roomID,
		Name:            "bob",
	})
	if err != nil {
		t.Fatal(err)
	}
	if join.Fail == nil || join.Fail.Reason != "ROOM_NOT_FOUND" {
		t.Fatalf("销毁后的房间应 NOT_FOUND: %+v", join.Fail)
	}
}
