package registry

import (
	"errors"
	"math/rand"
	"testing"

	"Dominion/internal/game/entity"
	"Dominion/internal/shared/gameconfig/rules"
)

func newTestRegistry() *Registry {
	return New(rules.Defaults(), rand.New(rand.NewSource(1)))
}

func TestRegistry_Create建出空的LOBBY房间(t *testing.T) {
	g := newTestRegistry()
	room := g.Create("demo", "", "small", "normal", "s1", "alice")

	if len(room.ID) != 6 {
		t.Fatalf("房间号应为 6 位, got %q", room.ID)
	}
	if room.Phase != entity.PhaseLobby || room.Turn != 1 {
		t.Fatalf("新房间应为 LOBBY 第 1 回合: %v %d", room.Phase, room.Turn)
	}
	if len(room.Players) != 0 || room.CurrentTurnID != "" {
		t.Fatalf("新房间不该有玩家或回合持有者: %d %q", len(room.Players), room.CurrentTurnID)
	}
	if _, ok := g.FindBySession("s1"); ok {
		t.Fatalf("建房不该给创建者建索引")
	}
}

func TestRegistry_首位入座者激活房间并拿到回合(t *testing.T) {
	g := newTestRegistry()
	room := g.Create("demo", "", "small", "normal", "s1", "alice")

	joined, p, err := g.Join(room.ID, "s1", "", "alice")
	if err != nil {
		t.Fatal(err)
	}
	if joined.Phase != entity.PhaseActive || joined.CurrentTurnID != "s1" {
		t.Fatalf("首位入座者应激活房间并持有回合: %v %q", joined.Phase, joined.CurrentTurnID)
	}
	if p.Resources.Money != rules.Defaults().StartMoney {
		t.Fatalf("初始资金不对: %d", p.Resources.Money)
	}
	if got, ok := g.FindBySession("s1"); !ok || got != joined {
		t.Fatalf("索引未建立")
	}

	// 后来者不抢回合。
	if _, _, err := g.Join(room.ID, "s2", "", "bob"); err != nil {
		t.Fatal(err)
	}
	if joined.CurrentTurnID != "s1" {
		t.Fatalf("后来者不该抢回合, got %q", joined.CurrentTurnID)
	}
}

func TestRegistry_Join校验链(t *testing.T) {
	g := newTestRegistry()
	room := g.Create("demo", "top-secret", "small", "normal", "s1", "alice")
	if _, _, err := g.Join(room.ID, "s1", "top-secret", "alice"); err != nil {
		t.Fatal(err)
	}

	if _, _, err := g.Join("NOPE42", "s2", "", "bob"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("want ROOM_NOT_FOUND, got %v", err)
	}
	if _, _, err := g.Join(room.ID, "s2", "wrong", "bob"); !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("want WRONG_PASSWORD, got %v", err)
	}
	if _, p, err := g.Join(room.ID, "s2", "top-secret", "bob"); err != nil || p.ID != "s2" {
		t.Fatalf("正确密码应放行: %v", err)
	}
	if _, _, err := g.Join(room.ID, "s2", "top-secret", "bob"); !errors.Is(err, ErrAlreadyInRoom) {
		t.Fatalf("重复加入应拒绝, got %v", err)
	}
}

func TestRegistry_Join满员拒绝(t *testing.T) {
	g := newTestRegistry()
	room := g.Create("demo", "", "small", "normal", "h", "host")
	room.Settings.MaxPlayers = 2
	if _, _, err := g.Join(room.ID, "h", "", "host"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := g.Join(room.ID, "s2", "", "bob"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := g.Join(room.ID, "s3", "", "carol"); !errors.Is(err, ErrRoomFull) {
		t.Fatalf("want ROOM_FULL, got %v", err)
	}
}

func TestRegistry_Leave房主迁移与空房销毁(t *testing.T) {
	g := newTestRegistry()
	room := g.Create("demo", "", "small", "normal", "s1", "alice")
	g.Join(room.ID, "s1", "", "alice")
	g.Join(room.ID, "s2", "", "bob")

	_, migrated, newHost, destroyed := g.Leave(room.ID, "s1")
	if destroyed {
		t.Fatalf("还有人不该销毁")
	}
	if !migrated || newHost == nil || newHost.ID != "s2" {
		t.Fatalf("房主应迁移到 s2: %v %+v", migrated, newHost)
	}
	if _, ok := g.FindBySession("s1"); ok {
		t.Fatalf("离开后索引应清除")
	}

	_, _, _, destroyed = g.Leave(room.ID, "s2")
	if !destroyed || g.Count() != 0 {
		t.Fatalf("最后一人离开应销毁房间: destroyed=%v count=%d", destroyed, g.Count())
	}
}

func TestRegistry_List摘要与惰性中断(t *testing.T) {
	g := newTestRegistry()
	room := g.Create("locked", "pw", "small", "normal", "s1", "alice")
	g.Join(room.ID, "s1", "pw", "alice")
	open := g.Create("open", "", "small", "normal", "s2", "bob")
	g.Join(open.ID, "s2", "", "bob")

	seen := 0
	for s := range g.List() {
		seen++
		if s.ID == room.ID {
			if !s.HasPassword || s.Host != "alice" || s.Players != 1 {
				t.Fatalf("摘要不对: %+v", s)
			}
		}
	}
	if seen != 2 {
		t.Fatalf("应列出 2 个房间, got %d", seen)
	}

	// 提前 break 不应 panic。
	for range g.List() {
		break
	}
}
