package logx

import (
	"errors"
	"testing"

	"Dominion/modules/kit/errx"
)

func TestBuildErrorLog_提取code与reason(t *testing.T) {
	err := errx.NewBiz("ROOM_FULL", "房间已满").WithReason("ROOM_FULL")
	got := BuildErrorLog(err)
	if got.Code != "ROOM_FULL" {
		t.Fatalf("期望提取错误码，got=%q", got.Code)
	}
	if got.Reason != "ROOM_FULL" {
		t.Fatalf("期望提取 reason，got=%q", got.Reason)
	}
	if got.Msg != "房间已满" {
		t.Fatalf("期望提取 msg，got=%q", got.Msg)
	}
}

func TestBuildErrorLog_cause链与发生处栈(t *testing.T) {
	cause := errors.New("write: broken pipe")
	err := errx.ErrUnavailable.WithCause(cause)
	got := BuildErrorLog(err)
	if len(got.CauseChain) == 0 {
		t.Fatalf("期望提取 cause 链，got=%v", got.CauseChain)
	}
	if got.Origin == "" || got.Stack == "" {
		t.Fatalf("期望系统错误带发生处栈，origin=%q", got.Origin)
	}
}

func TestBuildErrorLog_nil输入返回零值(t *testing.T) {
	if got := BuildErrorLog(nil); got.Error != "" || got.Code != "" {
		t.Fatalf("期望 nil 输入返回零值，got=%+v", got)
	}
}
