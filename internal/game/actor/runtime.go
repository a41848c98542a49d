package actor

import (
	"context"
	"errors"
	"math/rand"
	"time"

	protoactor "github.com/asynkron/protoactor-go/actor"

	"Dominion/internal/game/actors"
	"Dominion/internal/game/gateway"
	"Dominion/internal/shared/actor/messages"
	"Dominion/internal/shared/gameconfig/rules"
	"Dominion/internal/shared/transport"
)

const defaultAskTimeout = 3 * time.Second

type RuntimeError struct {
	Code    int
	Message string
	Cause   error
}

func (e *RuntimeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *RuntimeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Runtime 是传输层进入 actor 世界的唯一门面。
type Runtime struct {
	system  *protoactor.ActorSystem
	root    *protoactor.RootContext
	manager *protoactor.PID
	timeout time.Duration
}

func NewRuntime(r rules.Rules, rng *rand.Rand, gw gateway.Gateway, askTimeout time.Duration) *Runtime {
	if askTimeout <= 0 {
		askTimeout = defaultAskTimeout
	}

	system := protoactor.NewActorSystem()
	root := system.Root
	managerProps := protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewManagerActor(r, rng, gw)
	})
	manager := root.Spawn(managerProps)

	return &Runtime{
		system:  system,
		root:    root,
		manager: manager,
		timeout: askTimeout,
	}
}

func (r *Runtime) Shutdown() {
	if r == nil {
		return
	}
	if r.root != nil && r.manager != nil {
		r.root.Stop(r.manager)
	}
	if r.system != nil {
		r.system.Shutdown()
	}
}

func (r *Runtime) CreateRoom(ctx context.Context, req *messages.CreateRoom) (*messages.CreateRoomReply, error) {
	res, err := r.ask(ctx, req)
	if err != nil {
		return nil, err
	}
	reply, ok := res.(*messages.CreateRoomReply)
	if !ok {
		return nil, badReplyType()
	}
	return reply, nil
}

func (r *Runtime) ListRooms(ctx context.Context, req *messages.ListRooms) (*messages.RoomListReply, error) {
	res, err := r.ask(ctx, req)
	if err != nil {
		return nil, err
	}
	reply, ok := res.(*messages.RoomListReply)
	if !ok {
		return nil, badReplyType()
	}
	return reply, nil
}

func (r *Runtime) JoinRoom(ctx context.Context, req *messages.JoinRoom) (*messages.JoinRoomReply, error) {
	res, err := r.ask(ctx, req)
	if err != nil {
		return nil, err
	}
	reply, ok := res.(*messages.JoinRoomReply)
	if !ok {
		return nil, badReplyType()
	}
	return reply, nil
}

func (r *Runtime) PlayerAction(ctx context.Context, req *messages.PlayerAction) (*messages.ActionReply, error) {
	res, err := r.ask(ctx, req)
	if err != nil {
		return nil, err
	}
	reply, ok := res.(*messages.ActionReply)
	if !ok {
		return nil, badReplyType()
	}
	return reply, nil
}

// Chat 与 Disconnect 不需要回执，直接投递。
func (r *Runtime) Chat(req *messages.Chat) {
	if r == nil || r.root == nil || req == nil {
		return
	}
	r.root.Send(r.manager, req)
}

func (r *Runtime) Disconnect(sessionID string) {
	if r == nil || r.root == nil || sessionID == "" {
		return
	}
	r.root.Send(r.manager, &messages.Disconnect{
		GameBaseMessage: messages.GameBaseMessage{SessionId: sessionID},
	})
}

func (r *Runtime) ask(ctx context.Context, msg messages.GameMessage) (any, error) {
	if r == nil || r.root == nil {
		return nil, &RuntimeError{Code: transport.SystemError, Message: "actor runtime 未初始化"}
	}
	if msg == nil {
		return nil, &RuntimeError{Code: transport.InvalidParam, Message: "请求不能为空"}
	}

	future := r.root.RequestFuture(r.manager, msg, r.timeoutFromContext(ctx))
	res, err := future.Result()
	if err != nil {
		return nil, &RuntimeError{
			Code:    transport.SystemError,
			Message: "actor 请求失败",
			Cause:   err,
		}
	}
	return res, nil
}

func (r *Runtime) timeoutFromContext(ctx context.Context) time.Duration {
	if r == nil || r.timeout <= 0 {
		return defaultAskTimeout
	}
	if ctx == nil {
		return r.timeout
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return r.timeout
	}
	remain := time.Until(deadline)
	if remain <= 0 {
		return time.Millisecond
	}
	if remain < r.timeout {
		return remain
	}
	return r.timeout
}

func badReplyType() *RuntimeError {
	return &RuntimeError{Code: transport.SystemError, Message: "actor 返回类型非法"}
}

func CodeFromError(err error) int {
	if err == nil {
		return transport.OK
	}
	var re *RuntimeError
	if errors.As(err, &re) && re != nil && re.Code != 0 {
		return re.Code
	}
	return transport.SystemError
}
