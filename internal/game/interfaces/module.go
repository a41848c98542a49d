package interfaces

import (
	"github.com/gin-gonic/gin"
	"github.com/lithammer/shortuuid/v4"
	"go.uber.org/zap"

	gameactor "Dominion/internal/game/actor"
	httphandler "Dominion/internal/game/interfaces/handler/http"
	wshandler "Dominion/internal/game/interfaces/handler/ws"
	"Dominion/internal/shared/logs"
	"Dominion/internal/shared/security"
	"Dominion/internal/shared/session"
	transporthttp "Dominion/internal/shared/transport/http"
	"Dominion/internal/shared/transport/ws"
	"Dominion/modules/kit/logx"
)

type Module struct {
	wsHandler   *wshandler.WsHandler
	httpHandler *httphandler.HttpHandler
	sessions    session.Manager
}

func New(rt *gameactor.Runtime, s session.Manager, log logx.Logger) *Module {
	return &Module{
		wsHandler:   wshandler.NewWsHandler(rt, log),
		httpHandler: httphandler.NewHttpHandler(rt),
		sessions:    s,
	}
}

func (m *Module) WsRegister(r *ws.Router) {
	m.wsHandler.RegisterRoutes(r)
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.httpHandler.RegisterRoutes(g)
}

// OnOpen 在连接建立时分配会话：会话 id 即玩家 id，随连接生灭。
func (m *Module) OnOpen(conn ws.WSConn) {
	sid := shortuuid.New()
	conn.SetProperty(ws.ConnKeySession, sid)

	token, err := security.Award(sid)
	if err != nil {
		logs.Error("签发会话 token 失败", zap.Error(err))
	}
	m.sessions.Bind(sid, token, conn)

	conn.Push("connected", map[string]string{
		"sessionId": sid,
		"token":     token,
	})
}

var _ ws.Registrar = (*Module)(nil)
var _ ws.ConnHook = (*Module)(nil)
var _ transporthttp.Registrar = (*Module)(nil)
