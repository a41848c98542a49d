package ws

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"Dominion/modules/kit/logx"
)

// ConnHook 在连接升级成功后被调用一次，用于绑定会话、注册断线监听等。
type ConnHook interface {
	OnOpen(conn WSConn)
}

type Server struct {
	router     *Router
	hook       ConnHook
	needSecret bool
	log        logx.Logger
}

func NewServer(r *Router, hook ConnHook, needSecret bool, l logx.Logger) *Server {
	return &Server{
		router:     r,
		hook:       hook,
		needSecret: needSecret,
		log:        l,
	}
}

func (s *Server) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	upgrader := websocket.Upgrader{
		// 允许所有CORS跨域请求
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	wsConn, err := upgrader.Upgrade(resp, req, nil)
	if err != nil {
		s.log.Error("websocket upgrade error", zap.Error(err))
		return
	}

	s.log.Info("websocket upgrade success", zap.String("addr", wsConn.RemoteAddr().String()))

	wsServer := NewWsServer(wsConn, s.needSecret, s.log)
	wsServer.Router(s.router)
	wsServer.Run()
	if s.hook != nil {
		s.hook.OnOpen(wsServer)
	}
}
