package session

import (
	"sync"

	"Dominion/internal/shared/transport/ws"
)

// Manager 维护会话 id 与连接的双向绑定。
// 会话 id 就是玩家 id：连接断开即玩家消失，这是协议层的约定。
type Manager interface {
	Bind(sessionID, token string, conn ws.WSConn)
	UnbindConn(conn ws.WSConn)
	UnbindSession(sessionID string)
	GetConn(sessionID string) (ws.WSConn, bool)
	GetSession(conn ws.WSConn) (string, bool)
}

// CloseFunc 在连接关闭、会话解绑后被回调（用于触发断线流程）。
type CloseFunc func(sessionID string)

type SessMgr struct {
	sync.RWMutex
	sid2token map[string]string
	sid2conn  map[string]ws.WSConn
	conn2sid  map[ws.WSConn]string
	watched   map[ws.WSConn]struct{}
	onClose   CloseFunc
}

func NewSessMgr(onClose CloseFunc) *SessMgr {
	return &SessMgr{
		sid2token: make(map[string]string),
		sid2conn:  make(map[string]ws.WSConn),
		conn2sid:  make(map[ws.WSConn]string),
		watched:   make(map[ws.WSConn]struct{}),
		onClose:   onClose,
	}
}

func (s *SessMgr) Bind(sessionID, token string, conn ws.WSConn) {
	if conn == nil || sessionID == "" {
		return
	}
	s.Lock()
	defer s.Unlock()

	// 每条连接只启动一次 watcher：连接关闭后自动解绑，避免 conn2sid 逐步膨胀。
	if _, ok := s.watched[conn]; !ok {
		s.watched[conn] = struct{}{}
		go s.watchConnDone(conn)
	}

	oldConn := s.sid2conn[sessionID]
	// 同一会话出现新连接时踢掉旧连接。
	if oldConn != nil && oldConn != conn {
		oldConn.Push("robLogin", nil)
		oldConn.Close()
	}
	s.sid2conn[sessionID] = conn
	s.conn2sid[conn] = sessionID
	s.sid2token[sessionID] = token
}

func (s *SessMgr) watchConnDone(conn ws.WSConn) {
	<-conn.Done()
	sid, _ := s.GetSession(conn)
	s.UnbindConn(conn)
	if sid != "" && s.onClose != nil {
		s.onClose(sid)
	}
}

func (s *SessMgr) UnbindConn(conn ws.WSConn) {
	s.Lock()
	defer s.Unlock()
	sid := s.conn2sid[conn]
	delete(s.watched, conn)
	delete(s.conn2sid, conn)
	if s.sid2conn[sid] == conn {
		delete(s.sid2conn, sid)
		delete(s.sid2token, sid)
	}
}

func (s *SessMgr) UnbindSession(sessionID string) {
	s.Lock()
	defer s.Unlock()
	conn, ok := s.sid2conn[sessionID]
	if ok {
		delete(s.watched, conn)
		delete(s.conn2sid, conn)
	}
	delete(s.sid2conn, sessionID)
	delete(s.sid2token, sessionID)
}

func (s *SessMgr) GetConn(sessionID string) (ws.WSConn, bool) {
	s.RLock()
	defer s.RUnlock()
	conn, ok := s.sid2conn[sessionID]
	return conn, ok
}

func (s *SessMgr) GetSession(conn ws.WSConn) (string, bool) {
	s.RLock()
	defer s.RUnlock()
	sid, ok := s.conn2sid[conn]
	return sid, ok
}
