package ws

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-think/openssl"
	"github.com/go-viper/mapstructure/v2"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"Dominion/internal/shared/security"
	"Dominion/modules/kit/logx"
)

// WsServer 承载一条 websocket 连接：读循环解帧并分发，写循环串行发送。
type WsServer struct {
	conn       *websocket.Conn
	router     *Router
	outChan    chan *WsMsgResp
	property   map[string]any
	needSecret bool
	sync.RWMutex
	done      chan struct{}
	closeOnce sync.Once
	log       logx.Logger
}

func NewWsServer(wsConn *websocket.Conn, needSecret bool, l logx.Logger) *WsServer {
	return &WsServer{
		conn:       wsConn,
		outChan:    make(chan *WsMsgResp, 1000),
		property:   make(map[string]any),
		needSecret: needSecret,
		done:       make(chan struct{}),
		log:        l,
	}
}

func (s *WsServer) Router(router *Router) {
	s.router = router
}

func (s *WsServer) SetProperty(key string, value any) {
	s.Lock()
	defer s.Unlock()
	s.property[key] = value
}

func (s *WsServer) GetProperty(key string) any {
	s.RLock()
	defer s.RUnlock()
	return s.property[key]
}

func (s *WsServer) RemoveProperty(key string) {
	s.Lock()
	defer s.Unlock()
	delete(s.property, key)
}

func (s *WsServer) Addr() string {
	return s.conn.RemoteAddr().String()
}

func (s *WsServer) Push(name string, data any) {
	rsp := WsMsgResp{
		Body: &RespBody{
			Seq:  0,
			Name: name,
			Msg:  data,
		},
	}
	select {
	case s.outChan <- &rsp:
	case <-s.done:
	}
}

func (s *WsServer) Run() {
	go s.readMsgLoop()
	go s.writeMsgLoop()
	if s.needSecret {
		s.handshake()
	}
}

func (s *WsServer) readMsgLoop() {
	defer func() {
		if err := recover(); err != nil {
			s.log.Error("ws readMsgLoop panic", zap.String("err", fmt.Sprintf("%v", err)))
		}
		s.Close()
	}()
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.log.Debug("ws read end", zap.Error(err))
			return
		}

		plain, ok := s.decodeFrame(data)
		if !ok {
			continue
		}

		reqBody := ReqBody{}
		if err := json.Unmarshal(plain, &reqBody); err != nil {
			s.log.Error("ws unmarshal req error", zap.Error(err))
			continue
		}

		req := WsMsgReq{Body: &reqBody, Conn: s}
		// req 和 resp 的 Seq 必须一致，客户端按 Seq 对请求/应答配对。
		resp := WsMsgResp{Body: &RespBody{Seq: reqBody.Seq, Name: reqBody.Name}}
		if reqBody.Name == HeartbeatMsg {
			h := &Heartbeat{}
			_ = mapstructure.Decode(reqBody.Msg, h)
			h.STime = time.Now().UnixMilli()
			resp.Body.Msg = h
			resp.Body.Code = 0
		} else {
			s.router.Dispatch(&req, &resp)
		}

		select {
		case s.outChan <- &resp:
		case <-s.done:
			return
		}
	}
}

// decodeFrame 还原一帧的明文 JSON。
// need_secret 打开时帧格式为 zlib(AES(json))，否则是裸 JSON。
func (s *WsServer) decodeFrame(data []byte) ([]byte, bool) {
	if !s.needSecret {
		return data, true
	}

	secretData, err := security.UnZip(data)
	if err != nil {
		s.log.Error("ws unzip frame error", zap.Error(err))
		return nil, false
	}

	secretKey := s.GetProperty(SecretKey)
	if secretKey == nil {
		s.log.Error("ws frame before handshake, drop")
		return nil, false
	}

	key := secretKey.(string)
	plain, err := security.AesCBCDecrypt(secretData, []byte(key), []byte(key), openssl.ZEROS_PADDING)
	if err != nil {
		s.log.Error("ws decrypt frame error", zap.Error(err))
		// 解密失败时重新握手，让客户端换钥重发。
		s.handshake()
		return nil, false
	}
	return plain, true
}

func (s *WsServer) writeMsgLoop() {
	for {
		select {
		case msg, ok := <-s.outChan:
			if ok {
				s.write(msg)
			}
		case <-s.done:
			return
		}
	}
}

func (s *WsServer) Close() {
	s.closeOnce.Do(func() {
		_ = s.conn.Close()
		close(s.done)
	})
}

func (s *WsServer) Done() <-chan struct{} {
	return s.done
}

func (s *WsServer) write(msg *WsMsgResp) {
	marshal, err := json.Marshal(msg.Body)
	if err != nil {
		s.log.Error("ws marshal resp error", zap.Error(err))
		return
	}

	if !s.needSecret {
		if err := s.conn.WriteMessage(websocket.TextMessage, marshal); err != nil {
			s.log.Error("ws write error", zap.Error(err))
		}
		return
	}

	secretKey := s.GetProperty(SecretKey)
	if secretKey == nil {
		s.log.Error("ws write before handshake, drop", zap.String("name", msg.Body.Name))
		return
	}
	key := secretKey.(string)
	encrypted, err := security.AesCBCEncrypt(marshal, []byte(key), []byte(key), openssl.ZEROS_PADDING)
	if err != nil {
		s.log.Error("ws encrypt frame error", zap.Error(err))
		return
	}
	zipped, err := security.Zip(encrypted)
	if err != nil {
		s.log.Error("ws zip frame error", zap.Error(err))
		return
	}

	// 压缩后的密文是二进制字节流，必须走 BinaryMessage。
	if err := s.conn.WriteMessage(websocket.BinaryMessage, zipped); err != nil {
		s.log.Error("ws write error", zap.Error(err))
	}
}

// handshake 下发（或复用）本连接的对称密钥。握手帧只压缩不加密。
func (s *WsServer) handshake() {
	secretKey := ""
	if key := s.GetProperty(SecretKey); key != nil {
		secretKey = key.(string)
	} else {
		secretKey = security.RandSeq(16)
	}

	body := &RespBody{Name: HandshakeMsg, Msg: &Handshake{Key: secretKey}}
	data, err := json.Marshal(body)
	if err != nil {
		s.log.Error("ws handshake marshal error", zap.Error(err))
		return
	}

	s.SetProperty(SecretKey, secretKey)

	zipped, err := security.Zip(data)
	if err != nil {
		s.log.Error("ws handshake zip error", zap.Error(err))
		return
	}
	if err := s.conn.WriteMessage(websocket.BinaryMessage, zipped); err != nil {
		s.log.Error("ws handshake write error", zap.Error(err))
	}
}
