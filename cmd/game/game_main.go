package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	gameactor "Dominion/internal/game/actor"
	"Dominion/internal/game/gateway"
	"Dominion/internal/game/interfaces"
	"Dominion/internal/shared/gameconfig/rules"
	"Dominion/internal/shared/logs"
	"Dominion/internal/shared/serverconfig"
	"Dominion/internal/shared/session"
	transporthttp "Dominion/internal/shared/transport/http"
	"Dominion/internal/shared/transport/ws"
	"Dominion/internal/shared/utils"
	"Dominion/modules/kit/logx"
)

func main() {
	serverconfig.Load()
	if err := logs.Init("game", serverconfig.Conf.Log); err != nil {
		panic(err)
	}
	logs.Info("conf", zap.Any("conf", serverconfig.Conf))

	rules.Load()
	logs.Info("game rules", zap.Any("rules", rules.Conf))

	serverConfig := serverconfig.Conf.GameServer
	gameHost := serverConfig.Host
	if gameHost == "" {
		gameHost = "0.0.0.0"
	}
	gameServerAddr := fmt.Sprintf("%s:%d", gameHost, serverConfig.Port)

	ids, err := utils.NewSnowflake(int64(serverConfig.NodeID))
	if err != nil {
		logs.Fatal("init snowflake failed", zap.Error(err))
	}

	// 会话关闭回调在 runtime 建好之前可能触发不了断线消息，
	// 这里用变量捕获打破 session → runtime → gateway → session 的环。
	var rt *gameactor.Runtime
	sessMgr := session.NewSessMgr(func(sessionID string) {
		if rt != nil {
			rt.Disconnect(sessionID)
		}
	})

	gw := gateway.NewSessionGateway(sessMgr, ids)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	rt = gameactor.NewRuntime(rules.Conf, rng, gw, time.Duration(serverConfig.AskTimeoutMS)*time.Millisecond)
	defer rt.Shutdown()

	baseLogger := logx.NewZapLogger(logs.Logger())
	wsRouter := ws.NewRouter(baseLogger)

	gameModule := interfaces.New(rt, sessMgr, baseLogger)
	wsModules := []ws.Registrar{
		gameModule,
	}
	for _, m := range wsModules {
		m.WsRegister(wsRouter)
	}

	httpServer := transporthttp.NewHttpServer(gameServerAddr, nil, baseLogger)
	httpModules := []transporthttp.Registrar{
		gameModule,
	}
	for _, m := range httpModules {
		m.HttpRegister(httpServer.Group())
	}

	wsServer := ws.NewServer(wsRouter, gameModule, serverConfig.NeedSecret, baseLogger)
	httpServer.Engine().Any("/ws", gin.WrapH(wsServer))
	httpServer.Engine().Any("/ws/*any", gin.WrapH(wsServer))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("game server start failed: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		if err != nil {
			logs.Error("服务异常退出", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
}
