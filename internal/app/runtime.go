// Package app: 프로세스 전역 리소스(큐 연결, 플랫폼/변환 클라이언트)의
// 조립과 수명주기를 담당한다. 클라이언트는 기동 시 한 번 열어 핸들러에 주입한다.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/kapu/chatpay-ingest-go/internal/config"
	"github.com/kapu/chatpay-ingest-go/internal/constants"
	"github.com/kapu/chatpay-ingest-go/internal/health"
	"github.com/kapu/chatpay-ingest-go/internal/queue"
	"github.com/kapu/chatpay-ingest-go/internal/server"
	"github.com/kapu/chatpay-ingest-go/internal/telegram"
	"github.com/kapu/chatpay-ingest-go/internal/transcribe"
)

// Runtime: 조립이 끝난 수집 서비스 런타임
type Runtime struct {
	Config *config.Config
	Logger *slog.Logger

	Queue       *queue.Publisher
	Telegram    *telegram.Client
	Transcriber *transcribe.Service

	Router *gin.Engine
	Server *http.Server
}

// BuildRuntime: 설정을 바탕으로 공유 클라이언트와 HTTP 서버를 조립한다.
func BuildRuntime(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	health.Init(cfg.Version)

	publisher, err := queue.NewPublisher(ctx, queue.PublisherConfig{
		Host:     cfg.Queue.Host,
		Port:     cfg.Queue.Port,
		Password: cfg.Queue.Password,
		QueueKey: cfg.Queue.QueueKey,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize queue publisher: %w", err)
	}

	tgClient, err := telegram.NewClient(telegram.ClientConfig{
		BotToken: cfg.Telegram.BotToken,
	}, logger)
	if err != nil {
		publisher.Close()
		return nil, fmt.Errorf("initialize telegram client: %w", err)
	}

	transcriber := transcribe.NewService(transcribe.ServiceConfig{
		APIKey: cfg.Transcribe.APIKey,
		Model:  cfg.Transcribe.Model,
	}, logger)

	if cfg.Telegram.WebhookSecret == "" {
		logger.Warn("WEBHOOK_AUTH_DISABLED") // 시크릿 미설정: 인증 생략 모드
	}

	handler := server.NewHandler(tgClient, transcriber, publisher, logger)
	router, err := server.NewRouter(logger, handler, cfg.Telegram.WebhookSecret)
	if err != nil {
		publisher.Close()
		return nil, fmt.Errorf("build router: %w", err)
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           server.WrapH2C(router),
		ReadHeaderTimeout: constants.ServerTimeout.ReadHeader,
		IdleTimeout:       constants.ServerTimeout.Idle,
	}

	return &Runtime{
		Config:      cfg,
		Logger:      logger,
		Queue:       publisher,
		Telegram:    tgClient,
		Transcriber: transcriber,
		Router:      router,
		Server:      httpServer,
	}, nil
}

// Close: 런타임 리소스 정리 (큐 연결 해제)
func (r *Runtime) Close() {
	if r == nil {
		return
	}
	if r.Queue != nil {
		r.Queue.Close()
	}
}

// Run: HTTP 서버를 기동하고 종료 시그널(SIGINT/SIGTERM)까지 대기한다.
// 종료 시 처리 중인 요청의 완료를 기다린 뒤 내려간다.
func (r *Runtime) Run() error {
	errCh := make(chan error, 1)

	go func() {
		r.Logger.Info("SERVER_LISTENING",
			slog.String("addr", r.Server.Addr),
			slog.String("bot", r.Telegram.Username()),
			slog.String("queue_key", r.Config.Queue.QueueKey),
		)
		if err := r.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		r.Logger.Info("SHUTDOWN_SIGNAL", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ServerTimeout.Shutdown)
	defer cancel()
	if err := r.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}

	r.Logger.Info("SHUTDOWN_COMPLETE")
	return nil
}
