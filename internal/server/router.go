package server

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/kapu/chatpay-ingest-go/internal/constants"
)

// NewRouter: 수집 서비스의 Gin 라우터를 설정하고 제공한다.
// 인증 미들웨어는 웹훅 경로에만 적용된다 — 진단/헬스 경로는 원본과 같이 공개다.
func NewRouter(logger *slog.Logger, h *Handler, webhookSecret string) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	if err := router.SetTrustedProxies(constants.ServerConfig.TrustedProxies); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(logger, "/")) // HTTP 접속 로깅 (헬스체크 제외)

	router.POST("/telegram-webhook", WebhookAuthMiddleware(webhookSecret), h.HandleWebhook)
	router.GET("/queue", h.HandleQueueInspect)
	router.GET("/", h.HandleHealth)

	return router, nil
}
