package server

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kapu/chatpay-ingest-go/internal/constants"
)

// WebhookAuthMiddleware: 웹훅 공유 시크릿 헤더를 검증하는 인증 미들웨어를 반환합니다.
// secret이 빈 문자열이면 인증을 무조건 건너뜁니다 (원본 계약 유지 — 보안 저하 모드).
// 헤더 누락과 불일치는 동일하게 403으로 거부하며, 이후 처리는 수행되지 않습니다.
func WebhookAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		provided := c.GetHeader(constants.WebhookConfig.SecretHeader)

		// 타이밍 공격 방지를 위해 constant-time 비교 사용
		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "bad secret",
			})
			return
		}

		c.Next()
	}
}
