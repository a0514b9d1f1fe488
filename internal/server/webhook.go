package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"

	"github.com/kapu/chatpay-ingest-go/internal/constants"
	"github.com/kapu/chatpay-ingest-go/internal/event"
)

// Handler: 수집 파이프라인의 HTTP 핸들러
// 분류 → (조건부) 미디어 fetch → 변환 → 큐 적재 순으로 협력자를 구동한다.
//
// 에러 전파 정책 (원본 계약):
//   - 인증 실패/본문 파싱 실패: 요청 수준 거부 (403/400), 적재 없음
//   - fetch/변환 실패: 흡수 — 로그만 남기고 적재 없이 200 응답
//     (비성공 응답 시 플랫폼이 재전송을 반복하는 retry storm 방지)
//   - 큐 적재 실패: 503 — 레코드가 내구적으로 적재되지 않았으므로
//     플랫폼 재전송에 복구를 맡긴다
type Handler struct {
	platform    Platform
	transcriber Transcriber
	queue       WorkQueue
	logger      *slog.Logger
}

// NewHandler: 새로운 수집 핸들러를 생성합니다.
func NewHandler(platform Platform, transcriber Transcriber, queue WorkQueue, logger *slog.Logger) *Handler {
	return &Handler{
		platform:    platform,
		transcriber: transcriber,
		queue:       queue,
		logger:      logger,
	}
}

// HandleWebhook: POST /telegram-webhook
// 하나의 플랫폼 이벤트를 수신하여 0개 또는 1개의 레코드를 큐에 적재한다.
func (h *Handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": "unreadable body"})
		return
	}
	if !gjson.ValidBytes(body) {
		h.logger.Warn("WEBHOOK_PARSE_ERROR", slog.Int("bytes", len(body)))
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": "malformed JSON body"})
		return
	}

	d := event.Classify(body)
	h.logger.Info("WEBHOOK_EVENT",
		slog.String("kind", d.Kind.String()),
		slog.String("username", d.Username),
	)

	switch d.Kind {
	case event.KindCallback, event.KindText:
		// 원본 페이로드를 바이트 그대로 적재한다
		h.enqueue(c, body)

	case event.KindVoice:
		audio, err := h.platform.FetchFile(ctx, d.FileID)
		if err != nil {
			// 흡수: 적재 생략, 응답은 성공
			h.logger.Warn("WEBHOOK_FETCH_SKIPPED",
				slog.String("file_id", d.FileID),
				slog.Any("error", err),
			)
			h.acknowledge(c)
			return
		}

		text, err := h.transcriber.Transcribe(ctx, audio)
		if err != nil {
			h.logger.Warn("WEBHOOK_TRANSCRIBE_SKIPPED",
				slog.String("file_id", d.FileID),
				slog.Any("error", err),
			)
			h.acknowledge(c)
			return
		}

		payload, err := event.SubstituteText(body, text)
		if err != nil {
			h.logger.Warn("WEBHOOK_SUBSTITUTE_SKIPPED", slog.Any("error", err))
			h.acknowledge(c)
			return
		}
		h.enqueue(c, payload)

	default:
		// 지원하지 않는 형태: 적재 없이 폴백 안내만 회신한다
		if d.HasChat {
			if err := h.platform.SendText(ctx, d.ChatID, constants.TelegramConfig.FallbackText); err != nil {
				h.logger.Warn("WEBHOOK_FALLBACK_REPLY_FAILED",
					slog.Int64("chat_id", d.ChatID),
					slog.Any("error", err),
				)
			}
		} else {
			h.logger.Warn("WEBHOOK_FALLBACK_NO_CHAT")
		}
		h.acknowledge(c)
	}
}

// enqueue: 레코드를 큐에 적재하고 결과에 따라 응답한다.
// 적재 실패는 유일하게 5xx로 표면화되는 하류 실패다 — 레코드가 내구적으로
// 남지 않았으므로 성공을 가장하면 이벤트가 조용히 유실된다.
func (h *Handler) enqueue(c *gin.Context, payload []byte) {
	if err := h.queue.Publish(c.Request.Context(), payload); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "queue_unavailable",
			"message": "event not queued, retry expected",
		})
		return
	}
	h.acknowledge(c)
}

func (h *Handler) acknowledge(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
