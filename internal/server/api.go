package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kapu/chatpay-ingest-go/internal/health"
)

// HandleQueueInspect: GET /queue
// 큐의 현재 전체 내용과 길이를 반환한다. 운영 진단용이며 큐 길이에 비례하는
// 무제한 읽기이므로 상시 소비 용도로는 쓰지 않는다.
func (h *Handler) HandleQueueInspect(c *gin.Context) {
	items, err := h.queue.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "queue_unavailable",
			"message": "failed to read queue",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"queue_length": len(items),
		"items":        items,
	})
}

// HandleHealth: GET /
// 프로세스 생존 여부와 호출 시점의 큐 백엔드 연결 여부를 반환한다. 항상 200.
func (h *Handler) HandleHealth(c *gin.Context) {
	connected := h.queue.Ping(c.Request.Context())
	c.JSON(http.StatusOK, health.Get(connected))
}
