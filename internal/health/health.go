// Package health: 서비스 상태 정보
package health

import (
	"runtime"
	"sync"
	"time"
)

var (
	startTime time.Time
	version   = "dev"
	initOnce  sync.Once
)

// Init: 서비스 시작 시 호출 (버전 정보 설정)
func Init(v string) {
	initOnce.Do(func() {
		startTime = time.Now()
		if v != "" {
			version = v
		}
	})
}

// Response: 헬스체크 엔드포인트 표준 응답
// QueueConnected는 호출 시점의 큐 백엔드 연결 여부로, 핸들러가 채운다.
type Response struct {
	Status         string `json:"status"`
	Version        string `json:"version"`
	Uptime         string `json:"uptime"`
	Goroutines     int    `json:"goroutines"`
	QueueConnected bool   `json:"redis_connected"`
}

// Get: 현재 프로세스 상태 반환 (큐 연결 여부 포함)
func Get(queueConnected bool) Response {
	return Response{
		Status:         "Main API Running",
		Version:        version,
		Uptime:         formatDuration(time.Since(startTime)),
		Goroutines:     runtime.NumGoroutine(),
		QueueConnected: queueConnected,
	}
}

// formatDuration: Duration을 사람이 읽기 쉬운 형식으로 변환
func formatDuration(d time.Duration) string {
	return d.Round(time.Second).String()
}
