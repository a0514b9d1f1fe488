package constants

import "time"

// ServerTimeout 는 패키지 변수다.
var ServerTimeout = struct {
	ReadHeader time.Duration
	Idle       time.Duration
	Shutdown   time.Duration
}{
	ReadHeader: 10 * time.Second,
	Idle:       60 * time.Second,
	Shutdown:   10 * time.Second,
}

// ServerConfig 는 패키지 변수다.
var ServerConfig = struct {
	TrustedProxies []string
}{
	TrustedProxies: []string{"127.0.0.1", "::1"},
}

// QueueConfig 는 패키지 변수다.
var QueueConfig = struct {
	DialTimeout      time.Duration
	ConnWriteTimeout time.Duration
	InitMaxElapsed   time.Duration
	InitMaxInterval  time.Duration
}{
	DialTimeout:      5 * time.Second,
	ConnWriteTimeout: 10 * time.Second,
	InitMaxElapsed:   30 * time.Second, // 기동 시 큐 백엔드 접속 재시도 상한
	InitMaxInterval:  5 * time.Second,
}

// TelegramConfig 는 패키지 변수다.
var TelegramConfig = struct {
	ReplyTimeout time.Duration
	FallbackText string
}{
	ReplyTimeout: 15 * time.Second, // 폴백 안내 메시지 전송 타임아웃
	FallbackText: "Sorry we only support Voice Notes and Text",
}

// TranscribeConfig 는 패키지 변수다.
var TranscribeConfig = struct {
	DefaultModel string
	BlobName     string
}{
	DefaultModel: "gpt-4o-transcribe",
	BlobName:     "voice.ogg", // 업로드 blob 파일명 (확장자로 포맷 추정됨)
}

// WebhookConfig 는 패키지 변수다.
var WebhookConfig = struct {
	SecretHeader string
}{
	SecretHeader: "X-Telegram-Bot-Api-Secret-Token", //nolint:gosec // G101: 헤더 이름일 뿐 실제 credentials가 아님
}
