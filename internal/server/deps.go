package server

import "context"

// Platform: 업스트림 챗 플랫폼 협력자 (미디어 해석/다운로드, 텍스트 회신)
// 실제 구현은 telegram.Client이며, 테스트에서는 페이크를 주입한다.
type Platform interface {
	FetchFile(ctx context.Context, fileID string) ([]byte, error)
	SendText(ctx context.Context, chatID int64, text string) error
}

// Transcriber: 음성 바이트를 텍스트로 변환하는 협력자
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// WorkQueue: 내구성 있는 작업 큐에 대한 쓰기/점검 연산
type WorkQueue interface {
	Publish(ctx context.Context, payload []byte) error
	Snapshot(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) bool
}
