// Package errors: ChatPay 수집 서비스 전체에서 사용되는 에러 타입들을 정의한다.
// 표준 Go 에러 스타일(Unwrap 지원)을 따른다.
package errors

import "fmt"

// ResolveError: 미디어 핸들(file_id)을 파일 경로로 해석하는 호출이 실패했을 때 발생한다.
// RawResponse에는 진단용으로 Telegram API의 원본 응답이 보존된다.
type ResolveError struct {
	FileID      string
	StatusCode  int    // HTTP 상태 코드 (0이면 네트워크 오류)
	RawResponse string // 진단용 원본 응답 본문
	Err         error
}

func (e ResolveError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("media resolve failed file_id=%s status=%d body=%s", e.FileID, e.StatusCode, e.RawResponse)
	}
	return fmt.Sprintf("media resolve failed file_id=%s status=%d: %v", e.FileID, e.StatusCode, e.Err)
}

func (e ResolveError) Unwrap() error { return e.Err }

// DownloadError: 해석된 경로에서 미디어 바이트를 내려받는 호출이 실패했을 때 발생한다.
type DownloadError struct {
	FilePath   string
	StatusCode int
	Err        error
}

func (e DownloadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("media download failed path=%s status=%d", e.FilePath, e.StatusCode)
	}
	return fmt.Sprintf("media download failed path=%s status=%d: %v", e.FilePath, e.StatusCode, e.Err)
}

func (e DownloadError) Unwrap() error { return e.Err }

// TranscriptionError: 음성 변환(STT) 서비스 호출이 실패했을 때 발생한다.
type TranscriptionError struct {
	Model string
	Err   error
}

func (e TranscriptionError) Error() string {
	return fmt.Sprintf("transcription failed model=%s: %v", e.Model, e.Err)
}

func (e TranscriptionError) Unwrap() error { return e.Err }

// QueueUnavailableError: 작업 큐 백엔드(Valkey)에 레코드를 적재하지 못했을 때 발생한다.
// 웹훅 레이어는 이 에러를 503으로 매핑하여 플랫폼 재전송에 의한 복구를 맡긴다.
type QueueUnavailableError struct {
	QueueKey string
	Err      error
}

func (e QueueUnavailableError) Error() string {
	return fmt.Sprintf("work queue unavailable key=%s: %v", e.QueueKey, e.Err)
}

func (e QueueUnavailableError) Unwrap() error { return e.Err }
