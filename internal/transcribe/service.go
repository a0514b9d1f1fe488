// Package transcribe: 외부 STT 서비스(OpenAI)를 통한 음성 → 텍스트 변환
package transcribe

import (
	"bytes"
	"context"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kapu/chatpay-ingest-go/internal/constants"
	apperrors "github.com/kapu/chatpay-ingest-go/pkg/errors"
)

// ServiceConfig: STT 서비스 설정
type ServiceConfig struct {
	APIKey  string
	Model   string // 비우면 기본 모델 사용
	BaseURL string // 테스트용 엔드포인트 교체 (비우면 OpenAI 기본)
}

// Service: 프로세스 전역으로 공유되는 음성 변환 클라이언트
type Service struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewService: OpenAI 클라이언트를 감싼 변환 서비스를 생성한다.
func NewService(cfg ServiceConfig, logger *slog.Logger) *Service {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = constants.TranscribeConfig.DefaultModel
	}

	return &Service{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
		logger: logger,
	}
}

// Transcribe: 오디오 바이트를 이름 붙은 blob으로 제출하고 변환된 텍스트를 반환한다.
// 단일 시도이며, 실패는 TranscriptionError로 전파된다 (흡수는 웹훅 레이어의 정책).
func (s *Service) Transcribe(ctx context.Context, audio []byte) (string, error) {
	resp, err := s.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    s.model,
		FilePath: constants.TranscribeConfig.BlobName,
		Reader:   bytes.NewReader(audio),
	})
	if err != nil {
		s.logger.Error("TRANSCRIBE_ERROR",
			slog.String("model", s.model),
			slog.Int("audio_bytes", len(audio)),
			slog.Any("error", err),
		)
		return "", apperrors.TranscriptionError{Model: s.model, Err: err}
	}

	s.logger.Info("TRANSCRIBE_OK",
		slog.String("model", s.model),
		slog.Int("audio_bytes", len(audio)),
		slog.Int("text_len", len(resp.Text)),
	)
	return resp.Text, nil
}
