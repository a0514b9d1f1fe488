// Package telegram: Telegram Bot API 연동 (미디어 핸들 해석/다운로드, 폴백 회신)
package telegram

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/goccy/go-json"

	"github.com/kapu/chatpay-ingest-go/internal/constants"
	"github.com/kapu/chatpay-ingest-go/internal/util"
	apperrors "github.com/kapu/chatpay-ingest-go/pkg/errors"
)

// ClientConfig: Telegram 클라이언트 생성 설정
// 엔드포인트는 테스트에서 httptest 서버로 교체하기 위해 노출한다.
type ClientConfig struct {
	BotToken     string
	APIEndpoint  string       // 비우면 tgbotapi.APIEndpoint
	FileEndpoint string       // 비우면 tgbotapi.FileEndpoint
	HTTPClient   *http.Client // 비우면 타임아웃 없는 기본 클라이언트
}

// Client: 프로세스 전역으로 공유되는 Telegram Bot API 클라이언트
// 미디어 해석(getFile)은 tgbotapi를 통해, 바이트 다운로드와 회신 전송은
// 직접 HTTP 호출로 수행한다 (다운로드는 타임아웃 없음, 회신은 고정 타임아웃).
type Client struct {
	api          *tgbotapi.BotAPI
	httpClient   *http.Client
	token        string
	apiEndpoint  string
	fileEndpoint string
	logger       *slog.Logger
}

// NewClient: Telegram Bot API 클라이언트를 생성하고 토큰을 검증(getMe)한다.
func NewClient(cfg ClientConfig, logger *slog.Logger) (*Client, error) {
	apiEndpoint := cfg.APIEndpoint
	if apiEndpoint == "" {
		apiEndpoint = tgbotapi.APIEndpoint
	}
	fileEndpoint := cfg.FileEndpoint
	if fileEndpoint == "" {
		fileEndpoint = tgbotapi.FileEndpoint
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	api, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, apiEndpoint, httpClient)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot api client: %w", err)
	}

	return &Client{
		api:          api,
		httpClient:   httpClient,
		token:        cfg.BotToken,
		apiEndpoint:  apiEndpoint,
		fileEndpoint: fileEndpoint,
		logger:       logger,
	}, nil
}

// FetchFile: 미디어 핸들(file_id)을 실제 바이트로 해석한다. 두 번의 왕복으로 수행된다:
// getFile로 서버측 경로를 얻고, 파일 엔드포인트에서 바이트를 내려받는다.
// 내부 재시도는 없다. 실패는 ResolveError/DownloadError로 구분되어 전파된다.
func (c *Client) FetchFile(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := c.api.Request(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		resolveErr := apperrors.ResolveError{FileID: fileID, Err: err}
		if resp != nil {
			resolveErr.StatusCode = resp.ErrorCode
			resolveErr.RawResponse = resp.Description
		}
		c.logger.Error("TELEGRAM_GETFILE_ERROR",
			slog.String("file_id", fileID),
			slog.Any("error", err),
		)
		return nil, resolveErr
	}

	var file tgbotapi.File
	if err := json.Unmarshal(resp.Result, &file); err != nil || file.FilePath == "" {
		raw := util.TruncateString(string(resp.Result), 500)
		c.logger.Error("TELEGRAM_GETFILE_RESP_ERROR",
			slog.String("file_id", fileID),
			slog.String("body", raw),
		)
		return nil, apperrors.ResolveError{FileID: fileID, RawResponse: raw, Err: err}
	}

	data, err := c.downloadFile(ctx, file.FilePath)
	if err != nil {
		return nil, err
	}

	c.logger.Info("TELEGRAM_FILE_FETCHED",
		slog.String("file_id", fileID),
		slog.Int("bytes", len(data)),
	)
	return data, nil
}

func (c *Client) downloadFile(ctx context.Context, filePath string) ([]byte, error) {
	url := fmt.Sprintf(c.fileEndpoint, c.token, filePath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.DownloadError{FilePath: filePath, Err: err}
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("TELEGRAM_DOWNLOAD_ERROR",
			slog.String("file_path", filePath),
			slog.Any("error", err),
		)
		return nil, apperrors.DownloadError{FilePath: filePath, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		c.logger.Error("TELEGRAM_DOWNLOAD_STATUS_ERROR",
			slog.String("file_path", filePath),
			slog.Int("status", res.StatusCode),
		)
		return nil, apperrors.DownloadError{FilePath: filePath, StatusCode: res.StatusCode}
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, apperrors.DownloadError{FilePath: filePath, StatusCode: res.StatusCode, Err: err}
	}
	return data, nil
}

// SendText: 지정된 대화방으로 텍스트 회신(폴백 안내)을 전송한다.
// 고정된 짧은 타임아웃을 적용하며, 호출자는 실패를 흡수한다.
func (c *Client) SendText(ctx context.Context, chatID int64, text string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.TelegramConfig.ReplyTimeout)
	defer cancel()

	payload, err := json.Marshal(map[string]any{
		"chat_id": chatID,
		"text":    text,
	})
	if err != nil {
		return fmt.Errorf("marshal sendMessage payload: %w", err)
	}

	url := fmt.Sprintf(c.apiEndpoint, c.token, "sendMessage")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create sendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send reply to chat %d: %w", chatID, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("send reply to chat %d: status=%d body=%s",
			chatID, res.StatusCode, util.TruncateString(string(body), 200))
	}

	c.logger.Info("TELEGRAM_REPLY_SENT", slog.Int64("chat_id", chatID))
	return nil
}

// Username: 봇 계정의 username을 반환한다. (기동 로그용)
func (c *Client) Username() string {
	return c.api.Self.UserName
}
