// Package queue: Redis(Valkey) 리스트 기반의 내구성 있는 작업 큐
// 이 서비스는 유일한 쓰기 주체이며, 소비는 별도 프로세스가 out-of-band로 수행한다.
package queue

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/cenkalti/backoff/v4"
	"github.com/valkey-io/valkey-go"

	"github.com/kapu/chatpay-ingest-go/internal/constants"
	apperrors "github.com/kapu/chatpay-ingest-go/pkg/errors"
)

// PublisherConfig: 작업 큐 연결 설정
type PublisherConfig struct {
	Host     string
	Port     int
	Password string
	QueueKey string
}

// Publisher: 작업 큐에 레코드를 적재(Publish)하는 프로세스 전역 클라이언트
// 연결은 기동 시 한 번 열어 요청 간에 공유한다.
type Publisher struct {
	client   valkey.Client
	queueKey string
	logger   *slog.Logger
}

// NewPublisher: Valkey 클라이언트를 생성하고 연결이 확인될 때까지 지수 백오프로 재시도한다.
func NewPublisher(ctx context.Context, cfg PublisherConfig, logger *slog.Logger) (*Publisher, error) {
	addr := net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port))

	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:      []string{addr},
		Password:         cfg.Password,
		SelectDB:         0,
		ConnWriteTimeout: constants.QueueConfig.ConnWriteTimeout,
		Dialer:           net.Dialer{Timeout: constants.QueueConfig.DialTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("create valkey client: %w", err)
	}

	retryBackoff := backoff.NewExponentialBackOff()
	retryBackoff.MaxInterval = constants.QueueConfig.InitMaxInterval
	retryBackoff.MaxElapsedTime = constants.QueueConfig.InitMaxElapsed

	pingOnce := func() error {
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Warn("QUEUE_INIT_PING_RETRY",
				slog.String("addr", addr),
				slog.Any("error", err),
			)
			return err
		}
		return nil
	}
	if err := backoff.Retry(pingOnce, backoff.WithContext(retryBackoff, ctx)); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping valkey at %s: %w", addr, err)
	}

	logger.Info("QUEUE_CONNECTED",
		slog.String("addr", addr),
		slog.String("queue_key", cfg.QueueKey),
	)

	return &Publisher{
		client:   client,
		queueKey: cfg.QueueKey,
		logger:   logger,
	}, nil
}

// Publish: 직렬화된 레코드를 큐의 꼬리에 추가한다(RPUSH). 호출 단위로 원자적이며,
// 동시 호출 간 순서는 백엔드 도착 순서를 따른다. 중복 제거는 하지 않는다
// (at-least-once — 플랫폼의 중복 전송은 중복 레코드가 된다).
func (p *Publisher) Publish(ctx context.Context, payload []byte) error {
	cmd := p.client.B().Rpush().Key(p.queueKey).Element(string(payload)).Build()
	if err := p.client.Do(ctx, cmd).Error(); err != nil {
		p.logger.Error("QUEUE_PUBLISH_ERROR",
			slog.String("queue_key", p.queueKey),
			slog.Any("error", err),
		)
		return apperrors.QueueUnavailableError{QueueKey: p.queueKey, Err: err}
	}

	p.logger.Info("QUEUE_PUBLISHED",
		slog.String("queue_key", p.queueKey),
		slog.Int("bytes", len(payload)),
	)
	return nil
}

// Snapshot: 큐의 현재 전체 내용을 순서대로 반환한다 (LRANGE 0 -1).
// 진단 용도이며 큐 길이에 비례하는 무제한 읽기다.
func (p *Publisher) Snapshot(ctx context.Context) ([]string, error) {
	cmd := p.client.B().Lrange().Key(p.queueKey).Start(0).Stop(-1).Build()
	items, err := p.client.Do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, apperrors.QueueUnavailableError{QueueKey: p.queueKey, Err: err}
	}
	return items, nil
}

// Ping: 큐 백엔드와의 연결 상태를 점검한다. (헬스체크용)
func (p *Publisher) Ping(ctx context.Context) bool {
	if err := p.client.Do(ctx, p.client.B().Ping().Build()).Error(); err != nil {
		p.logger.Warn("QUEUE_PING_FAILED", slog.Any("error", err))
		return false
	}
	return true
}

// Close: 클라이언트 연결을 해제한다.
func (p *Publisher) Close() {
	p.client.Close()
}
