package queue

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/valkey-io/valkey-go"

	apperrors "github.com/kapu/chatpay-ingest-go/pkg/errors"
)

func newTestPublisher(t *testing.T) (*Publisher, *miniredis.Miniredis) {
	t.Helper()

	mini := miniredis.RunT(t)
	host, portStr, err := net.SplitHostPort(mini.Addr())
	if err != nil {
		t.Fatalf("failed to split address: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:       []string{net.JoinHostPort(host, portStr)},
		DisableCache:      true,
		ForceSingleClient: true,
	})
	if err != nil {
		t.Fatalf("failed to create valkey client: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		t.Fatalf("failed to ping miniredis: %v", err)
	}
	pub := &Publisher{client: client, queueKey: "chatpay_queue", logger: logger}

	t.Cleanup(func() {
		pub.Close()
		mini.Close()
	})

	return pub, mini
}

func TestPublishAppendsInOrder(t *testing.T) {
	pub, mini := newTestPublisher(t)
	ctx := context.Background()

	records := []string{`{"seq":1}`, `{"seq":2}`, `{"seq":3}`}
	for _, r := range records {
		if err := pub.Publish(ctx, []byte(r)); err != nil {
			t.Fatalf("publish failed: %v", err)
		}
	}

	items, err := mini.List("chatpay_queue")
	if err != nil {
		t.Fatalf("failed to read list: %v", err)
	}
	if len(items) != len(records) {
		t.Fatalf("unexpected queue length: %d", len(items))
	}
	for i, r := range records {
		if items[i] != r {
			t.Fatalf("order violated at %d: got %q, expected %q", i, items[i], r)
		}
	}
}

func TestPublishDuplicatesKept(t *testing.T) {
	pub, mini := newTestPublisher(t)
	ctx := context.Background()

	// at-least-once: 동일 페이로드의 중복 적재는 중복 레코드가 된다
	payload := []byte(`{"message":{"chat":{"id":1},"text":"hello"}}`)
	if err := pub.Publish(ctx, payload); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if err := pub.Publish(ctx, payload); err != nil {
		t.Fatalf("duplicate publish failed: %v", err)
	}

	items, err := mini.List("chatpay_queue")
	if err != nil {
		t.Fatalf("failed to read list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected duplicate records, got %d", len(items))
	}
}

func TestSnapshotPreservesOrder(t *testing.T) {
	pub, _ := newTestPublisher(t)
	ctx := context.Background()

	if err := pub.Publish(ctx, []byte("a")); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if err := pub.Publish(ctx, []byte("b")); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	items, err := pub.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if len(items) != 2 || items[0] != "a" || items[1] != "b" {
		t.Fatalf("unexpected snapshot: %v", items)
	}
}

func TestPublishBackendDown(t *testing.T) {
	pub, mini := newTestPublisher(t)
	ctx := context.Background()

	mini.Close()

	err := pub.Publish(ctx, []byte("lost"))
	if err == nil {
		t.Fatalf("expected publish failure")
	}
	var unavailable apperrors.QueueUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected QueueUnavailableError, got %T: %v", err, err)
	}
}

func TestPing(t *testing.T) {
	pub, mini := newTestPublisher(t)
	ctx := context.Background()

	if !pub.Ping(ctx) {
		t.Fatalf("expected ping to succeed")
	}

	mini.Close()
	if pub.Ping(ctx) {
		t.Fatalf("expected ping to fail after backend shutdown")
	}
}
