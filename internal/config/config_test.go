package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("OPENAI_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != 8000 {
		t.Fatalf("unexpected default port: %d", cfg.Server.Port)
	}
	if cfg.Queue.QueueKey != "chatpay_queue" {
		t.Fatalf("unexpected default queue key: %s", cfg.Queue.QueueKey)
	}
	if cfg.Transcribe.Model != "gpt-4o-transcribe" {
		t.Fatalf("unexpected default transcribe model: %s", cfg.Transcribe.Model)
	}
	// 시크릿 미설정은 유효한 구성이다 (인증 생략 모드)
	if cfg.Telegram.WebhookSecret != "" {
		t.Fatalf("expected empty webhook secret by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", " token-with-space ")
	t.Setenv("TELEGRAM_WEBHOOK_SECRET", "s3cret")
	t.Setenv("OPENAI_API_KEY", "key")
	t.Setenv("REDIS_HOST", "queue.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("QUEUE_KEY", "chatpay_queue_staging")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Telegram.BotToken != "token-with-space" {
		t.Fatalf("expected trimmed bot token, got %q", cfg.Telegram.BotToken)
	}
	if cfg.Telegram.WebhookSecret != "s3cret" {
		t.Fatalf("unexpected webhook secret: %q", cfg.Telegram.WebhookSecret)
	}
	if cfg.Queue.Host != "queue.internal" || cfg.Queue.Port != 6380 {
		t.Fatalf("unexpected queue address: %s:%d", cfg.Queue.Host, cfg.Queue.Port)
	}
	if cfg.Queue.QueueKey != "chatpay_queue_staging" {
		t.Fatalf("unexpected queue key: %s", cfg.Queue.QueueKey)
	}
}

func TestValidateMissingRequired(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing bot token", func(c *Config) { c.Telegram.BotToken = "" }},
		{"missing openai key", func(c *Config) { c.Transcribe.APIKey = "" }},
		{"missing queue host", func(c *Config) { c.Queue.Host = "" }},
		{"missing queue key", func(c *Config) { c.Queue.QueueKey = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{
				Server:     ServerConfig{Port: 8000},
				Queue:      QueueConfig{Host: "redis", Port: 6379, QueueKey: "chatpay_queue"},
				Telegram:   TelegramConfig{BotToken: "token"},
				Transcribe: TranscribeConfig{APIKey: "key", Model: "gpt-4o-transcribe"},
			}
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
