package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/kapu/chatpay-ingest-go/internal/util"
)

// Config: ChatPay 수집 서비스의 전체 동작에 필요한 설정을 담는 구조체
type Config struct {
	Server     ServerConfig
	Queue      QueueConfig
	Telegram   TelegramConfig
	Transcribe TranscribeConfig
	Logging    LoggingConfig
	Version    string
}

// ServerConfig: HTTP 서버 설정
type ServerConfig struct {
	Port int
}

// QueueConfig: Redis(Valkey) 기반 작업 큐 연결 설정
type QueueConfig struct {
	Host     string
	Port     int
	Password string
	QueueKey string
}

// TelegramConfig: Telegram Bot API 연동 설정
// WebhookSecret이 비어있으면 웹훅 인증을 건너뛴다 (보안 저하 모드).
type TelegramConfig struct {
	BotToken      string
	WebhookSecret string
}

// TranscribeConfig: 음성 변환(STT) 서비스 설정
type TranscribeConfig struct {
	APIKey string
	Model  string
}

// LoggingConfig: 애플리케이션 로그 설정 (레벨, 디렉토리, 로테이션 정책)
type LoggingConfig struct {
	Level      string
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Load: .env 파일 및 환경 변수로부터 설정을 로드하고, 기본값을 적용하여 Config 객체를 생성한다.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvInt("SERVER_PORT", 8000),
		},
		Queue: QueueConfig{
			Host:     getEnv("REDIS_HOST", "redis"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			QueueKey: getEnv("QUEUE_KEY", "chatpay_queue"),
		},
		Telegram: TelegramConfig{
			BotToken:      util.TrimSpace(getEnv("TELEGRAM_BOT_TOKEN", "")),
			WebhookSecret: util.TrimSpace(getEnv("TELEGRAM_WEBHOOK_SECRET", "")),
		},
		Transcribe: TranscribeConfig{
			APIKey: util.TrimSpace(getEnv("OPENAI_API_KEY", "")),
			Model:  getEnv("TRANSCRIBE_MODEL", "gpt-4o-transcribe"),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Dir:        getEnv("LOG_DIR", ""),
			MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
			MaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 30),
			Compress:   getEnvBool("LOG_COMPRESS", true),
		},
		Version: util.TrimSpace(getEnv("APP_VERSION", "1.0.0-go")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate: 필수 설정값이 누락되지 않았는지 검증한다.
// 웹훅 시크릿은 의도적으로 선택 사항이다 (미설정 시 인증 생략 — 원본 계약 유지).
func (c *Config) Validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("SERVER_PORT is required")
	}
	if c.Queue.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}
	if c.Queue.QueueKey == "" {
		return fmt.Errorf("QUEUE_KEY is required")
	}
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if c.Transcribe.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
