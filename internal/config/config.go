package config

import (
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義
const (
	DefaultServerURL       = "http://127.0.0.1:5000"
	DefaultModel           = "gemini-2.5-flash-image"
	DefaultHTTPTimeout     = 120 * time.Second
	DefaultOutputDir       = "output"
	DefaultAnalyzeInterval = 2 * time.Second
	DefaultCacheTTL        = 30 * time.Minute
	DefaultCacheCleanup    = 1 * time.Hour
)

// Config はアプリケーション全体の環境設定を保持する構造体です。
type Config struct {
	ServerURL       string
	APIKey          string
	Model           string
	HTTPTimeout     time.Duration
	OutputDir       string
	AnalyzeInterval time.Duration

	Options SessionOptions
}

// SessionOptions は CLI フラグから渡される実行時のパラメータです。
type SessionOptions struct {
	// 入力関連
	SeedFile      string // --seed
	ReferenceFile string // --ref
	Prompt        string // --prompt
	Mode          string // --mode
	BatchSize     int    // --batch

	// 出力関連
	Export  bool   // --export
	Analyze bool   // --analyze
	LogFile string // --log-file
}

// LoadConfig は .env と環境変数から設定を読み込みます。.env が無い場合は環境変数のみを使います。
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env を読み込めなかったため環境変数のみを使用します", "error", err)
	}

	return &Config{
		ServerURL:       envutil.GetEnv("GESTURE_SERVER_URL", DefaultServerURL),
		APIKey:          envutil.GetEnv("GESTURE_API_KEY", ""),
		Model:           envutil.GetEnv("GESTURE_MODEL", DefaultModel),
		HTTPTimeout:     durationEnv("GESTURE_HTTP_TIMEOUT", DefaultHTTPTimeout),
		OutputDir:       envutil.GetEnv("GESTURE_OUTPUT_DIR", DefaultOutputDir),
		AnalyzeInterval: durationEnv("GESTURE_ANALYZE_INTERVAL", DefaultAnalyzeInterval),
		Options:         SessionOptions{BatchSize: 1},
	}
}

func durationEnv(key string, def time.Duration) time.Duration {
	raw := envutil.GetEnv(key, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		slog.Warn("不正な期間指定のため既定値を使用します", "key", key, "value", raw, "default", def)
		return def
	}
	return d
}
