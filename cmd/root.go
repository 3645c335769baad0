package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/shouni/gesture-gen-kit/internal/config"
	"github.com/shouni/gesture-gen-kit/pkg/domain"

	"github.com/spf13/cobra"
)

var (
	cfg  = config.LoadConfig()
	opts = &cfg.Options
)

// logFile はセッション終了時に閉じるログ出力先です。
var logFile *os.File

var rootCmd = &cobra.Command{
	Use:               "gesture-gen",
	Short:             "ジェスチャー画像生成スタジオのクライアントです。",
	Long:              "シード画像と参照画像からジェスチャー画像を生成し、ギャラリーで品質分析・保存を行います。",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: preRunAppE,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			_ = logFile.Close()
		}
	},
}

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義します。
// 既定値は環境変数から読み込んだ設定で、フラグの指定がそれを上書きします。
func addAppFlags(rootCmd *cobra.Command) {
	// --- サーバー接続 ---
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server-url", cfg.ServerURL, "生成スタジオサーバーのベースURLです。")
	rootCmd.PersistentFlags().StringVarP(&cfg.APIKey, "api-key", "k", cfg.APIKey, "サーバーへそのまま渡すAPIキーです。")
	rootCmd.PersistentFlags().StringVar(&cfg.Model, "model", cfg.Model, "使用する画像生成モデル名です。")
	rootCmd.PersistentFlags().DurationVar(&cfg.HTTPTimeout, "http-timeout", cfg.HTTPTimeout, "リクエストのタイムアウトです。")

	// --- 出力と分析 ---
	rootCmd.PersistentFlags().StringVarP(&cfg.OutputDir, "output-dir", "o", cfg.OutputDir, "画像の保存先ディレクトリ（ローカル or gs://...）です。")
	rootCmd.PersistentFlags().DurationVar(&cfg.AnalyzeInterval, "analyze-interval", cfg.AnalyzeInterval, "一括分析でリクエストを送る間隔です。")
	rootCmd.PersistentFlags().StringVar(&opts.LogFile, "log-file", "", "ログの出力先ファイルです。session では未指定の場合ログを破棄します。")
}

// preRunAppE は、コマンド実行前にログ出力先の設定と必須チェックを行います。
func preRunAppE(cmd *cobra.Command, args []string) error {
	if err := setupLogger(cmd.Name()); err != nil {
		return err
	}
	if cfg.ServerURL == "" {
		return fmt.Errorf("エラー: サーバーURLが設定されていません。--server-url か GESTURE_SERVER_URL を指定してください")
	}
	return nil
}

// setupLogger はログの出力先を決めます。対話セッションでは画面を崩さないよう標準エラーには出力しません。
func setupLogger(command string) error {
	var w io.Writer = os.Stderr
	switch {
	case opts.LogFile != "":
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("ログファイルを開けませんでした: %w", err)
		}
		logFile = f
		w = f
	case command == sessionCmd.Name():
		w = io.Discard
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, nil)))
	return nil
}

// Execute は、アプリケーションのメインエントリポイントです。
// main.go から呼び出されて、cobra のコマンドライン解析を開始します。
func Execute() {
	addAppFlags(rootCmd)
	rootCmd.AddCommand(sessionCmd, generateCmd, analyzeCmd)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		reportError(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

// reportError はコマンドが返したエラーを表示します。
// consoleUI で通知済みのエラーは二重に表示しません。
func reportError(w io.Writer, err error) {
	if domain.IsAlerted(err) {
		return
	}
	fmt.Fprintln(w, "Error:", err)
}
