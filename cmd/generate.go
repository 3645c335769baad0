package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/gesture-gen-kit/internal/builder"
	"github.com/shouni/gesture-gen-kit/pkg/domain"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "1回分の画像を生成してギャラリーに追加します。",
	Long:  "シード画像（modification モードでは参照画像も）を送信し、生成結果を保存・分析します。",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		ui := newConsoleUI(cmd.OutOrStdout(), cmd.ErrOrStderr())

		app, err := builder.NewAppContext(ctx, cfg, ui)
		if err != nil {
			return err
		}

		m, err := domain.ParseMode(opts.Mode)
		if err != nil {
			return err
		}
		app.Modes.SetMode(m)
		app.Form.SetPrompt(opts.Prompt)
		app.Form.SetBatchSize(opts.BatchSize)

		if err := app.Form.SelectFile(ctx, domain.RegionSeed, opts.SeedFile); err != nil {
			return fmt.Errorf("シード画像の読み込みに失敗しました: %w", err)
		}
		if opts.ReferenceFile != "" {
			if err := app.Form.SelectFile(ctx, domain.RegionReference, opts.ReferenceFile); err != nil {
				return fmt.Errorf("参照画像の読み込みに失敗しました: %w", err)
			}
		}
		if err := app.Form.Validate(); err != nil {
			return err
		}

		slog.InfoContext(ctx, "Executing gesture generation",
			"mode", m,
			"batch_size", opts.BatchSize,
			"server", app.Client.BaseURL())

		items, err := app.Generator.Submit(ctx)
		if err != nil {
			return err
		}
		for _, it := range items {
			fmt.Fprintln(cmd.OutOrStdout(), it.Filename)
		}

		if opts.Analyze {
			summary, err := app.Analyzer.AnalyzeAll(ctx, cfg.AnalyzeInterval)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "分析: 成功 %d / 失敗 %d / スキップ %d\n", summary.Succeeded, summary.Failed, summary.Skipped)
		}

		if opts.Export {
			paths, err := app.Exporter.ExportAll(ctx, app.Gallery.Items())
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), "保存しました:", p)
			}
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&opts.SeedFile, "seed", "s", "", "シード画像のパス（ローカル or gs://...）です。")
	generateCmd.Flags().StringVarP(&opts.ReferenceFile, "ref", "r", "", "参照画像のパスです。modification モードで必須です。")
	generateCmd.Flags().StringVarP(&opts.Prompt, "prompt", "p", "", "生成プロンプトです。")
	generateCmd.Flags().StringVarP(&opts.Mode, "mode", "m", string(domain.ModeVariation), "生成モード（variation または modification）です。")
	generateCmd.Flags().IntVarP(&opts.BatchSize, "batch", "b", 1, "1回の生成で作る画像の枚数です。")
	generateCmd.Flags().BoolVar(&opts.Export, "export", true, "生成した画像を --output-dir に保存します。")
	generateCmd.Flags().BoolVar(&opts.Analyze, "analyze", false, "生成した画像をすべて品質分析します。")
	_ = generateCmd.MarkFlagRequired("seed")
}
