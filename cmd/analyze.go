package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/shouni/gesture-gen-kit/internal/builder"
	"github.com/shouni/gesture-gen-kit/pkg/domain"
	"github.com/shouni/gesture-gen-kit/pkg/imgutil"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>",
	Short: "画像ファイル1枚の品質を分析します。",
	Long:  "ローカルまたは gs:// の画像をギャラリーに追加し、分析レポートを表示します。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		ui := newConsoleUI(cmd.OutOrStdout(), cmd.ErrOrStderr())

		app, err := builder.NewAppContext(ctx, cfg, ui)
		if err != nil {
			return err
		}

		file, err := app.Previews.Load(ctx, domain.RegionSeed, args[0])
		if err != nil {
			return fmt.Errorf("画像の読み込みに失敗しました: %w", err)
		}

		dataURL := imgutil.EncodeDataURL(mimetype.Detect(file.Data).String(), file.Data)
		items, err := app.Gallery.Prepend([]string{dataURL}, []string{filepath.Base(args[0])})
		if err != nil {
			return err
		}

		// 結果は consoleUI が ItemChanged で表示する
		_, err = app.Analyzer.Analyze(ctx, items[0].ID)
		return err
	},
}
