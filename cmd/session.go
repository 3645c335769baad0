package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shouni/gesture-gen-kit/internal/builder"
	"github.com/shouni/gesture-gen-kit/internal/tui"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "対話的な生成セッションを開始します。",
	Long:  "フォーム入力、モード切り替え、生成、ギャラリーでの分析と保存をターミナル上で行います。",
	RunE: func(cmd *cobra.Command, args []string) error {
		bridge := tui.NewBridge()
		app, err := builder.NewAppContext(cmd.Context(), cfg, bridge)
		if err != nil {
			return err
		}
		if _, err := tea.NewProgram(tui.New(app, bridge), tea.WithAltScreen()).Run(); err != nil {
			return fmt.Errorf("セッションの実行に失敗しました: %w", err)
		}
		return nil
	},
}
