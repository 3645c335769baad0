package cmd

import (
	"bytes"
	"testing"

	"github.com/shouni/gesture-gen-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestConsoleUI(t *testing.T) {
	var out, errOut bytes.Buffer
	ui := newConsoleUI(&out, &errOut)

	t.Run("分析完了時にレポートを表示する", func(t *testing.T) {
		ui.ItemChanged(domain.GalleryItem{
			Filename: "gesture_var_1.png",
			Analysis: domain.AnalysisDone,
			Result:   &domain.AnalysisResult{FingerCount: "5", RealismScore: 9, Lighting: "soft"},
		})
		assert.Contains(t, out.String(), "[gesture_var_1.png]")
		assert.Contains(t, out.String(), "9/10 (high)")
		assert.Contains(t, out.String(), "問題点: none")
	})

	t.Run("読み込み中は何も表示しない", func(t *testing.T) {
		out.Reset()
		ui.ItemChanged(domain.GalleryItem{Analysis: domain.AnalysisLoading})
		assert.Empty(t, out.String())
	})

	t.Run("通知は標準エラーへ", func(t *testing.T) {
		ui.Alert("ネットワークエラー: refused")
		assert.Contains(t, errOut.String(), "ネットワークエラー: refused")
	})

	t.Run("ラベルの保持", func(t *testing.T) {
		ui.SetSubmitLabel("生成中")
		assert.Equal(t, "生成中", ui.SubmitLabel())
	})
}
