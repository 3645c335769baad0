package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestClassifyScore(t *testing.T) {
	tests := []struct {
		score float64
		want  ScoreTier
	}{
		{10, ScoreHigh},
		{8, ScoreHigh},
		{7.9, ScoreMedium},
		{5, ScoreMedium},
		{4.9, ScoreLow},
		{0, ScoreLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyScore(tt.score), "score=%v", tt.score)
	}
}

func TestAnalysisResult_Issues(t *testing.T) {
	tests := []struct {
		name        string
		issues      *string
		wantFlagged bool
		wantText    string
	}{
		{"フィールドなし", nil, false, "none"},
		{"空文字", strPtr(""), false, "none"},
		{"None は問題なし", strPtr("None"), false, "None"},
		{"問題あり", strPtr("Blurry thumb"), true, "Blurry thumb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := AnalysisResult{Issues: tt.issues}
			assert.Equal(t, tt.wantFlagged, r.IssuesFlagged())
			assert.Equal(t, tt.wantText, r.IssuesText())
		})
	}
}

func TestAnalysisResult_Decode(t *testing.T) {
	t.Run("fingerCount は数値でも文字列でもそのまま保持する", func(t *testing.T) {
		var a, b AnalysisResult
		require.NoError(t, json.Unmarshal([]byte(`{"fingerCount":5,"realismScore":8.5,"lighting":"soft"}`), &a))
		require.NoError(t, json.Unmarshal([]byte(`{"fingerCount":"5 (Normal)","realismScore":4,"issues":"None"}`), &b))

		assert.Equal(t, Verbatim("5"), a.FingerCount)
		assert.Nil(t, a.Issues)
		assert.Equal(t, Verbatim("5 (Normal)"), b.FingerCount)
		require.NotNil(t, b.Issues)
		assert.Equal(t, "None", *b.Issues)
	})

	t.Run("Report はスコアを /10 付きで表示する", func(t *testing.T) {
		r := AnalysisResult{FingerCount: "5", RealismScore: 8, Lighting: "dim", Issues: strPtr("Occlusion")}
		rep := r.Report()
		assert.Equal(t, "8/10", rep.Score)
		assert.Equal(t, ScoreHigh, rep.Tier)
		assert.True(t, rep.IssuesFlagged)
		assert.Equal(t, "Occlusion", rep.Issues)
		assert.Equal(t, "5", rep.FingerCount)
	})
}

func TestGenerationMode(t *testing.T) {
	assert.Equal(t, "mod", ModeModification.Tag())
	assert.Equal(t, "var", ModeVariation.Tag())
	assert.True(t, ModeModification.RequiresReference())
	assert.False(t, ModeVariation.RequiresReference())

	m, err := ParseMode("modification")
	require.NoError(t, err)
	assert.Equal(t, ModeModification, m)
	_, err = ParseMode("remix")
	assert.Error(t, err)
}

func TestAnalysisState_CanStart(t *testing.T) {
	assert.True(t, AnalysisNone.CanStart())
	assert.True(t, AnalysisError.CanStart())
	assert.False(t, AnalysisLoading.CanStart())
	assert.False(t, AnalysisDone.CanStart())
	assert.Equal(t, "loading", AnalysisLoading.String())
}
