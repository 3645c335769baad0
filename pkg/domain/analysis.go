package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// IssuesNone はサーバーが「問題なし」を表すために返す値です。
const IssuesNone = "None"

// ScoreTier はリアリティスコアの3段階評価です。
type ScoreTier string

const (
	ScoreHigh   ScoreTier = "high"
	ScoreMedium ScoreTier = "medium"
	ScoreLow    ScoreTier = "low"
)

// ClassifyScore はスコアを high (>=8), medium (>=5), low に分類します。
func ClassifyScore(score float64) ScoreTier {
	switch {
	case score >= 8:
		return ScoreHigh
	case score >= 5:
		return ScoreMedium
	default:
		return ScoreLow
	}
}

// Verbatim は数値でも文字列でも受け取り、受け取ったとおりに表示する値です。
// 指の本数は "5" や "5 (Normal)" のどちらでも返ってきます。
type Verbatim string

// UnmarshalJSON は JSON の文字列・数値をそのままの表記で保持します。
func (v *Verbatim) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Verbatim(s)
		return nil
	}
	*v = Verbatim(data)
	return nil
}

// MarshalJSON は数値として解釈できる場合は数値、それ以外は文字列で出力します。
func (v Verbatim) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseFloat(string(v), 64); err == nil {
		return []byte(v), nil
	}
	return json.Marshal(string(v))
}

// AnalysisResult は /api/analyze の成功応答です。受信後は読み取り専用です。
// Issues が nil の場合はフィールド自体が欠けていたことを表します。
type AnalysisResult struct {
	FingerCount  Verbatim `json:"fingerCount"`
	RealismScore float64  `json:"realismScore"`
	Lighting     string   `json:"lighting"`
	Issues       *string  `json:"issues,omitempty"`
}

// ScoreTier はスコアの分類を返します。
func (r AnalysisResult) ScoreTier() ScoreTier {
	return ClassifyScore(r.RealismScore)
}

// IssuesFlagged は問題が報告されているかを返します。空文字と "None" は問題なしです。
func (r AnalysisResult) IssuesFlagged() bool {
	return r.Issues != nil && *r.Issues != "" && *r.Issues != IssuesNone
}

// IssuesText は表示用の問題欄テキストを返します。欠けている場合は "none" です。
func (r AnalysisResult) IssuesText() string {
	if r.Issues == nil || *r.Issues == "" {
		return "none"
	}
	return *r.Issues
}

// AnalysisReport はアイテムに重ねて表示する分析レポートです。
type AnalysisReport struct {
	FingerCount   string
	Score         string
	Tier          ScoreTier
	Lighting      string
	Issues        string
	IssuesFlagged bool
}

// Report は結果を表示用のレポートに変換します。
func (r AnalysisResult) Report() AnalysisReport {
	return AnalysisReport{
		FingerCount:   string(r.FingerCount),
		Score:         strconv.FormatFloat(r.RealismScore, 'f', -1, 64) + "/10",
		Tier:          r.ScoreTier(),
		Lighting:      r.Lighting,
		Issues:        r.IssuesText(),
		IssuesFlagged: r.IssuesFlagged(),
	}
}
