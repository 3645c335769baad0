package domain

// AnalysisState はギャラリーアイテムの分析状態です。
type AnalysisState int

const (
	AnalysisNone AnalysisState = iota
	AnalysisLoading
	AnalysisDone
	AnalysisError
)

func (s AnalysisState) String() string {
	switch s {
	case AnalysisLoading:
		return "loading"
	case AnalysisDone:
		return "done"
	case AnalysisError:
		return "error"
	default:
		return "none"
	}
}

// CanStart は新しい分析を開始できる状態かどうかを返します。
// 読み込み中、またはレポート表示中は開始できません。
func (s AnalysisState) CanStart() bool {
	return s == AnalysisNone || s == AnalysisError
}

// GalleryItem は生成された画像1枚分のギャラリー要素です。
// ID は不変で、変化するのは分析状態だけです。
type GalleryItem struct {
	ID        string
	ImageData string
	Filename  string
	Analysis  AnalysisState
	Result    *AnalysisResult
	LastError string
}
