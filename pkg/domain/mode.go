package domain

import "fmt"

// GenerationMode は生成モードです。常にどちらか一方だけが有効です。
type GenerationMode string

const (
	// ModeVariation はシード画像のジェスチャーを保ったまま背景や属性を変える自由生成です。
	ModeVariation GenerationMode = "variation"
	// ModeModification は参照画像のジェスチャーへシード画像のスタイルを移す生成です。
	ModeModification GenerationMode = "modification"
)

// Modes は UI に並べるモードの一覧です。
var Modes = []GenerationMode{ModeVariation, ModeModification}

// Tag はファイル名に埋め込む短縮タグを返します。
func (m GenerationMode) Tag() string {
	if m == ModeModification {
		return "mod"
	}
	return "var"
}

// RequiresReference は参照画像が必須かどうかを返します。
func (m GenerationMode) RequiresReference() bool {
	return m == ModeModification
}

// ParseMode は文字列をモードに変換します。
func ParseMode(s string) (GenerationMode, error) {
	switch GenerationMode(s) {
	case ModeVariation, ModeModification:
		return GenerationMode(s), nil
	}
	return "", fmt.Errorf("不明なモードです: %q (variation または modification)", s)
}
