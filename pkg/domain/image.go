package domain

const (
	// DefaultModelName はモデル名が未指定のときにサーバーへ送る値です。
	DefaultModelName = "gemini-2.5-flash-image"
	// DefaultFilename はファイル名なしで追加された画像に使う名前です。
	DefaultFilename = "generated_gesture.png"
)

// ImageFile はアップロード対象の画像ファイルです。
type ImageFile struct {
	Name string
	Data []byte
}

// GenerationRequest は1回の送信で組み立てられる生成要求です。送信後は変更しません。
// ReferenceImage は Mode が modification のときだけ設定されます。
type GenerationRequest struct {
	APIKey         string
	ModelName      string
	Prompt         string
	Mode           GenerationMode
	BatchSize      int
	SeedImage      ImageFile
	ReferenceImage *ImageFile
}

// GenerationResponse は /api/generate の応答本文です。
// 成功時は Images、失敗時は Error が入ります。
type GenerationResponse struct {
	Images []string `json:"images"`
	Error  string   `json:"error,omitempty"`
}

// FormValues は送信時点のフォームの内容です。
type FormValues struct {
	APIKey         string
	ModelName      string
	Prompt         string
	BatchSize      int
	SeedImage      *ImageFile
	ReferenceImage *ImageFile
}
