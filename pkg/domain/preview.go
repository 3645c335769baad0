package domain

// PreviewRegion はプレビュー表示領域の識別子です。
type PreviewRegion string

const (
	RegionSeed      PreviewRegion = "seedPreview"
	RegionReference PreviewRegion = "refPreview"
)

// Preview はプレビュー領域の表示内容です。DataURL が空の場合は Placeholder を表示します。
type Preview struct {
	DataURL     string
	Placeholder string
}

// IsPlaceholder はプレースホルダー表示かどうかを返します。
func (p Preview) IsPlaceholder() bool {
	return p.DataURL == ""
}
