package generator

import (
	"context"

	"github.com/shouni/gesture-gen-kit/pkg/domain"
)

// Transport は生成エンドポイントへの送信を行います。adapters.StudioClient が満たします。
type Transport interface {
	Generate(ctx context.Context, req domain.GenerationRequest) ([]string, error)
}

// ModeSource は現在の生成モードを提供します。mode.Controller が満たします。
type ModeSource interface {
	Current() domain.GenerationMode
}

// FormReader は送信時点のフォーム入力を提供します。form.Form が満たします。
type FormReader interface {
	Values() domain.FormValues
}

// SubmitControl は送信ボタンの有効状態とラベルを操作します。
type SubmitControl interface {
	SubmitLabel() string
	SetSubmitEnabled(enabled bool)
	SetSubmitLabel(label string)
}

// Notifier はユーザーへのエラー通知を行います。
type Notifier interface {
	Alert(message string)
}

// Gallery は生成結果の追加先です。gallery.Gallery が満たします。
type Gallery interface {
	Prepend(images, filenames []string) ([]domain.GalleryItem, error)
	RemovePlaceholder() bool
}
