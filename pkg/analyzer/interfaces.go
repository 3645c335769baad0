package analyzer

import (
	"context"

	"github.com/shouni/gesture-gen-kit/pkg/domain"
)

// Transport は分析エンドポイントへの送信を行います。adapters.StudioClient が満たします。
type Transport interface {
	Analyze(ctx context.Context, apiKey string, image []byte) (domain.AnalysisResult, error)
}

// ImageSource はアイテムの画像参照からバイト列を取り出します。adapters.ImageFetcher が満たします。
type ImageSource interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// CredentialSource は送信時点のAPIキーを提供します。form.Form が満たします。
type CredentialSource interface {
	APIKey() string
}

// Gallery はアイテムごとの分析状態を管理します。gallery.Gallery が満たします。
type Gallery interface {
	Items() []domain.GalleryItem
	BeginAnalysis(id string) (domain.GalleryItem, bool, error)
	CompleteAnalysis(id string, result domain.AnalysisResult) (domain.GalleryItem, error)
	FailAnalysis(id string, message string) (domain.GalleryItem, error)
	DismissReport(id string) (bool, error)
}

// Notifier はユーザーへのエラー通知を行います。
type Notifier interface {
	Alert(message string)
}
