package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shouni/gesture-gen-kit/pkg/adapters"
	"github.com/shouni/gesture-gen-kit/pkg/domain"
	"github.com/shouni/gesture-gen-kit/pkg/gallery"
	"github.com/shouni/gesture-gen-kit/pkg/imgutil"
	"github.com/shouni/gesture-gen-kit/pkg/utils"
)

const (
	msgFailedPrefix = "分析に失敗しました: "
	msgErrorPrefix  = "分析エラー: "
	msgUnknown      = "不明なエラー"
)

// Orchestrator はギャラリーアイテムの品質分析を非同期に実行します。
// 同じアイテムに対する重複した分析は、アイテムの分析状態によって抑止されます。
type Orchestrator struct {
	transport   Transport
	images      ImageSource
	credentials CredentialSource
	gallery     Gallery
	notifier    Notifier
}

// NewOrchestrator は依存関係を注入して Orchestrator を初期化します。
func NewOrchestrator(transport Transport, images ImageSource, credentials CredentialSource, gallery Gallery, notifier Notifier) (*Orchestrator, error) {
	if transport == nil {
		return nil, fmt.Errorf("transport is required")
	}
	if images == nil {
		return nil, fmt.Errorf("images is required")
	}
	if credentials == nil {
		return nil, fmt.Errorf("credentials is required")
	}
	if gallery == nil {
		return nil, fmt.Errorf("gallery is required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier is required")
	}
	return &Orchestrator{
		transport:   transport,
		images:      images,
		credentials: credentials,
		gallery:     gallery,
		notifier:    notifier,
	}, nil
}

// Analyze はアイテムの分析を1回実行します。
// 読み込み中またはレポート表示中のアイテムに対しては何もせず started=false を返します。
// err は分析が失敗した場合に返り、その内容はユーザーにも通知済みです。
func (o *Orchestrator) Analyze(ctx context.Context, itemID string) (started bool, err error) {
	if err := checkID(itemID); err != nil {
		return false, err
	}
	item, started, err := o.gallery.BeginAnalysis(itemID)
	if err != nil {
		return false, err
	}
	if !started {
		slog.DebugContext(ctx, "分析中または分析済みのためスキップしました", "item_id", itemID, "state", item.Analysis)
		return false, nil
	}

	slog.InfoContext(ctx, "画像分析を開始します", "item_id", itemID, "filename", item.Filename)

	// 途中で panic しても読み込み表示が残らないようにする
	settled := false
	defer func() {
		if !settled {
			_, _ = o.gallery.FailAnalysis(itemID, msgUnknown)
		}
	}()

	payload, err := o.payload(ctx, item.ImageData)
	if err != nil {
		settled = true
		return true, o.fail(ctx, itemID, msgErrorPrefix+err.Error(), err)
	}

	result, err := o.transport.Analyze(ctx, o.credentials.APIKey(), payload)
	if err != nil {
		settled = true
		return true, o.fail(ctx, itemID, failureMessage(err), err)
	}

	settled = true
	if _, err := o.gallery.CompleteAnalysis(itemID, result); err != nil {
		return true, fmt.Errorf("分析結果の反映に失敗しました: %w", err)
	}
	slog.InfoContext(ctx, "画像分析が完了しました",
		"item_id", itemID,
		"realism_score", result.RealismScore,
		"tier", result.ScoreTier(),
		"issues_flagged", result.IssuesFlagged())
	return true, nil
}

// Dismiss は表示中の分析レポートを閉じます。閉じた後は再び Analyze できます。
func (o *Orchestrator) Dismiss(itemID string) (bool, error) {
	if err := checkID(itemID); err != nil {
		return false, err
	}
	return o.gallery.DismissReport(itemID)
}

// checkID はギャラリーに問い合わせる前に形式の崩れたIDを弾きます。
func checkID(itemID string) error {
	if !gallery.IsValidID(itemID) {
		return fmt.Errorf("%w: %q", gallery.ErrInvalidID, itemID)
	}
	return nil
}

// payload はアイテムの画像を取り出して送信用のPNGに変換します。
// 変換できない形式の場合は取得したバイト列をそのまま送ります。
func (o *Orchestrator) payload(ctx context.Context, ref string) ([]byte, error) {
	data, err := o.images.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}
	converted, err := imgutil.ToPNG(data)
	if err != nil {
		slog.WarnContext(ctx, "PNGへの変換に失敗したため元のデータを送信します", "error", err)
		return data, nil
	}
	return converted, nil
}

func (o *Orchestrator) fail(ctx context.Context, itemID, message string, cause error) error {
	if _, err := o.gallery.FailAnalysis(itemID, message); err != nil {
		slog.ErrorContext(ctx, "分析状態の更新に失敗しました", "item_id", itemID, "error", err)
	}
	o.notifier.Alert(message)
	slog.WarnContext(ctx, "画像分析に失敗しました", "item_id", itemID, "error", cause)
	return &domain.AlertedError{Err: fmt.Errorf("分析に失敗しました: %w", cause)}
}

// failureMessage はサーバーのエラーメッセージ、または通信エラーの内容から通知文言を作ります。
func failureMessage(err error) string {
	var se *adapters.ServerError
	var te *adapters.TransportError
	switch {
	case errors.As(err, &se):
		return msgFailedPrefix + utils.FirstNonEmpty(se.Message, msgUnknown)
	case errors.As(err, &te):
		return msgErrorPrefix + te.Err.Error()
	default:
		return msgErrorPrefix + err.Error()
	}
}
