package analyzer

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Summary は AnalyzeAll の集計結果です。
type Summary struct {
	Succeeded int
	Failed    int
	Skipped   int
}

// AnalyzeAll はギャラリー内で分析可能なすべてのアイテムを並列に分析します。
// 各アイテムは Analyze と同じ状態チェックを通るため、既に分析中・分析済みのものはスキップされます。
// interval ごとに送信を開始し、Burst 2 により開始直後は2件まで同時に送ります。
// 個々の失敗は通知済みのため集計にだけ反映し、ctx の中断だけをエラーとして返します。
func (o *Orchestrator) AnalyzeAll(ctx context.Context, interval time.Duration) (Summary, error) {
	items := o.gallery.Items()

	var succeeded, failed, skipped atomic.Int64
	eg, egCtx := errgroup.WithContext(ctx)

	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	limiter := rate.NewLimiter(limit, 2)
	slog.InfoContext(ctx, "一括分析を開始します", "count", len(items), "interval", interval)

	for _, item := range items {
		if !item.Analysis.CanStart() {
			skipped.Add(1)
			continue
		}
		id := item.ID

		eg.Go(func() error {
			if err := limiter.Wait(egCtx); err != nil {
				return err
			}
			started, err := o.Analyze(egCtx, id)
			switch {
			case !started && err == nil:
				skipped.Add(1)
			case err != nil:
				failed.Add(1)
			default:
				succeeded.Add(1)
			}
			return nil
		})
	}

	err := eg.Wait()
	summary := Summary{
		Succeeded: int(succeeded.Load()),
		Failed:    int(failed.Load()),
		Skipped:   int(skipped.Load()),
	}
	slog.InfoContext(ctx, "一括分析が終了しました",
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"skipped", summary.Skipped)
	return summary, err
}
