// Package form は生成フォームの入力状態を保持します。
// モード切り替えによる参照画像欄の表示・必須指定と、選択済みファイルの読み込みを扱います。
package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shouni/gesture-gen-kit/pkg/domain"
	"github.com/shouni/gesture-gen-kit/pkg/utils"
)

var (
	// ErrSeedRequired はシード画像が選択されていないことを表します。
	ErrSeedRequired = errors.New("シード画像を選択してください")
	// ErrReferenceRequired は modification モードで参照画像が選択されていないことを表します。
	ErrReferenceRequired = errors.New("参照画像を選択してください")
)

// FileLoader は選択されたファイルを読み込み、プレビューを更新します。preview.Loader が満たします。
type FileLoader interface {
	Load(ctx context.Context, region domain.PreviewRegion, path string) (*domain.ImageFile, error)
}

// Snapshot は描画用のフォーム状態です。
type Snapshot struct {
	APIKey            string
	ModelName         string
	Prompt            string
	BatchSize         int
	SeedPath          string
	ReferencePath     string
	ReferenceVisible  bool
	ReferenceRequired bool
	Selected          map[domain.GenerationMode]bool
}

// Form はフォームの入力値と選択済みファイルを保持します。
type Form struct {
	mu sync.RWMutex

	apiKey    string
	modelName string
	prompt    string
	batchSize int

	seed     *domain.ImageFile
	seedPath string
	ref      *domain.ImageFile
	refPath  string
	refGen   uint64
	seedGen  uint64

	refVisible  bool
	refRequired bool
	selected    map[domain.GenerationMode]bool

	loader FileLoader
}

// New は空のフォームを作成します。loader はファイル選択時に使われます。
func New(loader FileLoader) *Form {
	return &Form{
		modelName: domain.DefaultModelName,
		batchSize: 1,
		selected:  make(map[domain.GenerationMode]bool),
		loader:    loader,
	}
}

// SetLoader は後からファイルローダーを設定します。
func (f *Form) SetLoader(loader FileLoader) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loader = loader
}

func (f *Form) SetAPIKey(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.apiKey = v
}

func (f *Form) SetModelName(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.modelName = v
}

func (f *Form) SetPrompt(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompt = v
}

func (f *Form) SetBatchSize(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batchSize = n
}

// SelectFile は領域に対応する入力欄のファイルを選択し、プレビューを更新します。
// path が空の場合は選択を解除します。読み込みに失敗した場合も選択は解除されます。
func (f *Form) SelectFile(ctx context.Context, region domain.PreviewRegion, path string) error {
	f.mu.Lock()
	loader := f.loader
	gen := f.bump(region)
	f.set(region, path, nil)
	f.mu.Unlock()

	if loader == nil {
		return fmt.Errorf("loader is required")
	}

	file, err := loader.Load(ctx, region, path)

	f.mu.Lock()
	defer f.mu.Unlock()
	// 読み込み中に選択が変わった（モード切り替えで消された等）場合は結果を捨てる
	if f.generation(region) != gen {
		return err
	}
	if err != nil {
		f.set(region, "", nil)
		return err
	}
	f.set(region, path, file)
	return nil
}

// Values は送信用の入力値を返します。
func (f *Form) Values() domain.FormValues {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return domain.FormValues{
		APIKey:         f.apiKey,
		ModelName:      utils.FirstNonEmpty(f.modelName, domain.DefaultModelName),
		Prompt:         f.prompt,
		BatchSize:      f.batchSize,
		SeedImage:      f.seed,
		ReferenceImage: f.ref,
	}
}

// APIKey は現在入力されているAPIキーを返します。
func (f *Form) APIKey() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.apiKey
}

// Validate は送信前の必須入力チェックを行います。
func (f *Form) Validate() error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.seed == nil {
		return ErrSeedRequired
	}
	if f.refRequired && f.ref == nil {
		return ErrReferenceRequired
	}
	return nil
}

// Snapshot は描画用に現在の状態を複製して返します。
func (f *Form) Snapshot() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	selected := make(map[domain.GenerationMode]bool, len(f.selected))
	for k, v := range f.selected {
		selected[k] = v
	}
	return Snapshot{
		APIKey:            f.apiKey,
		ModelName:         f.modelName,
		Prompt:            f.prompt,
		BatchSize:         f.batchSize,
		SeedPath:          f.seedPath,
		ReferencePath:     f.refPath,
		ReferenceVisible:  f.refVisible,
		ReferenceRequired: f.refRequired,
		Selected:          selected,
	}
}

// SetModeSelected は mode.View の実装です。
func (f *Form) SetModeSelected(m domain.GenerationMode, selected bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selected[m] = selected
}

// SetReferenceInput は mode.View の実装です。
func (f *Form) SetReferenceInput(visible, required bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refVisible = visible
	f.refRequired = required
}

// ClearReferenceInput は mode.View の実装です。処理中の参照画像の読み込み結果も破棄されます。
func (f *Form) ClearReferenceInput() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refGen++
	f.ref = nil
	f.refPath = ""
}

func (f *Form) bump(region domain.PreviewRegion) uint64 {
	if region == domain.RegionReference {
		f.refGen++
		return f.refGen
	}
	f.seedGen++
	return f.seedGen
}

func (f *Form) generation(region domain.PreviewRegion) uint64 {
	if region == domain.RegionReference {
		return f.refGen
	}
	return f.seedGen
}

func (f *Form) set(region domain.PreviewRegion, path string, file *domain.ImageFile) {
	if region == domain.RegionReference {
		f.refPath, f.ref = path, file
		return
	}
	f.seedPath, f.seed = path, file
}
