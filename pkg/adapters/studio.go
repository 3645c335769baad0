package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/shouni/gesture-gen-kit/pkg/domain"
)

const (
	generatePath = "/api/generate"
	analyzePath  = "/api/analyze"

	// AnalyzeFilename は分析用に送る画像パートのファイル名です。
	AnalyzeFilename = "image.png"
)

// StudioClient は生成サーバーの /api/generate と /api/analyze を呼び出すクライアントです。
type StudioClient struct {
	baseURL *url.URL
	client  *resty.Client
}

// NewStudioClient はサーバーのベースURLと resty クライアントを受け取って初期化します。
// client が nil の場合は resty.New() を使います。タイムアウトは client 側で設定します。
func NewStudioClient(baseURL string, client *resty.Client) (*StudioClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("baseURL のパースに失敗しました: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("不許可スキーム: %s", u.Scheme)
	}
	if client == nil {
		client = resty.New()
	}
	return &StudioClient{baseURL: u, client: client}, nil
}

// BaseURL はサーバーのベースURLを返します。
func (c *StudioClient) BaseURL() string {
	return c.baseURL.String()
}

// Generate は生成要求を multipart で送信し、data URL の配列を返します。
// 返るエラーは ErrMalformedResponse, *ServerError, *TransportError のいずれかです。
func (c *StudioClient) Generate(ctx context.Context, req domain.GenerationRequest) ([]string, error) {
	form := c.request(ctx).SetFormData(map[string]string{
		"api_key":    req.APIKey,
		"model_name": req.ModelName,
		"prompt":     req.Prompt,
		"mode":       string(req.Mode),
		"batch_size": strconv.Itoa(req.BatchSize),
	})
	setImageField(form, "seed_image", req.SeedImage)
	if req.Mode == domain.ModeModification && req.ReferenceImage != nil {
		setImageField(form, "reference_image", *req.ReferenceImage)
	}

	body, err := c.post(ctx, form, generatePath)
	if err != nil {
		return nil, err
	}
	return parseImages(body)
}

// Analyze は画像とAPIキーを送信して品質分析結果を返します。
func (c *StudioClient) Analyze(ctx context.Context, apiKey string, image []byte) (domain.AnalysisResult, error) {
	form := c.request(ctx).
		SetFormData(map[string]string{"api_key": apiKey}).
		SetMultipartField("image", AnalyzeFilename, "image/png", bytes.NewReader(image))

	body, err := c.post(ctx, form, analyzePath)
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal(body, &result); err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return result, nil
}

func (c *StudioClient) request(ctx context.Context) *resty.Request {
	return c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json")
}

// post は送信して2xxの本文を返します。応答が無い場合は *TransportError、2xx以外は *ServerError です。
func (c *StudioClient) post(ctx context.Context, form *resty.Request, path string) ([]byte, error) {
	endpoint := c.baseURL.ResolveReference(&url.URL{Path: strings.TrimPrefix(path, "/")}).String()

	resp, err := form.Post(endpoint)
	if err != nil {
		return nil, &TransportError{Op: "POST " + path, Err: err}
	}

	body := resp.Body()
	slog.DebugContext(ctx, "サーバー応答を受信しました", "path", path, "status", resp.StatusCode(), "bytes", len(body))
	if !isSuccess(resp.StatusCode()) {
		return nil, &ServerError{Status: resp.StatusCode(), Message: parseErrorMessage(body)}
	}
	return body, nil
}

func setImageField(form *resty.Request, field string, f domain.ImageFile) {
	name := f.Name
	if name == "" {
		name = field + ".png"
	}
	form.SetMultipartField(field, name, http.DetectContentType(f.Data), bytes.NewReader(f.Data))
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// parseImages は2xx応答の本文から images 配列を取り出します。
// images が無い、または文字列の配列でない場合は ErrMalformedResponse です。
func parseImages(body []byte) ([]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	field, ok := raw["images"]
	if !ok {
		return nil, fmt.Errorf("%w: images フィールドがありません", ErrMalformedResponse)
	}
	var images []string
	if err := json.Unmarshal(field, &images); err != nil || images == nil {
		return nil, fmt.Errorf("%w: images が配列ではありません", ErrMalformedResponse)
	}
	return images, nil
}

func parseErrorMessage(body []byte) string {
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}
	return resp.Error
}
