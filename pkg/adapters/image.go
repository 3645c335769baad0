package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"time"

	"github.com/shouni/gesture-gen-kit/pkg/imgutil"
)

// ImageFetcher はギャラリーアイテムが保持する画像参照からバイト列を取り出します。
// data URL はその場でデコードし、http(s) の URL は HTTPClient で取得してキャッシュします。
type ImageFetcher struct {
	httpClient  HTTPClient
	imageCache  ImageCacher
	cacheTTL    time.Duration
	baseURL     *url.URL
	trustedHost string
	lookupIP    func(host string) ([]net.IP, error)
}

// NewImageFetcher は依存関係を注入して ImageFetcher を初期化します。
// baseURL は相対参照の解決に使い、そのホストは SSRF チェックの対象外になります。
func NewImageFetcher(httpClient HTTPClient, imageCache ImageCacher, cacheTTL time.Duration, baseURL string) (*ImageFetcher, error) {
	f := &ImageFetcher{
		httpClient: httpClient,
		imageCache: imageCache,
		cacheTTL:   cacheTTL,
		lookupIP:   net.LookupIP,
	}
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("baseURL のパースに失敗しました: %w", err)
		}
		f.baseURL = u
		f.trustedHost = u.Host
	}
	return f, nil
}

// Fetch は画像参照を解決してバイト列を返します。
func (f *ImageFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if imgutil.IsDataURL(ref) {
		_, data, err := imgutil.DecodeDataURL(ref)
		if err != nil {
			return nil, err
		}
		return data, nil
	}

	target, err := f.resolve(ref)
	if err != nil {
		return nil, err
	}
	key := target.String()

	if f.imageCache != nil {
		if cached, found := f.imageCache.Get(key); found {
			if data, ok := cached.([]byte); ok {
				return data, nil
			}
			slog.WarnContext(ctx, "キャッシュデータが不正な型です", "url", key, "type", fmt.Sprintf("%T", cached))
		}
	}

	if f.httpClient == nil {
		return nil, fmt.Errorf("httpClient is required to fetch %s", key)
	}

	if err := f.checkHost(target); err != nil {
		slog.WarnContext(ctx, "SSRFの可能性があるURLをブロックしました", "url", key, "error", err)
		return nil, err
	}

	data, err := f.httpClient.FetchBytes(ctx, key)
	if err != nil {
		return nil, &TransportError{Op: "GET " + key, Err: err}
	}

	if f.imageCache != nil {
		f.imageCache.Set(key, data, f.cacheTTL)
	}
	return data, nil
}

func (f *ImageFetcher) resolve(ref string) (*url.URL, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("画像参照のパースに失敗しました: %w", err)
	}
	if !u.IsAbs() {
		if f.baseURL == nil {
			return nil, fmt.Errorf("相対参照を解決できません: %s", ref)
		}
		u = f.baseURL.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("不許可スキーム: %s", u.Scheme)
	}
	return u, nil
}

// checkHost は取得先のホストを検証します。
// サーバー自身のホストはそのまま許可し、それ以外は名前解決したすべてのアドレスが
// 公開ネットワーク上にある場合だけ許可します。
func (f *ImageFetcher) checkHost(u *url.URL) error {
	if f.trustedHost != "" && u.Host == f.trustedHost {
		return nil
	}

	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("%w: ホストがありません", ErrBlockedHost)
	}

	var ips []net.IP
	if ip := net.ParseIP(host); ip != nil {
		ips = []net.IP{ip}
	} else {
		resolved, err := f.lookupIP(host)
		if err != nil {
			return fmt.Errorf("%w: 名前解決失敗: %v", ErrBlockedHost, err)
		}
		ips = resolved
	}
	if len(ips) == 0 {
		return fmt.Errorf("%w: %s のアドレスが見つかりません", ErrBlockedHost, host)
	}

	for _, ip := range ips {
		if ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsUnspecified() {
			return fmt.Errorf("%w: %s は %s に解決されました", ErrBlockedHost, host, ip)
		}
	}
	return nil
}
