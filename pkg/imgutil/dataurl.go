package imgutil

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const dataURLScheme = "data:"

// ErrNotDataURL は data: スキームではない文字列が渡されたことを表します。
var ErrNotDataURL = errors.New("not a data URL")

// IsDataURL は文字列が data: URL かどうかを返します。
func IsDataURL(s string) bool {
	return len(s) >= len(dataURLScheme) && strings.EqualFold(s[:len(dataURLScheme)], dataURLScheme)
}

// EncodeDataURL はバイト列を base64 の data URL に変換します。
func EncodeDataURL(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return dataURLScheme + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL は data URL を MIME タイプとバイト列に分解します。
// base64 とパーセントエンコードの両方に対応します。
func DecodeDataURL(s string) (string, []byte, error) {
	if !IsDataURL(s) {
		return "", nil, ErrNotDataURL
	}
	meta, payload, ok := strings.Cut(s[len(dataURLScheme):], ",")
	if !ok {
		return "", nil, fmt.Errorf("data URL にカンマがありません")
	}

	isBase64 := false
	mimeType := meta
	if strings.HasSuffix(strings.ToLower(meta), ";base64") {
		isBase64 = true
		mimeType = meta[:len(meta)-len(";base64")]
	}
	if mimeType == "" {
		mimeType = "text/plain;charset=US-ASCII"
	}

	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			// 末尾のパディングが省略されていることがあるのでRaw形式でも試す
			data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
			if err != nil {
				return "", nil, fmt.Errorf("base64デコードに失敗しました: %w", err)
			}
		}
		return mimeType, data, nil
	}

	decoded, err := url.PathUnescape(payload)
	if err != nil {
		return "", nil, fmt.Errorf("data URL のデコードに失敗しました: %w", err)
	}
	return mimeType, []byte(decoded), nil
}
