package utils

import "strings"

// ClampBatchSize は生成枚数を1以上に丸めます。
func ClampBatchSize(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// FirstNonEmpty は空白だけではない最初の値を返します。すべて空なら空文字を返します。
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
