package generator

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shouni/gesture-gen-kit/pkg/domain"
)

const (
	filenamePrefix   = "gesture"
	fallbackSnippet  = "gen"
	maxSnippetTokens = 3
	timestampLength  = 14
)

var (
	timestampSeparators = strings.NewReplacer("-", "", ":", "", "T", "", ".", "")
	nonWordChars        = regexp.MustCompile(`[^A-Za-z0-9_]`)
)

// Timestamp は ISO-8601 (UTC) 表記から区切り文字を除いた先頭14文字 (YYYYMMDDHHMMSS) を返します。
func Timestamp(now time.Time) string {
	iso := now.UTC().Format("2006-01-02T15:04:05.000Z")
	stripped := timestampSeparators.Replace(iso)
	if len(stripped) > timestampLength {
		stripped = stripped[:timestampLength]
	}
	return stripped
}

// PromptSnippet はプロンプトの先頭3トークンを _ でつなぎ、[A-Za-z0-9_] 以外を取り除きます。
// 結果が空の場合は "gen" を返します。
// 空白1文字ごとに区切るため、連続した空白は空のトークンになります。
func PromptSnippet(prompt string) string {
	tokens := splitOnEachSpace(prompt)
	if len(tokens) > maxSnippetTokens {
		tokens = tokens[:maxSnippetTokens]
	}
	snippet := nonWordChars.ReplaceAllString(strings.Join(tokens, "_"), "")
	if snippet == "" {
		return fallbackSnippet
	}
	return snippet
}

// Filename は gesture_<mode>_<timestamp>_<snippet>_<index>.png を組み立てます。index は1始まりです。
func Filename(mode domain.GenerationMode, timestamp, prompt string, index int) string {
	return fmt.Sprintf("%s_%s_%s_%s_%d.png", filenamePrefix, mode.Tag(), timestamp, PromptSnippet(prompt), index)
}

// BatchFilenames はバッチ内の画像それぞれのファイル名を配列順に返します。
func BatchFilenames(mode domain.GenerationMode, prompt string, now time.Time, count int) []string {
	ts := Timestamp(now)
	names := make([]string, count)
	for i := range names {
		names[i] = Filename(mode, ts, prompt, i+1)
	}
	return names
}

func splitOnEachSpace(s string) []string {
	var tokens []string
	start := 0
	for i := 0; i < len(s); {
		r, w := utf8.DecodeRuneInString(s[i:])
		if unicode.IsSpace(r) {
			tokens = append(tokens, s[start:i])
			start = i + w
		}
		i += w
	}
	return append(tokens, s[start:])
}
