package gallery

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

const idPrefix = "img-"

var (
	entropyOnce sync.Once
	entropyMu   sync.Mutex
	entropy     *ulid.MonotonicEntropy
)

func newEntropy() *ulid.MonotonicEntropy {
	entropyOnce.Do(func() {
		source := rand.NewSource(time.Now().UnixNano())
		entropy = ulid.Monotonic(rand.New(source), 0)
	})
	return entropy
}

// NewID は img- から始まる一意なアイテムIDを返します。
func NewID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	id := ulid.MustNew(ulid.Timestamp(time.Now()), newEntropy())
	return idPrefix + strings.ToLower(id.String())
}

// IsValidID は img-<ULID> 形式のIDかどうかを返します。
func IsValidID(value string) bool {
	if !strings.HasPrefix(value, idPrefix) {
		return false
	}
	_, err := ulid.ParseStrict(strings.ToUpper(strings.TrimPrefix(value, idPrefix)))
	return err == nil
}
