package adapters

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse はサーバーが2xxを返したものの本文の形式が想定外だったことを表します。
var ErrMalformedResponse = errors.New("malformed server response")

// ErrBlockedHost は取得先がサーバー以外の非公開ネットワークを指していたことを表します。
var ErrBlockedHost = errors.New("blocked image host")

// ServerError はサーバーが2xx以外で応答したことを表します。
// Message は本文の error フィールドで、読み取れなかった場合は空です。
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.Status)
	}
	return fmt.Sprintf("server returned status %d: %s", e.Status, e.Message)
}

// TransportError は応答そのものが得られなかった通信エラーです。
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
