package domain

import "errors"

// AlertedError はユーザーへ通知済みのエラーです。
// 呼び出し側はこのエラーを改めて表示する必要はありません。
type AlertedError struct {
	Err error
}

func (e *AlertedError) Error() string { return e.Err.Error() }

func (e *AlertedError) Unwrap() error { return e.Err }

// IsAlerted は err の連鎖に通知済みのエラーが含まれるかどうかを返します。
func IsAlerted(err error) bool {
	var ae *AlertedError
	return errors.As(err, &ae)
}
