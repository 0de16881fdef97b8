package ai

import "strings"

const (
	// FallbackReplyText is shown when the model returns no text.
	FallbackReplyText = "申し訳ありません。回答を生成できませんでした。"
	// DefaultErrorText is used when a failed request carries no message.
	DefaultErrorText = "通信エラーが発生しました。"
)

// RequestError is returned when the model request fails.
type RequestError struct {
	Message string
	Err     error
}

// NewRequestError wraps err, falling back to DefaultErrorText for an empty message.
func NewRequestError(err error) *RequestError {
	msg := ""
	if err != nil {
		msg = strings.TrimSpace(err.Error())
	}
	if msg == "" {
		msg = DefaultErrorText
	}
	return &RequestError{Message: msg, Err: err}
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
