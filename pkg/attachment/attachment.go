// Package attachment turns local files into base64 attachments for the model.
package attachment

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"urcloud_chat/pkg/ai"

	"github.com/h2non/filetype"
)

// MaxSize is the largest file accepted as an attachment.
const MaxSize int64 = 10 * 1024 * 1024

// sniffLen is how many leading bytes filetype needs to identify a file.
const sniffLen = 262

var (
	ErrTooLarge        = errors.New("ファイルサイズは10MB以下にしてください。")
	ErrUnsupportedType = errors.New("対応していないファイル形式です（画像・PDFのみ）。")
	ErrInvalidDataURL  = errors.New("invalid data URL")
	ErrNotRegular      = errors.New("not a regular file")
)

// AcceptedTypes lists the MIME types the model accepts as inline data.
var AcceptedTypes = []string{
	"image/png",
	"image/jpeg",
	"image/webp",
	"image/heic",
	"image/heif",
	"application/pdf",
}

var extensionTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".heic": "image/heic",
	".heif": "image/heif",
	".pdf":  "application/pdf",
}

// Load reads path and returns it as a base64 attachment.
// maxBytes <= 0 or above MaxSize is clamped to MaxSize.
// Only regular files are read; devices and pipes are rejected before opening.
func Load(path string, maxBytes int64) (ai.Attachment, error) {
	if maxBytes <= 0 || maxBytes > MaxSize {
		maxBytes = MaxSize
	}

	path = expandHome(strings.TrimSpace(path))
	info, err := os.Stat(path)
	if err != nil {
		return ai.Attachment{}, fmt.Errorf("stat attachment: %w", err)
	}
	if info.IsDir() {
		return ai.Attachment{}, fmt.Errorf("%s is a directory", path)
	}
	if !info.Mode().IsRegular() {
		return ai.Attachment{}, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}
	if info.Size() > maxBytes {
		return ai.Attachment{}, ErrTooLarge
	}

	f, err := os.Open(path)
	if err != nil {
		return ai.Attachment{}, fmt.Errorf("open attachment: %w", err)
	}
	defer f.Close()

	// FromReader re-checks the cap in case the file grew after Stat.
	return FromReader(f, path, maxBytes)
}

// FromReader builds an attachment from r, reading at most maxBytes+1 bytes.
func FromReader(r io.Reader, name string, maxBytes int64) (ai.Attachment, error) {
	if maxBytes <= 0 || maxBytes > MaxSize {
		maxBytes = MaxSize
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return ai.Attachment{}, fmt.Errorf("read attachment: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return ai.Attachment{}, ErrTooLarge
	}

	mimeType := DetectMIME(data, name)
	if !IsAccepted(mimeType) {
		return ai.Attachment{}, fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
	return ai.Attachment{
		MimeType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(data),
		Name:     filepath.Base(name),
	}, nil
}

// FromDataURL decodes a pasted "data:<mime>;base64,<payload>" string.
// The declared MIME type is trusted unless it is missing or generic,
// in which case the payload is sniffed.
func FromDataURL(s string, maxBytes int64) (ai.Attachment, error) {
	if maxBytes <= 0 || maxBytes > MaxSize {
		maxBytes = MaxSize
	}
	mimeType, payload, err := ParseDataURL(strings.TrimSpace(s), "")
	if err != nil {
		return ai.Attachment{}, err
	}
	// DecodedLen may overshoot by the two padding bytes.
	if int64(base64.StdEncoding.DecodedLen(len(payload))) > maxBytes+2 {
		return ai.Attachment{}, ErrTooLarge
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return ai.Attachment{}, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	if int64(len(data)) > maxBytes {
		return ai.Attachment{}, ErrTooLarge
	}

	mimeType = strings.ToLower(mimeType)
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = DetectMIME(data, "")
	}
	if !IsAccepted(mimeType) {
		return ai.Attachment{}, fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
	return ai.Attachment{
		MimeType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(data),
		Name:     "pasted." + Subtype(mimeType),
	}, nil
}

// DetectMIME identifies data by its content, falling back to the file extension.
func DetectMIME(data []byte, name string) string {
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	if kind, err := filetype.Match(head); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	if mimeType, ok := extensionTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return mimeType
	}
	return "application/octet-stream"
}

// IsAccepted reports whether mimeType can be sent to the model.
func IsAccepted(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	for _, accepted := range AcceptedTypes {
		if mimeType == accepted {
			return true
		}
	}
	return false
}

// ParseDataURL splits a "data:<mime>;base64,<payload>" string.
// fallbackMime is used when the header carries no MIME type.
func ParseDataURL(s, fallbackMime string) (mimeType, data string, err error) {
	header, payload, ok := strings.Cut(s, ",")
	if !ok || !strings.HasPrefix(header, "data:") {
		return "", "", ErrInvalidDataURL
	}

	mimeType = fallbackMime
	meta := strings.TrimPrefix(header, "data:")
	if idx := strings.Index(meta, ";"); idx > 0 {
		mimeType = meta[:idx]
	}
	return mimeType, payload, nil
}

// Icon returns a short glyph for the attachment chip.
func Icon(mimeType string) string {
	if strings.HasPrefix(mimeType, "image/") {
		return "🖼️"
	}
	return "📄"
}

// Subtype returns the part of the MIME type after the slash.
func Subtype(mimeType string) string {
	_, sub, ok := strings.Cut(mimeType, "/")
	if !ok {
		return mimeType
	}
	return sub
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
