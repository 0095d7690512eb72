package domain

import (
	"encoding/base64"
	"errors"
	"strings"
)

// MaxAttachmentSize is inclusive: a file of exactly this many bytes is
// still accepted.
const MaxAttachmentSize = 5 * 1024 * 1024

var (
	ErrTooLarge = errors.New("too large")
	ErrNotImage = errors.New("not an image")
)

// ValidateAttachment checks an attachment before any encoding or
// network work. Size is checked before content type.
func ValidateAttachment(size int, contentType string) error {
	if size > MaxAttachmentSize {
		return ErrTooLarge
	}
	if !strings.HasPrefix(contentType, "image/") {
		return ErrNotImage
	}
	return nil
}

// EncodeAttachment packs the file into a self-contained data URI that
// can be sent as frame content and displayed inline.
func EncodeAttachment(data []byte, contentType string) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
