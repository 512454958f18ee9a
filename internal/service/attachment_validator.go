package service

import (
	"encoding/base64"

	"github.com/dmiher/complaint-portal/internal/models"
	appErrors "github.com/dmiher/complaint-portal/pkg/errors"
)

// MaxAttachmentSize is the upload ceiling: 5 MiB, inclusive.
const MaxAttachmentSize = 5 * 1024 * 1024

var allowedMimetypes = map[string]struct{}{
	"image/png":       {},
	"image/jpeg":      {},
	"image/jpg":       {},
	"application/pdf": {},
}

// AttachmentValidator enforces the upload constraints on complaint
// attachments before anything is written.
type AttachmentValidator struct{}

// NewAttachmentValidator constructs the validator.
func NewAttachmentValidator() *AttachmentValidator {
	return &AttachmentValidator{}
}

// Validate checks mimetype, size and payload encoding. The payload is
// actually decoded rather than pattern-checked, so the declared size is
// cross-checked against the decoded byte count.
func (v *AttachmentValidator) Validate(attachment *models.Attachment) error {
	if _, ok := allowedMimetypes[attachment.Mimetype]; !ok {
		return appErrors.Clone(appErrors.ErrUnsupportedType, "")
	}
	if attachment.Size > MaxAttachmentSize {
		return appErrors.Clone(appErrors.ErrTooLarge, "")
	}
	if attachment.Data == "" {
		return appErrors.Clone(appErrors.ErrMalformedEncoding, "attachment payload is empty")
	}
	decoded, err := base64.StdEncoding.DecodeString(attachment.Data)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrMalformedEncoding.Code, appErrors.ErrMalformedEncoding.Status, appErrors.ErrMalformedEncoding.Message)
	}
	if int64(len(decoded)) > MaxAttachmentSize {
		return appErrors.Clone(appErrors.ErrTooLarge, "")
	}
	return nil
}
