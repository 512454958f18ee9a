package service

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmiher/complaint-portal/internal/models"
	appErrors "github.com/dmiher/complaint-portal/pkg/errors"
)

func encodedPayload(size int) (string, int64) {
	return base64.StdEncoding.EncodeToString(make([]byte, size)), int64(size)
}

func TestValidateAcceptsSupportedTypes(t *testing.T) {
	v := NewAttachmentValidator()
	data, size := encodedPayload(64)
	for _, mimetype := range []string{"image/png", "image/jpeg", "image/jpg", "application/pdf"} {
		err := v.Validate(&models.Attachment{
			Filename: "evidence",
			Mimetype: mimetype,
			Data:     data,
			Size:     size,
		})
		assert.NoError(t, err, mimetype)
	}
}

func TestValidateRejectsUnsupportedType(t *testing.T) {
	v := NewAttachmentValidator()
	data, size := encodedPayload(64)
	err := v.Validate(&models.Attachment{
		Filename: "notes.docx",
		Mimetype: "application/msword",
		Data:     data,
		Size:     size,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnsupportedType.Code, appErrors.FromError(err).Code)
}

func TestValidateSizeBoundary(t *testing.T) {
	v := NewAttachmentValidator()

	data, size := encodedPayload(MaxAttachmentSize)
	err := v.Validate(&models.Attachment{
		Filename: "exact.pdf",
		Mimetype: "application/pdf",
		Data:     data,
		Size:     size,
	})
	assert.NoError(t, err, "exactly 5 MiB is allowed")

	data, size = encodedPayload(MaxAttachmentSize + 1)
	err = v.Validate(&models.Attachment{
		Filename: "over.pdf",
		Mimetype: "application/pdf",
		Data:     data,
		Size:     size,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrTooLarge.Code, appErrors.FromError(err).Code)
}

func TestValidateDeclaredSizeOverLimit(t *testing.T) {
	v := NewAttachmentValidator()
	data, _ := encodedPayload(64)
	err := v.Validate(&models.Attachment{
		Filename: "liar.png",
		Mimetype: "image/png",
		Data:     data,
		Size:     MaxAttachmentSize + 1,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrTooLarge.Code, appErrors.FromError(err).Code)
}

func TestValidateCrossChecksDecodedSize(t *testing.T) {
	v := NewAttachmentValidator()
	// Declared size is within limit but the payload itself is not.
	data, _ := encodedPayload(MaxAttachmentSize + 1)
	err := v.Validate(&models.Attachment{
		Filename: "sneaky.png",
		Mimetype: "image/png",
		Data:     data,
		Size:     1024,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrTooLarge.Code, appErrors.FromError(err).Code)
}

func TestValidateMalformedBase64(t *testing.T) {
	v := NewAttachmentValidator()
	cases := []struct {
		name string
		data string
	}{
		{"empty payload", ""},
		{"invalid characters", "not?base64!!"},
		{"truncated padding", strings.TrimSuffix(base64.StdEncoding.EncodeToString([]byte("hello")), "=")},
	}
	for _, tc := range cases {
		err := v.Validate(&models.Attachment{
			Filename: "bad.png",
			Mimetype: "image/png",
			Data:     tc.data,
			Size:     16,
		})
		require.Error(t, err, tc.name)
		assert.Equal(t, appErrors.ErrMalformedEncoding.Code, appErrors.FromError(err).Code, tc.name)
	}
}
