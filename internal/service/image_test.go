package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pantrybase/cookbook/config"
	"github.com/pantrybase/cookbook/internal/apperr"
)

// The rejection paths never touch S3, so they run against an unconfigured
// client.
func TestUploadRecipeImageRejections(t *testing.T) {
	svc := NewImageService(&config.S3Config{BucketName: "test-bucket"})
	ctx := context.Background()

	_, err := svc.UploadRecipeImage(ctx, 1, []byte("GIF89a"), "image/gif")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.UploadRecipeImage(ctx, 1, nil, "image/png")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	oversized := bytes.Repeat([]byte{0}, MaxImageBytes+1)
	_, err = svc.UploadRecipeImage(ctx, 1, oversized, "image/jpeg")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
