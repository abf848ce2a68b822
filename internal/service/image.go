package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/pantrybase/cookbook/config"
	"github.com/pantrybase/cookbook/internal/apperr"
)

// MaxImageBytes bounds uploaded recipe images
const MaxImageBytes = 5 << 20

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
}

// ImageService stores recipe images in S3
type ImageService struct {
	s3Config *config.S3Config
}

// NewImageService creates a new ImageService instance
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// UploadRecipeImage uploads image data and returns the public URL
func (s *ImageService) UploadRecipeImage(ctx context.Context, recipeID int64, data []byte, contentType string) (string, error) {
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", apperr.BadRequest("image must be png or jpeg")
	}
	if len(data) == 0 {
		return "", apperr.BadRequest("image is empty")
	}
	if len(data) > MaxImageBytes {
		return "", apperr.BadRequest("image exceeds the 5 MiB limit")
	}

	key := fmt.Sprintf("recipe-images/%d-%s%s", recipeID, uuid.New().String(), ext)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	log.Printf("[ImageService] Uploaded recipe image to %s", publicURL)
	return publicURL, nil
}
