// Package s3 provides access to S3-compatible object storage for golden
// image staging. Hosts fetch images through presigned URLs so object-store
// credentials never leave the deployment workstation.
package s3

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

const urlScheme = "s3://"

// Client wraps the S3 client for the deployment image store.
type Client struct {
	s3      *s3.Client
	presign *s3.PresignClient
}

// NewClient creates a client for an S3-compatible endpoint.
func NewClient(endpoint, region, accessKey, secretKey string) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true // Most on-prem object stores require path style
	})

	return &Client{s3: client, presign: s3.NewPresignClient(client)}, nil
}

// IsImageURL reports whether an image source points into the object store.
func IsImageURL(raw string) bool {
	return strings.HasPrefix(raw, urlScheme)
}

// ImageExists checks that the image object is present before any host is
// asked to fetch it.
func (c *Client) ImageExists(ctx context.Context, rawURL string) (bool, error) {
	bucket, key, err := parseURL(rawURL)
	if err != nil {
		return false, err
	}

	_, err = c.s3.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check image %s: %w", rawURL, err)
	}
	return true, nil
}

// PresignImage returns a time-limited HTTPS URL for the image object.
func (c *Client) PresignImage(ctx context.Context, rawURL string, ttl time.Duration) (string, error) {
	bucket, key, err := parseURL(rawURL)
	if err != nil {
		return "", err
	}

	req, err := c.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign image %s: %w", rawURL, err)
	}
	return req.URL, nil
}

// parseURL splits s3://bucket/key into its parts.
func parseURL(raw string) (bucket, key string, err error) {
	if !IsImageURL(raw) {
		return "", "", fmt.Errorf("not an s3 URL: %q", raw)
	}
	rest := strings.TrimPrefix(raw, urlScheme)
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("malformed s3 URL %q: want s3://bucket/key", raw)
	}
	return bucket, key, nil
}

// isNotFoundError checks the API error codes S3-compatible services return
// for a missing object.
func isNotFoundError(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey", "NoSuchBucket":
			return true
		}
	}
	return false
}
