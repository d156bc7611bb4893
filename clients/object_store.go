package clients

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

const (
	uploadPartSize    = 10 * 1024 * 1024
	uploadConcurrency = 4
)

var videoExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".mkv":  true,
	".mov":  true,
	".avi":  true,
	".ts":   true,
}

// ObjectStore is a lazily initialized S3 client bound to one region. If no
// static credentials are configured it falls back to the ambient AWS credential
// chain (env vars, shared config, instance role).
type ObjectStore struct {
	Region          string
	AccessKeyID     string
	AccessKeySecret string

	once     sync.Once
	initErr  error
	svc      *s3.S3
	uploader *s3manager.Uploader
}

func (c *ObjectStore) init() error {
	c.once.Do(func() {
		config := aws.NewConfig().WithRegion(c.Region)
		if c.AccessKeyID != "" {
			config = config.WithCredentials(credentials.NewStaticCredentials(c.AccessKeyID, c.AccessKeySecret, ""))
		}
		sess, err := session.NewSession(config)
		if err != nil {
			c.initErr = fmt.Errorf("error creating AWS session: %w", err)
			return
		}
		c.svc = s3.New(sess)
		c.uploader = s3manager.NewUploader(sess, func(u *s3manager.Uploader) {
			u.PartSize = uploadPartSize
			u.Concurrency = uploadConcurrency
		})
	})
	return c.initErr
}

// ListVideoKeys pages through every object under (bucket, prefix) and returns
// the keys with a recognized video extension. S3 listing order is not part of
// the contract here; callers sort by capture instant.
func (c *ObjectStore) ListVideoKeys(bucket, prefix string) ([]string, error) {
	if err := c.init(); err != nil {
		return nil, err
	}
	var keys []string
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	}
	err := c.svc.ListObjectsV2Pages(input, func(page *s3.ListObjectsV2Output, lastPage bool) bool {
		for _, obj := range page.Contents {
			key := aws.StringValue(obj.Key)
			if IsVideoKey(key) {
				keys = append(keys, key)
			}
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("error listing s3://%s/%s: %w", bucket, prefix, err)
	}
	return keys, nil
}

// DownloadToFile streams one object to destPath, creating parent directories.
// The body is copied straight to disk and never held in memory.
func (c *ObjectStore) DownloadToFile(bucket, key, destPath string) error {
	if err := c.init(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("error creating directory for %s: %w", destPath, err)
	}

	out, err := c.svc.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("error downloading s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	dest, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", destPath, err)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, out.Body); err != nil {
		return fmt.Errorf("error writing s3://%s/%s to %s: %w", bucket, key, destPath, err)
	}
	return nil
}

// UploadFile uploads a local file to (bucket, key) via multipart upload.
// contentType defaults to video/mp4.
func (c *ObjectStore) UploadFile(bucket, key, localPath, contentType string) error {
	if err := c.init(); err != nil {
		return err
	}
	if contentType == "" {
		contentType = "video/mp4"
	}

	source, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("error opening %s: %w", localPath, err)
	}
	defer source.Close()

	_, err = c.uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        source,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("error uploading %s to s3://%s/%s: %w", localPath, bucket, key, err)
	}
	return nil
}

func IsVideoKey(key string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(key))]
}
