package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Builder-Lawyers/tutorials-backend/internal/application/interfaces"
	"github.com/Builder-Lawyers/tutorials-backend/pkg/env"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type StorageConfig struct {
	Bucket string
	Prefix string
}

func NewStorageConfig() *StorageConfig {
	return &StorageConfig{
		Bucket: env.GetEnv("SEARCH_INDEX_BUCKET", ""),
		Prefix: env.GetEnv("SEARCH_INDEX_PREFIX", "search/"),
	}
}

func (c *StorageConfig) Enabled() bool {
	return c.Bucket != ""
}

type Storage struct {
	client *s3.Client
	bucket string
}

var _ interfaces.IndexStore = (*Storage)(nil)

func NewStorage(config aws.Config, cfg *StorageConfig) *Storage {
	return &Storage{
		client: initClient(config),
		bucket: cfg.Bucket,
	}
}

func initClient(config aws.Config) *s3.Client {
	client := s3.NewFromConfig(config, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return client
}

func (s *Storage) UploadFile(ctx context.Context, key string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("err reading %s, %v", key, err)
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String("application/octet-stream"),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("err uploading %s, %v", key, err)
	}
	return nil
}

func (s *Storage) ListFiles(ctx context.Context, prefix string) ([]string, error) {
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})

	var files []string
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s, %v", prefix, err)
		}
		for _, obj := range page.Contents {
			files = append(files, *obj.Key)
		}
	}
	return files, nil
}

func (s *Storage) DownloadFiles(ctx context.Context, keys []string, destination, pathAfter string) error {
	for _, key := range keys {
		resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return fmt.Errorf("error downloading key %s: %w", key, err)
		}
		destKey := strings.TrimPrefix(key, pathAfter)
		err = s.readAndCopyObjectTo(resp.Body, filepath.Join(destination, filepath.FromSlash(destKey)))
		if err != nil {
			return err
		}
	}
	return nil
}

// UploadDir mirrors every file under localDir to keyPrefix.
func (s *Storage) UploadDir(ctx context.Context, localDir, keyPrefix string) error {
	var uploaded int
	err := filepath.WalkDir(localDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(localDir, p)
		if err != nil {
			return err
		}
		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()
		uploaded++
		return s.UploadFile(ctx, path.Join(keyPrefix, filepath.ToSlash(rel)), f)
	})
	if err != nil {
		return fmt.Errorf("err uploading %s, %v", localDir, err)
	}
	slog.Info("uploaded directory", "dir", localDir, "bucket", s.bucket, "prefix", keyPrefix, "files", uploaded)
	return nil
}

// DownloadDir replaces localDir with the objects stored under keyPrefix.
// Nothing is touched when the prefix is empty.
func (s *Storage) DownloadDir(ctx context.Context, keyPrefix, localDir string) error {
	prefix := strings.TrimSuffix(keyPrefix, "/") + "/"
	keys, err := s.ListFiles(ctx, prefix)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		slog.Warn("nothing to download", "bucket", s.bucket, "prefix", prefix)
		return nil
	}

	tmp := localDir + ".download"
	if err = os.RemoveAll(tmp); err != nil {
		return fmt.Errorf("err clearing %s, %v", tmp, err)
	}
	if err = s.DownloadFiles(ctx, keys, tmp, prefix); err != nil {
		return err
	}
	if err = os.RemoveAll(localDir); err != nil {
		return fmt.Errorf("err removing %s, %v", localDir, err)
	}
	if err = os.Rename(tmp, localDir); err != nil {
		return fmt.Errorf("err moving %s, %v", tmp, err)
	}
	slog.Info("downloaded directory", "dir", localDir, "prefix", prefix, "files", len(keys))
	return nil
}

func (s *Storage) readAndCopyObjectTo(content io.ReadCloser, destination string) error {
	defer func() {
		_ = content.Close()
	}()
	if err := os.MkdirAll(filepath.Dir(destination), os.ModePerm); err != nil {
		return fmt.Errorf("error creating directories for %s: %w", destination, err)
	}
	outFile, err := os.Create(destination)
	if err != nil {
		return fmt.Errorf("error creating file %s: %w", destination, err)
	}
	defer func() {
		_ = outFile.Close()
	}()

	_, err = io.Copy(outFile, content)
	if err != nil {
		return fmt.Errorf("error writing to file %s: %w", destination, err)
	}

	return nil
}
