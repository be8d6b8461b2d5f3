// Package backup uploads snapshots of the SQLite database file to an
// S3-compatible object store.
package backup

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	sc "github.com/avoronov/meetpoint/internal/server/config"
	"github.com/avoronov/meetpoint/internal/server/db"
)

type Service struct {
	config *sc.Config
}

func NewService(config *sc.Config) *Service {
	return &Service{
		config: config,
	}
}

// storageKey builds a dated, collision-free object key for one snapshot.
func storageKey() string {
	d := time.Now()
	return fmt.Sprintf("backups/%d/%d/%d/%v.db", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *Service) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

// Run uploads the current database file and returns the object key. It only
// works for file-backed SQLite DSNs; other backends have their own backup
// tooling.
func (s *Service) Run(ctx context.Context) (string, error) {

	path, err := db.SQLiteFilePath(s.config.DatabaseDSN)
	if err != nil {
		return "", fmt.Errorf("backup not supported: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading database file: %w", err)
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return "", fmt.Errorf("error creating S3 client: %w", err)
	}

	key := storageKey()

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading backup: %w", err)
	}

	return key, nil
}
