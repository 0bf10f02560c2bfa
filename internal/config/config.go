// Package config provides environment-driven configuration for the job board.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// StorageConfig holds configuration for the report/resume blob store.
type StorageConfig struct {
	Provider  string // "filesystem" or "aws-s3"
	Root      string // base folder for the filesystem provider
	Bucket    string
	Region    string
	Endpoint  string
	AccessID  string
	AccessKey string
}

// NewStorageConfig creates a new storage configuration from environment variables.
// It reads STORAGE_PROVIDER (default: filesystem) and STORAGE_ROOT (default: ./data),
// plus the STORAGE_BUCKET/REGION/ENDPOINT/ACCESS_ID/ACCESS_KEY set for aws-s3.
func NewStorageConfig() (*StorageConfig, error) {
	provider := os.Getenv("STORAGE_PROVIDER")
	if provider == "" {
		provider = "filesystem" // default
	}

	root := os.Getenv("STORAGE_ROOT")
	if root == "" {
		root = "./data"
	}

	config := &StorageConfig{
		Provider:  provider,
		Root:      root,
		Bucket:    os.Getenv("STORAGE_BUCKET"),
		Region:    os.Getenv("STORAGE_REGION"),
		Endpoint:  os.Getenv("STORAGE_ENDPOINT"),
		AccessID:  os.Getenv("STORAGE_ACCESS_ID"),
		AccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *StorageConfig) normalize() error {
	switch c.Provider {
	case "filesystem":
		if c.Root == "" {
			return fmt.Errorf("STORAGE_ROOT cannot be empty for the filesystem provider")
		}
	case "aws-s3":
		if c.Bucket == "" {
			return fmt.Errorf("STORAGE_BUCKET is required for the aws-s3 provider")
		}
		if c.AccessID == "" || c.AccessKey == "" {
			return fmt.Errorf("STORAGE_ACCESS_ID and STORAGE_ACCESS_KEY are required for the aws-s3 provider")
		}
	default:
		return fmt.Errorf("unsupported storage provider: %s", c.Provider)
	}
	return nil
}

// QueueConfig holds configuration for the in-process report job queue.
type QueueConfig struct {
	Workers    int
	BufferSize int
}

// NewQueueConfig creates a new queue configuration from environment variables.
// It reads REPORT_WORKERS (default: 4) and REPORT_QUEUE_SIZE (default: 256).
func NewQueueConfig() (*QueueConfig, error) {
	workersStr := os.Getenv("REPORT_WORKERS")
	if workersStr == "" {
		workersStr = "4" // default
	}
	workers, err := strconv.Atoi(workersStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_WORKERS: %v", err)
	}

	sizeStr := os.Getenv("REPORT_QUEUE_SIZE")
	if sizeStr == "" {
		sizeStr = "256" // default
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_QUEUE_SIZE: %v", err)
	}

	config := &QueueConfig{
		Workers:    workers,
		BufferSize: size,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *QueueConfig) normalize() error {
	if c.Workers < 1 {
		return fmt.Errorf("REPORT_WORKERS must be at least 1, got: %d", c.Workers)
	}
	if c.BufferSize < 1 {
		return fmt.Errorf("REPORT_QUEUE_SIZE must be at least 1, got: %d", c.BufferSize)
	}
	return nil
}
