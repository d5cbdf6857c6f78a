package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"foodpath"
)

// Open builds the State selected by cfg.Driver.
func Open(ctx context.Context, cfg foodpath.StoreConfig) (State, error) {
	switch cfg.Driver {
	case "", "file":
		return NewFileState(cfg.Dir), nil
	case "memory":
		return NewMemoryState(), nil
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("missing S3 config: STORE_S3_BUCKET must be set")
		}
		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return NewS3State(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3Prefix), nil
	case "postgres", "mysql", "sqlite":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("missing SQL config: STORE_DSN must be set")
		}
		db, err := OpenGorm(cfg.Driver, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return NewGormState(db)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
