package main

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/WunderSocial/wunder-id/pkg/auth"
	"github.com/WunderSocial/wunder-id/pkg/config"
	"github.com/WunderSocial/wunder-id/pkg/docscan"
	"github.com/WunderSocial/wunder-id/pkg/docscan/providers/docbedrock"
	"github.com/WunderSocial/wunder-id/pkg/docscan/providers/doctextract"
	"github.com/WunderSocial/wunder-id/pkg/fsx"
	"github.com/WunderSocial/wunder-id/pkg/fsx/fsxs3"
)

// Container wires configuration into live services. Built once at boot.
type Container struct {
	Config *config.Config
	Auth   *auth.Service
	Engine *docscan.Engine
}

// NewContainer builds every service from configuration. Provider
// configuration is validated here, before any network call.
func NewContainer(ctx context.Context) (*Container, error) {
	cfg := config.Load()
	if err := cfg.Docscan.Validate(); err != nil {
		return nil, err
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Docscan.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	files := fsxs3.NewS3FileSystem(s3.NewFromConfig(awsCfg), cfg.Docscan.Bucket, "")

	var analyzer docscan.DocumentAnalyzer
	switch cfg.Docscan.Provider {
	case "bedrock":
		analyzer = docbedrock.NewFromConfig(awsCfg, files,
			docbedrock.WithModel(cfg.Docscan.BedrockModel))
	default:
		analyzer = doctextract.NewFromConfig(awsCfg, cfg.Docscan.Bucket)
	}

	var dumps fsx.FileWriter
	if cfg.Docscan.DebugDump {
		dumps = files
	}
	collector := docscan.NewCollector(analyzer, dumps, cfg.Docscan.Debug)

	return &Container{
		Config: cfg,
		Auth:   auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL),
		Engine: docscan.NewEngine(collector),
	}, nil
}
