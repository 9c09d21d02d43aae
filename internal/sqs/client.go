package sqs

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/iyhunko/catalog-service/internal/config"
)

// NewClient creates an SQS client for the configured region. A non-empty endpoint
// (LocalStack) overrides the resolved AWS endpoint.
func NewClient(ctx context.Context, conf config.AWSConfig) (*sqs.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(conf.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if conf.Endpoint != "" {
		awsCfg.BaseEndpoint = aws.String(conf.Endpoint)
	}

	return sqs.NewFromConfig(awsCfg), nil
}

// NewPublisherFromConfig returns nil when notifications are disabled.
func NewPublisherFromConfig(ctx context.Context, conf config.AWSConfig) (*Publisher, error) {
	if !conf.NotificationsEnabled() {
		return nil, nil
	}
	client, err := NewClient(ctx, conf)
	if err != nil {
		return nil, err
	}
	return NewPublisher(client, conf.SQSQueueURL), nil
}
