package sqs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// ConsumerAPI defines the interface for SQS operations used by Consumer.
type ConsumerAPI interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// MessageHandler is invoked for every decoded catalog message. A returned error keeps the
// message on the queue for redelivery.
type MessageHandler func(ctx context.Context, msg CatalogMessage) error

// defaultReceiveRetryDelay is the pause after a failed ReceiveMessage call.
const defaultReceiveRetryDelay = time.Second

// Consumer handles consuming messages from AWS SQS.
type Consumer struct {
	client     ConsumerAPI
	queueURL   string
	handler    MessageHandler
	retryDelay time.Duration
}

// NewConsumer creates a new SQS Consumer with the given client and queue URL.
// Messages are logged unless a handler is set with WithHandler.
func NewConsumer(client ConsumerAPI, queueURL string) *Consumer {
	return &Consumer{
		client:     client,
		queueURL:   queueURL,
		handler:    LogMessage,
		retryDelay: defaultReceiveRetryDelay,
	}
}

// WithHandler replaces the message handler.
func (c *Consumer) WithHandler(h MessageHandler) *Consumer {
	c.handler = h
	return c
}

// LogMessage is the default handler.
func LogMessage(_ context.Context, msg CatalogMessage) error {
	attrs := []any{slog.String("action", msg.Action)}
	if msg.ProductID != 0 {
		attrs = append(attrs, slog.Int64("product_id", msg.ProductID))
	}
	if msg.ItemID != 0 {
		attrs = append(attrs, slog.Int64("item_id", msg.ItemID))
	}
	if msg.Name != "" {
		attrs = append(attrs, slog.String("name", msg.Name))
	}
	if msg.ItemsDeleted != 0 {
		attrs = append(attrs, slog.Int64("items_deleted", msg.ItemsDeleted))
	}
	slog.Info("Received catalog notification", attrs...)
	return nil
}

// Start begins consuming messages from the SQS queue until the context is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	slog.Info("Starting SQS consumer", slog.String("queueURL", c.queueURL))

	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping SQS consumer")
			return ctx.Err()
		default:
			if err := c.receiveMessages(ctx); err != nil {
				slog.Error("Error receiving messages", slog.Any("err", err))
				select {
				case <-ctx.Done():
				case <-time.After(c.retryDelay):
				}
			}
		}
	}
}

func (c *Consumer) receiveMessages(ctx context.Context) error {
	result, err := c.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(c.queueURL),
		MaxNumberOfMessages: 10,
		WaitTimeSeconds:     20, // Long polling
	})
	if err != nil {
		return fmt.Errorf("failed to receive messages: %w", err)
	}

	for _, message := range result.Messages {
		if err := c.processMessage(ctx, message); err != nil {
			slog.Error("Error processing message", slog.Any("err", err))
			continue
		}

		if err := c.deleteMessage(ctx, message); err != nil {
			slog.Error("Error deleting message", slog.Any("err", err))
		}
	}

	return nil
}

func (c *Consumer) processMessage(ctx context.Context, message types.Message) error {
	if message.Body == nil {
		return fmt.Errorf("message body is nil")
	}

	var catalogMsg CatalogMessage
	if err := json.Unmarshal([]byte(*message.Body), &catalogMsg); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}
	if err := catalogMsg.Validate(); err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}

	handler := c.handler
	if handler == nil {
		handler = LogMessage
	}
	return handler(ctx, catalogMsg)
}

func (c *Consumer) deleteMessage(ctx context.Context, message types.Message) error {
	_, err := c.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(c.queueURL),
		ReceiptHandle: message.ReceiptHandle,
	})
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}
