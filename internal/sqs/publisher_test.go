package sqs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/iyhunko/catalog-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSQSClient is a mock implementation of the SQS client for testing.
type mockSQSClient struct {
	sendMessageFunc func(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	calls           int
}

func (m *mockSQSClient) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	m.calls++
	if m.sendMessageFunc != nil {
		return m.sendMessageFunc(ctx, params, optFns...)
	}
	return &sqs.SendMessageOutput{}, nil
}

func TestPublisher_Publish(t *testing.T) {
	queueURL := "https://sqs.us-east-1.amazonaws.com/123456789/test-queue"

	t.Run("successful message publish", func(t *testing.T) {
		// given
		ctx := context.Background()

		mockClient := &mockSQSClient{
			sendMessageFunc: func(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
				assert.Equal(t, queueURL, *params.QueueUrl)
				require.NotNil(t, params.MessageBody)

				var body CatalogMessage
				require.NoError(t, json.Unmarshal([]byte(*params.MessageBody), &body))
				assert.Equal(t, ActionItemCreated, body.Action)
				assert.Equal(t, int64(7), body.ItemID)
				assert.Equal(t, ActionItemCreated, *params.MessageAttributes["action"].StringValue)

				return &sqs.SendMessageOutput{
					MessageId: aws.String("test-message-id"),
				}, nil
			},
		}

		publisher := NewPublisher(mockClient, queueURL)

		// when
		err := publisher.Publish(ctx, CatalogMessage{Action: ActionItemCreated, ProductID: 1, ItemID: 7})

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, mockClient.calls)
	})

	t.Run("error sending message", func(t *testing.T) {
		// given
		expectedErr := errors.New("failed to send message")
		mockClient := &mockSQSClient{
			sendMessageFunc: func(_ context.Context, _ *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
				return nil, expectedErr
			},
		}
		publisher := NewPublisher(mockClient, queueURL)

		// when
		err := publisher.Publish(context.Background(), CatalogMessage{Action: ActionProductCreated, ProductID: 1, Name: "Shirt"})

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, expectedErr)
		assert.Contains(t, err.Error(), "failed to send message to SQS")
	})

	t.Run("invalid message never reaches SQS", func(t *testing.T) {
		mockClient := &mockSQSClient{}
		publisher := NewPublisher(mockClient, queueURL)

		err := publisher.Publish(context.Background(), CatalogMessage{Action: ActionProductCreated})

		require.Error(t, err)
		assert.Zero(t, mockClient.calls)
	})
}

func TestNewPublisher(t *testing.T) {
	t.Run("creates publisher successfully", func(t *testing.T) {
		// given
		mockClient := &mockSQSClient{}
		queueURL := "https://sqs.us-east-1.amazonaws.com/123456789/test-queue"

		// when
		publisher := NewPublisher(mockClient, queueURL)

		// then
		require.NotNil(t, publisher)
		assert.Equal(t, queueURL, publisher.queueURL)
	})
}

func TestNewPublisherFromConfig_Disabled(t *testing.T) {
	publisher, err := NewPublisherFromConfig(context.Background(), config.AWSConfig{Region: "us-east-1"})
	require.NoError(t, err)
	assert.Nil(t, publisher)
}
