package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/modaline/storefront/internal/aws"
)

// Submission is one contact-form entry. ImageKey is empty when no
// attachment was sent or when the best-effort upload failed.
type Submission struct {
	SubmissionID string    `dynamodbav:"submission_id"` // PK
	Name         string    `dynamodbav:"name"`
	Email        string    `dynamodbav:"email"`
	Subject      string    `dynamodbav:"subject,omitempty"`
	Message      string    `dynamodbav:"message"`
	ImageKey     string    `dynamodbav:"image_key,omitempty"`
	CreatedAt    time.Time `dynamodbav:"created_at"`
}

// Store persists contact submissions.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewStore creates a new contact Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Create assigns an id and persists the submission.
func (s *Store) Create(ctx context.Context, sub Submission) (*Submission, error) {
	sub.SubmissionID = uuid.NewString()
	sub.CreatedAt = s.nowFunc()

	item, err := attributevalue.MarshalMap(sub)
	if err != nil {
		return nil, fmt.Errorf("marshal submission: %w", err)
	}
	if _, err := s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	}); err != nil {
		return nil, fmt.Errorf("put item: %w", err)
	}
	return &sub, nil
}
