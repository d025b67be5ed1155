package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/pcichat/accounts-api/internal/domain"
)

// PendingRepo manages in-flight registrations awaiting OTP verification.
// Email is the partition key, so Put is an upsert: at most one live record
// per address, and a new submission supersedes the old one.
type PendingRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewPendingRepo(client *dynamodb.Client, tableName string) *PendingRepo {
	return &PendingRepo{client: client, tableName: tableName}
}

func (r *PendingRepo) Put(ctx context.Context, p *domain.PendingRegistration) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal pending registration: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *PendingRepo) Get(ctx context.Context, email string) (*domain.PendingRegistration, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("email", email),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("pending registration not found: %w", domain.ErrNotFound)
	}
	var p domain.PendingRegistration
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PendingRepo) Delete(ctx context.Context, email string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("email", email),
	})
	return err
}
