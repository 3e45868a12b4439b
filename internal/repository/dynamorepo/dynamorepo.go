package dynamorepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/kitodo/dlfcheck/internal/model"
)

// DynamoRepository is a DynamoDB implementation of RecordRepository
type DynamoRepository struct {
	client    *dynamodb.Client
	tableName string
}

// NewDynamoRepository creates a new DynamoDB-backed repository
func NewDynamoRepository(client *dynamodb.Client, tableName string) *DynamoRepository {
	return &DynamoRepository{
		client:    client,
		tableName: tableName,
	}
}

func keyOf(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: id},
	}
}

// Store saves a check record, refusing to overwrite an existing ID
func (r *DynamoRepository) Store(ctx context.Context, record *model.CheckRecord) error {
	if record == nil {
		return fmt.Errorf("check record cannot be nil")
	}

	dto := FromDomain(record)
	dto.Rev = 1
	item, err := attributevalue.MarshalMap(dto)
	if err != nil {
		return fmt.Errorf("failed to marshal check record: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var ccfe *types.ConditionalCheckFailedException
		if errors.As(err, &ccfe) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("failed to store check record: %w", err)
	}

	record.Rev = dto.Rev
	return nil
}

// Get retrieves a check record by ID
func (r *DynamoRepository) Get(ctx context.Context, id string) (*model.CheckRecord, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       keyOf(id),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get check record: %w", err)
	}

	if result.Item == nil {
		return nil, model.ErrNotFound
	}

	var dto DynamoDTO
	if err := attributevalue.UnmarshalMap(result.Item, &dto); err != nil {
		return nil, fmt.Errorf("failed to unmarshal check record: %w", err)
	}

	return dto.ToDomain(), nil
}

// List retrieves all check records, following scan pagination
func (r *DynamoRepository) List(ctx context.Context) ([]*model.CheckRecord, error) {
	var dtos []*DynamoDTO

	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check records: %w", err)
		}

		var pageDTOs []*DynamoDTO
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageDTOs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal check records: %w", err)
		}
		dtos = append(dtos, pageDTOs...)
	}

	return ToDomainList(dtos), nil
}

// Delete removes a check record by ID
func (r *DynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 keyOf(id),
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if err != nil {
		var ccfe *types.ConditionalCheckFailedException
		if errors.As(err, &ccfe) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to delete check record: %w", err)
	}

	return nil
}
