package services

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoService wraps the DynamoDB client with the handful of operations the
// stores need. Single-document updates (including ADD deltas) are atomic at
// the store level; that is the only mutual exclusion the system relies on.
type DynamoService struct {
	Client *dynamodb.Client
	Log    *slog.Logger
}

// InitializeDynamoDBClient initializes the DynamoDB client from the
// environment. DYNAMO_ENDPOINT overrides the endpoint for local stacks.
func InitializeDynamoDBClient() *dynamodb.Client {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	if endpoint := os.Getenv("DYNAMO_ENDPOINT"); endpoint != "" {
		return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
	}
	return dynamodb.NewFromConfig(cfg)
}

// GetItem retrieves a single item by key and unmarshals it into out.
// Returns ErrItemNotFound when the item does not exist.
func (ds *DynamoService) GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue, out interface{}) error {
	output, err := ds.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &tableName,
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("failed to get item from table '%s': %w", tableName, err)
	}
	if output.Item == nil {
		return ErrItemNotFound
	}
	if err := attributevalue.UnmarshalMap(output.Item, out); err != nil {
		return fmt.Errorf("failed to unmarshal item from table '%s': %w", tableName, err)
	}
	return nil
}

// PutItem marshals item and writes it, replacing any existing document with
// the same key.
func (ds *DynamoService) PutItem(ctx context.Context, tableName string, item interface{}) error {
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}
	_, err = ds.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &tableName,
		Item:      marshaled,
	})
	if err != nil {
		return fmt.Errorf("failed to put item in table '%s': %w", tableName, err)
	}
	return nil
}

// UpdateItem applies updateExpression to the keyed item as one atomic
// document update.
func (ds *DynamoService) UpdateItem(
	ctx context.Context,
	tableName string,
	key map[string]types.AttributeValue,
	updateExpression string,
	expressionAttributeValues map[string]types.AttributeValue,
	expressionAttributeNames map[string]string,
) error {
	input := &dynamodb.UpdateItemInput{
		TableName:        &tableName,
		Key:              key,
		UpdateExpression: &updateExpression,
	}
	if len(expressionAttributeValues) > 0 {
		input.ExpressionAttributeValues = expressionAttributeValues
	}
	if len(expressionAttributeNames) > 0 {
		input.ExpressionAttributeNames = expressionAttributeNames
	}
	if _, err := ds.Client.UpdateItem(ctx, input); err != nil {
		return fmt.Errorf("failed to update item in table '%s': %w", tableName, err)
	}
	return nil
}

// DeleteItem removes an item from DynamoDB.
func (ds *DynamoService) DeleteItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) error {
	_, err := ds.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &tableName,
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete item from table '%s': %w", tableName, err)
	}
	return nil
}

// QueryIndex queries a Global Secondary Index and unmarshals the result set
// into out (a pointer to a slice of structs). A limit of 0 means no limit;
// latestFirst reverses the sort-key order.
func (ds *DynamoService) QueryIndex(
	ctx context.Context,
	tableName string,
	indexName string,
	keyConditionExpression string,
	expressionAttributeValues map[string]types.AttributeValue,
	expressionAttributeNames map[string]string,
	limit int32,
	latestFirst bool,
	out interface{},
) error {
	scanIndexForward := !latestFirst
	input := &dynamodb.QueryInput{
		TableName:                 &tableName,
		IndexName:                 &indexName,
		KeyConditionExpression:    &keyConditionExpression,
		ExpressionAttributeValues: expressionAttributeValues,
		ScanIndexForward:          &scanIndexForward,
	}
	if len(expressionAttributeNames) > 0 {
		input.ExpressionAttributeNames = expressionAttributeNames
	}
	if limit > 0 {
		input.Limit = &limit
	}
	output, err := ds.Client.Query(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to query index '%s' of table '%s': %w", indexName, tableName, err)
	}
	if err := attributevalue.UnmarshalListOfMaps(output.Items, out); err != nil {
		return fmt.Errorf("failed to unmarshal query result: %w", err)
	}
	return nil
}

// ScanItems scans a table with an optional filter expression, following
// pagination until the table is exhausted, and unmarshals all matches into
// out (a pointer to a slice of structs).
func (ds *DynamoService) ScanItems(
	ctx context.Context,
	tableName string,
	filterExpression string,
	expressionAttributeValues map[string]types.AttributeValue,
	expressionAttributeNames map[string]string,
	out interface{},
) error {
	var items []map[string]types.AttributeValue
	var startKey map[string]types.AttributeValue
	for {
		input := &dynamodb.ScanInput{
			TableName:         &tableName,
			ExclusiveStartKey: startKey,
		}
		if filterExpression != "" {
			input.FilterExpression = &filterExpression
		}
		if len(expressionAttributeValues) > 0 {
			input.ExpressionAttributeValues = expressionAttributeValues
		}
		if len(expressionAttributeNames) > 0 {
			input.ExpressionAttributeNames = expressionAttributeNames
		}
		output, err := ds.Client.Scan(ctx, input)
		if err != nil {
			return fmt.Errorf("failed to scan table '%s': %w", tableName, err)
		}
		items = append(items, output.Items...)
		if output.LastEvaluatedKey == nil {
			break
		}
		startKey = output.LastEvaluatedKey
	}
	if err := attributevalue.UnmarshalListOfMaps(items, out); err != nil {
		return fmt.Errorf("failed to unmarshal scan result: %w", err)
	}
	return nil
}

// CountItems counts matching documents without reading them back. Used for
// true pagination totals and counter reconciliation.
func (ds *DynamoService) CountItems(
	ctx context.Context,
	tableName string,
	filterExpression string,
	expressionAttributeValues map[string]types.AttributeValue,
	expressionAttributeNames map[string]string,
) (int, error) {
	total := 0
	var startKey map[string]types.AttributeValue
	for {
		input := &dynamodb.ScanInput{
			TableName:         &tableName,
			Select:            types.SelectCount,
			ExclusiveStartKey: startKey,
		}
		if filterExpression != "" {
			input.FilterExpression = &filterExpression
		}
		if len(expressionAttributeValues) > 0 {
			input.ExpressionAttributeValues = expressionAttributeValues
		}
		if len(expressionAttributeNames) > 0 {
			input.ExpressionAttributeNames = expressionAttributeNames
		}
		output, err := ds.Client.Scan(ctx, input)
		if err != nil {
			return 0, fmt.Errorf("failed to count items in table '%s': %w", tableName, err)
		}
		total += int(output.Count)
		if output.LastEvaluatedKey == nil {
			break
		}
		startKey = output.LastEvaluatedKey
	}
	return total, nil
}
