package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoService is the DynamoDB-backed EntityStore.
type DynamoService struct {
	Client *dynamodb.Client
}

// InitializeDynamoDBClient initializes the DynamoDB client
func InitializeDynamoDBClient() *dynamodb.Client {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	return dynamodb.NewFromConfig(cfg)
}

// PutItem inserts or replaces an item.
func (ds *DynamoService) PutItem(ctx context.Context, table string, item interface{}) error {
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item for table '%s': %w", table, err)
	}

	_, err = ds.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &table,
		Item:      marshaled,
	})
	if err != nil {
		return fmt.Errorf("failed to put item in table '%s': %w", table, err)
	}
	return nil
}

// PutNewItem inserts an item only if no item with the same partition key
// exists. A concurrent duplicate surfaces as ErrConflict.
func (ds *DynamoService) PutNewItem(ctx context.Context, table string, item interface{}, keyAttr string) error {
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item for table '%s': %w", table, err)
	}

	condition := "attribute_not_exists(#pk)"
	_, err = ds.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                &table,
		Item:                     marshaled,
		ConditionExpression:      &condition,
		ExpressionAttributeNames: map[string]string{"#pk": keyAttr},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrConflict
		}
		return fmt.Errorf("failed to put item in table '%s': %w", table, err)
	}
	return nil
}

// GetItem retrieves an item from DynamoDB
func (ds *DynamoService) GetItem(ctx context.Context, table string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	output, err := ds.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &table,
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item from table '%s': %w", table, err)
	}

	if output.Item == nil {
		return nil, ErrNotFound
	}
	return output.Item, nil
}

// DeleteItem removes an item from DynamoDB
func (ds *DynamoService) DeleteItem(ctx context.Context, table string, key map[string]types.AttributeValue) error {
	_, err := ds.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &table,
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete item from table '%s': %w", table, err)
	}
	return nil
}

// QueryItems queries a table or a GSI by equality key conditions.
func (ds *DynamoService) QueryItems(ctx context.Context, table, index string, conds []KeyCond, limit int32, startKey map[string]types.AttributeValue) ([]map[string]types.AttributeValue, map[string]types.AttributeValue, error) {
	keyCondition, names, values := buildKeyCondition(conds)

	input := &dynamodb.QueryInput{
		TableName:                 &table,
		KeyConditionExpression:    &keyCondition,
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	}
	if index != "" {
		input.IndexName = &index
	}
	if limit > 0 {
		input.Limit = &limit
	}
	if len(startKey) > 0 {
		input.ExclusiveStartKey = startKey
	}

	output, err := ds.Client.Query(ctx, input)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query table '%s': %w", table, err)
	}
	return output.Items, output.LastEvaluatedKey, nil
}

// CountItems counts items matching the key conditions without fetching them.
func (ds *DynamoService) CountItems(ctx context.Context, table, index string, conds []KeyCond) (int, error) {
	keyCondition, names, values := buildKeyCondition(conds)

	input := &dynamodb.QueryInput{
		TableName:                 &table,
		KeyConditionExpression:    &keyCondition,
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		Select:                    types.SelectCount,
	}
	if index != "" {
		input.IndexName = &index
	}

	total := 0
	for {
		output, err := ds.Client.Query(ctx, input)
		if err != nil {
			return 0, fmt.Errorf("failed to count items in table '%s': %w", table, err)
		}
		total += int(output.Count)
		if output.LastEvaluatedKey == nil {
			return total, nil
		}
		input.ExclusiveStartKey = output.LastEvaluatedKey
	}
}

// TransactWrite applies all writes in one TransactWriteItems call.
func (ds *DynamoService) TransactWrite(ctx context.Context, writes ...Write) error {
	items := make([]types.TransactWriteItem, 0, len(writes))
	for _, w := range writes {
		item, err := buildTransactItem(w)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	_, err := ds.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			for _, reason := range canceled.CancellationReasons {
				if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
					return ErrConflict
				}
			}
		}
		return fmt.Errorf("transactional write failed: %w", err)
	}
	return nil
}

func buildTransactItem(w Write) (types.TransactWriteItem, error) {
	switch {
	case w.Put != nil:
		marshaled, err := attributevalue.MarshalMap(w.Put)
		if err != nil {
			return types.TransactWriteItem{}, fmt.Errorf("failed to marshal item for table '%s': %w", w.Table, err)
		}
		put := &types.Put{
			TableName: aws.String(w.Table),
			Item:      marshaled,
		}
		if w.IfAbsent != "" {
			put.ConditionExpression = aws.String("attribute_not_exists(#pk)")
			put.ExpressionAttributeNames = map[string]string{"#pk": w.IfAbsent}
		}
		return types.TransactWriteItem{Put: put}, nil

	case len(w.Set) > 0 || len(w.Add) > 0:
		expr, names, values := buildUpdateExpression(w.Set, w.Add)
		return types.TransactWriteItem{Update: &types.Update{
			TableName:                 aws.String(w.Table),
			Key:                       w.Key,
			UpdateExpression:          aws.String(expr),
			ExpressionAttributeNames:  names,
			ExpressionAttributeValues: values,
		}}, nil

	default:
		return types.TransactWriteItem{Delete: &types.Delete{
			TableName: aws.String(w.Table),
			Key:       w.Key,
		}}, nil
	}
}

func buildKeyCondition(conds []KeyCond) (string, map[string]string, map[string]types.AttributeValue) {
	parts := make([]string, 0, len(conds))
	names := map[string]string{}
	values := map[string]types.AttributeValue{}
	for i, c := range conds {
		name := fmt.Sprintf("#k%d", i)
		value := fmt.Sprintf(":v%d", i)
		parts = append(parts, fmt.Sprintf("%s = %s", name, value))
		names[name] = c.Name
		values[value] = c.Value
	}
	return strings.Join(parts, " AND "), names, values
}

func buildUpdateExpression(set map[string]types.AttributeValue, add map[string]int) (string, map[string]string, map[string]types.AttributeValue) {
	names := map[string]string{}
	values := map[string]types.AttributeValue{}

	var setParts, addParts []string
	i := 0
	for attr, value := range set {
		name := fmt.Sprintf("#s%d", i)
		placeholder := fmt.Sprintf(":s%d", i)
		setParts = append(setParts, fmt.Sprintf("%s = %s", name, placeholder))
		names[name] = attr
		values[placeholder] = value
		i++
	}
	i = 0
	for attr, delta := range add {
		name := fmt.Sprintf("#a%d", i)
		placeholder := fmt.Sprintf(":a%d", i)
		addParts = append(addParts, fmt.Sprintf("%s %s", name, placeholder))
		names[name] = attr
		values[placeholder] = &types.AttributeValueMemberN{Value: strconv.Itoa(delta)}
		i++
	}

	var expr []string
	if len(setParts) > 0 {
		expr = append(expr, "SET "+strings.Join(setParts, ", "))
	}
	if len(addParts) > 0 {
		expr = append(expr, "ADD "+strings.Join(addParts, ", "))
	}
	return strings.Join(expr, " "), names, values
}
