// Package dynamodb implements the product repository on the shared
// DynamoDB table, addressed by the id attribute.
package dynamodb

import (
	"context"
	"errors"

	"catalog-backend/application/ports"
	"catalog-backend/domain/product"
	appErrors "catalog-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// ProductRepository implements ports.ProductRepository using DynamoDB.
type ProductRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewProductRepository creates a repository bound to the given table.
func NewProductRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.ProductRepository {
	return &ProductRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// Save persists the full record, overwriting any existing item.
func (r *ProductRepository) Save(ctx context.Context, p *product.Product) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return appErrors.NewStorageError("marshal product", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		r.logger.Error("failed to put product",
			zap.Error(err),
			zap.String("productID", p.ID),
		)
		return appErrors.NewStorageError("put product", err)
	}

	return nil
}

// FindByID fetches a record by exact key.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       productKey(id),
	}

	out, err := r.client.GetItem(ctx, input)
	if err != nil {
		r.logger.Error("failed to get product",
			zap.Error(err),
			zap.String("productID", id),
		)
		return nil, appErrors.NewStorageError("get product", err)
	}
	if out.Item == nil {
		return nil, appErrors.NewNotFoundError("Product")
	}

	var p product.Product
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, appErrors.NewStorageError("unmarshal product", err)
	}
	return &p, nil
}

// FindAll scans the whole table. A single scan page is enough here: the
// catalog is assumed small and the API exposes no paging contract.
func (r *ProductRepository) FindAll(ctx context.Context) ([]*product.Product, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	}

	out, err := r.client.Scan(ctx, input)
	if err != nil {
		r.logger.Error("failed to scan products", zap.Error(err))
		return nil, appErrors.NewStorageError("scan products", err)
	}

	products := make([]*product.Product, 0, len(out.Items))
	for _, item := range out.Items {
		var p product.Product
		if err := attributevalue.UnmarshalMap(item, &p); err != nil {
			return nil, appErrors.NewStorageError("unmarshal product", err)
		}
		products = append(products, &p)
	}
	return products, nil
}

// Update applies a field-additive SET mutation: every supplied field plus
// updatedAt. The attribute_exists condition makes updates to a missing key
// fail with not found instead of creating a new item.
func (r *ProductRepository) Update(ctx context.Context, id string, fields map[string]interface{}, updatedAt string) (*product.Product, error) {
	update := expression.Set(expression.Name("updatedAt"), expression.Value(updatedAt))
	for attr, value := range fields {
		update = update.Set(expression.Name(attr), expression.Value(value))
	}

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(expression.Name("id").AttributeExists()).
		Build()
	if err != nil {
		return nil, appErrors.NewStorageError("build update expression", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       productKey(id),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	}

	out, err := r.client.UpdateItem(ctx, input)
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return nil, appErrors.NewNotFoundError("Product")
		}
		r.logger.Error("failed to update product",
			zap.Error(err),
			zap.String("productID", id),
		)
		return nil, appErrors.NewStorageError("update product", err)
	}

	var p product.Product
	if err := attributevalue.UnmarshalMap(out.Attributes, &p); err != nil {
		return nil, appErrors.NewStorageError("unmarshal product", err)
	}
	return &p, nil
}

// Delete removes the record. DynamoDB deletes are idempotent, so an
// absent key is success.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       productKey(id),
	}

	if _, err := r.client.DeleteItem(ctx, input); err != nil {
		r.logger.Error("failed to delete product",
			zap.Error(err),
			zap.String("productID", id),
		)
		return appErrors.NewStorageError("delete product", err)
	}
	return nil
}

func productKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}
