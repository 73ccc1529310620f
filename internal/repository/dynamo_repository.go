package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	pkgconfig "github.com/cloud-wave-best-zizon/storefront-service/pkg/config"
)

const (
	skMetadata     = "METADATA"
	productCounter = "COUNTER#product"
	userCounter    = "COUNTER#user"
)

// DynamoAPI is the subset of the DynamoDB client the repository uses.
type DynamoAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, opts ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, in *dynamodb.TransactWriteItemsInput, opts ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// DynamoRepository stores products, slug reservations and users in one
// table keyed by PK/SK.
type DynamoRepository struct {
	client    DynamoAPI
	tableName string
	now       func() time.Time
}

func NewDynamoDBClient(cfg *pkgconfig.Config) (*dynamodb.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, err
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	}), nil
}

func NewDynamoRepository(client DynamoAPI, tableName string) *DynamoRepository {
	return &DynamoRepository{
		client:    client,
		tableName: tableName,
		now:       time.Now,
	}
}

func productKey(id int64) string     { return "PRODUCT#" + strconv.FormatInt(id, 10) }
func slugKey(slug string) string     { return "SLUG#" + slug }
func userKey(username string) string { return "USER#" + username }

func itemKey(pk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: skMetadata},
	}
}

func (r *DynamoRepository) productItem(rec *domain.ProductRecord) (map[string]types.AttributeValue, error) {
	av, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal product: %w", err)
	}
	av["PK"] = &types.AttributeValueMemberS{Value: productKey(rec.ID)}
	av["SK"] = &types.AttributeValueMemberS{Value: skMetadata}
	av["entity"] = &types.AttributeValueMemberS{Value: "product"}
	return av, nil
}

func (r *DynamoRepository) slugItem(slug string, id int64) map[string]types.AttributeValue {
	item := itemKey(slugKey(slug))
	item["productId"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(id, 10)}
	return item
}

// nextID bumps an atomic counter item and returns the new value.
func (r *DynamoRepository) nextID(ctx context.Context, counter string) (int64, error) {
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       itemKey(counter),
		UpdateExpression:          aws.String("ADD #v :one"),
		ExpressionAttributeNames:  map[string]string{"#v": "value"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":one": &types.AttributeValueMemberN{Value: "1"}},
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to allocate id: %w", err)
	}
	var v struct {
		Value int64 `dynamodbav:"value"`
	}
	if err := attributevalue.UnmarshalMap(out.Attributes, &v); err != nil {
		return 0, err
	}
	return v.Value, nil
}

func (r *DynamoRepository) ListProducts(ctx context.Context, q domain.ListQuery) ([]domain.ProductRecord, error) {
	p := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName:                 aws.String(r.tableName),
		FilterExpression:          aws.String("#e = :product"),
		ExpressionAttributeNames:  map[string]string{"#e": "entity"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":product": &types.AttributeValueMemberS{Value: "product"}},
	})

	var records []domain.ProductRecord
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan products: %w", err)
		}
		var batch []domain.ProductRecord
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, err
		}
		records = append(records, batch...)
	}
	return q.Apply(records), nil
}

func (r *DynamoRepository) GetProduct(ctx context.Context, id int64) (*domain.ProductRecord, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            itemKey(productKey(id)),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, domain.ErrProductNotFound
	}

	var rec domain.ProductRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// CreateProduct writes the product and its slug reservation in one
// transaction so a colliding slug never leaves a product behind.
func (r *DynamoRepository) CreateProduct(ctx context.Context, rec *domain.ProductRecord) error {
	id, err := r.nextID(ctx, productCounter)
	if err != nil {
		return err
	}
	now := r.now().UnixMilli()
	created := *rec
	created.ID = id
	created.CreatedAt = now
	created.UpdatedAt = now

	item, err := r.productItem(&created)
	if err != nil {
		return err
	}

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:           aws.String(r.tableName),
				Item:                r.slugItem(created.Slug, id),
				ConditionExpression: aws.String("attribute_not_exists(PK)"),
			}},
			{Put: &types.Put{
				TableName:           aws.String(r.tableName),
				Item:                item,
				ConditionExpression: aws.String("attribute_not_exists(PK)"),
			}},
		},
	})
	if err != nil {
		if conditionFailedAt(err, 0) {
			return domain.ErrDuplicateSlug
		}
		return fmt.Errorf("failed to put product: %w", err)
	}

	*rec = created
	return nil
}

func (r *DynamoRepository) UpdateProduct(ctx context.Context, id int64, patch domain.UpdateProductRequest) (*domain.ProductRecord, error) {
	existing, err := r.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	patch.ApplyTo(&updated)
	updated.UpdatedAt = r.now().UnixMilli()

	item, err := r.productItem(&updated)
	if err != nil {
		return nil, err
	}

	writes := []types.TransactWriteItem{
		{Put: &types.Put{
			TableName:           aws.String(r.tableName),
			Item:                item,
			ConditionExpression: aws.String("attribute_exists(PK)"),
		}},
	}
	if updated.Slug != existing.Slug {
		writes = append(writes,
			types.TransactWriteItem{Put: &types.Put{
				TableName:           aws.String(r.tableName),
				Item:                r.slugItem(updated.Slug, id),
				ConditionExpression: aws.String("attribute_not_exists(PK)"),
			}},
			types.TransactWriteItem{Delete: &types.Delete{
				TableName: aws.String(r.tableName),
				Key:       itemKey(slugKey(existing.Slug)),
			}},
		)
	}

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: writes})
	switch {
	case err == nil:
		return &updated, nil
	case conditionFailedAt(err, 0):
		return nil, domain.ErrProductNotFound
	case conditionFailedAt(err, 1):
		return nil, domain.ErrDuplicateSlug
	default:
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
}

func (r *DynamoRepository) DeleteProduct(ctx context.Context, id int64) error {
	existing, err := r.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Delete: &types.Delete{
				TableName:           aws.String(r.tableName),
				Key:                 itemKey(productKey(id)),
				ConditionExpression: aws.String("attribute_exists(PK)"),
			}},
			{Delete: &types.Delete{
				TableName: aws.String(r.tableName),
				Key:       itemKey(slugKey(existing.Slug)),
			}},
		},
	})
	if err != nil {
		if conditionFailedAt(err, 0) {
			return domain.ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (r *DynamoRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            itemKey(userKey(username)),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, domain.ErrUserNotFound
	}

	var user domain.User
	if err := attributevalue.UnmarshalMap(out.Item, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *DynamoRepository) CreateUser(ctx context.Context, user *domain.User) error {
	id, err := r.nextID(ctx, userCounter)
	if err != nil {
		return err
	}
	created := *user
	created.ID = id
	created.CreatedAt = r.now().UnixMilli()

	av, err := attributevalue.MarshalMap(created)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	av["PK"] = &types.AttributeValueMemberS{Value: userKey(created.Username)}
	av["SK"] = &types.AttributeValueMemberS{Value: skMetadata}
	av["entity"] = &types.AttributeValueMemberS{Value: "user"}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return domain.ErrDuplicateUser
		}
		return fmt.Errorf("failed to put user: %w", err)
	}

	*user = created
	return nil
}

// conditionFailedAt reports whether a cancelled transaction failed the
// condition of the write at index i.
func conditionFailedAt(err error, i int) bool {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) || i >= len(tce.CancellationReasons) {
		return false
	}
	return aws.ToString(tce.CancellationReasons[i].Code) == "ConditionalCheckFailed"
}
