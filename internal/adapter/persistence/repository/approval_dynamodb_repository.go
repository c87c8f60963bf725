package repository

import (
	"context"
	"encoding/json"
	"time"

	"firesec_estimator/internal/domain/entities"
	"firesec_estimator/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultApprovalsTableName = "approvals"
	approvalsProjectIDIndex   = "project_id-index"
	approvalsAssigneeIndex    = "assignee-index"
)

type approvalItem struct {
	ID        string `dynamodbav:"id"`
	ProjectID string `dynamodbav:"project_id"`
	Assignee  string `dynamodbav:"assignee"`
	Status    string `dynamodbav:"status"`
	Document  string `dynamodbav:"document"`
	CreatedAt string `dynamodbav:"created_at"`
}

// ApprovalDynamoRepository persists ApprovalRequest entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI "project_id-index": PK project_id (string)
//   - GSI "assignee-index": PK assignee (string)
type ApprovalDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IApprovalRepository = (*ApprovalDynamoRepository)(nil)

func NewApprovalDynamoRepository(ddb *dynamodb.Client) *ApprovalDynamoRepository {
	return &ApprovalDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("APPROVALS_TABLE", defaultApprovalsTableName),
	}
}

func (r *ApprovalDynamoRepository) Create(ctx context.Context, a entities.ApprovalRequest) (entities.ApprovalRequest, error) {
	it, err := toApprovalItem(a)
	if err != nil {
		return entities.ApprovalRequest{}, err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.ApprovalRequest{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.ApprovalRequest{}, err
	}
	return a, nil
}

func (r *ApprovalDynamoRepository) GetByID(ctx context.Context, id string) (entities.ApprovalRequest, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ApprovalRequest{}, err
	}
	if len(out.Item) == 0 {
		return entities.ApprovalRequest{}, nil
	}

	var it approvalItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ApprovalRequest{}, err
	}
	return fromApprovalItem(it)
}

// Update replaces the stored record. The approval gate is the only
// writer; existence is the only condition needed.
func (r *ApprovalDynamoRepository) Update(ctx context.Context, a entities.ApprovalRequest) (entities.ApprovalRequest, error) {
	it, err := toApprovalItem(a)
	if err != nil {
		return entities.ApprovalRequest{}, err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.ApprovalRequest{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.ApprovalRequest{}, err
	}
	return a, nil
}

func (r *ApprovalDynamoRepository) ListByProjectID(ctx context.Context, projectID string) ([]entities.ApprovalRequest, error) {
	return r.queryIndex(ctx, approvalsProjectIDIndex, "project_id", projectID)
}

func (r *ApprovalDynamoRepository) ListByAssignee(ctx context.Context, assignee string) ([]entities.ApprovalRequest, error) {
	return r.queryIndex(ctx, approvalsAssigneeIndex, "assignee", assignee)
}

func (r *ApprovalDynamoRepository) queryIndex(ctx context.Context, index, attr, value string) ([]entities.ApprovalRequest, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#attr = :value"),
		ExpressionAttributeNames: map[string]string{
			"#attr": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":value": &types.AttributeValueMemberS{Value: value},
		},
	})
	if err != nil {
		return nil, err
	}

	requests := make([]entities.ApprovalRequest, 0, len(out.Items))
	for _, item := range out.Items {
		var it approvalItem
		if err := attributevalue.UnmarshalMap(item, &it); err != nil {
			return nil, err
		}
		a, err := fromApprovalItem(it)
		if err != nil {
			return nil, err
		}
		requests = append(requests, a)
	}
	return requests, nil
}

func toApprovalItem(a entities.ApprovalRequest) (approvalItem, error) {
	doc, err := json.Marshal(a)
	if err != nil {
		return approvalItem{}, err
	}
	return approvalItem{
		ID:        a.RequestID,
		ProjectID: a.ProjectID,
		Assignee:  a.Assignee,
		Status:    string(a.Status),
		Document:  string(doc),
		CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339Nano),
	}, nil
}

func fromApprovalItem(it approvalItem) (entities.ApprovalRequest, error) {
	var a entities.ApprovalRequest
	if err := json.Unmarshal([]byte(it.Document), &a); err != nil {
		return entities.ApprovalRequest{}, err
	}
	return a, nil
}
