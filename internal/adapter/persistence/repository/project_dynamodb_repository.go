package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"firesec_estimator/internal/domain/entities"
	"firesec_estimator/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultProjectsTableName = "projects"

// projectItem flattens the queryable fields and carries the full entity
// (history, messages, estimate, proposal) as one JSON document so nested
// structures round-trip without a per-field schema.
type projectItem struct {
	ID        string `dynamodbav:"id"`
	Status    string `dynamodbav:"status"`
	Version   int64  `dynamodbav:"version"`
	Document  string `dynamodbav:"document"`
	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// ProjectDynamoRepository persists Project entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Update writes are conditioned on the stored version so a status change
// and its history entry land atomically or not at all.
type ProjectDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IProjectRepository = (*ProjectDynamoRepository)(nil)

func NewProjectDynamoRepository(ddb *dynamodb.Client) *ProjectDynamoRepository {
	return &ProjectDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PROJECTS_TABLE", defaultProjectsTableName),
	}
}

func (r *ProjectDynamoRepository) Create(ctx context.Context, p entities.Project) (entities.Project, error) {
	it, err := toProjectItem(p)
	if err != nil {
		return entities.Project{}, err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Project{}, err
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
		return entities.Project{}, err
	}
	return p, nil
}

func (r *ProjectDynamoRepository) GetByID(ctx context.Context, id string) (entities.Project, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Project{}, err
	}
	if len(out.Item) == 0 {
		return entities.Project{}, nil
	}

	var it projectItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Project{}, err
	}
	return fromProjectItem(it)
}

func (r *ProjectDynamoRepository) List(ctx context.Context) ([]entities.Project, error) {
	var projects []entities.Project
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, item := range out.Items {
			var it projectItem
			if err := attributevalue.UnmarshalMap(item, &it); err != nil {
				return nil, err
			}
			p, err := fromProjectItem(it)
			if err != nil {
				return nil, err
			}
			projects = append(projects, p)
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return projects, nil
}

// Update replaces the stored document iff the stored version still equals
// expectedVersion. A failed condition maps to ErrVersionConflict so the
// caller can surface the concurrent mutation.
func (r *ProjectDynamoRepository) Update(ctx context.Context, p entities.Project, expectedVersion int64) (entities.Project, error) {
	p.UpdatedAt = time.Now().UTC()
	it, err := toProjectItem(p)
	if err != nil {
		return entities.Project{}, err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Project{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id) AND #version = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#id":      "id",
			"#version": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(expectedVersion, 10)},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Project{}, interfaces.ErrVersionConflict
		}
		return entities.Project{}, err
	}
	return p, nil
}

func toProjectItem(p entities.Project) (projectItem, error) {
	doc, err := json.Marshal(p)
	if err != nil {
		return projectItem{}, err
	}
	return projectItem{
		ID:        p.ID,
		Status:    string(p.Status),
		Version:   p.Version,
		Document:  string(doc),
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}, nil
}

func fromProjectItem(it projectItem) (entities.Project, error) {
	var p entities.Project
	if err := json.Unmarshal([]byte(it.Document), &p); err != nil {
		return entities.Project{}, err
	}
	return p, nil
}
