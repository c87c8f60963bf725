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
	defaultWorkflowsTableName = "workflows"
	workflowsProjectIDIndex   = "project_id-index"
)

type workflowItem struct {
	ID        string `dynamodbav:"id"`
	ProjectID string `dynamodbav:"project_id"`
	Status    string `dynamodbav:"status"`
	Document  string `dynamodbav:"document"`
	StartedAt string `dynamodbav:"started_at"`
}

// WorkflowDynamoRepository persists AgentWorkflow entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI "project_id-index": PK project_id (string)
type WorkflowDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IWorkflowRepository = (*WorkflowDynamoRepository)(nil)

func NewWorkflowDynamoRepository(ddb *dynamodb.Client) *WorkflowDynamoRepository {
	return &WorkflowDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("WORKFLOWS_TABLE", defaultWorkflowsTableName),
	}
}

// Save upserts the workflow record. The orchestrator writes after every
// stage, so last-write-wins is the intended semantics.
func (r *WorkflowDynamoRepository) Save(ctx context.Context, wf entities.AgentWorkflow) (entities.AgentWorkflow, error) {
	it, err := toWorkflowItem(wf)
	if err != nil {
		return entities.AgentWorkflow{}, err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.AgentWorkflow{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return entities.AgentWorkflow{}, err
	}
	return wf, nil
}

func (r *WorkflowDynamoRepository) GetByID(ctx context.Context, id string) (entities.AgentWorkflow, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.AgentWorkflow{}, err
	}
	if len(out.Item) == 0 {
		return entities.AgentWorkflow{}, nil
	}

	var it workflowItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.AgentWorkflow{}, err
	}
	return fromWorkflowItem(it)
}

// GetLatestByProjectID returns the most recently started workflow for a
// project, or the zero workflow when none exists.
func (r *WorkflowDynamoRepository) GetLatestByProjectID(ctx context.Context, projectID string) (entities.AgentWorkflow, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(workflowsProjectIDIndex),
		KeyConditionExpression: aws.String("#project_id = :project_id"),
		ExpressionAttributeNames: map[string]string{
			"#project_id": "project_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":project_id": &types.AttributeValueMemberS{Value: projectID},
		},
	})
	if err != nil {
		return entities.AgentWorkflow{}, err
	}

	var latest entities.AgentWorkflow
	for _, item := range out.Items {
		var it workflowItem
		if err := attributevalue.UnmarshalMap(item, &it); err != nil {
			return entities.AgentWorkflow{}, err
		}
		wf, err := fromWorkflowItem(it)
		if err != nil {
			return entities.AgentWorkflow{}, err
		}
		if latest.WorkflowID == "" || wf.StartedAt.After(latest.StartedAt) {
			latest = wf
		}
	}
	return latest, nil
}

func toWorkflowItem(wf entities.AgentWorkflow) (workflowItem, error) {
	doc, err := json.Marshal(wf)
	if err != nil {
		return workflowItem{}, err
	}
	return workflowItem{
		ID:        wf.WorkflowID,
		ProjectID: wf.ProjectID,
		Status:    string(wf.Status),
		Document:  string(doc),
		StartedAt: wf.StartedAt.UTC().Format(time.RFC3339Nano),
	}, nil
}

func fromWorkflowItem(it workflowItem) (entities.AgentWorkflow, error) {
	var wf entities.AgentWorkflow
	if err := json.Unmarshal([]byte(it.Document), &wf); err != nil {
		return entities.AgentWorkflow{}, err
	}
	return wf, nil
}
