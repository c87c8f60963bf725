package email

import (
	"context"
	"fmt"

	"firesec_estimator/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SESNotifier sends workflow and approval notifications through Amazon
// SES. Delivery failures are the caller's concern only as log lines:
// state is always committed before a notification goes out.
type SESNotifier struct {
	client    *sesv2.Client
	sender    string
	approvers string
}

var _ interfaces.INotifier = (*SESNotifier)(nil)

// NewSESNotifier configures the notifier. approvers is the mailbox that
// receives decision confirmations.
func NewSESNotifier(client *sesv2.Client, sender, approvers string) *SESNotifier {
	return &SESNotifier{client: client, sender: sender, approvers: approvers}
}

func (n *SESNotifier) SendApprovalRequest(ctx context.Context, recipient, requestID, projectID, pdfURL string) error {
	subject := fmt.Sprintf("Proposal approval requested: project %s", projectID)
	body := fmt.Sprintf(
		"A proposal is awaiting your review.\n\nRequest: %s\nProject: %s\n",
		requestID, projectID,
	)
	if pdfURL != "" {
		body += fmt.Sprintf("Document: %s\n", pdfURL)
	}
	return n.send(ctx, recipient, subject, body)
}

func (n *SESNotifier) SendApprovalConfirmation(ctx context.Context, requestID, projectID, status, actor, comment string) error {
	subject := fmt.Sprintf("Approval %s: project %s", status, projectID)
	body := fmt.Sprintf(
		"Request %s for project %s is now %s.\n\nBy: %s\nComment: %s\n",
		requestID, projectID, status, actor, comment,
	)
	return n.send(ctx, n.approvers, subject, body)
}

func (n *SESNotifier) SendCustomerNotification(ctx context.Context, recipient, projectID, subject, message, pdfURL string) error {
	body := message + "\n"
	if pdfURL != "" {
		body += fmt.Sprintf("\nYour proposal document: %s\n", pdfURL)
	}
	return n.send(ctx, recipient, subject, body)
}

func (n *SESNotifier) send(ctx context.Context, recipient, subject, body string) error {
	if recipient == "" {
		return fmt.Errorf("notification has no recipient")
	}
	_, err := n.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(n.sender),
		Destination: &types.Destination{
			ToAddresses: []string{recipient},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sending email to %s: %w", recipient, err)
	}
	return nil
}
