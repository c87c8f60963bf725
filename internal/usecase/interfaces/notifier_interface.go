package interfaces

import "context"

//go:generate mockgen -source=notifier_interface.go -destination=mocks/notifier_mock.go -package=mock_interfaces

// INotifier abstracts the notification transport (e.g. SES email).
//
// Delivery failure must never revert a state transition: callers commit
// state first, then notify, and absorb the error with a log line.
type INotifier interface {
	SendApprovalRequest(ctx context.Context, recipient, requestID, projectID, pdfURL string) error
	SendApprovalConfirmation(ctx context.Context, requestID, projectID, status, actor, comment string) error
	SendCustomerNotification(ctx context.Context, recipient, projectID, subject, message, pdfURL string) error
}
