package notify

import "github.com/bookhive/library-service/internal/model"

type EventKind string

const (
	RequestCreated  EventKind = "request_created"
	RequestResolved EventKind = "request_resolved"
	IssueCreated    EventKind = "issue_created"
	IssueResolved   EventKind = "issue_resolved"
	OTPRequested    EventKind = "otp_requested"
)

// Event is the symbolic payload handed to the dispatcher. The core never
// builds transport-level messages; rendering happens in the notifier worker.
type Event struct {
	Kind       EventKind `json:"kind"`
	Recipients []string  `json:"recipients"`

	UserName  string `json:"userName,omitempty"`
	UserEmail string `json:"userEmail,omitempty"`

	BookTitle  string `json:"bookTitle,omitempty"`
	BookAuthor string `json:"bookAuthor,omitempty"`
	Message    string `json:"message,omitempty"`

	Status        string `json:"status,omitempty"`
	AdminResponse string `json:"adminResponse,omitempty"`

	Subject  string              `json:"subject,omitempty"`
	Category model.IssueCategory `json:"category,omitempty"`
	Urgency  model.IssueUrgency  `json:"urgency,omitempty"`

	OTP string `json:"otp,omitempty"`
}
