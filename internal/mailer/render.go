package mailer

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/bookhive/library-service/internal/notify"
)

// Render turns a workflow event into a plain-text mail subject and body.
func Render(event notify.Event) (subject, body string, err error) {
	switch event.Kind {
	case notify.OTPRequested:
		subject = "Your Login OTP - Library Management System"
		body = joinLines(
			fmt.Sprintf("Hello %s,", event.UserName),
			"",
			"Use the following one-time code to complete your login:",
			"",
			"    "+event.OTP,
			"",
			"The code is valid for 10 minutes. Do not share it with anyone.",
			"If you did not request this code, ignore this message.",
		)
	case notify.RequestCreated:
		subject = fmt.Sprintf("New Book Request: %s", event.BookTitle)
		body = joinLines(
			"A student has requested a book.",
			"",
			fmt.Sprintf("Book: %s by %s", event.BookTitle, event.BookAuthor),
			fmt.Sprintf("Requested by: %s (%s)", event.UserName, event.UserEmail),
			fmt.Sprintf("Message: %s", event.Message),
			"",
			"Review the request in the admin dashboard.",
		)
	case notify.RequestResolved:
		subject = fmt.Sprintf("Book Request %s: %s", titleStatus(event.Status), event.BookTitle)
		body = joinLines(
			fmt.Sprintf("Hello %s,", event.UserName),
			"",
			fmt.Sprintf("Your request for %q has been %s.", event.BookTitle, event.Status),
			adminResponseLine(event.AdminResponse),
		)
	case notify.IssueCreated:
		subject = fmt.Sprintf("New Library Issue Reported: %s", event.Subject)
		body = joinLines(
			"A student has reported an issue.",
			"",
			fmt.Sprintf("Subject: %s", event.Subject),
			fmt.Sprintf("Category: %s | Urgency: %s", event.Category, event.Urgency),
			fmt.Sprintf("Reported by: %s (%s)", event.UserName, event.UserEmail),
			"",
			event.Message,
		)
	case notify.IssueResolved:
		subject = fmt.Sprintf("Issue Update: %s", event.Subject)
		body = joinLines(
			fmt.Sprintf("Hello %s,", event.UserName),
			"",
			fmt.Sprintf("Your issue %q is now %s.", event.Subject, event.Status),
			adminResponseLine(event.AdminResponse),
		)
	default:
		return "", "", errors.Errorf("unknown event kind %q", event.Kind)
	}
	return subject, body, nil
}

func joinLines(lines ...string) string {
	return strings.Join(lines, "\n")
}

func titleStatus(status string) string {
	if status == "" {
		return "Updated"
	}
	return strings.ToUpper(status[:1]) + status[1:]
}

func adminResponseLine(response string) string {
	if response == "" {
		return ""
	}
	return "\nResponse from the library team:\n" + response
}
