package mailer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/internal/notify"
)

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("otp", func(t *testing.T) {
		subject, body, err := Render(notify.Event{
			Kind:     notify.OTPRequested,
			UserName: "Alice",
			OTP:      "123456",
		})
		require.NoError(t, err)
		require.Equal(t, "Your Login OTP - Library Management System", subject)
		require.Contains(t, body, "123456")
		require.Contains(t, body, "Hello Alice,")
	})

	t.Run("issue created", func(t *testing.T) {
		subject, body, err := Render(notify.Event{
			Kind:     notify.IssueCreated,
			Subject:  "Broken chair",
			Message:  "Chair at desk 12 is broken",
			Category: model.CategoryOther,
			Urgency:  model.UrgencyHigh,
			UserName: "Alice",
		})
		require.NoError(t, err)
		require.Equal(t, "New Library Issue Reported: Broken chair", subject)
		require.Contains(t, body, "Category: other | Urgency: high")
	})

	t.Run("request resolved carries admin response", func(t *testing.T) {
		subject, body, err := Render(notify.Event{
			Kind:          notify.RequestResolved,
			UserName:      "Alice",
			BookTitle:     "The Go Programming Language",
			Status:        "approved",
			AdminResponse: "pick it up at desk 2",
		})
		require.NoError(t, err)
		require.Equal(t, "Book Request Approved: The Go Programming Language", subject)
		require.Contains(t, body, "pick it up at desk 2")
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, _, err := Render(notify.Event{Kind: "carrier_pigeon"})
		require.Error(t, err)
	})
}
