package mailer

import (
	"testing"
	"time"

	"github.com/metinatakli/theatre-booking-system/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReservationConfirmation(t *testing.T) {
	data := map[string]any{
		"firstName": "Olga",
		"code":      "3F2A9C01B7DE",
		"tickets": []domain.Ticket{
			{
				PlayTitle: "The Seagull",
				ShowTime:  time.Date(2025, time.March, 14, 19, 30, 0, 0, time.UTC),
				Row:       3,
				Seat:      7,
			},
		},
	}

	rendered, err := render("reservation_confirmation.tmpl", data)
	require.NoError(t, err)

	assert.Equal(t, "Your reservation 3F2A9C01B7DE is confirmed", rendered.subject)
	assert.Contains(t, rendered.plainBody, "Hi Olga,")
	assert.Contains(t, rendered.plainBody, "The Seagull, Fri, 14 Mar 2025 19:30, row 3, seat 7")
	assert.Contains(t, rendered.htmlBody, "<strong>3F2A9C01B7DE</strong>")
}

func TestRenderEscapesHTML(t *testing.T) {
	data := map[string]any{
		"firstName": "<script>",
		"code":      "X",
		"tickets":   []domain.Ticket{},
	}

	rendered, err := render("reservation_confirmation.tmpl", data)
	require.NoError(t, err)

	assert.NotContains(t, rendered.htmlBody, "<script>")
	assert.Contains(t, rendered.htmlBody, "&lt;script&gt;")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := render("missing.tmpl", nil)
	assert.Error(t, err)
}

func TestNewMessageHeaders(t *testing.T) {
	m := NewSMTPMailer("localhost", 1025, "", "", "Theatre <no-reply@theatre.local>")

	msg, err := m.newMessage("olga@example.com", "reservation_confirmation.tmpl", map[string]any{
		"firstName": "Olga",
		"code":      "ABC",
		"tickets":   []domain.Ticket{},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"olga@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Theatre <no-reply@theatre.local>"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"Your reservation ABC is confirmed"}, msg.GetHeader("Subject"))
}
