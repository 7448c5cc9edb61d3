package api

import (
	"errors"
	"html"
	"log"
	"net/http"
	"strings"

	"github.com/Ibrohimov-Zafar/DevVibe/internal/telegram"
)

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Service string `json:"service"`
	Budget  string `json:"budget"`
	Message string `json:"message" validate:"required"`
}

func (c *contactRequest) messages() map[string]string {
	return map[string]string{
		"name":        "Name, email and message are required",
		"email":       "Name, email and message are required",
		"email.email": "Invalid email address",
		"message":     "Name, email and message are required",
	}
}

// text renders the request as a Telegram HTML message. Every value is
// escaped; only the labels carry markup.
func (c *contactRequest) text() string {
	var b strings.Builder
	b.WriteString("<b>New message 📬</b>\n\n")
	line := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString("<b>" + label + ":</b> " + html.EscapeString(value) + "\n")
	}
	line("👤 Name", c.Name)
	line("📧 Email", c.Email)
	line("📞 Phone", c.Phone)
	line("📄 Subject", c.Subject)
	line("🛠️ Service", c.Service)
	line("💰 Budget", c.Budget)
	b.WriteString("\n<b>📝 Message:</b>\n<pre>" + html.EscapeString(c.Message) + "</pre>")
	return b.String()
}

func (a *API) contact(w http.ResponseWriter, r *http.Request) {
	if !a.telegram.Configured() {
		log.Println("TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID is not set")
		writeError(w, http.StatusInternalServerError, "Server configuration error")
		return
	}

	var in contactRequest
	if err := decode(r, &in); err != nil {
		fail(w, "Failed to send message", err)
		return
	}

	if err := a.telegram.SendHTML(r.Context(), in.text()); err != nil {
		var apiErr *telegram.APIError
		if errors.As(err, &apiErr) {
			log.Printf("telegram rejected contact message: %v", apiErr)
		} else {
			log.Printf("send contact message: %v", err)
		}
		writeError(w, http.StatusInternalServerError, "Failed to send message")
		return
	}

	writeMessage(w, http.StatusOK, "Message sent successfully")
}
