// Package contact builds the mailto: link the contact form hands to the
// visitor's mail client. Nothing is sent from the server.
package contact

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin/binding"
)

const maxFormMemory = 1 << 20

// Form is a contact form submission.
type Form struct {
	Name    string `form:"name" json:"name" binding:"required"`
	Email   string `form:"email" json:"email" binding:"required,email"`
	Subject string `form:"subject" json:"subject" binding:"required"`
	Message string `form:"message" json:"message" binding:"required"`
}

// Binding decodes a submitted form with surrounding whitespace removed from
// the name, email and subject before validation runs. The message is kept
// exactly as typed.
var Binding binding.Binding = trimmedForm{}

var trimmedFields = []string{"name", "email", "subject"}

type trimmedForm struct{}

func (trimmedForm) Name() string {
	return "contact-form"
}

func (trimmedForm) Bind(req *http.Request, obj any) error {
	if err := req.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}
	for _, key := range trimmedFields {
		values := req.Form[key]
		for i := range values {
			values[i] = strings.TrimSpace(values[i])
		}
	}
	return binding.Form.Bind(req, obj)
}

// Blank returns the name of the first field that holds only whitespace, or ""
// when every field has content.
func (f Form) Blank() string {
	switch {
	case strings.TrimSpace(f.Name) == "":
		return "Name"
	case strings.TrimSpace(f.Email) == "":
		return "Email"
	case strings.TrimSpace(f.Subject) == "":
		return "Subject"
	case strings.TrimSpace(f.Message) == "":
		return "Message"
	}
	return ""
}

// Body is the pre-filled message body.
func Body(f Form) string {
	return fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s", f.Name, f.Email, f.Message)
}

// Mailto returns a mailto: URI addressed to recipient with the form's subject
// and body percent-encoded as query parameters.
func Mailto(recipient string, f Form) string {
	var b strings.Builder
	b.WriteString("mailto:")
	b.WriteString(recipient)
	b.WriteString("?subject=")
	b.WriteString(escapeComponent(f.Subject))
	b.WriteString("&body=")
	b.WriteString(escapeComponent(Body(f)))
	return b.String()
}

// escapeComponent percent-encodes s for a URI query value. Spaces become %20
// because mail clients do not treat '+' as a space in mailto: headers.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
