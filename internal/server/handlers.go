package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/gede-cahya/portfolio/internal/contact"
	"github.com/gede-cahya/portfolio/internal/feed"
)

// page returns the template data shared by every full page.
func (s *Server) page(title string) gin.H {
	return gin.H{
		"title":   title,
		"profile": s.profile,
		"year":    s.now().Year(),
	}
}

func (s *Server) home(c *gin.Context) {
	data := s.page(s.profile.Owner + " | Portfolio")
	data["initialRole"] = s.profile.RoleAt(0)
	data["roleIntervalMS"] = s.profile.RoleInterval().Milliseconds()
	data["form"] = contact.Form{}
	c.HTML(http.StatusOK, "index.html", data)
}

func (s *Server) privacy(c *gin.Context) {
	c.HTML(http.StatusOK, "privacy.html", s.page("Privacy Policy"))
}

func (s *Server) terms(c *gin.Context) {
	c.HTML(http.StatusOK, "terms.html", s.page("Terms of Service"))
}

func (s *Server) notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "not-found.html", s.page("Not Found"))
}

// portfolio renders the project grid fragment that replaces the loading
// placeholder on the home page.
func (s *Server) portfolio(c *gin.Context) {
	snap := s.activate(c)
	if c.Request.Context().Err() != nil {
		return
	}

	c.HTML(http.StatusOK, "portfolio.html", gin.H{
		"snapshot":        snap,
		"loaded":          snap.State == feed.StateLoaded,
		"repositoriesURL": s.profile.RepositoriesURL,
	})
}

func (s *Server) apiProjects(c *gin.Context) {
	snap := s.activate(c)
	if c.Request.Context().Err() != nil {
		return
	}

	status := http.StatusOK
	if snap.State == feed.StateError {
		status = http.StatusBadGateway
	}
	c.JSON(status, snap)
}

// contact turns the form into a mailto: link and sends the browser there.
// HTMX requests navigate via HX-Redirect; plain form posts get a 303.
func (s *Server) contact(c *gin.Context) {
	htmx := c.GetHeader("HX-Request") == "true"

	var form contact.Form
	if err := c.ShouldBindWith(&form, contact.Binding); err != nil {
		invalidContact(c, htmx, form, bindingMessage(err))
		return
	}
	if field := form.Blank(); field != "" {
		invalidContact(c, htmx, form, "Please fill in your "+fieldLabel(field)+".")
		return
	}

	link := contact.Mailto(s.profile.Contact.Email, form)

	if htmx {
		c.Header("HX-Redirect", link)
		c.HTML(http.StatusOK, "contact-success.html", gin.H{
			"success": "Opening your mail client...",
			"mailto":  link,
		})
		return
	}

	c.Redirect(http.StatusSeeOther, link)
}

// invalidContact re-renders the form with an error. htmx only swaps 2xx
// responses into the page, so those requests get 200.
func invalidContact(c *gin.Context, htmx bool, form contact.Form, message string) {
	status := http.StatusUnprocessableEntity
	if htmx {
		status = http.StatusOK
	}
	c.HTML(status, "contact-form.html", gin.H{
		"form":  form,
		"error": message,
	})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   s.now().UTC().Format(time.RFC3339),
	})
}

// bindingMessage names the first invalid field in visitor-friendly terms.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Please fill in every field."
	}

	fe := verrs[0]
	switch {
	case fe.Field() == "Email" && fe.Tag() == "email":
		return "Please enter a valid email address."
	default:
		return "Please fill in your " + fieldLabel(fe.Field()) + "."
	}
}

func fieldLabel(field string) string {
	switch field {
	case "Name":
		return "name"
	case "Email":
		return "email"
	case "Subject":
		return "subject"
	case "Message":
		return "message"
	default:
		return field
	}
}
