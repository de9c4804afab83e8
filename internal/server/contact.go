package server

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/novaforge/sitekit/internal/mailer"
)

// contactRequest is the body of POST /api/send-email.
type contactRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Subject      string `json:"subject"`
	Company      string `json:"company"`
	Service      string `json:"service"`
	Message      string `json:"message"`
	CaptchaToken string `json:"captchaToken"`
}

// projectRequest is the body of POST /api/send-project-details.
type projectRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	ProjectType string `json:"projectType"`
	Budget      string `json:"budget"`
	Timeline    string `json:"timeline"`
	Description string `json:"description"`
}

// handleSendEmail validates the contact form, verifies the CAPTCHA, and
// forwards the message to the delivery service. Validation failures name
// the missing requirement; upstream failures surface as a generic error
// and are logged with the raw cause.
func (s *Server) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.contactResults.WithLabelValues("send-email", "invalid").Inc()
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" || req.Email == "" || req.Message == "" {
		s.metrics.contactResults.WithLabelValues("send-email", "invalid").Inc()
		writeError(w, http.StatusBadRequest, "Name, email, and message are required")
		return
	}
	if req.CaptchaToken == "" {
		s.metrics.contactResults.WithLabelValues("send-email", "invalid").Inc()
		writeError(w, http.StatusBadRequest, "Captcha token is required")
		return
	}

	ok, err := s.captcha.Verify(ctx, req.CaptchaToken, clientIP(r))
	if err != nil {
		s.metrics.contactResults.WithLabelValues("send-email", "captcha_error").Inc()
		s.logger.Error(ctx, err, "captcha verification failed",
			"request_id", RequestIDFromContext(ctx))
		writeError(w, http.StatusBadRequest, "Captcha verification failed")
		return
	}
	if !ok {
		s.metrics.contactResults.WithLabelValues("send-email", "captcha_rejected").Inc()
		writeError(w, http.StatusBadRequest, "Captcha verification failed")
		return
	}

	subject := req.Subject
	if subject == "" {
		subject = fmt.Sprintf("New contact form submission from %s", req.Name)
	}

	msg := mailer.Message{
		From:    s.config.Mail.From,
		To:      s.config.Mail.To,
		Subject: subject,
		HTML:    contactEmailBody(req),
		ReplyTo: req.Email,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.metrics.contactResults.WithLabelValues("send-email", "dispatch_failed").Inc()
		s.logger.Error(ctx, err, "email dispatch failed",
			"request_id", RequestIDFromContext(ctx))
		writeError(w, http.StatusInternalServerError, "Failed to send email, please try again later")
		return
	}

	s.metrics.contactResults.WithLabelValues("send-email", "sent").Inc()
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Email sent successfully, we will get back to you soon",
	})
}

// handleSendProjectDetails forwards a project brief. Credentials are
// checked before anything else: without them the endpoint cannot work at
// all, and the client deserves a server error rather than a validation
// dance.
func (s *Server) handleSendProjectDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !s.mailer.Configured() {
		s.metrics.contactResults.WithLabelValues("send-project-details", "unconfigured").Inc()
		s.logger.Error(ctx, nil, "mail credentials missing for project details endpoint")
		writeError(w, http.StatusInternalServerError, "Email service is not configured")
		return
	}

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.contactResults.WithLabelValues("send-project-details", "invalid").Inc()
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	missing := missingProjectFields(req)
	if len(missing) > 0 {
		s.metrics.contactResults.WithLabelValues("send-project-details", "invalid").Inc()
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")))
		return
	}

	msg := mailer.Message{
		From:    s.config.Mail.From,
		To:      s.config.Mail.To,
		Subject: fmt.Sprintf("New project inquiry: %s", req.ProjectType),
		HTML:    projectEmailBody(req),
		ReplyTo: req.Email,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.metrics.contactResults.WithLabelValues("send-project-details", "dispatch_failed").Inc()
		s.logger.Error(ctx, err, "project details dispatch failed",
			"request_id", RequestIDFromContext(ctx))
		writeError(w, http.StatusInternalServerError, "Failed to send project details, please try again later")
		return
	}

	s.metrics.contactResults.WithLabelValues("send-project-details", "sent").Inc()
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Project details sent successfully, we will get back to you soon",
	})
}

func missingProjectFields(req projectRequest) []string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", req.Name},
		{"email", req.Email},
		{"projectType", req.ProjectType},
		{"budget", req.Budget},
		{"timeline", req.Timeline},
		{"description", req.Description},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Submitted values are untrusted and land in an HTML email body.

func contactEmailBody(req contactRequest) string {
	var b strings.Builder
	b.WriteString("<h2>New Contact Form Submission</h2>")
	emailRow(&b, "Name", req.Name)
	emailRow(&b, "Email", req.Email)
	emailRow(&b, "Company", req.Company)
	emailRow(&b, "Service", req.Service)
	b.WriteString("<h3>Message</h3>")
	fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(req.Message))
	return b.String()
}

func projectEmailBody(req projectRequest) string {
	var b strings.Builder
	b.WriteString("<h2>New Project Inquiry</h2>")
	emailRow(&b, "Name", req.Name)
	emailRow(&b, "Email", req.Email)
	emailRow(&b, "Phone", req.Phone)
	emailRow(&b, "Project type", req.ProjectType)
	emailRow(&b, "Budget", req.Budget)
	emailRow(&b, "Timeline", req.Timeline)
	b.WriteString("<h3>Description</h3>")
	fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(req.Description))
	return b.String()
}

func emailRow(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "<p><strong>%s:</strong> %s</p>", label, html.EscapeString(value))
}
