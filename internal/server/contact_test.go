package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validContactBody = `{
	"name": "Jordan",
	"email": "jordan@example.com",
	"message": "We need a new platform",
	"captchaToken": "tok-123"
}`

const validProjectBody = `{
	"name": "Jordan",
	"email": "jordan@example.com",
	"projectType": "Web Application",
	"budget": "$25k-$50k",
	"timeline": "3 months",
	"description": "Rebuild our storefront"
}`

func TestSendEmailValidation(t *testing.T) {
	t.Run("missing message stops before any external call", func(t *testing.T) {
		verifier := &fakeVerifier{ok: true}
		mail := &fakeMailer{configured: true}
		s := newTestServer(t, verifier, mail)

		body := `{"name": "Jordan", "email": "jordan@example.com", "captchaToken": "tok"}`
		rec := doRequest(s, http.MethodPost, "/api/send-email", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Name, email, and message are required")
		assert.Zero(t, verifier.calls)
		assert.Empty(t, mail.sent)
	})

	t.Run("missing captcha token", func(t *testing.T) {
		verifier := &fakeVerifier{ok: true}
		s := newTestServer(t, verifier, &fakeMailer{configured: true})

		body := `{"name": "Jordan", "email": "jordan@example.com", "message": "hi"}`
		rec := doRequest(s, http.MethodPost, "/api/send-email", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Captcha token is required")
		assert.Zero(t, verifier.calls)
	})

	t.Run("malformed body", func(t *testing.T) {
		s := newTestServer(t, &fakeVerifier{ok: true}, &fakeMailer{configured: true})

		rec := doRequest(s, http.MethodPost, "/api/send-email", "{not json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid request body")
	})
}

func TestSendEmailCaptcha(t *testing.T) {
	t.Run("rejected token blocks dispatch", func(t *testing.T) {
		verifier := &fakeVerifier{ok: false}
		mail := &fakeMailer{configured: true}
		s := newTestServer(t, verifier, mail)

		rec := doRequest(s, http.MethodPost, "/api/send-email", validContactBody)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Captcha verification failed")
		assert.Equal(t, 1, verifier.calls)
		assert.Empty(t, mail.sent)
	})

	t.Run("verification error blocks dispatch", func(t *testing.T) {
		verifier := &fakeVerifier{err: errors.New("verify service down")}
		mail := &fakeMailer{configured: true}
		s := newTestServer(t, verifier, mail)

		rec := doRequest(s, http.MethodPost, "/api/send-email", validContactBody)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Captcha verification failed")
		assert.Empty(t, mail.sent)
	})
}

func TestSendEmailDispatch(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mail := &fakeMailer{configured: true}
		s := newTestServer(t, &fakeVerifier{ok: true}, mail)

		rec := doRequest(s, http.MethodPost, "/api/send-email", validContactBody)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Email sent successfully")
		require.Len(t, mail.sent, 1)
		msg := mail.sent[0]
		assert.Equal(t, "inbox@novaforge.dev", msg.To)
		assert.Equal(t, "jordan@example.com", msg.ReplyTo)
		assert.Contains(t, msg.Subject, "Jordan")
		assert.Contains(t, msg.HTML, "We need a new platform")
	})

	t.Run("explicit subject is kept", func(t *testing.T) {
		mail := &fakeMailer{configured: true}
		s := newTestServer(t, &fakeVerifier{ok: true}, mail)

		body := `{"name": "Jordan", "email": "j@example.com", "subject": "Hello there", "message": "hi", "captchaToken": "tok"}`
		rec := doRequest(s, http.MethodPost, "/api/send-email", body)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, mail.sent, 1)
		assert.Equal(t, "Hello there", mail.sent[0].Subject)
	})

	t.Run("delivery failure is a server error", func(t *testing.T) {
		mail := &fakeMailer{configured: true, err: errors.New("provider 500")}
		s := newTestServer(t, &fakeVerifier{ok: true}, mail)

		rec := doRequest(s, http.MethodPost, "/api/send-email", validContactBody)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to send email")
	})

	t.Run("message body is escaped", func(t *testing.T) {
		mail := &fakeMailer{configured: true}
		s := newTestServer(t, &fakeVerifier{ok: true}, mail)

		body := `{"name": "Jordan", "email": "j@example.com", "message": "<script>alert(1)</script>", "captchaToken": "tok"}`
		rec := doRequest(s, http.MethodPost, "/api/send-email", body)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, mail.sent, 1)
		assert.NotContains(t, mail.sent[0].HTML, "<script>")
		assert.Contains(t, mail.sent[0].HTML, "&lt;script&gt;")
	})
}

func TestSendProjectDetails(t *testing.T) {
	t.Run("unconfigured mail wins over validation", func(t *testing.T) {
		mail := &fakeMailer{configured: false}
		s := newTestServer(t, &fakeVerifier{}, mail)

		rec := doRequest(s, http.MethodPost, "/api/send-project-details", `{}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Email service is not configured")
		assert.Empty(t, mail.sent)
	})

	t.Run("missing fields are named", func(t *testing.T) {
		s := newTestServer(t, &fakeVerifier{}, &fakeMailer{configured: true})

		body := `{"name": "Jordan", "email": "j@example.com", "projectType": "Web Application"}`
		rec := doRequest(s, http.MethodPost, "/api/send-project-details", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Missing required fields")
		assert.Contains(t, rec.Body.String(), "budget")
		assert.Contains(t, rec.Body.String(), "timeline")
		assert.Contains(t, rec.Body.String(), "description")
		assert.NotContains(t, rec.Body.String(), "projectType")
	})

	t.Run("no captcha on the project form", func(t *testing.T) {
		verifier := &fakeVerifier{ok: false}
		mail := &fakeMailer{configured: true}
		s := newTestServer(t, verifier, mail)

		rec := doRequest(s, http.MethodPost, "/api/send-project-details", validProjectBody)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, verifier.calls)
		require.Len(t, mail.sent, 1)
		assert.Contains(t, mail.sent[0].Subject, "Web Application")
	})

	t.Run("delivery failure is a server error", func(t *testing.T) {
		mail := &fakeMailer{configured: true, err: errors.New("provider down")}
		s := newTestServer(t, &fakeVerifier{}, mail)

		rec := doRequest(s, http.MethodPost, "/api/send-project-details", validProjectBody)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to send project details")
	})
}

func TestMissingProjectFields(t *testing.T) {
	missing := missingProjectFields(projectRequest{Name: "Jordan", Budget: "$10k"})
	assert.Equal(t, []string{"email", "projectType", "timeline", "description"}, missing)

	assert.Empty(t, missingProjectFields(projectRequest{
		Name: "a", Email: "b", ProjectType: "c", Budget: "d", Timeline: "e", Description: "f",
	}))
}
