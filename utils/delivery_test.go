package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleSenderLogsMessage(t *testing.T) {
	var buf bytes.Buffer
	sender := &ConsoleSender{Logger: log.New(&buf, "", 0)}

	err := sender.Send(context.Background(), "user@example.com", Message{Subject: "OTP", Body: "code 123456"})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "user@example.com")
	assert.Contains(t, buf.String(), "code 123456")
}

func TestTwilioSenderPostsMessage(t *testing.T) {
	var gotPath, gotUser, gotPass string
	var gotForm map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		assert.NoError(t, r.ParseForm())
		gotForm = map[string]string{"To": r.PostForm.Get("To"), "From": r.PostForm.Get("From"), "Body": r.PostForm.Get("Body")}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"sid":"SM1"}`)
	}))
	defer srv.Close()

	sender := NewTwilioSender(srv.URL, "AC123", "token", "+15005550006")
	err := sender.Send(context.Background(), "+1 415-555-0123", Message{Body: "Your OTP is 123456"})

	require.NoError(t, err)
	assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", gotPath)
	assert.Equal(t, "AC123", gotUser)
	assert.Equal(t, "token", gotPass)
	assert.Equal(t, "+14155550123", gotForm["To"])
	assert.Equal(t, "+15005550006", gotForm["From"])
	assert.Equal(t, "Your OTP is 123456", gotForm["Body"])
}

func TestTwilioSenderReportsProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"code": 21211, "message": "The 'To' number is not valid."})
	}))
	defer srv.Close()

	sender := NewTwilioSender(srv.URL, "AC123", "token", "+15005550006")
	err := sender.Send(context.Background(), "+10000000", Message{Body: "hi"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "not valid")
}

func TestSendGridSenderPostsMail(t *testing.T) {
	var payload map[string]interface{}
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sender := newSendGridSender("SG.key", srv.URL, "Smart Ambulance System", "noreply@example.com")
	err := sender.Send(context.Background(), "user@example.com", Message{Subject: "OTP", Body: "Your code is 654321"})

	require.NoError(t, err)
	assert.Equal(t, "Bearer SG.key", auth)
	assert.Equal(t, "OTP", payload["subject"])
}

func TestSendGridSenderRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"errors":[{"message":"bad key"}]}`)
	}))
	defer srv.Close()

	sender := newSendGridSender("SG.bad", srv.URL, "Smart Ambulance System", "noreply@example.com")
	err := sender.Send(context.Background(), "user@example.com", Message{Subject: "OTP", Body: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestSMTPSenderBuildsMessage(t *testing.T) {
	sender := NewSMTPSender("smtp.example.com", 587, "mailer", "pw", "Smart Ambulance System", "noreply@example.com")

	var gotAddr string
	var gotTo []string
	var gotMsg []byte
	sender.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, msg
		return nil
	}

	err := sender.Send(context.Background(), "user@example.com", Message{Subject: "OTP Verification", Body: "Your code is 111222"})

	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"user@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: OTP Verification\r\n")
	assert.Contains(t, string(gotMsg), "Your code is 111222")
}

func TestSMTPSenderWrapsTransportError(t *testing.T) {
	sender := NewSMTPSender("smtp.example.com", 587, "mailer", "pw", "Smart Ambulance System", "noreply@example.com")
	boom := errors.New("connection refused")
	sender.sendMail = func(string, smtp.Auth, string, []string, []byte) error { return boom }

	err := sender.Send(context.Background(), "user@example.com", Message{Subject: "s", Body: "b"})

	assert.ErrorIs(t, err, boom)
}

func TestEmailTemplateEscapesBody(t *testing.T) {
	out := getEmailTemplate("Title", "<script>alert(1)</script>")

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}
