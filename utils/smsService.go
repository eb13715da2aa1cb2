package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// TwilioSender delivers SMS through the Twilio Messages REST endpoint
type TwilioSender struct {
	client     *resty.Client
	accountSid string
	from       string
}

// NewTwilioSender builds an SMS sender. baseURL is normally https://api.twilio.com.
func NewTwilioSender(baseURL, accountSid, authToken, from string) *TwilioSender {
	client := resty.New().
		SetBaseURL(baseURL).
		SetBasicAuth(accountSid, authToken).
		SetTimeout(10 * time.Second)

	return &TwilioSender{client: client, accountSid: accountSid, from: from}
}

func (s *TwilioSender) Send(ctx context.Context, to string, msg Message) error {
	var failure struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"To":   NormalizePhone(to),
			"From": s.from,
			"Body": msg.Body,
		}).
		SetError(&failure).
		Post(fmt.Sprintf("/2010-04-01/Accounts/%s/Messages.json", s.accountSid))
	if err != nil {
		return fmt.Errorf("twilio: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("twilio: status %d: %s", resp.StatusCode(), failure.Message)
	}

	log.Printf("[SMS] Message accepted by Twilio for %s", to)
	return nil
}
