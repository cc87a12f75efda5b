package textmagic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const DefaultBaseURL = "https://rest.textmagic.com/api/v2"

// Client defines the interface for interacting with TextMagic API
type Client interface {
	GetOrCreateContact(ctx context.Context, phone, firstName, lastName string) (string, error)
	SendMessage(ctx context.Context, contactID, message string) error
}

type clientImpl struct {
	http   *resty.Client
	listID string
}

// NewClient creates a new TextMagic client. New contacts are added to listID
// when it is set; baseURL may be empty.
func NewClient(username, apiKey, listID, baseURL string) Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &clientImpl{
		http: resty.New().
			SetBaseURL(baseURL).
			SetBasicAuth(username, apiKey).
			SetHeader("Content-Type", "application/json"),
		listID: listID,
	}
}

// CleanPhone strips formatting characters and the leading plus sign
func CleanPhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "+", "").Replace(phone)
}

func (c *clientImpl) GetOrCreateContact(ctx context.Context, phone, firstName, lastName string) (string, error) {
	phone = CleanPhone(phone)

	id, err := c.findContactByPhone(ctx, phone)
	if err != nil {
		return "", err
	}
	if id != "" {
		log.Debug().Str("contact_id", id).Msg("found existing TextMagic contact")
		return id, nil
	}

	payload := map[string]any{
		"phone":     phone,
		"firstName": firstName,
		"lastName":  lastName,
	}
	if c.listID != "" {
		payload["lists"] = c.listID
	}

	var created struct {
		ID int `json:"id"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&created).
		ForceContentType("application/json").
		Post("/contacts")
	if err != nil {
		return "", fmt.Errorf("error creating contact: %w", err)
	}

	if resp.StatusCode() == http.StatusBadRequest && isDuplicatePhone(resp.Body()) {
		// created concurrently by another submission
		id, err := c.findContactByPhone(ctx, phone)
		if err != nil {
			return "", err
		}
		if id == "" {
			return "", fmt.Errorf("contact with phone %s not found", phone)
		}
		return id, nil
	}
	if resp.StatusCode() != http.StatusCreated && resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("error from TextMagic API: %s", resp.String())
	}

	contactID := strconv.Itoa(created.ID)
	log.Info().Str("contact_id", contactID).Msg("created TextMagic contact")
	return contactID, nil
}

func isDuplicatePhone(body []byte) bool {
	var errorResponse struct {
		Errors struct {
			Fields struct {
				Phone []string `json:"phone"`
			} `json:"fields"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &errorResponse); err != nil {
		return false
	}
	for _, msg := range errorResponse.Errors.Fields.Phone {
		if strings.Contains(msg, "already exists in your contacts") {
			return true
		}
	}
	return false
}

// findContactByPhone returns "" when no contact matches
func (c *clientImpl) findContactByPhone(ctx context.Context, phone string) (string, error) {
	var search struct {
		Total     int `json:"total"`
		Resources []struct {
			ID int `json:"id"`
		} `json:"resources"`
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("query", phone).
		SetResult(&search).
		ForceContentType("application/json").
		Get("/contacts/search")
	if err != nil {
		return "", fmt.Errorf("error searching for contact: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("error from TextMagic API: %s", resp.String())
	}

	if len(search.Resources) == 0 {
		return "", nil
	}
	return strconv.Itoa(search.Resources[0].ID), nil
}

func (c *clientImpl) SendMessage(ctx context.Context, contactID, message string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"contacts": contactID,
			"text":     message,
		}).
		Post("/messages")
	if err != nil {
		return fmt.Errorf("error sending message: %w", err)
	}
	if resp.StatusCode() != http.StatusCreated && resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("error from TextMagic API: %s", resp.String())
	}

	log.Info().Str("contact_id", contactID).Msg("sent TextMagic message")
	return nil
}
