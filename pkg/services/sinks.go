package services

import (
	"context"
	"fmt"

	"github.com/saral-ai/landing/pkg/clients/airtable"
	"github.com/saral-ai/landing/pkg/clients/textmagic"
	"github.com/saral-ai/landing/pkg/models"
	"github.com/saral-ai/landing/pkg/store"
	"github.com/saral-ai/landing/pkg/utils"
)

// LeadSink receives submitted leads
type LeadSink interface {
	Name() string
	Accept(ctx context.Context, lead models.LeadFormData) error
}

type storeSink struct {
	store *store.Store
}

// NewStoreSink writes leads to the local database
func NewStoreSink(s *store.Store) LeadSink {
	return &storeSink{store: s}
}

func (s *storeSink) Name() string { return "store" }

func (s *storeSink) Accept(ctx context.Context, lead models.LeadFormData) error {
	_, err := s.store.Save(ctx, lead)
	return err
}

type airtableSink struct {
	client airtable.Client
	table  string
}

// NewAirtableSink creates one Airtable record per email address
func NewAirtableSink(client airtable.Client, table string) LeadSink {
	return &airtableSink{client: client, table: table}
}

func (s *airtableSink) Name() string { return "airtable" }

func (s *airtableSink) Accept(ctx context.Context, lead models.LeadFormData) error {
	hash := utils.HashContact(lead.Email)

	exists, err := s.client.RecordExists(ctx, s.table, hash)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return s.client.CreateRecord(ctx, s.table, map[string]any{
		"Name":         lead.Name,
		"Email":        lead.Email,
		"Company":      lead.Company,
		"Role":         lead.Role,
		"Team Size":    lead.TeamSize,
		"Mobile":       lead.Mobile,
		"Variant":      lead.Variant,
		"Submitted At": lead.SubmittedAt,
		"hash":         hash,
	})
}

type textMagicSink struct {
	client textmagic.Client
}

// NewTextMagicSink texts a confirmation to leads that left a mobile number
func NewTextMagicSink(client textmagic.Client) LeadSink {
	return &textMagicSink{client: client}
}

func (s *textMagicSink) Name() string { return "textmagic" }

func (s *textMagicSink) Accept(ctx context.Context, lead models.LeadFormData) error {
	if lead.Mobile == "" {
		return nil
	}

	contactID, err := s.client.GetOrCreateContact(ctx, lead.Mobile, lead.FirstName(), "")
	if err != nil {
		return err
	}
	return s.client.SendMessage(ctx, contactID, ConfirmationMessage(lead))
}

// ConfirmationMessage is the text sent to a lead after they sign up
func ConfirmationMessage(lead models.LeadFormData) string {
	name := lead.FirstName()
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf("Thanks, %s, for signing up as an early user of Saral AI. We'll reach out to you directly with onboarding details soon.", name)
}
