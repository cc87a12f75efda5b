package services

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/saral-ai/landing/pkg/models"
	"github.com/saral-ai/landing/pkg/utils"
)

// LeadSubmissionService defines the interface for handling submitted leads
type LeadSubmissionService interface {
	ProcessLead(ctx context.Context, lead models.LeadFormData) error
}

type leadSubmissionServiceImpl struct {
	sinks []LeadSink
}

// NewLeadSubmissionService creates a service that hands every lead to each sink
func NewLeadSubmissionService(sinks ...LeadSink) LeadSubmissionService {
	return &leadSubmissionServiceImpl{sinks: sinks}
}

// ProcessLead delivers the lead to all sinks concurrently. A failing sink
// does not stop the others; the first error is returned.
func (s *leadSubmissionServiceImpl) ProcessLead(ctx context.Context, lead models.LeadFormData) error {
	emailHash := utils.HashContact(lead.Email)
	log.Info().Str("lead", emailHash).Str("variant", lead.Variant).Msg("processing lead")

	var g errgroup.Group
	for _, sink := range s.sinks {
		sink := sink
		g.Go(func() error {
			if err := sink.Accept(ctx, lead); err != nil {
				log.Error().Err(err).Str("sink", sink.Name()).Str("lead", emailHash).Msg("lead sink failed")
				return err
			}
			log.Debug().Str("sink", sink.Name()).Str("lead", emailHash).Msg("lead delivered")
			return nil
		})
	}
	return g.Wait()
}
