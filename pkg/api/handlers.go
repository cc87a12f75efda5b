package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	g "maragu.dev/gomponents"

	"github.com/saral-ai/landing/pkg/form"
	"github.com/saral-ai/landing/pkg/modal"
	"github.com/saral-ai/landing/pkg/models"
	"github.com/saral-ai/landing/pkg/services"
	"github.com/saral-ai/landing/pkg/utils"
	"github.com/saral-ai/landing/pkg/views"
)

const (
	SessionCookie = "saral_session"

	controllerKey = "access"
	submitTimeout = 30 * time.Second
)

// Handlers contains all HTTP handlers for the landing page and access dialog
type Handlers struct {
	sessions          *services.SessionRegistry
	submissionService services.LeadSubmissionService
	cookieMaxAge      int
	cookieSecure      bool

	// in-flight lead deliveries
	pending sync.WaitGroup
}

// NewHandlers creates a new Handlers instance
func NewHandlers(sessions *services.SessionRegistry, submissionService services.LeadSubmissionService, sessionTTL time.Duration, cookieSecure bool) *Handlers {
	return &Handlers{
		sessions:          sessions,
		submissionService: submissionService,
		cookieMaxAge:      int(sessionTTL.Seconds()),
		cookieSecure:      cookieSecure,
	}
}

// Session attaches the visitor's dialog controller to the request
func (h *Handlers) Session(c *gin.Context) {
	cookie, _ := c.Cookie(SessionCookie)
	id, ctrl := h.sessions.Get(cookie)

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, h.cookieMaxAge, "/", "", h.cookieSecure, true)
	c.Set(controllerKey, ctrl)
	c.Next()
}

func controller(c *gin.Context) *modal.Controller {
	return c.MustGet(controllerKey).(*modal.Controller)
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"sessions": h.sessions.Len(),
	})
}

// LandingPage renders the page, with the access dialog when it is open
func (h *Handlers) LandingPage(c *gin.Context) {
	ctrl := controller(c)
	st := ctrl.Snapshot()
	h.renderHTML(c, views.Landing(views.AccessModal(st, ctrl.Variant())))
}

func (h *Handlers) renderHTML(c *gin.Context, page g.Node) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Header("Cache-Control", "no-store")
	c.Status(http.StatusOK)
	if err := page.Render(c.Writer); err != nil {
		log.Error().Err(err).Msg("error rendering page")
	}
}

// OpenAccess is the "Get Access" action
func (h *Handlers) OpenAccess(c *gin.Context) {
	controller(c).OnOpenChange(true)
	c.Redirect(http.StatusSeeOther, "/")
}

// CloseAccess dismisses the dialog; the form clears after the close delay
func (h *Handlers) CloseAccess(c *gin.Context) {
	controller(c).OnOpenChange(false)
	c.Redirect(http.StatusSeeOther, "/")
}

// StepAccess applies the posted fields of the shown step, then moves back or
// forward depending on which button was pressed
func (h *Handlers) StepAccess(c *gin.Context) {
	ctrl := controller(c)
	if err := c.Request.ParseForm(); err != nil || !ctrl.Snapshot().Open {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	for name, values := range c.Request.PostForm {
		if name == "action" || !ctrl.HasField(name) || len(values) == 0 {
			continue
		}
		if _, err := ctrl.UpdateField(name, values[0]); err != nil {
			break
		}
	}

	if c.PostForm("action") == "retreat" {
		ctrl.Retreat()
	} else if st, ok := ctrl.Advance(); ok && st.Submitted {
		h.submitLead(ctrl.Variant(), st)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// fieldUpdate is the body of PUT /api/access/fields
type fieldUpdate struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value"`
}

// GetAccessState returns the dialog state as JSON
func (h *Handlers) GetAccessState(c *gin.Context) {
	c.JSON(http.StatusOK, controller(c).Snapshot())
}

// OpenAccessJSON is OpenAccess for script clients
func (h *Handlers) OpenAccessJSON(c *gin.Context) {
	c.JSON(http.StatusOK, controller(c).OnOpenChange(true))
}

// CloseAccessJSON is CloseAccess for script clients
func (h *Handlers) CloseAccessJSON(c *gin.Context) {
	c.JSON(http.StatusOK, controller(c).OnOpenChange(false))
}

// UpdateField writes one field. Edits after submission or while the dialog
// is closed answer 409.
func (h *Handlers) UpdateField(c *gin.Context) {
	var req fieldUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}

	st, err := controller(c).UpdateField(req.Name, req.Value)
	switch {
	case errors.Is(err, form.ErrUnknownField):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown field", "field": req.Name})
	case errors.Is(err, form.ErrSubmitted), errors.Is(err, modal.ErrClosed):
		c.JSON(http.StatusConflict, st)
	default:
		c.JSON(http.StatusOK, st)
	}
}

// Advance runs the forward action. A disabled transition answers 409 with
// the unchanged state.
func (h *Handlers) Advance(c *gin.Context) {
	ctrl := controller(c)
	st, ok := ctrl.Advance()
	if ok && st.Submitted {
		h.submitLead(ctrl.Variant(), st)
	}
	respondTransition(c, st, ok)
}

// Retreat runs the back action
func (h *Handlers) Retreat(c *gin.Context) {
	st, ok := controller(c).Retreat()
	respondTransition(c, st, ok)
}

// Submit submits a valid final step
func (h *Handlers) Submit(c *gin.Context) {
	ctrl := controller(c)
	st, ok := ctrl.Submit()
	if ok {
		h.submitLead(ctrl.Variant(), st)
	}
	respondTransition(c, st, ok)
}

func respondTransition(c *gin.Context, st modal.State, ok bool) {
	if !ok {
		c.JSON(http.StatusConflict, st)
		return
	}
	c.JSON(http.StatusOK, st)
}

// submitLead hands the lead to the submission service in the background; the
// dialog already shows the confirmation whatever the sinks report
func (h *Handlers) submitLead(v *form.Variant, st modal.State) {
	lead := models.NewLeadFormData(v, st.Record, time.Now())
	log.Info().Str("lead", utils.HashContact(lead.Email)).Str("variant", v.Name).Msg("access request submitted")

	h.pending.Add(1)
	go func() {
		defer h.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		if err := h.submissionService.ProcessLead(ctx, lead); err != nil {
			log.Error().Err(err).Msg("error processing lead")
		}
	}()
}

// Wait blocks until every lead handed off by submitLead has been processed,
// or ctx is done. Call it after the HTTP server has stopped taking requests
// and before the lead sinks are closed.
func (h *Handlers) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
