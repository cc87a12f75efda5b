package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saral-ai/landing/pkg/form"
	"github.com/saral-ai/landing/pkg/modal"
	"github.com/saral-ai/landing/pkg/models"
	"github.com/saral-ai/landing/pkg/services"
)

type fakeSubmissions struct {
	leads chan models.LeadFormData
}

func (f *fakeSubmissions) ProcessLead(_ context.Context, lead models.LeadFormData) error {
	f.leads <- lead
	return nil
}

type testServer struct {
	router *gin.Engine
	leads  chan models.LeadFormData
	cookie *http.Cookie
}

func newTestServer(t *testing.T, variant string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	v, err := form.BuiltinVariants().Get(variant)
	require.NoError(t, err)

	registry := services.NewSessionRegistry(v, time.Minute, zerolog.Nop(), modal.WithResetDelay(10*time.Millisecond))
	t.Cleanup(registry.Stop)

	subs := &fakeSubmissions{leads: make(chan models.LeadFormData, 4)}
	router := gin.New()
	RegisterRoutes(router, NewHandlers(registry, subs, time.Minute, false))

	return &testServer{router: router, leads: subs.leads}
}

func (s *testServer) do(method, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookie {
			s.cookie = c
		}
	}
	return w
}

func (s *testServer) json(t *testing.T, method, path, body string) (int, modal.State) {
	t.Helper()
	w := s.do(method, path, "application/json", body)
	var st modal.State
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st), w.Body.String())
	return w.Code, st
}

func (s *testServer) setField(t *testing.T, name, value string) modal.State {
	t.Helper()
	body, err := json.Marshal(fieldUpdate{Name: name, Value: value})
	require.NoError(t, err)
	code, st := s.json(t, http.MethodPut, "/api/access/fields", string(body))
	require.Equal(t, http.StatusOK, code)
	return st
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t, "early-access")
	w := s.do(http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestSessionCookieIsIssuedAndKept(t *testing.T) {
	s := newTestServer(t, "early-access")

	s.do(http.MethodGet, "/api/access", "", "")
	require.NotNil(t, s.cookie)
	first := s.cookie.Value
	assert.True(t, s.cookie.HttpOnly)

	s.do(http.MethodGet, "/api/access", "", "")
	assert.Equal(t, first, s.cookie.Value)
}

func TestLandingPage(t *testing.T) {
	s := newTestServer(t, "early-access")

	w := s.do(http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.NotContains(t, w.Body.String(), `id="access-modal"`)

	w = s.do(http.MethodPost, "/access/open", "", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = s.do(http.MethodGet, "/", "", "")
	assert.Contains(t, w.Body.String(), `id="access-modal"`)
	assert.Contains(t, w.Body.String(), "Tell us about yourself")
}

func TestJSONFlowSubmitsLead(t *testing.T) {
	s := newTestServer(t, "early-access")

	code, st := s.json(t, http.MethodPost, "/api/access/open", "")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, st.Open)
	assert.False(t, st.StepValid)

	code, st = s.json(t, http.MethodPost, "/api/access/advance", "")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, 0, st.Step)

	s.setField(t, "fullName", "Ada Lovelace")
	st = s.setField(t, "email", "ada@example.com")
	assert.True(t, st.StepValid)

	code, st = s.json(t, http.MethodPost, "/api/access/advance", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, st.Step)

	s.setField(t, "orgName", "Analytical Engines")
	code, st = s.json(t, http.MethodPost, "/api/access/advance", "")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, st.LastStep)

	code, _ = s.json(t, http.MethodPost, "/api/access/submit", "")
	assert.Equal(t, http.StatusConflict, code)

	s.setField(t, "mobile", "+44 20 7946 0000")
	code, st = s.json(t, http.MethodPost, "/api/access/submit", "")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, st.Submitted)
	assert.Equal(t, "Ada", st.FirstName)

	select {
	case lead := <-s.leads:
		assert.Equal(t, "Ada Lovelace", lead.Name)
		assert.Equal(t, "ada@example.com", lead.Email)
		assert.Equal(t, "Analytical Engines", lead.Company)
		assert.Equal(t, "+44 20 7946 0000", lead.Mobile)
	case <-time.After(time.Second):
		t.Fatal("lead was not submitted")
	}
}

func TestUpdateFieldErrors(t *testing.T) {
	s := newTestServer(t, "waitlist")
	s.json(t, http.MethodPost, "/api/access/open", "")

	w := s.do(http.MethodPut, "/api/access/fields", "application/json", `{"value":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/api/access/fields", "application/json", `{"name":"nope","value":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown field")

	s.setField(t, "name", "Grace")
	s.setField(t, "email", "grace@example.com")
	code, st := s.json(t, http.MethodPost, "/api/access/advance", "")
	require.Equal(t, http.StatusOK, code)
	require.True(t, st.Submitted)
	<-s.leads

	code, st = s.json(t, http.MethodPut, "/api/access/fields", `{"name":"name","value":"Other"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Grace", st.Record["name"])
}

func TestRetreatKeepsValues(t *testing.T) {
	s := newTestServer(t, "early-access")
	s.json(t, http.MethodPost, "/api/access/open", "")

	code, _ := s.json(t, http.MethodPost, "/api/access/retreat", "")
	assert.Equal(t, http.StatusConflict, code)

	s.setField(t, "fullName", "Ada")
	s.setField(t, "email", "ada@example.com")
	s.json(t, http.MethodPost, "/api/access/advance", "")

	code, st := s.json(t, http.MethodPost, "/api/access/retreat", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, st.Step)
	assert.Equal(t, "Ada", st.Record["fullName"])
}

func TestCloseClearsFormAfterDelay(t *testing.T) {
	s := newTestServer(t, "early-access")

	s.json(t, http.MethodPost, "/api/access/open", "")
	s.setField(t, "fullName", "Ada")

	code, st := s.json(t, http.MethodPost, "/api/access/close", "")
	require.Equal(t, http.StatusOK, code)
	assert.False(t, st.Open)
	assert.True(t, st.PendingReset)
	assert.Equal(t, "Ada", st.Record["fullName"])

	assert.Eventually(t, func() bool {
		w := s.do(http.MethodGet, "/api/access", "", "")
		var st modal.State
		if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
			return false
		}
		return st.Record["fullName"] == "" && !st.PendingReset
	}, time.Second, 5*time.Millisecond)
}

func TestStepFormPost(t *testing.T) {
	s := newTestServer(t, "early-access")
	s.do(http.MethodPost, "/access/open", "", "")

	post := func(vals url.Values) {
		w := s.do(http.MethodPost, "/access/step", "application/x-www-form-urlencoded", vals.Encode())
		require.Equal(t, http.StatusSeeOther, w.Code)
	}

	post(url.Values{"fullName": {"Ada"}, "action": {"advance"}})
	_, st := s.json(t, http.MethodGet, "/api/access", "")
	assert.Equal(t, 0, st.Step, "blank email keeps the visitor on the first step")
	assert.Equal(t, "Ada", st.Record["fullName"])

	post(url.Values{"fullName": {"Ada"}, "email": {"ada@example.com"}, "action": {"advance"}})
	post(url.Values{"orgName": {"Engines"}, "unknown": {"ignored"}, "action": {"advance"}})
	_, st = s.json(t, http.MethodGet, "/api/access", "")
	assert.Equal(t, 2, st.Step)
	assert.NotContains(t, st.Record, "unknown")

	post(url.Values{"mobile": {""}, "action": {"retreat"}})
	_, st = s.json(t, http.MethodGet, "/api/access", "")
	assert.Equal(t, 1, st.Step)

	post(url.Values{"action": {"advance"}})
	post(url.Values{"mobile": {"555 0100"}, "action": {"advance"}})

	w := s.do(http.MethodGet, "/", "", "")
	assert.Contains(t, w.Body.String(), "Thanks, Ada, for signing up as an early user of Saral AI.")

	select {
	case lead := <-s.leads:
		assert.Equal(t, "555 0100", lead.Mobile)
	case <-time.After(time.Second):
		t.Fatal("lead was not submitted")
	}
}

func TestStaticFiles(t *testing.T) {
	s := newTestServer(t, "early-access")
	w := s.do(http.MethodGet, "/static/access.js", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/access/fields")
}

func TestClosedDialogRejectsActions(t *testing.T) {
	s := newTestServer(t, "waitlist")

	code, st := s.json(t, http.MethodPut, "/api/access/fields", `{"name":"name","value":"Mallory"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "", st.Record["name"])

	code, st = s.json(t, http.MethodPost, "/api/access/submit", "")
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, st.Submitted)

	code, _ = s.json(t, http.MethodPost, "/api/access/advance", "")
	assert.Equal(t, http.StatusConflict, code)

	w := s.do(http.MethodPost, "/access/step", "application/x-www-form-urlencoded",
		url.Values{"name": {"Mallory"}, "email": {"m@example.com"}, "action": {"advance"}}.Encode())
	assert.Equal(t, http.StatusSeeOther, w.Code)

	_, st = s.json(t, http.MethodGet, "/api/access", "")
	assert.False(t, st.Submitted)
	assert.Equal(t, "", st.Record["name"])

	select {
	case lead := <-s.leads:
		t.Fatalf("lead delivered from a closed dialog: %s", lead.Name)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestClosedDialogRejectsSubmitBeforeReset(t *testing.T) {
	s := newTestServer(t, "waitlist")
	s.json(t, http.MethodPost, "/api/access/open", "")
	s.setField(t, "name", "Grace")
	s.setField(t, "email", "grace@example.com")
	s.json(t, http.MethodPost, "/api/access/close", "")

	code, st := s.json(t, http.MethodPost, "/api/access/submit", "")
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, st.Submitted)
}

type blockingSubmissions struct {
	release chan struct{}
	done    chan models.LeadFormData
}

func (b *blockingSubmissions) ProcessLead(_ context.Context, lead models.LeadFormData) error {
	<-b.release
	b.done <- lead
	return nil
}

func TestWaitDrainsLeadDeliveries(t *testing.T) {
	gin.SetMode(gin.TestMode)
	v, err := form.BuiltinVariants().Get("waitlist")
	require.NoError(t, err)
	registry := services.NewSessionRegistry(v, time.Minute, zerolog.Nop())
	t.Cleanup(registry.Stop)

	subs := &blockingSubmissions{release: make(chan struct{}), done: make(chan models.LeadFormData, 1)}
	h := NewHandlers(registry, subs, time.Minute, false)
	router := gin.New()
	RegisterRoutes(router, h)
	s := &testServer{router: router}

	s.json(t, http.MethodPost, "/api/access/open", "")
	s.setField(t, "name", "Ada")
	s.setField(t, "email", "ada@example.com")
	code, _ := s.json(t, http.MethodPost, "/api/access/submit", "")
	require.Equal(t, http.StatusOK, code)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, h.Wait(ctx), context.DeadlineExceeded)

	close(subs.release)
	require.NoError(t, h.Wait(context.Background()))
	select {
	case lead := <-subs.done:
		assert.Equal(t, "Ada", lead.Name)
	default:
		t.Fatal("Wait returned before the lead was delivered")
	}
}

func TestWaitWithNothingPending(t *testing.T) {
	h := &Handlers{}
	assert.NoError(t, h.Wait(context.Background()))
}
