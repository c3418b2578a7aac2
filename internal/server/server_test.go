package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novabot/internal/corpus"
	"novabot/internal/matcher"
	"novabot/internal/service"
	"novabot/internal/session"
	"novabot/internal/suggest"
)

func newTestServer(t *testing.T, load bool) *httptest.Server {
	t.Helper()
	m, err := matcher.New()
	require.NoError(t, err)
	assistant := service.NewAssistant(corpus.NewLoader(), m, suggest.NewFrequencySuggester(nil), nil)
	if load {
		_, err := assistant.LoadCorpus("")
		require.NoError(t, err)
	}
	store, err := session.OpenStore(0, nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := httptest.NewServer(New(assistant, store, WithLogger(logger)).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, body string, out any) int {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestAsk(t *testing.T) {
	ts := newTestServer(t, true)

	var got askResponse
	status := doJSON(t, http.MethodPost, ts.URL+"/api/ask", `{"query":"How do I reset my password?"}`, &got)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, got.Answer, "Forgot Password")
	assert.Equal(t, "How do I reset my password?", got.Question)
	assert.InDelta(t, 1.0, got.Score, 1e-9)
	assert.NotEqual(t, uuid.Nil, got.SessionID)

	var st session.State
	status = doJSON(t, http.MethodGet, ts.URL+"/api/sessions/"+got.SessionID.String(), "", &st)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, st.ChatOpen)
	require.Len(t, st.Turns, 3)
	assert.Equal(t, session.Greeting, st.Turns[0].Text)
	assert.Equal(t, got.Answer, st.Turns[2].Text)

	// continuing the same session appends to its transcript
	var again askResponse
	body := `{"query":"Is NovaBank safe?","session_id":"` + got.SessionID.String() + `"}`
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, ts.URL+"/api/ask", body, &again))
	assert.Equal(t, got.SessionID, again.SessionID)
	doJSON(t, http.MethodGet, ts.URL+"/api/sessions/"+got.SessionID.String(), "", &st)
	assert.Len(t, st.Turns, 5)
}

func TestAsk_Errors(t *testing.T) {
	ts := newTestServer(t, true)

	tests := []struct {
		name   string
		body   string
		status int
		code   ErrorCode
	}{
		{"malformed body", `{"query":`, http.StatusBadRequest, ErrBadRequest},
		{"bad session id", `{"query":"hi","session_id":"nope"}`, http.StatusBadRequest, ErrValidation},
		{"unknown session", `{"query":"hi","session_id":"` + uuid.NewString() + `"}`, http.StatusNotFound, ErrSessionNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e AppError
			status := doJSON(t, http.MethodPost, ts.URL+"/api/ask", tt.body, &e)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, e.Code)
			assert.NotEmpty(t, e.Message)
		})
	}
}

func TestAsk_BlankQueryAnswersFirstEntry(t *testing.T) {
	ts := newTestServer(t, true)

	var got askResponse
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, ts.URL+"/api/ask", `{"query":"   "}`, &got))
	assert.Equal(t, 0, got.Index)
	assert.Equal(t, corpus.Builtin().Entry(0).Answer, got.Answer)
	assert.Zero(t, got.Score)

	var st session.State
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, ts.URL+"/api/sessions/"+got.SessionID.String(), "", &st))
	assert.Len(t, st.Turns, 1)
}

func TestAsk_EmptyCorpusIsUnavailable(t *testing.T) {
	ts := newTestServer(t, false)

	var e AppError
	status := doJSON(t, http.MethodPost, ts.URL+"/api/ask", `{"query":"balance"}`, &e)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, ErrServiceUnavailable, e.Code)
	assert.Equal(t, "assistant unavailable", e.Message)

	var h healthResponse
	assert.Equal(t, http.StatusServiceUnavailable, doJSON(t, http.MethodGet, ts.URL+"/healthz", "", &h))
	assert.Equal(t, "unavailable", h.Status)
}

func TestSessionTransitions(t *testing.T) {
	ts := newTestServer(t, true)

	var st session.State
	require.Equal(t, http.StatusCreated, doJSON(t, http.MethodPost, ts.URL+"/api/sessions", "", &st))
	assert.Equal(t, session.PageHome, st.Page)
	base := ts.URL + "/api/sessions/" + st.ID.String()

	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, base+"/page", `{"page":"Loans"}`, &st))
	assert.Equal(t, session.PageLoans, st.Page)

	var e AppError
	assert.Equal(t, http.StatusBadRequest, doJSON(t, http.MethodPost, base+"/page", `{"page":"casino"}`, &e))
	assert.Equal(t, ErrUnknownPage, e.Code)

	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, base+"/chat", `{"open":true}`, &st))
	assert.True(t, st.ChatOpen)
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, base+"/chat", `{"open":false}`, &st))
	assert.False(t, st.ChatOpen)

	doJSON(t, http.MethodGet, base, "", &st)
	assert.Equal(t, session.PageLoans, st.Page)

	assert.Equal(t, http.StatusNotFound, doJSON(t, http.MethodGet, ts.URL+"/api/sessions/"+uuid.NewString(), "", &e))

	req, err := http.NewRequest(http.MethodDelete, base, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	assert.Equal(t, http.StatusNotFound, doJSON(t, http.MethodGet, base, "", &e))
	assert.Equal(t, ErrSessionNotFound, e.Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, http.MethodDelete, base, "", &e))
}

func TestSuggestionsAndHealth(t *testing.T) {
	ts := newTestServer(t, true)

	var got map[string][]string
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, ts.URL+"/api/suggestions?n=3", "", &got))
	assert.Len(t, got["suggestions"], 3)

	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, ts.URL+"/api/suggestions", "", &got))
	assert.Len(t, got["suggestions"], suggest.DefaultCount)

	var e AppError
	assert.Equal(t, http.StatusBadRequest, doJSON(t, http.MethodGet, ts.URL+"/api/suggestions?n=zero", "", &e))

	var h healthResponse
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, ts.URL+"/healthz", "", &h))
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, corpus.Builtin().Len(), h.Entries)
	assert.Equal(t, corpus.Builtin().Fingerprint(), h.Fingerprint)
}
