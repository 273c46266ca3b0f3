package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/collecta/internal/agent"
	"github.com/MrJamesThe3rd/collecta/internal/docstore"
	"github.com/MrJamesThe3rd/collecta/internal/export"
	apihttp "github.com/MrJamesThe3rd/collecta/internal/http"
	agenthandler "github.com/MrJamesThe3rd/collecta/internal/http/agent"
	"github.com/MrJamesThe3rd/collecta/internal/http/auth"
	exporthandler "github.com/MrJamesThe3rd/collecta/internal/http/export"
	"github.com/MrJamesThe3rd/collecta/internal/http/importsheet"
	loanhandler "github.com/MrJamesThe3rd/collecta/internal/http/loan"
	"github.com/MrJamesThe3rd/collecta/internal/http/report"
	"github.com/MrJamesThe3rd/collecta/internal/http/session"
	"github.com/MrJamesThe3rd/collecta/internal/importer"
	"github.com/MrJamesThe3rd/collecta/internal/loan"
	"github.com/MrJamesThe3rd/collecta/internal/state"
	"github.com/MrJamesThe3rd/collecta/internal/tracker"
	"github.com/MrJamesThe3rd/collecta/internal/tracker/store"
)

const (
	loanLN001 = "00000000-0000-0000-0000-000000000101"
	loanLN003 = "00000000-0000-0000-0000-000000000103"
)

func clock() time.Time {
	return time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
}

type testServer struct {
	handler http.Handler
	svc     *tracker.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	svc := tracker.NewService(store.New(docstore.NewMemory()), importer.NewService(clock), tracker.WithClock(clock))
	require.NoError(t, svc.Load(context.Background()))

	tokens := auth.NewTokens("test-secret")

	handler := apihttp.New(
		apihttp.Options{
			Tokens: tokens,
			Lookup: func(id string) (agent.Agent, bool) { return svc.Snapshot().Agent(id) },
		},
		apihttp.Handlers{
			Session: session.NewHandler(svc, tokens),
			Loans:   loanhandler.NewHandler(svc),
			Agents:  agenthandler.NewHandler(svc),
			Import:  importsheet.NewHandler(svc),
			Reports: report.NewHandler(svc),
			Export:  exporthandler.NewHandler(svc, export.NewService(nil, 0)),
		},
	)

	return &testServer{handler: handler, svc: svc}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	return rec
}

func (s *testServer) login(t *testing.T, username string) string {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/v1/session", "", map[string]string{"username": username})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string      `json:"token"`
		Agent agent.Agent `json:"agent"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)

	return resp.Token
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Session(t *testing.T) {
	s := newTestServer(t)

	t.Run("Unknown User", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/session", "", map[string]string{"username": "nobody"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Missing Username", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/session", "", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Case Insensitive Login", func(t *testing.T) {
		token := s.login(t, "  JohnC ")

		rec := s.do(t, http.MethodGet, "/api/v1/session", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var me agent.Agent
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&me))
		assert.Equal(t, state.SeedJohnID, me.ID)
	})

	t.Run("Missing Token", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/loans", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Forged Token", func(t *testing.T) {
		forged, err := auth.NewTokens("other-secret").Issue(state.SeedAdminID)
		require.NoError(t, err)

		rec := s.do(t, http.MethodGet, "/api/v1/loans", forged, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRouter_LoanVisibility(t *testing.T) {
	s := newTestServer(t)

	listLoans := func(t *testing.T, token, query string) []loan.Loan {
		t.Helper()

		rec := s.do(t, http.MethodGet, "/api/v1/loans"+query, token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Loans []loan.Loan `json:"loans"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

		return resp.Loans
	}

	admin := s.login(t, "admin")
	john := s.login(t, "johnc")
	sarah := s.login(t, "sarahf")

	assert.Len(t, listLoans(t, admin, ""), 5)

	for _, l := range listLoans(t, john, "") {
		assert.Equal(t, state.SeedJohnID, l.AssignedAgentID)
	}

	found := listLoans(t, admin, "?q=ln001")
	require.Len(t, found, 1)
	assert.Equal(t, "LN001", found[0].AccountNumber)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/loans/"+loanLN001, john, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/v1/loans/"+loanLN001, sarah, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/v1/loans/missing", admin, nil).Code)
}

func TestRouter_LoanActions(t *testing.T) {
	s := newTestServer(t)
	john := s.login(t, "johnc")

	t.Run("Record Payment", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/loans/"+loanLN001+"/payments", john, map[string]string{"amount": "500"})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var got loan.Loan
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.True(t, got.OutstandingBalance.Equal(decimal.NewFromInt(1500)))
		assert.Len(t, got.PaymentHistory, 4)
	})

	t.Run("Payment Above Balance", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/loans/"+loanLN001+"/payments", john, map[string]string{"amount": "99999"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Add Communication", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/loans/"+loanLN001+"/communications", john,
			map[string]string{"type": "Call", "notes": "Promised to pay Friday"})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var got loan.Loan
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		require.NotEmpty(t, got.CommunicationHistory)
		assert.Equal(t, "John Collector", got.CommunicationHistory[0].AgentName)
	})

	t.Run("Invalid Communication Type", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/loans/"+loanLN001+"/communications", john,
			map[string]string{"type": "Fax", "notes": "x"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Update Remark", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, "/api/v1/loans/"+loanLN001+"/remark", john, map[string]string{"remark": "Call back"})
		require.Equal(t, http.StatusOK, rec.Code)

		l, ok := s.svc.Snapshot().Loan(loanLN001)
		require.True(t, ok)
		assert.Equal(t, "Call back", l.Remark)
	})

	t.Run("Agent Cannot Delete", func(t *testing.T) {
		rec := s.do(t, http.MethodDelete, "/api/v1/loans/"+loanLN001, john, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestRouter_AdminRoutes(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin")
	john := s.login(t, "johnc")

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/v1/agents", john, nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/v1/reports/performance", john, nil).Code)

	rec := s.do(t, http.MethodPost, "/api/v1/agents", admin, map[string]string{"name": "Mary Field", "username": "maryf"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created agent.Agent
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "maryf", created.Username)
	assert.False(t, created.IsAdmin)

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodDelete, "/api/v1/agents/"+state.SeedAdminID, admin, nil).Code)
	assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/v1/agents/"+created.ID, admin, nil).Code)

	rec = s.do(t, http.MethodPost, "/api/v1/loans/distribute", admin, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	l, ok := s.svc.Snapshot().Loan(loanLN003)
	require.True(t, ok)
	assert.True(t, l.Assigned())

	assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/v1/loans/"+loanLN003, admin, nil).Code)
	assert.Len(t, s.svc.Snapshot().Loans, 4)

	rec = s.do(t, http.MethodGet, "/api/v1/reports/performance", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var perf struct {
		Agents []loan.AgentPerformance `json:"agents"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&perf))
	assert.Len(t, perf.Agents, 2)
}

func TestRouter_Import(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin")

	upload := func(t *testing.T, filename, content, distribute string) *httptest.ResponseRecorder {
		t.Helper()

		var body bytes.Buffer
		mw := multipart.NewWriter(&body)

		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, mw.WriteField("distribute", distribute))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/import", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+admin)

		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, req)

		return rec
	}

	t.Run("Csv With Distribution", func(t *testing.T) {
		csv := strings.Join([]string{
			"Loan Account Number,Client,Original Amount,Product,Start Date",
			"LN900,New Client,1000,Small Enterprise,2024-01-01",
			",No Account,500,,",
		}, "\n")

		rec := upload(t, "loans.csv", csv, "true")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var summary tracker.ImportSummary
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))
		assert.Equal(t, 1, summary.Imported)
		assert.Len(t, summary.Skipped, 1)
		assert.True(t, summary.Distributed)

		assert.Len(t, s.svc.Snapshot().Loans, 6)
		assert.Zero(t, loan.UnassignedOutstanding(s.svc.Snapshot().Loans))
	})

	t.Run("Unsupported Format", func(t *testing.T) {
		rec := upload(t, "loans.xls", "binary", "false")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Corrupt Workbook", func(t *testing.T) {
		before := len(s.svc.Snapshot().Loans)

		rec := upload(t, "loans.xlsx", "this is not a zip", "false")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "unreadable spreadsheet")
		assert.Len(t, s.svc.Snapshot().Loans, before)
	})

	t.Run("Bad Distribute Flag", func(t *testing.T) {
		rec := upload(t, "loans.csv", "Account Number\n", "maybe")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_Export(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin")

	rec := s.do(t, http.MethodGet, "/api/v1/export", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "loans_")
	assert.NotZero(t, rec.Body.Len())

	rec = s.do(t, http.MethodPost, "/api/v1/export/publish", admin, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
