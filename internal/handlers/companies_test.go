package handlers_test

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/companydesk/internal/database"
	handlertestutil "github.com/charlesng35/companydesk/internal/handlers/testutil"
	"github.com/charlesng35/companydesk/internal/models"
)

type companyPayload struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Domain      string         `json:"domain"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata"`
}

func seedCompanies(t *testing.T, env *handlertestutil.Env, n int) {
	t.Helper()
	rows := make([]models.Company, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, models.Company{Name: fmt.Sprintf("Company %03d", i)})
	}
	require.NoError(t, env.DB.CreateInBatches(&rows, 50).Error)
}

func TestCompanyHandler_ListCapsAtOneHundred(t *testing.T) {
	env := handlertestutil.NewEnv(t)
	seedCompanies(t, env, 120)

	w := env.Request(http.MethodGet, "/api/companies", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	payload := handlertestutil.DecodeResponse(t, w)
	require.True(t, payload.Success)
	require.NotNil(t, payload.Meta)
	require.Equal(t, 100, payload.Meta.PerPage)
	require.Equal(t, 100, payload.Meta.Total)

	var companies []companyPayload
	handlertestutil.DecodeInto(t, payload.Data, &companies)
	require.Len(t, companies, 100)
	require.Equal(t, "Company 000", companies[0].Name)
}

func TestCompanyHandler_ListEmpty(t *testing.T) {
	env := handlertestutil.NewEnv(t)

	w := env.Request(http.MethodGet, "/api/companies", nil)
	require.Equal(t, http.StatusOK, w.Code)

	payload := handlertestutil.DecodeResponse(t, w)
	require.Equal(t, 0, payload.Meta.Total)
	require.JSONEq(t, `[]`, string(payload.Data))
}

func TestCompanyHandler_ListRespectsConfiguredPageSize(t *testing.T) {
	env := handlertestutil.NewEnv(t, handlertestutil.WithPageSize(10))
	seedCompanies(t, env, 15)

	w := env.Request(http.MethodGet, "/api/companies", nil)
	payload := handlertestutil.DecodeResponse(t, w)
	require.Equal(t, 10, payload.Meta.PerPage)
	require.Equal(t, 10, payload.Meta.Total)
}

func TestCompanyHandler_Create(t *testing.T) {
	env := handlertestutil.NewEnv(t)

	w := env.Request(http.MethodPost, "/api/companies", map[string]any{
		"name":        "Acme",
		"domain":      "acme.example.com",
		"description": "Anvils",
		"metadata":    map[string]any{"tier": "gold"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	payload := handlertestutil.DecodeResponse(t, w)
	var created companyPayload
	handlertestutil.DecodeInto(t, payload.Data, &created)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "acme.example.com", created.Domain)
	require.Equal(t, "gold", created.Metadata["tier"])

	dup := env.Request(http.MethodPost, "/api/companies", map[string]any{
		"name":   "Acme Again",
		"domain": "ACME.example.com",
	})
	require.Equal(t, http.StatusConflict, dup.Code)
	dupPayload := handlertestutil.DecodeResponse(t, dup)
	require.False(t, dupPayload.Success)
	require.Equal(t, "COMPANY_EXISTS", dupPayload.Error.Code)
}

func TestCompanyHandler_CreateValidates(t *testing.T) {
	env := handlertestutil.NewEnv(t)

	w := env.Request(http.MethodPost, "/api/companies", map[string]any{"description": "no name"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	payload := handlertestutil.DecodeResponse(t, w)
	require.Equal(t, "BAD_REQUEST", payload.Error.Code)
	require.Contains(t, payload.Error.Message, "name is required")

	w = env.Request(http.MethodPost, "/api/companies", map[string]any{"name": "Bad", "domain": "not a domain"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.Request(http.MethodPost, "/api/companies", "not an object")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompanyHandler_Page(t *testing.T) {
	env := handlertestutil.NewEnv(t)
	require.NoError(t, env.DB.Create(&models.Company{Name: "<Acme & Sons>", Description: "Anvils"}).Error)

	w := env.Get("/companies")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/html")

	body := w.Body.String()
	require.Contains(t, body, `data-theme="light"`)
	require.Contains(t, body, "&lt;Acme &amp; Sons&gt;")
	require.NotContains(t, body, "<Acme & Sons>")
	require.Contains(t, body, `action="/theme"`)
	require.Contains(t, body, `name="theme" value="dark"`)
	require.Contains(t, body, "Toggle theme")
	require.Contains(t, body, `name="_csrf" value="`+env.CSRFToken()+`"`)
	require.Contains(t, body, "Showing 1 of at most 100 companies.")
}

func TestCompanyHandler_PageFollowsTheme(t *testing.T) {
	env := handlertestutil.NewEnv(t)

	w := env.PostForm("/theme", url.Values{"theme": {"dark"}}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)

	page := env.Get("/companies")
	require.Equal(t, http.StatusOK, page.Code)
	body := page.Body.String()
	require.Contains(t, body, `data-theme="dark"`)
	require.Contains(t, body, `name="theme" value="light"`)
	require.Contains(t, body, "No companies yet.")
}

func TestCompanyHandler_RootRedirects(t *testing.T) {
	env := handlertestutil.NewEnv(t)

	w := env.Get("/")
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/companies", w.Header().Get("Location"))
}

func TestCompanyHandler_DatabaseFailure(t *testing.T) {
	env := handlertestutil.NewEnv(t)
	require.NoError(t, database.Close(env.DB))

	w := env.Request(http.MethodGet, "/api/companies", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	payload := handlertestutil.DecodeResponse(t, w)
	require.False(t, payload.Success)
	require.Equal(t, "Failed to load companies", payload.Error.Message)

	page := env.Get("/companies")
	require.Equal(t, http.StatusInternalServerError, page.Code)
	require.Contains(t, page.Body.String(), "Failed to load companies")
	require.False(t, strings.Contains(page.Body.String(), "sql: database is closed"))
}
