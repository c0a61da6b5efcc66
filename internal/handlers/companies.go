package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/companydesk/internal/models"
	"github.com/charlesng35/companydesk/internal/services"
	"github.com/charlesng35/companydesk/pkg/response"
)

const companiesTemplate = "companies.tmpl"

// CompanyHandler exposes the company directory as JSON and as a page.
type CompanyHandler struct {
	svc *services.CompanyService
}

type createCompanyRequest struct {
	Name        string         `json:"name" validate:"required,max=200"`
	Domain      string         `json:"domain" validate:"omitempty,max=253"`
	Description string         `json:"description" validate:"omitempty,max=2000"`
	Metadata    map[string]any `json:"metadata"`
}

type companyDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Domain      string          `json:"domain,omitempty"`
	Description string          `json:"description,omitempty"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type companiesPageData struct {
	Companies []companyDTO
	Limit     int
}

// NewCompanyHandler constructs a CompanyHandler.
func NewCompanyHandler(svc *services.CompanyService) (*CompanyHandler, error) {
	if svc == nil {
		return nil, errors.New("company handler: service is required")
	}
	return &CompanyHandler{svc: svc}, nil
}

// GET /api/companies
func (h *CompanyHandler) List(c *gin.Context) {
	ctx, cancel := queryContext(c)
	defer cancel()

	companies, err := h.svc.List(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}

	dtos := toCompanyDTOs(companies)
	response.SuccessWithMeta(c, http.StatusOK, dtos, &response.Meta{
		PerPage: h.svc.PageSize(),
		Total:   len(dtos),
	})
}

// POST /api/companies
func (h *CompanyHandler) Create(c *gin.Context) {
	var body createCompanyRequest
	if !bindAndValidate(c, &body) {
		return
	}

	ctx, cancel := queryContext(c)
	defer cancel()

	company, err := h.svc.Create(ctx, services.CreateCompanyInput{
		Name:        body.Name,
		Domain:      body.Domain,
		Description: body.Description,
		Metadata:    body.Metadata,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, toCompanyDTO(*company))
}

// GET /companies
func (h *CompanyHandler) Page(c *gin.Context) {
	ctx, cancel := queryContext(c)
	defer cancel()

	companies, err := h.svc.List(ctx)
	if err != nil {
		renderErrorPage(c, err)
		return
	}

	renderPage(c, http.StatusOK, companiesTemplate, "Companies", companiesPageData{
		Companies: toCompanyDTOs(companies),
		Limit:     h.svc.PageSize(),
	})
}

func toCompanyDTOs(companies []models.Company) []companyDTO {
	dtos := make([]companyDTO, 0, len(companies))
	for _, company := range companies {
		dtos = append(dtos, toCompanyDTO(company))
	}
	return dtos
}

func toCompanyDTO(company models.Company) companyDTO {
	dto := companyDTO{
		ID:          company.ID,
		Name:        company.Name,
		Description: company.Description,
		CreatedAt:   company.CreatedAt,
		UpdatedAt:   company.UpdatedAt,
	}
	if company.Domain != nil {
		dto.Domain = *company.Domain
	}
	if len(company.Metadata) > 0 {
		dto.Metadata = json.RawMessage(company.Metadata)
	}
	return dto
}
