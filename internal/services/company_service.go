package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/charlesng35/companydesk/internal/models"
	apperrors "github.com/charlesng35/companydesk/pkg/errors"
	"github.com/charlesng35/companydesk/pkg/logger"
	"github.com/charlesng35/companydesk/pkg/metrics"
	appValidator "github.com/charlesng35/companydesk/pkg/validator"
)

// MaxCompanyPageSize caps how many companies a single list query returns.
const MaxCompanyPageSize = 100

// CreateCompanyInput captures the attributes required to register a company.
type CreateCompanyInput struct {
	Name        string         `json:"name" yaml:"name" validate:"required,max=200"`
	Domain      string         `json:"domain" yaml:"domain" validate:"omitempty,max=253,fqdn"`
	Description string         `json:"description" yaml:"description" validate:"max=2000"`
	Metadata    map[string]any `json:"metadata" yaml:"metadata"`
}

// CompanyService loads and registers companies.
type CompanyService struct {
	db       *gorm.DB
	pageSize int
	log      *zap.Logger
}

// CompanyOption customises the CompanyService.
type CompanyOption func(*CompanyService)

// WithPageSize overrides how many rows List returns. Values are clamped to 1..MaxCompanyPageSize.
func WithPageSize(size int) CompanyOption {
	return func(s *CompanyService) {
		s.pageSize = ClampPageSize(size)
	}
}

// WithLogger overrides the service logger, primarily for tests.
func WithLogger(log *zap.Logger) CompanyOption {
	return func(s *CompanyService) {
		if log != nil {
			s.log = log
		}
	}
}

// NewCompanyService constructs a CompanyService.
func NewCompanyService(db *gorm.DB, opts ...CompanyOption) (*CompanyService, error) {
	if db == nil {
		return nil, errors.New("company service: db is required")
	}

	svc := &CompanyService{
		db:       db,
		pageSize: MaxCompanyPageSize,
		log:      logger.WithModule("companies"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// ClampPageSize bounds size to 1..MaxCompanyPageSize, treating non-positive values as the maximum.
func ClampPageSize(size int) int {
	if size <= 0 || size > MaxCompanyPageSize {
		return MaxCompanyPageSize
	}
	return size
}

// PageSize reports the row cap applied by List.
func (s *CompanyService) PageSize() int {
	return s.pageSize
}

// List returns at most PageSize companies ordered by name.
func (s *CompanyService) List(ctx context.Context) ([]models.Company, error) {
	ctx = ensureContext(ctx)

	s.log.Debug("getting companies...")

	var companies []models.Company
	err := s.db.WithContext(ctx).
		Order("name ASC").
		Order("id ASC").
		Limit(s.pageSize).
		Find(&companies).Error
	if err != nil {
		metrics.CompanyQueries.WithLabelValues("error").Inc()
		s.log.Error("company list query failed", zap.Error(err))
		return nil, apperrors.Wrap(err, "Failed to load companies")
	}

	metrics.CompanyQueries.WithLabelValues("success").Inc()
	metrics.CompaniesReturned.Observe(float64(len(companies)))
	s.log.Debug("got companies", zap.Int("count", len(companies)))

	return companies, nil
}

// Create validates and stores a new company.
func (s *CompanyService) Create(ctx context.Context, input CreateCompanyInput) (*models.Company, error) {
	ctx = ensureContext(ctx)

	input.Name = strings.TrimSpace(input.Name)
	input.Domain = strings.ToLower(strings.TrimSpace(input.Domain))
	input.Description = strings.TrimSpace(input.Description)

	if err := appValidator.ValidateStruct(input); err != nil {
		return nil, apperrors.NewBadRequest(appValidator.Describe(err))
	}

	company := &models.Company{
		Name:        input.Name,
		Domain:      optionalString(input.Domain),
		Description: input.Description,
	}

	if len(input.Metadata) > 0 {
		data, err := json.Marshal(input.Metadata)
		if err != nil {
			return nil, apperrors.NewBadRequest("metadata must be JSON serialisable")
		}
		company.Metadata = datatypes.JSON(data)
	}

	if err := s.db.WithContext(ctx).Create(company).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrCompanyExists.WithInternal(err)
		}
		return nil, fmt.Errorf("company service: create company: %w", err)
	}

	s.log.Info("company created", zap.String("company_id", company.ID), zap.String("name", company.Name))
	return company, nil
}

// Count returns the total number of stored companies.
func (s *CompanyService) Count(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Company{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("company service: count companies: %w", err)
	}
	return total, nil
}
