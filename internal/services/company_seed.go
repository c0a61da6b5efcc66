package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// CompanySeed is the YAML document accepted by the seed command.
//
//	companies:
//	  - name: Acme
//	    domain: acme.example
type CompanySeed struct {
	Companies []CreateCompanyInput `yaml:"companies"`
}

// ImportResult summarises a seed run.
type ImportResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// LoadCompanySeed decodes a seed document. Unknown keys are rejected so typos surface early.
func LoadCompanySeed(r io.Reader) ([]CreateCompanyInput, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var seed CompanySeed
	if err := decoder.Decode(&seed); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("company seed: decode: %w", err)
	}
	return seed.Companies, nil
}

// Import creates each company, skipping entries whose domain already exists.
// Any other failure stops the import and reports the offending entry.
func (s *CompanyService) Import(ctx context.Context, inputs []CreateCompanyInput) (ImportResult, error) {
	var result ImportResult
	for i, input := range inputs {
		_, err := s.Create(ctx, input)
		switch {
		case err == nil:
			result.Created++
		case errors.Is(err, ErrCompanyExists):
			result.Skipped++
			s.log.Debug("company already exists; skipping", zap.String("domain", input.Domain))
		default:
			return result, fmt.Errorf("company seed: entry %d (%q): %w", i, input.Name, err)
		}
	}
	return result, nil
}
