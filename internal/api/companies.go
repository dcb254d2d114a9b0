package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/google/go-querystring/query"
)

// SearchParams are the company search filters. Both are optional.
type SearchParams struct {
	Query    string `url:"query,omitempty"`
	Location string `url:"location,omitempty"`
}

// Companies lists every registered company.
func (c *Client) Companies(ctx context.Context) ([]Company, error) {
	var env dataEnvelope
	if err := c.do(ctx, request{method: http.MethodGet, path: "/companies/all"}, &env); err != nil {
		return nil, err
	}
	return decodeCompanies(env.Data)
}

// SearchCompanies searches companies by name and/or location.
func (c *Client) SearchCompanies(ctx context.Context, p SearchParams) ([]Company, error) {
	values, err := query.Values(p)
	if err != nil {
		return nil, err
	}
	var env dataEnvelope
	if err := c.do(ctx, request{method: http.MethodGet, path: "/companies/search", query: values}, &env); err != nil {
		return nil, err
	}
	return decodeCompanies(env.Data)
}

// CompanyBySlug fetches one company through its public slug.
func (c *Client) CompanyBySlug(ctx context.Context, slug string) (*Company, error) {
	var env dataEnvelope
	err := c.do(ctx, request{method: http.MethodGet, path: "/companies/public/" + url.PathEscape(slug)}, &env)
	if err != nil {
		return nil, err
	}
	var company Company
	if err := json.Unmarshal(env.Data, &company); err != nil {
		return nil, &Error{Kind: KindServer, Message: "respuesta inválida del servidor", Err: err}
	}
	applyPolicyDefaults(&company)
	return &company, nil
}

func decodeCompanies(raw json.RawMessage) ([]Company, error) {
	var companies []Company
	if len(raw) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(raw, &companies); err != nil {
		return nil, &Error{Kind: KindServer, Message: "respuesta inválida del servidor", Err: err}
	}
	for i := range companies {
		applyPolicyDefaults(&companies[i])
	}
	return companies, nil
}

// applyPolicyDefaults fills the advance-booking window the way the mobile
// client did when the backend omits it: 0 to 30 days.
func applyPolicyDefaults(company *Company) {
	if company.MaxAdvanceDays == 0 {
		company.MaxAdvanceDays = 30
	}
}
