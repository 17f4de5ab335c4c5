// Package api exposes one function per pixiu resource operation. Each
// builds its request path and hands off to the shared transport; errors
// come back exactly as the transport reported them.
package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"pixiu/internal/model"
	"pixiu/internal/transport"
)

const (
	fundPath        = "/pixiu/fund"
	fundSourcesPath = "/pixiu/fund/sources"
	fundTypesPath   = "/pixiu/fund/types"
	debtPath        = "/pixiu/debt"
	propertyPath    = "/pixiu/property"
)

// Client calls the pixiu REST API through a shared Transport.
type Client struct {
	t *transport.Transport
}

// New returns a Client using t for every request.
func New(t *transport.Transport) *Client {
	return &Client{t: t}
}

// FundQuery selects a page of funds. From and To bound the fund timestamp
// (inclusive). Source, Type and Name are optional; several values are sent
// comma-joined and match any of them.
type FundQuery struct {
	From   int64
	To     int64
	Page   int
	Size   int
	Source []string
	Type   []string
	Name   []string
}

// Path returns the request path with its query string.
func (q FundQuery) Path() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s?from=%d&to=%d&page=%d&size=%d", fundPath, q.From, q.To, q.Page, q.Size)
	appendList(&b, "source", q.Source)
	appendList(&b, "type", q.Type)
	appendList(&b, "name", q.Name)
	return b.String()
}

// appendList writes key=v1,v2 skipping blank values. Commas stay literal
// since the server splits on them.
func appendList(b *strings.Builder, key string, values []string) {
	escaped := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		escaped = append(escaped, url.QueryEscape(v))
	}
	if len(escaped) == 0 {
		return
	}
	b.WriteString("&" + key + "=" + strings.Join(escaped, ","))
}

// GetFundList returns one page of funds along with per-class sums and the
// income and expense totals of the whole filtered range.
func (c *Client) GetFundList(ctx context.Context, q FundQuery) (*model.Page[model.Fund], error) {
	var page model.Page[model.Fund]
	if err := c.t.Get(ctx, q.Path(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetFundSources returns every distinct fund source.
func (c *Client) GetFundSources(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.t.Get(ctx, fundSourcesPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetFundTypes returns every distinct fund class.
func (c *Client) GetFundTypes(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.t.Get(ctx, fundTypesPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDebtList returns every recorded debt.
func (c *Client) GetDebtList(ctx context.Context) ([]model.Debt, error) {
	var out []model.Debt
	if err := c.t.Get(ctx, debtPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPropertyList returns every property, including the fund balance row.
func (c *Client) GetPropertyList(ctx context.Context) ([]model.Property, error) {
	var out []model.Property
	if err := c.t.Get(ctx, propertyPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddFund creates a fund and returns the stored record.
func (c *Client) AddFund(ctx context.Context, f *model.Fund) (*model.Fund, error) {
	var out model.Fund
	if err := c.t.Post(ctx, fundPath, f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateFund replaces the fund with the given id and returns the stored record.
func (c *Client) UpdateFund(ctx context.Context, id int64, f *model.Fund) (*model.Fund, error) {
	var out model.Fund
	if err := c.t.Put(ctx, fundItemPath(id), f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteFund removes the fund with the given id.
func (c *Client) DeleteFund(ctx context.Context, id int64) error {
	return c.t.Delete(ctx, fundItemPath(id))
}

func fundItemPath(id int64) string {
	return fmt.Sprintf("%s/%d", fundPath, id)
}
