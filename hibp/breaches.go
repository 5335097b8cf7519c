package hibp

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/briangreenhill/breachwatch/cache"
)

// BreachedAccountOptions narrows a breached-account search. A zero Domain
// leaves the domain filter unset.
type BreachedAccountOptions struct {
	TruncateResponse  bool
	IncludeUnverified bool
	Domain            string
}

// BreachedAccount lists the breaches that include account. A nil slice
// means the account was not found in any breach.
func (c *Client) BreachedAccount(ctx context.Context, account string, opts BreachedAccountOptions) ([]Breach, error) {
	params := cache.Params{
		"truncateResponse":  opts.TruncateResponse,
		"includeUnverified": opts.IncludeUnverified,
	}
	if opts.Domain != "" {
		params["domain"] = opts.Domain
	}
	data, err := c.fetchJSON(ctx, "breachedaccount/"+account, params)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var breaches []Breach
	if err := json.Unmarshal(data, &breaches); err != nil {
		return nil, err
	}
	return breaches, nil
}

// Breaches lists all breaches in the dataset, optionally filtered to the
// breaches of a single domain.
func (c *Client) Breaches(ctx context.Context, domain string) ([]Breach, error) {
	params := cache.Params{}
	if domain != "" {
		params["domain"] = domain
	}
	data, err := c.fetchJSON(ctx, "breaches", params)
	if err != nil {
		return nil, err
	}

	var breaches []Breach
	if err := json.Unmarshal(data, &breaches); err != nil {
		return nil, err
	}
	return breaches, nil
}

// Breach returns a single breach by name, or ErrNotFound.
func (c *Client) Breach(ctx context.Context, name string) (*Breach, error) {
	data, err := c.fetchJSON(ctx, "breach/"+name, nil)
	if err != nil {
		return nil, err
	}

	var breach Breach
	if err := json.Unmarshal(data, &breach); err != nil {
		return nil, err
	}
	return &breach, nil
}

// LatestBreach returns the most recently added breach. This is the cheap
// probe the domain-query optimization polls before trusting cached domain
// results. Returns nil if the dataset is empty.
func (c *Client) LatestBreach(ctx context.Context) (*Breach, error) {
	data, err := c.fetchJSON(ctx, "latestbreach", nil)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var breach Breach
	if err := json.Unmarshal(data, &breach); err != nil {
		return nil, err
	}
	return &breach, nil
}

// DataClasses lists the kinds of data that appear across breaches.
func (c *Client) DataClasses(ctx context.Context) ([]string, error) {
	data, err := c.fetchJSON(ctx, "dataclasses", nil)
	if err != nil {
		return nil, err
	}

	var classes []string
	if err := json.Unmarshal(data, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// BreachedDomain maps each breached alias of domain to the breach names
// affecting it. A nil map means no breached accounts were found.
//
// Unless forceFresh is set, the call first probes LatestBreach: if the
// dataset has not advanced past the last date this client observed, the
// query goes through the normal read-through cache; if it has advanced
// (or the probe fails), the cache read is bypassed and the live result is
// written back for later calls.
func (c *Client) BreachedDomain(ctx context.Context, domain string, forceFresh bool) (map[string][]string, error) {
	bypass := forceFresh
	if !forceFresh {
		bypass = c.domainCacheSuspect(ctx)
	}

	endpoint := "breacheddomain/" + domain
	var (
		data json.RawMessage
		err  error
	)
	if bypass {
		data, err = c.fetchJSONBypass(ctx, endpoint, nil)
	} else {
		data, err = c.fetchJSON(ctx, endpoint, nil)
	}
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result map[string][]string
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// domainCacheSuspect probes the latest breach and reports whether cached
// domain results can no longer be trusted. A failed or empty probe counts
// as suspect: better an extra live call than silently stale data.
func (c *Client) domainCacheSuspect(ctx context.Context) bool {
	latest, err := c.LatestBreach(ctx)
	if err != nil {
		c.log.Debug().Err(err).Msg("latest breach probe failed, forcing fresh domain query")
		return true
	}
	if latest == nil || latest.AddedDate == "" {
		return true
	}

	if c.store != nil {
		c.store.SetLatestBreachDate(latest.AddedDate)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastDomainBreachDate != "" && c.lastDomainBreachDate >= latest.AddedDate {
		return false
	}
	c.lastDomainBreachDate = latest.AddedDate
	return true
}
