package hibp

import (
	"context"
	"encoding/json"
)

// SubscriptionStatus returns the subscription attached to the API key.
func (c *Client) SubscriptionStatus(ctx context.Context) (*SubscriptionStatus, error) {
	data, err := c.fetchJSON(ctx, "subscription/status", nil)
	if err != nil {
		return nil, err
	}

	var status SubscriptionStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
