package hibp

import (
	"context"
	"encoding/json"
	"errors"
)

// PasteAccount lists the pastes referencing account. A nil slice means the
// account appears in no known paste.
func (c *Client) PasteAccount(ctx context.Context, account string) ([]Paste, error) {
	data, err := c.fetchJSON(ctx, "pasteaccount/"+account, nil)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var pastes []Paste
	if err := json.Unmarshal(data, &pastes); err != nil {
		return nil, err
	}
	return pastes, nil
}
