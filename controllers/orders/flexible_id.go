package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlexibleID accepts a product key written as a JSON string or number.
// The catalog on the site numbers its products while stored products use
// object ids, and carts carry either.
type FlexibleID string

func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("product id must be a string or a number: %w", err)
	}
	*f = FlexibleID(n.String())
	return nil
}
