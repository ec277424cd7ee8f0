package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var errEmptyBody = errors.New("empty response body")

type validator interface {
	Validate() error
}

// decodeBody decodes a 2xx body into out. The body must be a JSON object
// carrying every required key with a non-null value; a decoded value that
// implements validator is checked as well.
func decodeBody(raw []byte, out any, required []string) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return errEmptyBody
	}

	if len(required) > 0 {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return err
		}
		for _, k := range required {
			v, ok := fields[k]
			if !ok {
				return fmt.Errorf("missing required field %q", k)
			}
			if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
				return fmt.Errorf("required field %q is null", k)
			}
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return err
	}
	if v, ok := out.(validator); ok {
		return v.Validate()
	}
	return nil
}
