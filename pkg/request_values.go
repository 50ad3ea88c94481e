package pkg

import (
	"encoding/json"
	"net/http"
	"strings"
)

// RequestValues reads a flat JSON object or a submitted form and returns a getter over its fields.
// JSON numbers are returned in their textual form, missing fields as "".
func RequestValues(r *http.Request) (func(key string) string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		values := map[string]FlexString{}
		if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
			return nil, err
		}
		return func(key string) string {
			return string(values[key])
		}, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.PostForm.Get, nil
}
