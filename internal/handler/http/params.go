package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/validator"
)

// queryBool reads an optional boolean query parameter. Absent yields nil.
func queryBool(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, validator.ValidationErrors{{Field: name, Message: name + " must be true or false"}}
	}
	return &b, nil
}

// queryList splits a comma separated query parameter, dropping empty items.
func queryList(r *http.Request, name string) []string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func queryString(r *http.Request, name string) *string {
	if !r.URL.Query().Has(name) {
		return nil
	}
	v := r.URL.Query().Get(name)
	return &v
}
