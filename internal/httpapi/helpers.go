package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/filter"
)

const maxBody = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Validation("request body is required")
		}
		return domain.Validation("invalid JSON body: %v", err)
	}
	return nil
}

func caller(r *http.Request) domain.Caller {
	c, _ := CallerFrom(r.Context())
	return c
}

func intParam(q url.Values, names ...string) (int, error) {
	for _, name := range names {
		raw := strings.TrimSpace(q.Get(name))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, domain.Validation("%s must be an integer", name)
		}
		return n, nil
	}
	return 0, nil
}

func floatParam(q url.Values, name string) (*float64, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, domain.Validation("%s must be a number", name)
	}
	return &f, nil
}

// pageFromQuery accepts limit as an alias of pageSize.
func pageFromQuery(q url.Values) (domain.PageRequest, error) {
	page, err := intParam(q, "page")
	if err != nil {
		return domain.PageRequest{}, err
	}
	size, err := intParam(q, "pageSize", "limit")
	if err != nil {
		return domain.PageRequest{}, err
	}
	return domain.PageRequest{Page: page, PageSize: size}, nil
}

func criteriaFromQuery(q url.Values) (filter.Criteria, error) {
	c := filter.Criteria{
		Keyword:  q.Get("keyword"),
		Location: q.Get("location"),
	}
	types, err := filter.ParseJobTypes(strings.Join(q["jobType"], ","))
	if err != nil {
		return c, err
	}
	c.JobTypes = types
	if c.SalaryMin, err = floatParam(q, "salaryMin"); err != nil {
		return c, err
	}
	if c.SalaryMax, err = floatParam(q, "salaryMax"); err != nil {
		return c, err
	}
	return c, nil
}
