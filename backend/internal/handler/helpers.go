package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/bbs/shared/api"
	"github.com/itchan-dev/bbs/shared/domain"
	internal_errors "github.com/itchan-dev/bbs/shared/errors"
	"github.com/itchan-dev/bbs/shared/utils"
)

// parseIntParam parses an integer parameter from a string and returns a meaningful error
func parseIntParam(param string, paramName string) (int64, error) {
	val, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return 0, internal_errors.BadRequest(fmt.Sprintf("invalid %s: must be an integer", paramName))
	}
	return val, nil
}

// parseIdParam reads a positive id from the route.
func parseIdParam(r *http.Request, name string) (int64, error) {
	id, err := parseIntParam(chi.URLParam(r, name), name)
	if err != nil {
		return 0, err
	}
	if id < 1 {
		return 0, internal_errors.BadRequest(fmt.Sprintf("invalid %s: must be positive", name))
	}
	return id, nil
}

// parsePage reads ?page and ?limit. Absent values take the defaults,
// present ones must be in range.
func parsePage(r *http.Request) (domain.Page, error) {
	q := api.PageQuery{Page: domain.DefaultPage, Limit: domain.DefaultLimit}
	query := r.URL.Query()
	if v := query.Get("page"); v != "" {
		n, err := parseIntParam(v, "page")
		if err != nil {
			return domain.Page{}, err
		}
		q.Page = int(n)
	}
	if v := query.Get("limit"); v != "" {
		n, err := parseIntParam(v, "limit")
		if err != nil {
			return domain.Page{}, err
		}
		q.Limit = int(n)
	}
	if err := utils.Validate(q); err != nil {
		return domain.Page{}, err
	}
	return domain.Page{Page: q.Page, Limit: q.Limit}, nil
}
