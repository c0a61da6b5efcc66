package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
)

func newFormRequest(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}
