package handlers

import (
	"net/url"
	"strconv"
	"testing"
)

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	return u
}
