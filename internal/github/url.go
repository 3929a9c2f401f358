package github

import (
	"net/url"
	"strconv"
	"strings"
)

// ParsePRURL validates and splits a pull request web URL of the form
// https://github.com/owner/repo/pull/123. It fails with a non-retryable
// invalid-URL error before any network call is attempted.
func ParsePRURL(raw string) (owner, repo string, number int, err error) {
	u, perr := url.Parse(strings.TrimSpace(raw))
	if perr != nil {
		return "", "", 0, &Error{Kind: KindInvalidPRURL, Cause: perr}
	}
	if u.Host != "github.com" && u.Host != "www.github.com" {
		return "", "", 0, &Error{Kind: KindInvalidPRURL}
	}

	parts := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
	if len(parts) != 4 || parts[2] != "pull" {
		return "", "", 0, &Error{Kind: KindInvalidPRURL}
	}
	number, perr = strconv.Atoi(parts[3])
	if perr != nil || number <= 0 {
		return "", "", 0, &Error{Kind: KindInvalidPRURL}
	}
	return parts[0], parts[1], number, nil
}
