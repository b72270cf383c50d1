package adapter

import (
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
)

const maxErrorBody = 256

// mapHTTPError accepts only 200 OK. Any other status, including other 2xx
// codes, is reported as ErrBadResponseCode carrying the status and a
// truncated body.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() == http.StatusOK {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if len(body) > maxErrorBody {
		cut := maxErrorBody
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body = body[:cut] + "..."
	}
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	return fmt.Errorf("%w: http %d: %s", ErrBadResponseCode, resp.StatusCode(), body)
}

// mapParseError folds every document decoding failure into ErrInvalidData
// while keeping the concrete reason in the chain.
func mapParseError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidData, err)
}
