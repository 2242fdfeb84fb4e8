package httperr

import (
	"bytes"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
	"golang.org/x/text/language"
)

// maxBodySize bounds how much of an error body is read
const maxBodySize = 64 << 10

// Normalize builds an Error from a failed response's status and body.
// A non-empty string "message" field of a JSON body is used verbatim,
// anything else falls back to the fixed message for the status.
func Normalize(status int, body []byte, tag language.Tag) *Error {
	if msg := bodyMessage(body); msg != "" {
		return &Error{Message: msg, Status: status}
	}

	return &Error{Message: StatusMessage(status, tag), Status: status}
}

// FromResponse reads and closes resp.Body and normalizes the response.
// A body that cannot be read is treated as empty.
func FromResponse(resp *http.Response, tag language.Tag) *Error {
	if resp == nil {
		return Normalize(0, nil, tag)
	}

	var body []byte

	if resp.Body != nil {
		defer resp.Body.Close()

		var err error

		if body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodySize)); err != nil {
			body = nil
		}
	}

	return Normalize(resp.StatusCode, body, tag)
}

func bodyMessage(body []byte) string {
	body = bytes.TrimSpace(body)

	if len(body) == 0 || !gjson.ValidBytes(body) {
		return ""
	}

	msg := gjson.GetBytes(body, "message")

	if msg.Type != gjson.String {
		return ""
	}

	return msg.Str
}
