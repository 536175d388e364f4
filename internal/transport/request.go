package transport

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/agentstation/toolcompare/pkg/errors"
	"github.com/agentstation/toolcompare/pkg/logging"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// envelope is the wrapped response shape: {"data": ..., "error": {...}}.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *envelopeError  `json:"error"`
}

type envelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// DecodeResponse decodes a JSON response into target. The body may be the bare
// value or wrapped in an envelope. Non-2xx statuses and envelope errors become
// APIErrors. A nil target only checks the status.
func DecodeResponse(resp *http.Response, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Debug().Err(err).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}
	body = bytes.TrimSpace(body)
	endpoint := endpointOf(resp)

	env, wrapped := unwrap(body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := errors.NewAPIError(endpoint, resp.StatusCode, http.StatusText(resp.StatusCode))
		if wrapped && env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		} else if len(body) > 0 {
			apiErr.Message = string(body)
		}
		return apiErr
	}

	if wrapped {
		if env.Error != nil {
			apiErr := errors.NewAPIError(endpoint, http.StatusUnprocessableEntity, env.Error.Message)
			apiErr.Code = env.Error.Code
			return apiErr
		}
		body = env.Data
	}

	if target == nil || len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", endpoint, err)
	}
	return nil
}

// unwrap reports whether body is an envelope, and returns it.
func unwrap(body []byte) (envelope, bool) {
	var env envelope
	if len(body) == 0 || body[0] != '{' {
		return env, false
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		return env, false
	}
	_, hasData := keys["data"]
	_, hasError := keys["error"]
	if !hasData && !hasError {
		return env, false
	}
	// An object carrying an "error" key that is not an object (e.g. a tool field) is not an envelope.
	if err := json.Unmarshal(body, &env); err != nil {
		return envelope{}, false
	}
	return env, true
}

func endpointOf(resp *http.Response) string {
	if resp.Request != nil && resp.Request.URL != nil {
		return resp.Request.Method + " " + resp.Request.URL.Path
	}
	return "unknown"
}
