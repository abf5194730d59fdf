package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/netgrove/invsync/pkg/errors"
	"github.com/netgrove/invsync/pkg/logging"
)

// DecodeResponse reads and closes the response body, turns non-2xx
// statuses into APIErrors, and decodes JSON into target when target is
// non-nil and the body is non-empty.
func DecodeResponse(system string, resp *http.Response, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapConnectivity(system, resp.Request.URL.String(), err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &errors.APIError{
			System:     system,
			StatusCode: resp.StatusCode,
			Endpoint:   resp.Request.URL.Path,
			Message:    string(body),
		}
	}

	if target == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", resp.Request.URL.Path, err)
	}
	return nil
}
