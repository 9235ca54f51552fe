package validators

import (
	"encoding/json"
	"io"
	"net/http"

	pkgerrors "github.com/cometcontrol/comet-backend/pkg/errors"
)

// DecodeJSONBody parses the request body into dest. It only checks that the
// payload is well-formed JSON of the right shape; semantic validation runs
// later in the submission pipeline so a malformed body never charges the
// rate limiter.
func DecodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeMalformed, err, "malformed request body").
			WithDetails(map[string]any{"error": err.Error()})
	}
	return nil
}
