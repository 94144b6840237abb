package fetcher

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/cnpj-cli/internal/model"
	"github.com/sells-group/cnpj-cli/pkg/brasilapi"
)

// ErrInterrupted is returned when the caller cancelled the batch before a
// request was sent.
var ErrInterrupted = eris.New("fetcher: interrupted")

// IsTimeout reports whether err (or any error in its chain) is a request
// timeout: an expired deadline, a net.Error timeout, or a wrapped client
// timeout message.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	// String-based heuristics for wrapped errors from HTTP clients.
	msg := strings.ToLower(err.Error())
	timeoutPatterns := []string{
		"client.timeout exceeded",
		"context deadline exceeded",
		"i/o timeout",
		"tls handshake timeout",
	}
	for _, p := range timeoutPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}

	return false
}

// Classify maps a lookup error to a failure reason and a short detail.
func Classify(err error) (model.FailureReason, string) {
	if err == nil {
		return model.ReasonNone, ""
	}

	var de *brasilapi.DecodeError
	if errors.As(err, &de) {
		return model.ReasonDecodeError, de.Err.Error()
	}

	var se *brasilapi.StatusError
	if errors.As(err, &se) {
		if se.NotFound() {
			return model.ReasonAPIError, "not found (status 404)"
		}
		return model.ReasonAPIError, se.Error()
	}

	if IsTimeout(err) {
		return model.ReasonTimeout, err.Error()
	}

	return model.ReasonAPIError, err.Error()
}
