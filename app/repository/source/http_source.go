package source

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	models "school-dashboard/app/models/dashboard"
)

type HTTPSource struct {
	baseURL string
	timeout time.Duration
}

func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout}
}

// Fetch issues a single GET. There is no retry; the timeout is the shorter
// of the configured one and the context deadline.
func (s *HTTPSource) Fetch(ctx context.Context, endpoint string) ([]models.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrapf(ErrFetchFailed, "GET %s: %v", endpoint, err)
	}

	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); timeout <= 0 || left < timeout {
			timeout = left
		}
	}

	url := s.baseURL + endpoint
	agent := fiber.Get(url)
	if timeout > 0 {
		agent.Timeout(timeout)
	}
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return nil, errors.Wrapf(ErrFetchFailed, "GET %s: %v", url, err)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, errors.Wrapf(ErrFetchFailed, "GET %s: %v", url, errs[0])
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return nil, errors.Wrapf(ErrFetchFailed, "GET %s: status %d", url, code)
	}

	return DecodeRecords(bytes.NewReader(body))
}
