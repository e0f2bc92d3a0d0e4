// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"errors"
	"fmt"
)

// ErrNoAPIKey indicates that no inference credential is configured. It is
// not retryable; the caller must be told plainly.
var ErrNoAPIKey = errors.New("inference API key not configured")

// UpstreamError indicates the inference endpoint failed after the allowed
// retries or returned an unrecoverable status.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("inference request failed: %s", e.Body)
	}
	return fmt.Sprintf("inference endpoint returned HTTP %d: %s", e.Status, e.Body)
}

// ResponseShapeError indicates a success status whose payload lacks the
// expected choices/message content fields.
type ResponseShapeError struct {
	Detail string
}

func (e *ResponseShapeError) Error() string {
	return fmt.Sprintf("unexpected inference response shape: %s", e.Detail)
}
