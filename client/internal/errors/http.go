package errors

import "fmt"

const maxBodyLen = 512

// ClassifyHTTPError maps a failed HTTP exchange to a ClassifiedError.
func ClassifyHTTPError(statusCode int, body string, underlyingErr error) *ClassifiedError {
	if len(body) > maxBodyLen {
		body = body[:maxBodyLen]
	}
	return &ClassifiedError{
		Category:   getHTTPErrorCategory(statusCode),
		StatusCode: statusCode,
		Body:       body,
		Underlying: underlyingErr,
	}
}

func getHTTPErrorCategory(statusCode int) ErrorCategory {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case 408, 429:
			return Recoverable
		default:
			return Irrecoverable
		}
	case statusCode >= 500 && statusCode < 600:
		return Recoverable
	default:
		return Recoverable
	}
}

// NewHTTPError creates a classified error for a non-2xx response.
func NewHTTPError(statusCode int, body string, operation string) *ClassifiedError {
	ce := ClassifyHTTPError(statusCode, body, fmt.Errorf("%s failed: HTTP %d", operation, statusCode))
	ce.Operation = operation
	return ce
}

// NewNetworkError creates a classified error for network-level failures.
// Network errors are always recoverable as they may be transient.
func NewNetworkError(operation string, err error) *ClassifiedError {
	return &ClassifiedError{
		Category:   Recoverable,
		Operation:  operation,
		Underlying: fmt.Errorf("%s network error: %w", operation, err),
	}
}

// NewDecodeError reports a response body that could not be decoded. A
// malformed body will not improve on retry.
func NewDecodeError(operation string, err error) *ClassifiedError {
	return &ClassifiedError{
		Category:   Irrecoverable,
		Operation:  operation,
		Underlying: fmt.Errorf("%s decode response: %w", operation, err),
	}
}
