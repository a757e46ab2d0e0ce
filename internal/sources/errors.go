package sources

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExternalTool marks failures of subprocess invocations.
	ErrExternalTool = errors.New("external tool error")
	// ErrUpstream marks failures of remote HTTP services.
	ErrUpstream = errors.New("upstream error")
	// ErrDecode marks unparseable payloads from an otherwise healthy source.
	ErrDecode = errors.New("decode error")
)

// Wrap builds an error that carries adapter and operation context while
// tagging it with the provided marker for classification.
func Wrap(marker error, adapter, operation string, err error) error {
	detail := buildDetail(adapter, operation)
	if marker == nil {
		marker = ErrUpstream
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(adapter, operation string) string {
	parts := make([]string, 0, 2)
	if adapter = strings.TrimSpace(adapter); adapter != "" {
		parts = append(parts, adapter)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if len(parts) == 0 {
		return "source failure"
	}
	return strings.Join(parts, ": ")
}
