package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ErrEmpty is returned for blank input.
var ErrEmpty = errors.New("parse: empty content")

// JSONAs decodes content into T. Strict JSON is tried first; only when that
// fails is the content repaired and decoded again.
func JSONAs[T any](content string) (T, error) {
	var result T
	if strings.TrimSpace(content) == "" {
		return result, ErrEmpty
	}

	err := json.Unmarshal([]byte(content), &result)
	if err == nil {
		return result, nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		// Well-formed JSON of the wrong shape; repairing cannot help.
		return result, fmt.Errorf("decoding %T: %w", result, err)
	}

	repaired, repairErr := Repair(content)
	if repairErr != nil {
		return result, fmt.Errorf("decoding %T: %w (repair failed: %v)", result, err, repairErr)
	}

	result = *new(T)
	if err := json.Unmarshal([]byte(repaired), &result); err != nil {
		return result, fmt.Errorf("decoding repaired %T: %w", result, err)
	}
	return result, nil
}

// Repair returns content as valid JSON. A surrounding Markdown code fence is
// removed first.
func Repair(content string) (string, error) {
	return jsonrepair.JSONRepair(stripFence(content))
}

func stripFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return content
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if nl := strings.IndexByte(trimmed, '\n'); nl >= 0 {
		// Drop the info string, e.g. ```json.
		trimmed = trimmed[nl+1:]
	}
	return strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
}
