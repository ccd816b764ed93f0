package report

import (
	"encoding/json"
	"errors"
	"secreport/internal/ingest"
	"secreport/internal/types"
	"strings"
)

// FailureKind classifies why a category produced no result
type FailureKind int

const (
	// NotFound means the log source was absent
	NotFound FailureKind = iota + 1
	// Unexpected covers every other read or processing fault
	Unexpected
)

func (k FailureKind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case Unexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

const notFoundSuffix = " log file not found"

// Failure is the in-band error of one category
type Failure struct {
	Kind    FailureKind
	Message string
}

func (f *Failure) Error() string {
	return f.Message
}

// NotFoundFailure builds the failure for a missing source of category c
func NotFoundFailure(c types.Category) *Failure {
	return &Failure{Kind: NotFound, Message: c.Label() + notFoundSuffix}
}

// UnexpectedFailure builds the failure for any other fault
func UnexpectedFailure(detail string) *Failure {
	return &Failure{Kind: Unexpected, Message: "Unexpected error occurred: " + detail}
}

// classify decides the failure kind by inspecting the source error
func classify(c types.Category, err error) *Failure {
	if errors.Is(err, ingest.ErrSourceNotFound) {
		return NotFoundFailure(c)
	}
	return UnexpectedFailure(err.Error())
}

// Result is either a category value or a Failure, never both
type Result[T any] struct {
	Value   T
	Failure *Failure
}

// Ok wraps a successful value
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Fail wraps a failure
func Fail[T any](f *Failure) Result[T] {
	return Result[T]{Failure: f}
}

// IsOk reports whether the category succeeded
func (r Result[T]) IsOk() bool {
	return r.Failure == nil
}

type errorPayload struct {
	Error string `json:"error"`
}

// MarshalJSON renders the value, or {"error": "<message>"} on failure
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.Failure != nil {
		return json.Marshal(errorPayload{Error: r.Failure.Message})
	}
	return json.Marshal(r.Value)
}

// UnmarshalJSON reads either form back
func (r *Result[T]) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err == nil && len(fields) == 1 {
		if raw, ok := fields["error"]; ok {
			var msg string
			if err := json.Unmarshal(raw, &msg); err == nil {
				kind := Unexpected
				if strings.HasSuffix(msg, notFoundSuffix) {
					kind = NotFound
				}
				*r = Fail[T](&Failure{Kind: kind, Message: msg})
				return nil
			}
		}
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Ok(v)
	return nil
}
