package processor

import (
	"encoding/json"
	"fmt"
)

// ResultKind tags the variant held by an AnalysisResult.
type ResultKind string

const (
	KindNotAnalyzed ResultKind = "not_analyzed"
	KindAnalyzed    ResultKind = "analyzed"
	KindTooShort    ResultKind = "too_short"
	KindError       ResultKind = "error"
)

// Error codes carried by the error variant.
const (
	CodeInvalidDuration     = "invalid_duration"
	CodeReadFailed          = "read_failed"
	CodeBadParameters       = "bad_parameters"
	CodeInsufficientVoicing = "insufficient_voicing"
	CodeUnknown             = "unknown"
)

// AnalysisResult is the single outcome of one pipeline run. Exactly one
// variant is ever populated; the constructors below are the only way to
// build one, so the zero value is the not-analyzed state.
//
// All fields are value types, so two results compare equal with == when
// they carry the same variant and payload.
type AnalysisResult struct {
	kind           ResultKind
	metrics        CalibratedMetrics
	minimumSeconds int
	errCode        string
	errMessage     string
}

// NotAnalyzed is the initial state. The pipeline never produces it; it
// exists so callers can represent "no run yet" with the same type.
func NotAnalyzed() AnalysisResult {
	return AnalysisResult{kind: KindNotAnalyzed}
}

// Analyzed wraps a successful run's calibrated metrics.
func Analyzed(m CalibratedMetrics) AnalysisResult {
	return AnalysisResult{kind: KindAnalyzed, metrics: m}
}

// TooShort reports a take below the minimum usable duration.
func TooShort(minimumSeconds int) AnalysisResult {
	return AnalysisResult{kind: KindTooShort, minimumSeconds: minimumSeconds}
}

// ErrorResult reports a failed run with a stable code and a
// human-readable message.
func ErrorResult(code, message string) AnalysisResult {
	return AnalysisResult{kind: KindError, errCode: code, errMessage: message}
}

// Kind returns the variant tag. The zero value reports KindNotAnalyzed.
func (r AnalysisResult) Kind() ResultKind {
	if r.kind == "" {
		return KindNotAnalyzed
	}
	return r.kind
}

// Metrics returns the calibrated metrics and whether the result carries
// them.
func (r AnalysisResult) Metrics() (CalibratedMetrics, bool) {
	return r.metrics, r.kind == KindAnalyzed
}

// MinimumSeconds returns the duration floor reported by a too-short
// result, or 0 for other variants.
func (r AnalysisResult) MinimumSeconds() int { return r.minimumSeconds }

// ErrorInfo returns the code and message of an error result, or empty
// strings for other variants.
func (r AnalysisResult) ErrorInfo() (code, message string) {
	return r.errCode, r.errMessage
}

type tooShortPayload struct {
	MinimumSeconds int `json:"minimumSeconds"`
}

// errorPayload uses pointers so a decode can tell a missing field apart
// from a present-but-empty one. Missing fields take the unknown-error
// defaults; empty strings written by an older producer survive as-is.
type errorPayload struct {
	Code    *string `json:"code"`
	Message *string `json:"message"`
}

type resultEnvelope struct {
	Kind    ResultKind      `json:"kind"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MarshalJSON encodes the result as a {"kind", "payload"} envelope. The
// not-analyzed variant carries no payload.
func (r AnalysisResult) MarshalJSON() ([]byte, error) {
	env := resultEnvelope{Kind: r.Kind()}

	var payload any
	switch env.Kind {
	case KindNotAnalyzed:
	case KindAnalyzed:
		payload = r.metrics
	case KindTooShort:
		payload = tooShortPayload{MinimumSeconds: r.minimumSeconds}
	case KindError:
		payload = errorPayload{Code: &r.errCode, Message: &r.errMessage}
	default:
		return nil, fmt.Errorf("unknown result kind: %q", r.kind)
	}

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		env.Payload = raw
	}
	return json.Marshal(env)
}

// UnmarshalJSON decodes the envelope. Error payloads are decoded
// leniently so records persisted by older versions keep loading.
func (r *AnalysisResult) UnmarshalJSON(data []byte) error {
	var env resultEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	switch env.Kind {
	case KindNotAnalyzed:
		*r = NotAnalyzed()
	case KindAnalyzed:
		var m CalibratedMetrics
		if err := json.Unmarshal(env.Payload, &m); err != nil {
			return fmt.Errorf("failed to decode analyzed payload: %w", err)
		}
		*r = Analyzed(m)
	case KindTooShort:
		var p tooShortPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return fmt.Errorf("failed to decode too_short payload: %w", err)
		}
		*r = TooShort(p.MinimumSeconds)
	case KindError:
		code, message := CodeUnknown, "Unknown error"
		if len(env.Payload) > 0 {
			var p errorPayload
			if err := json.Unmarshal(env.Payload, &p); err != nil {
				return fmt.Errorf("failed to decode error payload: %w", err)
			}
			if p.Code != nil {
				code = *p.Code
			}
			if p.Message != nil {
				message = *p.Message
			}
		}
		*r = ErrorResult(code, message)
	default:
		return fmt.Errorf("unknown result kind: %q", env.Kind)
	}
	return nil
}
