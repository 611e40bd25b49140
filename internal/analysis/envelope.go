package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoContent is returned when the transport envelope parsed but none of the
// known shapes yielded assistant content. There is nothing left to clean or
// repair at that point, so the whole analysis call fails.
var ErrNoContent = errors.New("no assistant content found in model response")

// envelopeProbe extracts assistant text from one known envelope shape. The
// Ollama wire format has drifted across server versions; keeping the shapes
// as an explicit ordered list makes the fallback order a visible policy
// rather than an accident of code order.
type envelopeProbe struct {
	name    string
	extract func(body map[string]any) (string, bool)
}

var envelopeProbes = []envelopeProbe{
	{
		// Current /api/chat shape.
		name: "message.content",
		extract: func(body map[string]any) (string, bool) {
			msg, ok := body["message"].(map[string]any)
			if !ok {
				return "", false
			}
			s, ok := msg["content"].(string)
			return s, ok
		},
	},
	{
		// /api/generate shape.
		name: "response",
		extract: func(body map[string]any) (string, bool) {
			s, ok := body["response"].(string)
			return s, ok
		},
	},
	{
		// Seen from some OpenAI-compatible proxies.
		name: "content",
		extract: func(body map[string]any) (string, bool) {
			s, ok := body["content"].(string)
			return s, ok
		},
	},
}

// UnwrapResponse parses the transport-level JSON envelope returned by the
// model server and extracts the assistant's raw text. Exactly one of the
// return values is set on success: text when an envelope field held the
// assistant output, object when the body itself already is the analysis
// (some servers skip the envelope entirely).
func UnwrapResponse(raw string) (text string, object map[string]any, err error) {
	var outer any
	if uerr := json.Unmarshal([]byte(raw), &outer); uerr != nil {
		// Not valid JSON at the outer level. Some servers prepend noise
		// around an otherwise well-formed body; one cleaning pass is the
		// only recovery attempted here.
		cleaned := CleanResponse(raw)
		if uerr2 := json.Unmarshal([]byte(cleaned), &outer); uerr2 != nil {
			return "", nil, fmt.Errorf("model response is not valid JSON: %w", uerr)
		}
	}

	body, ok := outer.(map[string]any)
	if !ok {
		return "", nil, ErrNoContent
	}

	for _, probe := range envelopeProbes {
		if s, ok := probe.extract(body); ok {
			return s, nil, nil
		}
	}

	// No envelope field matched. If the body already looks like a completed
	// analysis, hand it straight to the mapper.
	if _, ok := body["summary"]; ok {
		return "", body, nil
	}

	// Last resort: the raw text itself may be the inner JSON with no
	// envelope at all.
	cleaned := CleanResponse(raw)
	var inner any
	if uerr := json.Unmarshal([]byte(cleaned), &inner); uerr == nil {
		if obj, ok := inner.(map[string]any); ok {
			return "", obj, nil
		}
	}

	return "", nil, ErrNoContent
}
