package models

import "encoding/json"

// ParsedContent is the completion response after one parse step: either the
// structured fields the model returned as JSON, or the raw response text when
// the response was not valid JSON. Downstream code consumes both shapes
// through Body and the field accessors.
type ParsedContent struct {
	Structured bool           `json:"structured"`
	Fields     map[string]any `json:"fields,omitempty"`
	Raw        string         `json:"raw_response,omitempty"`
}

// ParseCompletion classifies a completion response. A JSON object becomes a
// structured result; anything else is preserved verbatim as raw text.
func ParseCompletion(text string) ParsedContent {
	var fields map[string]any
	if err := json.Unmarshal([]byte(text), &fields); err == nil && fields != nil {
		return ParsedContent{Structured: true, Fields: fields}
	}
	return ParsedContent{Raw: text}
}

// Body returns the text used when merging pages: the raw_response field of a
// structured result when present, the raw text otherwise, and the JSON string
// form of the structured fields as a last resort.
func (p ParsedContent) Body() string {
	if !p.Structured {
		return p.Raw
	}
	if raw, ok := p.Fields["raw_response"].(string); ok {
		return raw
	}
	b, err := json.Marshal(p.Fields)
	if err != nil {
		return ""
	}
	return string(b)
}

// Keywords returns the structured keywords field, if the model provided one.
func (p ParsedContent) Keywords() []string {
	if !p.Structured {
		return nil
	}
	list, ok := p.Fields["keywords"].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, v := range list {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Summary returns the structured per-page summary field, if present.
func (p ParsedContent) Summary() (string, bool) {
	if !p.Structured {
		return "", false
	}
	s, ok := p.Fields["summary"].(string)
	return s, ok
}

// Category returns the structured category field, if present.
func (p ParsedContent) Category() (string, bool) {
	if !p.Structured {
		return "", false
	}
	s, ok := p.Fields["category"].(string)
	return s, ok
}
