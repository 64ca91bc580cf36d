package state

import (
	"github.com/texere-dev/edit/internal/texerr"
	"github.com/texere-dev/edit/pkg/selection"
	"github.com/texere-dev/edit/pkg/text"
)

// ToJson builds the JSON-ready snapshot of s: the document text, the
// selection as {ranges:[{anchor,head}], main}, and one entry per field in
// fields that was given a JSON shape via StateField.JSON — a field
// without one is simply omitted, matching the forward-compatibility rule
// FromJson relies on (only fields it was told to load are read back).
func (s *EditorState) ToJson(fields []Field) map[string]any {
	ranges := s.sel.Ranges()
	rangesJSON := make([]map[string]any, len(ranges))
	for i, r := range ranges {
		rangesJSON[i] = map[string]any{"anchor": r.Anchor, "head": r.Head}
	}

	fieldsJSON := map[string]any{}
	for _, f := range fields {
		v, ok := s.fields[f.key()]
		if !ok {
			continue
		}
		marshaled, ok := f.marshalField(v)
		if !ok {
			continue
		}
		fieldsJSON[f.jsonKey()] = marshaled
	}

	return map[string]any{
		"doc": s.doc.String(),
		"selection": map[string]any{
			"ranges": rangesJSON,
			"main":   s.sel.MainIndex(),
		},
		"fields": fieldsJSON,
	}
}

// FromJson rebuilds an EditorState from a JSON snapshot in the shapes
// encoding/json decodes into an any: map[string]any for objects, []any
// for arrays, float64 for numbers. ToJson's own return value holds
// []map[string]any and int instead, which FromJson does not accept as is
// (its selection ranges are rejected as not an array), so that value
// goes through a JSON encode and decode first. config supplies the
// Extensions to resolve and anything else ToJson didn't capture; its Doc
// and Selection are overridden by the snapshot. Only the fields named in
// the fields argument are read back — any other key under "fields" in
// value is ignored, the forward-compatibility rule a newer snapshot with
// extra field keys relies on when loaded by older code.
func FromJson(value any, config Config, fields []Field) (*EditorState, error) {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, texerr.InvalidInput("state", "editor state JSON value must be an object")
	}

	docStr, _ := obj["doc"].(string)

	cfg := config
	cfg.Doc = text.New(docStr)
	cfg.Fields = fields

	if selRaw, ok := obj["selection"].(map[string]any); ok {
		ranges, err := decodeRanges(selRaw["ranges"])
		if err != nil {
			return nil, err
		}
		main := 0
		if m, ok := selRaw["main"].(float64); ok {
			main = int(m)
		}
		cfg.Selection = selection.New(ranges, main)
	}

	s, err := Create(cfg)
	if err != nil {
		return nil, err
	}

	fieldsRaw, _ := obj["fields"].(map[string]any)
	for _, f := range fields {
		raw, ok := fieldsRaw[f.jsonKey()]
		if !ok {
			continue
		}
		v, ok := f.unmarshalField(raw)
		if !ok {
			continue
		}
		s.fields[f.key()] = v
	}
	return s, nil
}

func decodeRanges(raw any) ([]selection.Range, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, texerr.InvalidInput("state", "selection JSON ranges must be an array")
	}
	out := make([]selection.Range, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, texerr.InvalidInput("state", "selection range JSON must be an object")
		}
		anchor, _ := m["anchor"].(float64)
		head, _ := m["head"].(float64)
		out = append(out, selection.NewRange(int(anchor), int(head)))
	}
	return out, nil
}
