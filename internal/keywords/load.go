package keywords

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

var errBadShape = errors.New(`expected a list or an object with a "keywords" list`)

// record is the object form of a keywords.json entry. The text may arrive
// under either key; kw wins when both are present.
type record struct {
	Kw   string `json:"kw"`
	Text string `json:"text"`
	Role string `json:"role"`
}

// Load reads a keywords file. The payload is either a bare JSON array or an
// object wrapping it under "keywords"; array elements are plain strings or
// records carrying the text under "kw" or "text" plus an optional "role".
// Entries without usable text are kept with an empty Raw so the normalize
// stage can skip and report them instead of failing the whole file.
func Load(path string) (*List, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening keywords file %q: %w", path, err)
	}
	defer file.Close()

	var payload any
	if err := json.NewDecoder(file).Decode(&payload); err != nil {
		return nil, fmt.Errorf("parsing keywords file %q: %w", path, err)
	}

	entries, err := unwrap(payload)
	if err != nil {
		return nil, fmt.Errorf("keywords file %q: %w", path, err)
	}

	list := &List{}
	for _, entry := range entries {
		list.Items = append(list.Items, decodeEntry(entry))
	}
	return list, nil
}

func unwrap(payload any) ([]any, error) {
	switch v := payload.(type) {
	case []any:
		return v, nil
	case map[string]any:
		inner, ok := v["keywords"].([]any)
		if !ok {
			return nil, errBadShape
		}
		return inner, nil
	default:
		return nil, errBadShape
	}
}

func decodeEntry(entry any) *Keyword {
	if text, ok := entry.(string); ok {
		return &Keyword{Raw: text, Normalized: Normalize(text)}
	}

	var rec record
	cfg := &mapstructure.DecoderConfig{
		Result:  &rec,
		TagName: "json",
	}
	decoder, _ := mapstructure.NewDecoder(cfg)
	if err := decoder.Decode(entry); err != nil {
		// Non-text entry; the normalize stage drops it with a warning.
		return &Keyword{}
	}

	text := rec.Kw
	if text == "" {
		text = rec.Text
	}
	return &Keyword{
		Raw:        text,
		Normalized: Normalize(text),
		Role:       Normalize(rec.Role),
	}
}
