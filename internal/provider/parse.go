package provider

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/atomicstack/integration-selector/internal/selector"
)

// ErrMalformedResponse reports provider output that is not a JSON option
// list.
var ErrMalformedResponse = errors.New("malformed provider response")

// moreField is read from the document root to learn whether another page
// exists.
const moreField = "has_more"

// ParseOptions extracts dialog options from a JSON document. path is a gjson
// path to the option array; empty means the document itself. Each element
// needs a "value"; "text" falls back to "label" and then to the value.
// Elements without a value are skipped.
func ParseOptions(data []byte, path string) (selector.Page, error) {
	if !gjson.ValidBytes(data) {
		return selector.Page{}, fmt.Errorf("%w: invalid JSON", ErrMalformedResponse)
	}
	list := gjson.ParseBytes(data)
	if path != "" {
		list = gjson.GetBytes(data, path)
	}
	if !list.IsArray() {
		return selector.Page{}, fmt.Errorf("%w: %q is not an array", ErrMalformedResponse, pathOrRoot(path))
	}
	items := make([]selector.Item, 0, len(list.Array()))
	list.ForEach(func(_, el gjson.Result) bool {
		value := el.Get("value").String()
		if value == "" {
			return true
		}
		text := el.Get("text")
		if !text.Exists() {
			text = el.Get("label")
		}
		label := text.String()
		if label == "" {
			label = value
		}
		items = append(items, selector.DialogOption{Value: value, Text: label})
		return true
	})
	more := false
	if root := gjson.ParseBytes(data); root.IsObject() {
		more = root.Get(moreField).Bool()
	}
	return selector.Page{Items: items, More: more}, nil
}

func pathOrRoot(path string) string {
	if path == "" {
		return "@this"
	}
	return path
}
