package app

import (
	"io"

	"github.com/tidwall/sjson"

	"github.com/atomicstack/integration-selector/internal/selector"
)

// EncodeResult renders a completion as a single JSON document.
//
//	single: {"source":..,"multi":false,"value":..,"item":{..}}
//	multi:  {"source":..,"multi":true,"values":[..],"items":[..]}
//
// Values are the identities the route keys items by. For options they
// round-trip through --selected.
func EncodeResult(route selector.Route, res selector.Result) ([]byte, error) {
	doc, err := sjson.SetBytes([]byte(`{}`), "source", route.Source.String())
	if err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, "multi", res.Multi); err != nil {
		return nil, err
	}
	if !res.Multi {
		if doc, err = sjson.SetBytes(doc, "value", route.Identity(res.Item)); err != nil {
			return nil, err
		}
		return sjson.SetBytes(doc, "item", res.Item)
	}

	if doc, err = sjson.SetRawBytes(doc, "values", []byte(`[]`)); err != nil {
		return nil, err
	}
	if doc, err = sjson.SetRawBytes(doc, "items", []byte(`[]`)); err != nil {
		return nil, err
	}
	for _, item := range res.Items {
		if doc, err = sjson.SetBytes(doc, "values.-1", route.Identity(item)); err != nil {
			return nil, err
		}
		if doc, err = sjson.SetBytes(doc, "items.-1", item); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// WriteResult writes EncodeResult's document followed by a newline.
func WriteResult(w io.Writer, route selector.Route, res selector.Result) error {
	doc, err := EncodeResult(route, res)
	if err != nil {
		return err
	}
	_, err = w.Write(append(doc, '\n'))
	return err
}
