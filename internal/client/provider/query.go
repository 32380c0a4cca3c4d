package provider

import "encoding/json"

// queryJSON is the wire shape of one list query.
type queryJSON struct {
	Method    string `json:"method"`
	Attribute string `json:"attribute,omitempty"`
	Values    []any  `json:"values,omitempty"`
}

func marshalQuery(q queryJSON) string {
	data, err := json.Marshal(q)
	if err != nil {
		// Only reachable with unmarshalable values, which callers never pass.
		panic(err)
	}
	return string(data)
}

// QueryEqual filters a listing to documents whose attribute equals value.
func QueryEqual(attribute string, value any) string {
	return marshalQuery(queryJSON{Method: "equal", Attribute: attribute, Values: []any{value}})
}

// QueryLimit caps the number of documents returned by a listing.
func QueryLimit(n int) string {
	return marshalQuery(queryJSON{Method: "limit", Values: []any{n}})
}

// QueryOrderDesc sorts a listing by attribute, newest first.
func QueryOrderDesc(attribute string) string {
	return marshalQuery(queryJSON{Method: "orderDesc", Attribute: attribute})
}
