package docnode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// NodeError reports an array element that could not be decoded.
type NodeError struct {
	Index int
	Err   error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("node %d: %v", e.Index, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}

// Decode reads doc nodes from r. Both a bare JSON array of nodes and the
// extractor's envelope form ({"version": n, "nodes": [...]}) are accepted.
// Elements are decoded one at a time: an element that does not decode is
// reported as a *NodeError in the second result and the rest are kept.
// The error result is set only when the document itself is unreadable.
func Decode(r io.Reader) ([]Node, []error, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("reading doc nodes: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil, nil
	}

	var raw []json.RawMessage
	if data[0] == '{' {
		var envelope struct {
			Nodes []json.RawMessage `json:"nodes"`
		}
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, nil, fmt.Errorf("decoding doc nodes: %w", err)
		}
		raw = envelope.Nodes
	} else if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("decoding doc nodes: %w", err)
	}

	nodes := make([]Node, 0, len(raw))
	var errs []error
	for i, msg := range raw {
		var n Node
		if err := json.Unmarshal(msg, &n); err != nil {
			errs = append(errs, &NodeError{Index: i, Err: err})
			continue
		}
		nodes = append(nodes, n)
	}
	return nodes, errs, nil
}

// UnmarshalJSON accepts "module" as a synonym for moduleDoc.
func (k *Kind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "module" {
		s = string(KindModuleDoc)
	}
	*k = Kind(s)
	return nil
}

// UnmarshalJSON folds the inline params/returnType of interface methods into FunctionDef.
func (m *Method) UnmarshalJSON(b []byte) error {
	type plain Method
	var aux struct {
		plain
		Params     []Param  `json:"params"`
		ReturnType *TypeDef `json:"returnType"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	*m = Method(aux.plain)
	if len(m.FunctionDef.Params) == 0 && len(aux.Params) > 0 {
		m.FunctionDef.Params = aux.Params
	}
	if m.FunctionDef.ReturnType == nil {
		m.FunctionDef.ReturnType = aux.ReturnType
	}
	return nil
}
