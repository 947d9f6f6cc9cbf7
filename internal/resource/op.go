package resource

import (
	"encoding/json"
	"fmt"
)

// OpKind is the kind of write in a batch.
type OpKind string

const (
	OpDelete OpKind = "delete"
	OpPatch  OpKind = "patch"
)

// Op is one write applied as part of a batch.
type Op struct {
	Kind     OpKind          `json:"op"`
	Resource Name            `json:"resource"`
	ID       int64           `json:"id"`
	Body     json.RawMessage `json:"body,omitempty"`
}

// Delete returns an op removing one record.
func Delete(name Name, id int64) Op {
	return Op{Kind: OpDelete, Resource: name, ID: id}
}

// Validate checks that the op names a known resource and a supported kind.
func (o Op) Validate() error {
	if !Valid(string(o.Resource)) {
		return fmt.Errorf("unknown resource %q", o.Resource)
	}
	if o.ID <= 0 {
		return fmt.Errorf("invalid id %d", o.ID)
	}
	switch o.Kind {
	case OpDelete:
		return nil
	case OpPatch:
		if len(o.Body) == 0 {
			return fmt.Errorf("patch of %s/%d has no body", o.Resource, o.ID)
		}
		return nil
	}
	return fmt.Errorf("unsupported op %q", o.Kind)
}

// String returns "resource/id".
func (o Op) String() string {
	return fmt.Sprintf("%s/%d", o.Resource, o.ID)
}
