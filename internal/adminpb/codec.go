package adminpb

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// ToStruct converts v, which must marshal to a JSON object, to a Struct.
func ToStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	return s, nil
}

// ToList converts a slice to a ListValue of JSON objects.
func ToList[T any](items []T) (*structpb.ListValue, error) {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", items, err)
	}
	l := &structpb.ListValue{}
	if err := protojson.Unmarshal(b, l); err != nil {
		return nil, fmt.Errorf("encode %T: %w", items, err)
	}
	return l, nil
}

// FromStruct decodes s into out through its JSON form.
func FromStruct(s *structpb.Struct, out any) error {
	b, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("decode %T: %w", out, err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode %T: %w", out, err)
	}
	return nil
}

// FromList decodes l into a slice of T.
func FromList[T any](l *structpb.ListValue) ([]T, error) {
	b, err := protojson.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	var out []T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return out, nil
}
