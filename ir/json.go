package ir

import "encoding/json"

// JSON serialization support for IR types.
// All type descriptors include a "kind" field for type discrimination.

// MarshalJSON implements json.Marshaler for PrimitiveDescriptor.
func (d *PrimitiveDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind          string `json:"kind"`
		PrimitiveKind string `json:"primitiveKind"`
		BitSize       int    `json:"bitSize,omitempty"`
	}{
		Kind:          "primitive",
		PrimitiveKind: d.PrimitiveKind.String(),
		BitSize:       d.BitSize,
	})
}

// MarshalJSON implements json.Marshaler for ArrayDescriptor.
func (d *ArrayDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind    string         `json:"kind"`
		Element TypeDescriptor `json:"element"`
		Length  int            `json:"length"`
	}{
		Kind:    "array",
		Element: d.Element,
		Length:  d.Length,
	})
}

// MarshalJSON implements json.Marshaler for MapDescriptor.
func (d *MapDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind  string         `json:"kind"`
		Key   TypeDescriptor `json:"key"`
		Value TypeDescriptor `json:"value"`
	}{
		Kind:  "map",
		Key:   d.Key,
		Value: d.Value,
	})
}

// MarshalJSON implements json.Marshaler for ReferenceDescriptor.
func (d *ReferenceDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind  string           `json:"kind"`
		Name  string           `json:"name"`
		Pkg   string           `json:"package,omitempty"`
		Args  []TypeDescriptor `json:"args,omitempty"`
		Under TypeDescriptor   `json:"underlying,omitempty"`
	}{
		Kind:  "reference",
		Name:  d.Target.Name,
		Pkg:   d.Target.Package,
		Args:  d.Args,
		Under: d.Underlying,
	})
}

// MarshalJSON implements json.Marshaler for PtrDescriptor.
func (d *PtrDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind    string         `json:"kind"`
		Element TypeDescriptor `json:"element"`
	}{
		Kind:    "ptr",
		Element: d.Element,
	})
}

// MarshalJSON implements json.Marshaler for TypeParameterDescriptor.
func (d *TypeParameterDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind       string         `json:"kind"`
		ParamName  string         `json:"paramName"`
		Scope      string         `json:"scope,omitempty"`
		Constraint TypeDescriptor `json:"constraint,omitempty"`
	}{
		Kind:       "typeParameter",
		ParamName:  d.ParamName,
		Scope:      d.Scope,
		Constraint: d.Constraint,
	})
}

// MarshalJSON implements json.Marshaler for VoidDescriptor.
func (d *VoidDescriptor) MarshalJSON() ([]byte, error) {
	return []byte(`{"kind":"void"}`), nil
}

// MarshalJSON implements json.Marshaler for UnresolvedDescriptor.
func (d *UnresolvedDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind      string `json:"kind"`
		ParamName string `json:"paramName"`
	}{
		Kind:      "unresolved",
		ParamName: d.ParamName,
	})
}

// MarshalJSON implements json.Marshaler for GoIdentifier.
func (id GoIdentifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Name    string `json:"name"`
		Package string `json:"package,omitempty"`
	}{
		Name:    id.Name,
		Package: id.Package,
	})
}

// MarshalText implements encoding.TextMarshaler for OperationType.
func (t OperationType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// MarshalJSON implements json.Marshaler for Reference.
func (r *Reference) MarshalJSON() ([]byte, error) {
	var goType *GoIdentifier
	if !r.GoType.IsZero() {
		goType = &r.GoType
	}
	return json.Marshal(&struct {
		Name     string           `json:"name"`
		Type     ReferenceType    `json:"type"`
		GoType   *GoIdentifier    `json:"goType,omitempty"`
		TypeArgs []TypeDescriptor `json:"typeArgs,omitempty"`
	}{
		Name:     r.Name,
		Type:     r.Type,
		GoType:   goType,
		TypeArgs: r.TypeArgs,
	})
}

// MarshalJSON implements json.Marshaler for Operation.
func (o *Operation) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Name           string          `json:"name"`
		OperationType  OperationType   `json:"operationType"`
		ClassName      string          `json:"className"`
		MethodName     string          `json:"methodName"`
		PropertyName   string          `json:"propertyName"`
		Description    string          `json:"description,omitempty"`
		Reference      *Reference      `json:"reference"`
		FieldType      TypeDescriptor  `json:"fieldType"`
		NotNull        bool            `json:"notNull,omitempty"`
		Wrapper        *Wrapper        `json:"wrapper,omitempty"`
		Transformation *Transformation `json:"transformation,omitempty"`
		Mapping        *Mapping        `json:"mapping,omitempty"`
		DefaultValue   *string         `json:"defaultValue,omitempty"`
		Arguments      []*Argument     `json:"arguments,omitempty"`
		SourceFieldOn  *Reference      `json:"sourceFieldOn,omitempty"`
	}{
		Name:           o.Name,
		OperationType:  o.OperationType,
		ClassName:      o.ClassName,
		MethodName:     o.MethodName,
		PropertyName:   o.PropertyName,
		Description:    o.Description,
		Reference:      o.Reference,
		FieldType:      o.FieldType,
		NotNull:        o.NotNull,
		Wrapper:        o.Wrapper,
		Transformation: o.Transformation,
		Mapping:        o.Mapping,
		DefaultValue:   o.DefaultValue,
		Arguments:      o.Arguments,
		SourceFieldOn:  o.SourceFieldOn,
	})
}

// MarshalJSON implements json.Marshaler for Argument.
func (a *Argument) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Name               string          `json:"name"`
		MethodArgumentName string          `json:"methodArgumentName"`
		Index              int             `json:"index"`
		Type               TypeDescriptor  `json:"type"`
		Reference          *Reference      `json:"reference,omitempty"`
		Description        string          `json:"description,omitempty"`
		NotNull            bool            `json:"notNull,omitempty"`
		Wrapper            *Wrapper        `json:"wrapper,omitempty"`
		Transformation     *Transformation `json:"transformation,omitempty"`
		Mapping            *Mapping        `json:"mapping,omitempty"`
		DefaultValue       *string         `json:"defaultValue,omitempty"`
	}{
		Name:               a.Name,
		MethodArgumentName: a.MethodArgumentName,
		Index:              a.Index,
		Type:               a.Type,
		Reference:          a.Reference,
		Description:        a.Description,
		NotNull:            a.NotNull,
		Wrapper:            a.Wrapper,
		Transformation:     a.Transformation,
		Mapping:            a.Mapping,
		DefaultValue:       a.DefaultValue,
	})
}
