// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema defines the declarative settings model that connection
// backends publish so the frontend can render configuration forms without
// knowing backend internals. A Schema is an ordered list of groups, each
// holding fields with a type, constraints, and optional conditional
// visibility. Schemas serialize to camelCase JSON; the field type is a
// tagged object ({"type": "number", "min": 1}).
//
// Validate checks concrete settings values (decoded JSON) against a
// schema, honoring visibleWhen conditions: hidden fields are skipped.
package schema

// Schema is the top-level settings schema for one connection backend.
// The UI renders each group as a collapsible section in order.
type Schema struct {
	Groups []Group `json:"groups"`
}

// Group is a named set of related fields, rendered in order.
type Group struct {
	// Key is the machine-readable group identifier, for example
	// "connection" or "authentication".
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Fields []Field `json:"fields"`
}

// Field describes a single settings input: its JSON key, how to render
// it, and how to validate its value.
type Field struct {
	// Key is the JSON property name the value is stored under.
	Key string `json:"key"`
	// Label is shown next to the input.
	Label string `json:"label"`
	// Description is optional help text shown below the field.
	Description string `json:"description,omitempty"`
	// Type determines the widget and the validation rules.
	Type FieldType `json:"fieldType"`
	// Required fields must have a non-empty value before connecting.
	Required bool `json:"required"`
	// Default is used when the user has not set a value.
	Default any `json:"default,omitempty"`
	// Placeholder is shown in empty inputs.
	Placeholder string `json:"placeholder,omitempty"`
	// SupportsEnvExpansion marks fields whose value may contain
	// ${env:VAR} placeholders expanded at connect time.
	SupportsEnvExpansion bool `json:"supportsEnvExpansion,omitempty"`
	// SupportsTildeExpansion marks fields where a leading ~ is
	// expanded to the home directory at connect time.
	SupportsTildeExpansion bool `json:"supportsTildeExpansion,omitempty"`
	// VisibleWhen hides the field unless the referenced sibling field
	// has the given value. Hidden fields are not validated.
	VisibleWhen *Condition `json:"visibleWhen,omitempty"`
}

// Condition is a conditional-visibility rule: the owning field is shown
// only when the field named by Field equals Equals.
type Condition struct {
	Field  string `json:"field"`
	Equals any    `json:"equals"`
}

// Kind names for FieldType.Type.
const (
	TypeText         = "text"
	TypePassword     = "password"
	TypeNumber       = "number"
	TypeBoolean      = "boolean"
	TypeSelect       = "select"
	TypePort         = "port"
	TypeFilePath     = "filePath"
	TypeKeyValueList = "keyValueList"
	TypeObjectList   = "objectList"
)

// FieldType is the input type of a field plus any type-specific
// constraints. Only the fields relevant to Type are set; it serializes
// as a tagged JSON object keyed by "type".
type FieldType struct {
	Type string `json:"type"`

	// Min and Max bound TypeNumber values (inclusive).
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`

	// Options lists the choices of a TypeSelect dropdown.
	Options []SelectOption `json:"options,omitempty"`

	// Kind restricts what a TypeFilePath picker accepts.
	Kind PathKind `json:"kind,omitempty"`

	// Fields describes each object of a TypeObjectList.
	Fields []Field `json:"fields,omitempty"`
}

// SelectOption is one choice in a select dropdown.
type SelectOption struct {
	// Value is stored in the settings JSON.
	Value string `json:"value"`
	// Label is shown in the dropdown.
	Label string `json:"label"`
}

// PathKind restricts what a file-path picker accepts.
type PathKind string

const (
	PathFile      PathKind = "file"
	PathDirectory PathKind = "directory"
	PathAny       PathKind = "any"
)

// Text returns a single-line text input type.
func Text() FieldType { return FieldType{Type: TypeText} }

// Password returns a masked text input type.
func Password() FieldType { return FieldType{Type: TypePassword} }

// Number returns a numeric input type with optional inclusive bounds;
// pass nil to leave a bound open.
func Number(min, max *float64) FieldType {
	return FieldType{Type: TypeNumber, Min: min, Max: max}
}

// Boolean returns a toggle input type.
func Boolean() FieldType { return FieldType{Type: TypeBoolean} }

// Select returns a dropdown input type with the given options.
func Select(options ...SelectOption) FieldType {
	return FieldType{Type: TypeSelect, Options: options}
}

// Port returns a port-number input type, constrained to 1..65535.
func Port() FieldType { return FieldType{Type: TypePort} }

// FilePath returns a path-picker input type accepting the given kind.
func FilePath(kind PathKind) FieldType {
	return FieldType{Type: TypeFilePath, Kind: kind}
}

// KeyValueList returns an input type for a list of string key/value
// pairs, such as environment variables.
func KeyValueList() FieldType { return FieldType{Type: TypeKeyValueList} }

// ObjectList returns an input type for a list of structured objects,
// each described by the given sub-fields.
func ObjectList(fields ...Field) FieldType {
	return FieldType{Type: TypeObjectList, Fields: fields}
}

// Bound is a convenience for building *float64 number bounds inline.
func Bound(v float64) *float64 { return &v }
