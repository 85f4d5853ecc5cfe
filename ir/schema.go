package ir

import "strings"

// Schema represents the operations derived from a set of packages together
// with the type references they registered.
type Schema struct {
	// Package is the source Go package information.
	Package PackageInfo `json:"package"`

	// Types contains every registered reference, in registration order.
	Types []*Reference `json:"types"`

	// Operations contains the built operations.
	Operations []*Operation `json:"operations"`

	// Warnings contains non-fatal issues encountered during schema building.
	Warnings []Warning `json:"warnings,omitempty"`
}

// AddType adds a reference to the schema.
func (s *Schema) AddType(r *Reference) {
	s.Types = append(s.Types, r)
}

// AddOperation adds an operation to the schema.
func (s *Schema) AddOperation(op *Operation) {
	s.Operations = append(s.Operations, op)
}

// AddWarning adds a warning to the schema.
func (s *Schema) AddWarning(w Warning) {
	s.Warnings = append(s.Warnings, w)
}

// Queries returns the root query operations.
func (s *Schema) Queries() []*Operation { return s.byType(Query) }

// Mutations returns the root mutation operations.
func (s *Schema) Mutations() []*Operation { return s.byType(Mutation) }

// SourceFields returns the operations attached to existing types.
func (s *Schema) SourceFields() []*Operation { return s.byType(SourceField) }

func (s *Schema) byType(typ OperationType) []*Operation {
	var out []*Operation
	for _, op := range s.Operations {
		if op.OperationType == typ {
			out = append(out, op)
		}
	}
	return out
}

// Validate checks the schema for structural issues.
// Returns all validation errors found (not just the first).
func (s *Schema) Validate() []error {
	var errors []*ValidationError

	typeNames := make(map[string]bool)
	for _, t := range s.Types {
		if typeNames[t.Name] {
			errors = append(errors, &ValidationError{
				Code:    "duplicate_type",
				Message: "duplicate type name: " + t.Name,
			})
		}
		typeNames[t.Name] = true
	}

	// Operation names are unique per operation type and attachment point.
	opNames := make(map[string]bool)
	for _, op := range s.Operations {
		where := op.OperationType.String()
		if op.SourceFieldOn != nil {
			where += " on " + op.SourceFieldOn.Name
		}
		key := where + "." + op.Name
		if opNames[key] {
			errors = append(errors, &ValidationError{
				Code:    "duplicate_operation",
				Message: "duplicate operation name in " + where + ": " + op.Name,
			})
		}
		opNames[key] = true

		if IsVoid(op.FieldType) {
			errors = append(errors, &ValidationError{
				Code:    "invalid_field_type",
				Message: "operation " + op.Name + " has no field type",
			})
		}

		if op.Reference == nil {
			errors = append(errors, &ValidationError{
				Code:    "missing_reference",
				Message: "operation " + op.Name + " has no type reference",
			})
		} else {
			errors = append(errors, validateReference(op.Reference, typeNames, "operation "+op.Name)...)
		}

		argNames := make(map[string]bool)
		last := -1
		for _, arg := range op.Arguments {
			if arg.Index <= last {
				errors = append(errors, &ValidationError{
					Code:    "argument_order",
					Message: "operation " + op.Name + " argument " + arg.Name + " is out of parameter order",
				})
			}
			last = arg.Index
			if argNames[arg.Name] {
				errors = append(errors, &ValidationError{
					Code:    "duplicate_argument",
					Message: "operation " + op.Name + " has duplicate argument: " + arg.Name,
				})
			}
			argNames[arg.Name] = true
			if arg.Reference != nil {
				errors = append(errors, validateReference(arg.Reference, typeNames, "operation "+op.Name+" argument "+arg.Name)...)
			}
		}
	}

	// Convert ValidationErrors to regular errors
	var result []error
	for _, e := range errors {
		result = append(result, e)
	}
	return result
}

// validateReference checks that non-scalar references were registered.
func validateReference(ref *Reference, typeNames map[string]bool, context string) []*ValidationError {
	if ref.Type == RefScalar || typeNames[ref.Name] {
		return nil
	}
	return []*ValidationError{{
		Code:    "missing_type_reference",
		Message: context + " references unknown type: " + ref.Name,
	}}
}

// ValidationError represents a schema validation error.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// JoinErrors renders validation errors one per line.
func JoinErrors(errs []error) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "\n")
}
