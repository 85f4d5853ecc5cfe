package operation

import (
	"github.com/broady/opschema/ir"
	"github.com/broady/opschema/naming"
)

// kindInfo is the naming convention of one operation kind.
type kindInfo struct {
	marker    string // annotation whose value names the operation; "" for none
	direction naming.Direction
	derive    bool // derive the default name with the property convention
}

var kindTable = map[ir.OperationType]kindInfo{
	ir.Query:       {marker: ir.AnnotationQuery, direction: naming.Out, derive: true},
	ir.Mutation:    {marker: ir.AnnotationMutation, direction: naming.In, derive: true},
	ir.SourceField: {},
}

// operationName selects the public name by priority: marker value, general
// rename, external property name, then the default for the kind.
func operationName(method *ir.MethodDecl, kind ir.OperationType) string {
	info := kindTable[kind]

	candidates := []string{ir.AnnotationName, ir.AnnotationJSON}
	if info.marker != "" {
		candidates = append([]string{info.marker}, candidates...)
	}
	if name, ok := method.Annotations.OneOfValue(candidates...); ok {
		return name
	}
	if info.derive {
		return naming.PropertyName(info.direction, method.Name)
	}
	return method.Name
}
