// Package directive parses //graphql: directives from Go source files.
//
// Directives are line comments in the doc comment of a type or method:
//
//	//graphql:api
//	type BusinessAPI struct{ AbstractAPI[Business, int64] }
//
//	//graphql:query businesses
//	//graphql:format type=date pattern=2006-01-02
//	func (a *AbstractAPI[E, ID]) GetAll(ctx context.Context) ([]E, error)
//
// A directive is a name, optionally followed by a free-text value and
// key=value parameters. For description and default the whole remainder
// of the line is the value.
package directive

import (
	"fmt"
	"go/ast"
	"go/token"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/broady/opschema/ir"
)

// Prefix starts every directive comment.
const Prefix = "//graphql:"

// known lists the accepted directive names and whether the value is the
// raw remainder of the line.
var known = map[string]bool{
	ir.AnnotationAPI:             false,
	ir.AnnotationQuery:           false,
	ir.AnnotationMutation:        false,
	ir.AnnotationSource:          false,
	ir.AnnotationName:            false,
	ir.AnnotationJSON:            false,
	ir.AnnotationDescription:     true,
	ir.AnnotationNonNull:         false,
	ir.AnnotationNullable:        false,
	ir.AnnotationNonNullElements: false,
	ir.AnnotationFormat:          false,
	ir.AnnotationScalar:          false,
	ir.AnnotationDefault:         true,
	ir.AnnotationArg:             false,
	ir.AnnotationIgnore:          false,
}

// Result contains the directives found in a package, keyed by declaration.
type Result struct {
	// Types maps a type name to the directives in its doc comment.
	Types map[string]ir.Annotations

	// Methods maps "Type.Method" to the directives in the method's doc
	// comment. Interface methods are included.
	Methods map[string]ir.Annotations
}

// MethodKey returns the Result.Methods key for a method.
func MethodKey(typeName, method string) string {
	return typeName + "." + method
}

// Scan extracts the directives of already parsed files.
func Scan(fset *token.FileSet, files []*ast.File) (*Result, error) {
	result := &Result{
		Types:   make(map[string]ir.Annotations),
		Methods: make(map[string]ir.Annotations),
	}

	for _, f := range files {
		// Every directive comment must be consumed by a declaration.
		pending := make(map[token.Pos]string)
		for _, cg := range f.Comments {
			for _, c := range cg.List {
				if strings.HasPrefix(c.Text, Prefix) {
					pending[c.Pos()] = c.Text
				}
			}
		}
		if len(pending) == 0 {
			continue
		}

		consume := func(doc *ast.CommentGroup) (ir.Annotations, error) {
			if doc == nil {
				return nil, nil
			}
			for _, c := range doc.List {
				delete(pending, c.Pos())
			}
			return Parse(fset, doc)
		}

		for _, decl := range f.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				if d.Recv == nil || len(d.Recv.List) == 0 {
					continue
				}
				anns, err := consume(d.Doc)
				if err != nil {
					return nil, err
				}
				if len(anns) > 0 {
					key := MethodKey(ReceiverName(d.Recv.List[0].Type), d.Name.Name)
					result.Methods[key] = anns
				}

			case *ast.GenDecl:
				if d.Tok != token.TYPE {
					continue
				}
				for _, spec := range d.Specs {
					ts := spec.(*ast.TypeSpec)
					doc := ts.Doc
					if doc == nil && len(d.Specs) == 1 {
						doc = d.Doc
					}
					anns, err := consume(doc)
					if err != nil {
						return nil, err
					}
					if len(anns) > 0 {
						result.Types[ts.Name.Name] = anns
					}

					iface, ok := ts.Type.(*ast.InterfaceType)
					if !ok || iface.Methods == nil {
						continue
					}
					for _, field := range iface.Methods.List {
						if len(field.Names) == 0 {
							continue
						}
						anns, err := consume(field.Doc)
						if err != nil {
							return nil, err
						}
						if len(anns) > 0 {
							result.Methods[MethodKey(ts.Name.Name, field.Names[0].Name)] = anns
						}
					}
				}
			}
		}

		if len(pending) > 0 {
			positions := make([]token.Pos, 0, len(pending))
			for p := range pending {
				positions = append(positions, p)
			}
			sort.Slice(positions, func(i, j int) bool { return positions[i] < positions[j] })
			p := positions[0]
			return nil, fmt.Errorf("%s: %s directive must be in the doc comment of a type or method",
				fset.Position(p), strings.Fields(pending[p])[0])
		}
	}

	return result, nil
}

// Parse extracts the directives of one doc comment group.
func Parse(fset *token.FileSet, doc *ast.CommentGroup) (ir.Annotations, error) {
	if doc == nil {
		return nil, nil
	}
	var anns ir.Annotations
	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, Prefix) {
			continue
		}
		pos := fset.Position(c.Pos())
		a, err := ParseLine(c.Text)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pos, err)
		}
		a.Pos = ir.Source{File: pos.Filename, Line: pos.Line, Column: pos.Column}
		if err := Check(a); err != nil {
			return nil, fmt.Errorf("%s: %w", pos, err)
		}
		anns = append(anns, a)
	}
	return anns, nil
}

// ParseLine parses a single directive comment such as
// "//graphql:format type=date pattern=2006-01-02".
func ParseLine(text string) (ir.Annotation, error) {
	body := strings.TrimPrefix(text, Prefix)
	name, rest, _ := strings.Cut(body, " ")
	name = strings.TrimSpace(name)
	rest = strings.TrimSpace(rest)
	if name == "" {
		return ir.Annotation{}, fmt.Errorf("empty directive %q", text)
	}

	raw, ok := known[name]
	if !ok {
		return ir.Annotation{}, fmt.Errorf("unknown directive %s%s", Prefix, name)
	}

	a := ir.Annotation{Name: name}
	if raw {
		a.Value = rest
		return a, nil
	}

	fields, err := splitFields(rest)
	if err != nil {
		return ir.Annotation{}, fmt.Errorf("%s%s: %w", Prefix, name, err)
	}
	var words []string
	for _, field := range fields {
		key, value, isParam := strings.Cut(field, "=")
		if !isParam {
			words = append(words, field)
			continue
		}
		if key == "" {
			return ir.Annotation{}, fmt.Errorf("%s%s: malformed parameter %q", Prefix, name, field)
		}
		if strings.HasPrefix(value, `"`) {
			if value, err = strconv.Unquote(value); err != nil {
				return ir.Annotation{}, fmt.Errorf("%s%s: parameter %q: %w", Prefix, name, key, err)
			}
		}
		if a.Params == nil {
			a.Params = make(map[string]string)
		}
		if _, dup := a.Params[key]; dup {
			return ir.Annotation{}, fmt.Errorf("%s%s: duplicate parameter %q", Prefix, name, key)
		}
		a.Params[key] = value
	}
	a.Value = strings.Join(words, " ")
	return a, nil
}

// splitFields splits s on white space, keeping double-quoted runs
// (key="two words") together.
func splitFields(s string) ([]string, error) {
	var (
		fields  []string
		current strings.Builder
		quoted  bool
		escaped bool
	)
	for _, r := range s {
		switch {
		case escaped:
			escaped = false
		case quoted && r == '\\':
			escaped = true
		case r == '"':
			quoted = !quoted
		case !quoted && unicode.IsSpace(r):
			if current.Len() > 0 {
				fields = append(fields, current.String())
				current.Reset()
			}
			continue
		}
		current.WriteRune(r)
	}
	if quoted {
		return nil, fmt.Errorf("unterminated quote in %q", s)
	}
	if current.Len() > 0 {
		fields = append(fields, current.String())
	}
	return fields, nil
}

// ReceiverName returns the type name of a method receiver expression,
// stripping pointers and type parameter lists.
func ReceiverName(expr ast.Expr) string {
	for {
		switch e := expr.(type) {
		case *ast.StarExpr:
			expr = e.X
		case *ast.ParenExpr:
			expr = e.X
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		case *ast.Ident:
			return e.Name
		default:
			return ""
		}
	}
}
