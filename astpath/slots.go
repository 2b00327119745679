package astpath

import (
	"fmt"
	"reflect"

	"github.com/t14raptor/go-fast/ast"
)

// Slot identifies one structural child position of a node: the struct field
// holding it and, for list-valued fields, the element index.
type Slot struct {
	Field string
	Index int // -1 when the field is not list-valued
	Node  ast.Node
}

// The AST boxes expressions, statements and a few other categories in
// single-field container structs so methods can be defined on them. Paths
// always address the semantic node inside the box; the table below maps each
// container type to its payload field.
var containerField = map[reflect.Type]string{
	reflect.TypeOf(ast.Expression{}):         "Expr",
	reflect.TypeOf(ast.Statement{}):          "Stmt",
	reflect.TypeOf(ast.BindingTarget{}):      "Target",
	reflect.TypeOf(ast.ClassElement{}):       "Element",
	reflect.TypeOf(ast.Property{}):           "Prop",
	reflect.TypeOf(ast.ForInto{}):            "Into",
	reflect.TypeOf(ast.ForLoopInitializer{}): "Initializer",
	reflect.TypeOf(ast.ConciseBody{}):        "Body",
}

var astNodeType = reflect.TypeOf((*ast.Node)(nil)).Elem()

// Category returns the syntactic category of a raw node: the name of its
// concrete type, e.g. "Identifier" or "CallExpression".
func Category(n ast.Node) string {
	if n == nil {
		return ""
	}
	t := reflect.TypeOf(n)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// IsScopeBoundary reports whether n opens a lexical scope. These are the
// nodes the upstream resolver allocates a ScopeContext for.
func IsScopeBoundary(n ast.Node) bool {
	switch n.(type) {
	case *ast.Program, *ast.FunctionLiteral, *ast.ArrowFunctionLiteral, *ast.ClassStaticBlock:
		return true
	}
	return false
}

// nodeValue returns the struct value of n, which must be a pointer to a node
// struct.
func nodeValue(n ast.Node) (reflect.Value, error) {
	v := reflect.ValueOf(n)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return reflect.Value{}, fmt.Errorf("%w: %T is not a node pointer", ErrBadSlot, n)
	}
	return v.Elem(), nil
}

// unboxValue extracts the semantic child node held by a single (non-slice)
// field value. The second result is false when the slot is empty.
func unboxValue(v reflect.Value) (ast.Node, bool) {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return nil, false
		}
		if n, ok := v.Interface().(ast.Node); ok {
			return n, true
		}
		return nil, false
	case reflect.Pointer:
		if v.IsNil() {
			return nil, false
		}
		if field, ok := containerField[v.Type().Elem()]; ok {
			return unboxValue(v.Elem().FieldByName(field))
		}
		if n, ok := v.Interface().(ast.Node); ok {
			return n, true
		}
		return nil, false
	case reflect.Struct:
		if field, ok := containerField[v.Type()]; ok {
			return unboxValue(v.FieldByName(field))
		}
		if v.CanAddr() && v.Addr().Type().Implements(astNodeType) {
			return v.Addr().Interface().(ast.Node), true
		}
		return nil, false
	}
	return nil, false
}

// childBearing reports whether a struct field can hold node children at all.
// Position indices, operator tokens, flags and raw literals are skipped.
func childBearing(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return false
	case reflect.Pointer:
		return childBearing(t.Elem())
	case reflect.Slice:
		return childBearing(t.Elem())
	}
	return true
}

// ChildSlots enumerates the structural children of n in struct field order,
// which is the order the AST's own visitor descends in. Empty optional slots
// and elided list elements are omitted.
func ChildSlots(n ast.Node) []Slot {
	sv, err := nodeValue(n)
	if err != nil || sv.Kind() != reflect.Struct {
		return nil
	}
	var slots []Slot
	st := sv.Type()
	for i := 0; i < st.NumField(); i++ {
		sf := st.Field(i)
		if !sf.IsExported() || !childBearing(sf.Type) {
			continue
		}
		fv := sv.Field(i)
		if fv.Kind() == reflect.Slice {
			for j := 0; j < fv.Len(); j++ {
				if c, ok := unboxValue(fv.Index(j)); ok {
					slots = append(slots, Slot{Field: sf.Name, Index: j, Node: c})
				}
			}
			continue
		}
		if c, ok := unboxValue(fv); ok {
			slots = append(slots, Slot{Field: sf.Name, Index: -1, Node: c})
		}
	}
	return slots
}

// slotField resolves the named field of n, or an error for unknown fields.
func slotField(n ast.Node, field string) (reflect.Value, reflect.StructField, error) {
	sv, err := nodeValue(n)
	if err != nil {
		return reflect.Value{}, reflect.StructField{}, err
	}
	sf, ok := sv.Type().FieldByName(field)
	if !ok {
		return reflect.Value{}, reflect.StructField{}, fmt.Errorf("%w: %s has no slot %q", ErrBadSlot, Category(n), field)
	}
	return sv.FieldByIndex(sf.Index), sf, nil
}

// ResolveSlot returns the node currently occupying the given slot of n.
func ResolveSlot(n ast.Node, field string, index int) (ast.Node, error) {
	fv, _, err := slotField(n, field)
	if err != nil {
		return nil, err
	}
	if index >= 0 {
		if fv.Kind() != reflect.Slice {
			return nil, fmt.Errorf("%w: %s.%s is not list-valued", ErrBadSlot, Category(n), field)
		}
		if index >= fv.Len() {
			return nil, fmt.Errorf("%w: %s.%s[%d], length %d", ErrBadSlot, Category(n), field, index, fv.Len())
		}
		fv = fv.Index(index)
	}
	c, ok := unboxValue(fv)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s is empty", ErrBadSlot, Category(n), field)
	}
	return c, nil
}

// IsListSlot reports whether the named slot of n is list-valued.
func IsListSlot(n ast.Node, field string) bool {
	fv, _, err := slotField(n, field)
	return err == nil && fv.Kind() == reflect.Slice
}

// setInto writes child into a single slot value: a container struct, a typed
// node pointer, or a bare interface field.
func setInto(target reflect.Value, child ast.Node) error {
	cv := reflect.ValueOf(child)
	switch target.Kind() {
	case reflect.Interface:
		if !cv.Type().AssignableTo(target.Type()) {
			return fmt.Errorf("%w: %T cannot occupy a %s slot", ErrBadSlot, child, target.Type())
		}
		target.Set(cv)
		return nil
	case reflect.Pointer:
		if field, ok := containerField[target.Type().Elem()]; ok {
			if target.IsNil() {
				target.Set(reflect.New(target.Type().Elem()))
			}
			return setInto(target.Elem().FieldByName(field), child)
		}
		if !cv.Type().AssignableTo(target.Type()) {
			return fmt.Errorf("%w: %T cannot occupy a %s slot", ErrBadSlot, child, target.Type())
		}
		target.Set(cv)
		return nil
	case reflect.Struct:
		if field, ok := containerField[target.Type()]; ok {
			return setInto(target.FieldByName(field), child)
		}
		// Value-struct element such as a VariableDeclarator: the child must
		// be a pointer to the same struct type.
		if cv.Kind() == reflect.Pointer && cv.Type().Elem() == target.Type() {
			target.Set(cv.Elem())
			return nil
		}
		return fmt.Errorf("%w: %T cannot occupy a %s slot", ErrBadSlot, child, target.Type())
	}
	return fmt.Errorf("%w: cannot write %s slot", ErrBadSlot, target.Type())
}

// WriteSlot replaces the node at the given slot of n with child.
func WriteSlot(n ast.Node, field string, index int, child ast.Node) error {
	fv, _, err := slotField(n, field)
	if err != nil {
		return err
	}
	if index >= 0 {
		if fv.Kind() != reflect.Slice {
			return fmt.Errorf("%w: %s.%s is not list-valued", ErrBadSlot, Category(n), field)
		}
		if index >= fv.Len() {
			return fmt.Errorf("%w: %s.%s[%d], length %d", ErrBadSlot, Category(n), field, index, fv.Len())
		}
		return setInto(fv.Index(index), child)
	}
	return setInto(fv, child)
}

// DeleteSlot detaches the node at the given slot. List elements are removed
// from their slice; optional single slots are cleared. Clearing a required
// single slot would leave the parent grammatically incomplete and fails.
func DeleteSlot(n ast.Node, field string, index int) error {
	fv, sf, err := slotField(n, field)
	if err != nil {
		return err
	}
	if index >= 0 {
		if fv.Kind() != reflect.Slice {
			return fmt.Errorf("%w: %s.%s is not list-valued", ErrBadSlot, Category(n), field)
		}
		if index >= fv.Len() {
			return fmt.Errorf("%w: %s.%s[%d], length %d", ErrBadSlot, Category(n), field, index, fv.Len())
		}
		out := reflect.MakeSlice(fv.Type(), 0, fv.Len()-1)
		out = reflect.AppendSlice(out, fv.Slice(0, index))
		out = reflect.AppendSlice(out, fv.Slice(index+1, fv.Len()))
		fv.Set(out)
		return nil
	}
	if fv.Kind() == reflect.Interface || sf.Tag.Get("optional") == "true" {
		fv.Set(reflect.Zero(fv.Type()))
		return nil
	}
	return fmt.Errorf("%w: %s.%s is required", ErrBadSlot, Category(n), field)
}

// InsertSlot inserts child into the list-valued slot of n at index, shifting
// later elements right.
func InsertSlot(n ast.Node, field string, index int, child ast.Node) error {
	fv, _, err := slotField(n, field)
	if err != nil {
		return err
	}
	if fv.Kind() != reflect.Slice {
		return fmt.Errorf("%w: %s.%s is not list-valued", ErrNotInList, Category(n), field)
	}
	if index < 0 || index > fv.Len() {
		return fmt.Errorf("%w: %s.%s[%d], length %d", ErrBadSlot, Category(n), field, index, fv.Len())
	}
	elem := reflect.New(fv.Type().Elem()).Elem()
	if err := setInto(elem, child); err != nil {
		return err
	}
	out := reflect.MakeSlice(fv.Type(), 0, fv.Len()+1)
	out = reflect.AppendSlice(out, fv.Slice(0, index))
	out = reflect.Append(out, elem)
	out = reflect.AppendSlice(out, fv.Slice(index, fv.Len()))
	fv.Set(out)
	return nil
}
