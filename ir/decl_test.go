package ir

import "testing"

func abstractAPI() *TypeDecl {
	return &TypeDecl{
		Name: GoIdentifier{Name: "AbstractAPI", Package: "api"},
		TypeParameters: []TypeParameterDescriptor{
			*ScopedTypeParam("E", "api.AbstractAPI"),
			*ScopedTypeParam("ID", "api.AbstractAPI"),
		},
		Interfaces: []*ReferenceDescriptor{
			Parameterized("Queryable", "api", ScopedTypeParam("E", "api.AbstractAPI"), ScopedTypeParam("ID", "api.AbstractAPI")),
		},
	}
}

func TestTypeDecl_IsGeneric(t *testing.T) {
	var nilDecl *TypeDecl
	if nilDecl.IsGeneric() {
		t.Error("nil TypeDecl should not be generic")
	}
	if (&TypeDecl{Name: GoIdentifier{Name: "BusinessAPI"}}).IsGeneric() {
		t.Error("TypeDecl without parameters should not be generic")
	}
	if !abstractAPI().IsGeneric() {
		t.Error("AbstractAPI should be generic")
	}
}

func TestTypeDecl_Implements(t *testing.T) {
	d := abstractAPI()
	got := d.Implements(GoIdentifier{Name: "Queryable", Package: "api"})
	if got == nil {
		t.Fatal("Implements(Queryable) should find the clause")
	}
	if len(got.Args) != 2 {
		t.Errorf("clause args = %d, want 2", len(got.Args))
	}
	if d.Implements(GoIdentifier{Name: "Queryable", Package: "other"}) != nil {
		t.Error("Implements should match the package too")
	}
}

func TestTypeDecl_Extends(t *testing.T) {
	d := &TypeDecl{
		Name:   GoIdentifier{Name: "BusinessAPI", Package: "api"},
		Super:  Parameterized("AbstractAPI", "api", Ref("Business", "api"), Int(64)),
		Embeds: []*ReferenceDescriptor{Parameterized("Auditing", "api", Ref("Business", "api"))},
	}
	if got := d.Extends(GoIdentifier{Name: "AbstractAPI", Package: "api"}); got != d.Super {
		t.Errorf("Extends(AbstractAPI) = %v, want the super clause", got)
	}
	if got := d.Extends(GoIdentifier{Name: "Auditing", Package: "api"}); got != d.Embeds[0] {
		t.Errorf("Extends(Auditing) = %v, want the embedded clause", got)
	}
	if got := d.Extends(GoIdentifier{Name: "Queryable", Package: "api"}); got != nil {
		t.Errorf("Extends(Queryable) = %v, want nil", got)
	}
}

func TestTypeDecl_Clauses(t *testing.T) {
	d := abstractAPI()
	d.Super = Ref("Base", "api")
	d.Embeds = []*ReferenceDescriptor{Ref("Mixin", "api")}

	var names []string
	for _, c := range d.Clauses() {
		names = append(names, c.Target.Name)
	}
	want := []string{"Base", "Mixin", "Queryable"}
	if len(names) != len(want) {
		t.Fatalf("Clauses() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Clauses()[%d] = %s, want %s", i, names[i], want[i])
		}
	}
	if got := (&TypeDecl{}).Clauses(); len(got) != 0 {
		t.Errorf("Clauses() of a plain type = %v", got)
	}
}

func TestTypeDecl_Reference(t *testing.T) {
	ref := abstractAPI().Reference()
	want := Parameterized("AbstractAPI", "api", ScopedTypeParam("E", "api.AbstractAPI"), ScopedTypeParam("ID", "api.AbstractAPI"))
	if !Equal(ref, want) {
		t.Errorf("Reference() = %v, want %v", ref, want)
	}
}

func TestMethodDecl_QualifiedName(t *testing.T) {
	m := &MethodDecl{Name: "GetAll", DeclaringType: abstractAPI()}
	if got := m.QualifiedName(); got != "AbstractAPI#GetAll" {
		t.Errorf("QualifiedName() = %q", got)
	}
	if got := (&MethodDecl{Name: "GetAll"}).QualifiedName(); got != "GetAll" {
		t.Errorf("QualifiedName() without declaring type = %q", got)
	}
}
