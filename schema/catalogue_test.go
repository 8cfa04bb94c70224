package schema

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestCatalogueMatchesService(t *testing.T) {
	if len(Operations) != 108 {
		t.Fatalf("expected 108 operations, got %d", len(Operations))
	}
	svc := reflect.TypeOf((*Service)(nil)).Elem()
	if svc.NumMethod() != len(Operations) {
		t.Fatalf("Service has %d methods, catalogue %d", svc.NumMethod(), len(Operations))
	}
	ctxType := reflect.TypeOf((*context.Context)(nil)).Elem()
	errType := reflect.TypeOf((*error)(nil)).Elem()
	names := map[string]bool{}
	methods := map[string]bool{}
	for _, op := range Operations {
		if names[op.Name] {
			t.Fatalf("duplicate operation %s", op.Name)
		}
		if methods[op.Method] {
			t.Fatalf("duplicate method %s", op.Method)
		}
		names[op.Name] = true
		methods[op.Method] = true

		m, ok := svc.MethodByName(op.Method)
		if !ok {
			t.Fatalf("%s: Service has no method %s", op.Name, op.Method)
		}
		if m.Type.NumIn() != op.Arity()+1 {
			t.Fatalf("%s: method takes %d args, catalogue arity %d", op.Name, m.Type.NumIn()-1, op.Arity())
		}
		if m.Type.In(0) != ctxType {
			t.Fatalf("%s: first argument must be a context", op.Name)
		}
		if op.TakesToken() && m.Type.In(1).Kind() != reflect.String {
			t.Fatalf("%s: token must be a string", op.Name)
		}
		if out := m.Type.NumOut(); out < 1 || out > 2 || m.Type.Out(out-1) != errType {
			t.Fatalf("%s: must return error last", op.Name)
		}
		if got, ok := LookupOperation(op.Name); !ok || got.Method != op.Method {
			t.Fatalf("LookupOperation(%s) = %+v, %v", op.Name, got, ok)
		}
	}
	if _, ok := LookupOperation("noSuchOperation"); ok {
		t.Fatalf("unexpected lookup hit")
	}
}

func TestDeclares(t *testing.T) {
	login, _ := LookupOperation("login")
	if !login.Declares(FaultAuthentication) || login.Declares(FaultPermission) {
		t.Fatalf("login faults = %v", login.Faults)
	}
	if login.TakesToken() || login.Arity() != 2 {
		t.Fatalf("login takes no token and two parameters")
	}
	logout, _ := LookupOperation("logout")
	if len(logout.Faults) != 0 {
		t.Fatalf("logout declares no faults, got %v", logout.Faults)
	}
	create, _ := LookupOperation("createIssue")
	for _, kind := range []FaultKind{FaultAuthentication, FaultPermission, FaultValidation, FaultRemote} {
		if !create.Declares(kind) {
			t.Fatalf("createIssue should declare %s", kind)
		}
	}
}

func TestFaultMatching(t *testing.T) {
	err := PermissionFault("no browse permission for %s", "PROJ")
	if err.Error() != "permission fault: no browse permission for PROJ" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrPermission) {
		t.Fatalf("expected match on kind")
	}
	if errors.Is(err, ErrAuthentication) {
		t.Fatalf("unexpected match on other kind")
	}
	if errors.Is(err, PermissionFault("other")) {
		t.Fatalf("unexpected match on different message")
	}
	wrapped := errors.Join(errors.New("context"), err)
	if KindOf(wrapped) != FaultPermission {
		t.Fatalf("KindOf(wrapped) = %q", KindOf(wrapped))
	}
	if KindOf(errors.New("plain")) != "" {
		t.Fatalf("plain errors carry no kind")
	}
}

func TestUnimplementedService(t *testing.T) {
	var svc Service = UnimplementedService{}
	_, err := svc.GetIssue(context.Background(), "tok", "PROJ-1")
	if !errors.Is(err, ErrRemote) {
		t.Fatalf("expected remote fault, got %v", err)
	}
}
