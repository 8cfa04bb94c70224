package soapclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"pkt.systems/jirasoap/schema"
	"pkt.systems/jirasoap/soapserver"
)

type stubService struct {
	schema.UnimplementedService
	loggedOut []string
}

func (s *stubService) Login(_ context.Context, username, password string) (string, error) {
	if password != "secret" {
		return "", schema.AuthenticationFault("Invalid username or password.")
	}
	return "tok-" + username, nil
}

func (s *stubService) Logout(_ context.Context, token string) (bool, error) {
	s.loggedOut = append(s.loggedOut, token)
	return true, nil
}

func (s *stubService) GetComponents(_ context.Context, token, projectKey string) ([]schema.RemoteComponent, error) {
	if token != "tok-alice" {
		return nil, schema.AuthenticationFault("bad token")
	}
	if projectKey != "PROJ" {
		return nil, schema.PermissionFault("no project %s", projectKey)
	}
	return []schema.RemoteComponent{{ID: "10", Name: "UI"}, {ID: "11", Name: "Engine"}}, nil
}

func (s *stubService) AddBase64EncodedAttachmentsToIssue(_ context.Context, _, _ string, fileNames, data []string) (bool, error) {
	return len(fileNames) == len(data), nil
}

func newTestClient(t *testing.T, svc schema.Service) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(soapserver.New(svc, soapserver.Config{}).Handler())
	t.Cleanup(srv.Close)
	client, err := New(srv.URL + "/secure/Dashboard.jspa")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client, srv
}

func TestClientCoversCatalogue(t *testing.T) {
	typ := reflect.TypeOf(&Client{})
	for _, op := range schema.Operations {
		if _, ok := typ.MethodByName(op.Method); !ok {
			t.Fatalf("client lacks %s", op.Method)
		}
	}
}

func TestClientRoundTrip(t *testing.T) {
	client, srv := newTestClient(t, &stubService{})
	if client.BaseURL() != srv.URL {
		t.Fatalf("base url = %q want %q", client.BaseURL(), srv.URL)
	}
	ctx := context.Background()
	token, err := client.Login(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	components, err := client.GetComponents(ctx, token, "PROJ")
	if err != nil {
		t.Fatalf("GetComponents: %v", err)
	}
	if len(components) != 2 || components[1].Name != "Engine" {
		t.Fatalf("components = %+v", components)
	}
	ok, err := client.AddBase64EncodedAttachmentsToIssue(ctx, token, "PROJ-1", []string{"a"}, []string{"aGk="})
	if err != nil || !ok {
		t.Fatalf("AddBase64EncodedAttachmentsToIssue = %v, %v", ok, err)
	}
}

func TestClientFaults(t *testing.T) {
	client, _ := newTestClient(t, &stubService{})
	ctx := context.Background()
	if _, err := client.Login(ctx, "alice", "nope"); !errors.Is(err, schema.ErrAuthentication) {
		t.Fatalf("expected authentication fault, got %v", err)
	}
	_, err := client.GetComponents(ctx, "tok-alice", "OTHER")
	if !errors.Is(err, schema.ErrPermission) {
		t.Fatalf("expected permission fault, got %v", err)
	}
	if IsTransport(err) {
		t.Fatalf("fault must not be a transport error")
	}
	if _, err := client.GetPriorities(ctx, "tok-alice"); !errors.Is(err, schema.ErrRemote) {
		t.Fatalf("expected remote fault for unimplemented op, got %v", err)
	}
}

func TestTransportErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("SOAPAction") == "" {
			t.Errorf("missing SOAPAction header")
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()
	client, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = client.GetServerInfo(context.Background(), "tok")
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if te.StatusCode != http.StatusNotFound || te.Operation != "getServerInfo" {
		t.Fatalf("transport error = %+v", te)
	}
	if schema.KindOf(err) != "" {
		t.Fatalf("transport error must not carry a fault kind")
	}

	garbage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>login page</html>"))
	}))
	defer garbage.Close()
	client, _ = New(garbage.URL)
	if _, err := client.GetServerInfo(context.Background(), "tok"); !IsTransport(err) {
		t.Fatalf("expected transport error for non-soap body, got %v", err)
	}
}

func TestSession(t *testing.T) {
	svc := &stubService{}
	client, _ := newTestClient(t, svc)
	ctx := context.Background()
	session, err := Login(ctx, client, "alice", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if session.Token() != "tok-alice" || session.Username() != "alice" {
		t.Fatalf("session = %q %q", session.Token(), session.Username())
	}
	if err := session.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := session.Close(ctx); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if len(svc.loggedOut) != 1 || svc.loggedOut[0] != "tok-alice" {
		t.Fatalf("logged out = %v", svc.loggedOut)
	}
	if session.Token() != "" {
		t.Fatalf("token should be cleared")
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"jira.example.com", "http://jira.example.com"},
		{" https://jira.example.com/ ", "https://jira.example.com"},
		{"http://jira.example.com/secure/Dashboard.jspa", "http://jira.example.com"},
		{"jira.example.com/jira/secure/", "http://jira.example.com/jira"},
		{"http://jira.example.com/jira/rpc/soap/jirasoapservice-v2", "http://jira.example.com/jira"},
		{"http://localhost:8080/secure/IssueNavigator.jspa?reset=true", "http://localhost:8080"},
	}
	for _, tc := range cases {
		got, err := NormalizeBaseURL(tc.in)
		if err != nil {
			t.Fatalf("NormalizeBaseURL(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("NormalizeBaseURL(%q) = %q want %q", tc.in, got, tc.want)
		}
	}
	for _, bad := range []string{"", "ftp://host", "http://"} {
		if _, err := NormalizeBaseURL(bad); !errors.Is(err, ErrInvalidBaseURL) {
			t.Fatalf("NormalizeBaseURL(%q) err = %v", bad, err)
		}
	}
}

func TestBrowseURL(t *testing.T) {
	if got := BrowseURL("http://jira/", "PROJ-7"); got != "http://jira/browse/PROJ-7" {
		t.Fatalf("BrowseURL = %q", got)
	}
}
