package soapserver

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pkt.systems/jirasoap/internal/soapenc"
	"pkt.systems/jirasoap/schema"
)

type stubService struct {
	schema.UnimplementedService
	deleted []string
}

func (s *stubService) Login(_ context.Context, username, password string) (string, error) {
	if password != "secret" {
		return "", schema.AuthenticationFault("Invalid username or password.")
	}
	return "tok-" + username, nil
}

func (s *stubService) GetIssue(_ context.Context, token, issueKey string) (*schema.RemoteIssue, error) {
	if token != "tok-alice" {
		return nil, schema.AuthenticationFault("bad token")
	}
	return &schema.RemoteIssue{Key: issueKey, Project: "PROJ", Type: "1", Summary: "found"}, nil
}

func (s *stubService) DeleteIssue(_ context.Context, _ string, issueKey string) error {
	if issueKey == "PROJ-9" {
		return schema.ValidationFault("cannot delete %s", issueKey)
	}
	if issueKey == "PROJ-500" {
		return errors.New("database exploded at /var/lib/secret")
	}
	s.deleted = append(s.deleted, issueKey)
	return nil
}

func call(t *testing.T, handler http.Handler, operation string, args ...any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if err := soapenc.EncodeRequest(&body, operation, args...); err != nil {
		t.Fatalf("encode: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, DefaultEndpointPath, &body)
	req.Header.Set("Content-Type", soapenc.ContentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestDispatchCoversCatalogue(t *testing.T) {
	srv := New(&stubService{}, Config{})
	names := srv.Operations()
	if len(names) != len(schema.Operations) {
		t.Fatalf("dispatch has %d operations, catalogue %d", len(names), len(schema.Operations))
	}
	for _, op := range schema.Operations {
		h, ok := srv.handlers[op.Name]
		if !ok {
			t.Fatalf("missing handler for %s", op.Name)
		}
		if h.call == nil {
			t.Fatalf("nil handler for %s", op.Name)
		}
	}
}

func TestCallReturnsResult(t *testing.T) {
	handler := New(&stubService{}, Config{}).Handler()
	rec := call(t, handler, "getIssue", "tok-alice", "PROJ-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	var issue *schema.RemoteIssue
	if err := soapenc.DecodeResponse(rec.Body, "getIssue", &issue); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if issue == nil || issue.Key != "PROJ-1" || issue.Summary != "found" {
		t.Fatalf("issue = %+v", issue)
	}
}

func TestVoidOperation(t *testing.T) {
	svc := &stubService{}
	handler := New(svc, Config{}).Handler()
	rec := call(t, handler, "deleteIssue", "tok-alice", "PROJ-2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if err := soapenc.DecodeResponse(rec.Body, "deleteIssue", nil); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(svc.deleted) != 1 || svc.deleted[0] != "PROJ-2" {
		t.Fatalf("deleted = %v", svc.deleted)
	}
}

func TestDeclaredFaultPassesThrough(t *testing.T) {
	handler := New(&stubService{}, Config{}).Handler()
	rec := call(t, handler, "login", "alice", "wrong")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "soapenv:Server.userException") {
		t.Fatalf("expected server fault code, got %s", rec.Body.String())
	}
	err := soapenc.DecodeResponse(rec.Body, "login", nil)
	if !errors.Is(err, schema.ErrAuthentication) {
		t.Fatalf("expected authentication fault, got %v", err)
	}
}

func TestUndeclaredFaultIsNarrowed(t *testing.T) {
	handler := New(&stubService{}, Config{}).Handler()
	rec := call(t, handler, "deleteIssue", "tok-alice", "PROJ-9")
	err := soapenc.DecodeResponse(rec.Body, "deleteIssue", nil)
	if !errors.Is(err, schema.ErrRemote) {
		t.Fatalf("expected narrowed remote fault, got %v", err)
	}
	if !strings.Contains(err.Error(), "cannot delete PROJ-9") {
		t.Fatalf("expected message to survive narrowing, got %v", err)
	}
}

func TestInternalErrorIsHidden(t *testing.T) {
	handler := New(&stubService{}, Config{}).Handler()
	rec := call(t, handler, "deleteIssue", "tok-alice", "PROJ-500")
	if strings.Contains(rec.Body.String(), "/var/lib/secret") {
		t.Fatalf("internal detail leaked: %s", rec.Body.String())
	}
	err := soapenc.DecodeResponse(rec.Body, "deleteIssue", nil)
	if !errors.Is(err, schema.ErrRemote) {
		t.Fatalf("expected remote fault, got %v", err)
	}
}

func TestUnimplementedOperation(t *testing.T) {
	handler := New(&stubService{}, Config{}).Handler()
	rec := call(t, handler, "getPriorities", "tok-alice")
	err := soapenc.DecodeResponse(rec.Body, "getPriorities", nil)
	// getPriorities declares no generic fault, the remote kind is still reported.
	if !errors.Is(err, schema.ErrRemote) {
		t.Fatalf("expected remote fault, got %v", err)
	}
}

func TestUnknownOperationIsClientFault(t *testing.T) {
	handler := New(&stubService{}, Config{}).Handler()
	rec := call(t, handler, "launchRockets", "tok-alice")
	if !strings.Contains(rec.Body.String(), "soapenv:Client") {
		t.Fatalf("expected client fault, got %s", rec.Body.String())
	}
}

func TestBadParameterIsValidationWhenDeclared(t *testing.T) {
	handler := New(&stubService{}, Config{}).Handler()
	body := `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/"><soapenv:Body>` +
		`<jira:addAttachmentsToIssue xmlns:jira="http://soap.rpc.jira.atlassian.com"><in0>tok</in0><in1>PROJ-1</in1>` +
		`<in2><item>a.txt</item></in2><in3><item>!!!not base64!!!</item></in3></jira:addAttachmentsToIssue>` +
		`</soapenv:Body></soapenv:Envelope>`
	req := httptest.NewRequest(http.MethodPost, DefaultEndpointPath, strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	err := soapenc.DecodeResponse(rec.Body, "addAttachmentsToIssue", nil)
	if !errors.Is(err, schema.ErrValidation) {
		t.Fatalf("expected validation fault, got %v", err)
	}
}

func TestBodyLimit(t *testing.T) {
	handler := New(&stubService{}, Config{MaxBodyBytes: 64}).Handler()
	rec := call(t, handler, "login", "alice", strings.Repeat("x", 256))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestWSDLAndHealth(t *testing.T) {
	srv := httptest.NewServer(New(&stubService{}, Config{BasePath: "/jira"}).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/jira" + DefaultEndpointPath + "?wsdl")
	if err != nil {
		t.Fatalf("get wsdl: %v", err)
	}
	data, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("wsdl status = %d", resp.StatusCode)
	}
	for _, want := range []string{`name="getIssuesFromJqlSearch"`, `RemoteAuthenticationException`, srv.URL + "/jira" + DefaultEndpointPath} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("wsdl missing %q", want)
		}
	}

	resp, err = http.Get(srv.URL + "/jira/healthz")
	if err != nil {
		t.Fatalf("get healthz: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz status = %d", resp.StatusCode)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	handler := New(&stubService{}, Config{}).Handler()
	req := httptest.NewRequest(http.MethodPut, DefaultEndpointPath, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}
