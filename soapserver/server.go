package soapserver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"pkt.systems/jirasoap/internal/logx"
	"pkt.systems/jirasoap/internal/soapenc"
	"pkt.systems/jirasoap/schema"
)

const tracerName = "pkt.systems/jirasoap/soapserver"

type operationHandler struct {
	name string
	void bool
	call func(ctx context.Context, svc schema.Service, req *soapenc.Request) (any, error)
}

// Server exposes a schema.Service over SOAP.
type Server struct {
	cfg      Config
	svc      schema.Service
	handlers map[string]operationHandler
	tracer   trace.Tracer
}

// New constructs a server dispatching to svc.
func New(svc schema.Service, cfg Config) *Server {
	handlers := make(map[string]operationHandler, len(operationHandlers))
	for _, h := range operationHandlers {
		handlers[h.name] = h
	}
	return &Server{
		cfg:      cfg.withDefaults(),
		svc:      svc,
		handlers: handlers,
		tracer:   otel.Tracer(tracerName),
	}
}

// Operations lists the wire names the server dispatches.
func (s *Server) Operations() []string {
	names := make([]string, 0, len(operationHandlers))
	for _, h := range operationHandlers {
		names = append(names, h.name)
	}
	return names
}

// Handler returns an http.Handler for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.cfg.EndpointPath, s.handleEndpoint)
	mux.HandleFunc("/healthz", s.handleHealth)

	handler := otelhttp.NewHandler(withRequestLogging(mux), "jirasoap")
	if s.cfg.BasePath == "" {
		return handler
	}
	prefix := s.cfg.BasePath
	root := http.NewServeMux()
	root.Handle(prefix+"/", http.StripPrefix(prefix, handler))
	return root
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleEndpoint(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if _, ok := r.URL.Query()["wsdl"]; ok {
			s.handleWSDL(w, r)
			return
		}
		http.Error(w, "SOAP endpoint: POST an envelope or GET ?wsdl", http.StatusMethodNotAllowed)
		return
	case http.MethodPost:
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	info := requestInfoFrom(ctx)
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	req, err := soapenc.DecodeRequest(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeFault(w, r, http.StatusRequestEntityTooLarge, soapenc.CodeClient, schema.RemoteFault("request exceeds %d bytes", s.cfg.MaxBodyBytes))
			return
		}
		s.writeFault(w, r, http.StatusInternalServerError, soapenc.CodeClient, schema.RemoteFault("malformed envelope: %v", err))
		return
	}
	if info != nil {
		info.operation = req.Operation
	}
	handler, ok := s.handlers[req.Operation]
	if !ok {
		s.writeFault(w, r, http.StatusInternalServerError, soapenc.CodeClient, schema.RemoteFault("no such operation '%s'", req.Operation))
		return
	}
	op, _ := schema.LookupOperation(req.Operation)

	ctx, span := s.tracer.Start(ctx, "jirasoap/"+req.Operation,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("rpc.system", "soap"),
			attribute.String("rpc.method", req.Operation),
		),
	)
	defer span.End()
	logger := logx.WithOperation(ctx, req.Operation, "")
	ctx = logx.ContextWithOperationLogger(ctx, logger, req.Operation)

	result, callErr := handler.call(ctx, s.svc, req)
	if callErr != nil {
		fault := s.narrow(ctx, op, callErr)
		span.SetAttributes(attribute.String("jirasoap.fault", string(fault.Kind)))
		span.SetStatus(codes.Error, fault.Error())
		s.writeFault(w, r, http.StatusInternalServerError, soapenc.CodeServer, fault)
		return
	}

	var buf bytes.Buffer
	if err := soapenc.EncodeResponse(&buf, req.Operation, result, handler.void); err != nil {
		logger.Error("soap encode response failed", "err", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "encode response")
		s.writeFault(w, r, http.StatusInternalServerError, soapenc.CodeServer, schema.RemoteFault("could not encode response"))
		return
	}
	span.SetStatus(codes.Ok, "")
	w.Header().Set("Content-Type", soapenc.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// narrow maps err onto a fault the operation declares. Undeclared kinds and
// non-fault errors become generic remote faults.
func (s *Server) narrow(ctx context.Context, op schema.Operation, err error) *schema.Fault {
	logger := logx.Ctx(ctx)
	var perr *paramError
	if errors.As(err, &perr) {
		logger.Debug("soap parameter rejected", "param", soapenc.ParamName(perr.index), "err", perr.err)
		message := fmt.Sprintf("invalid parameter %s", soapenc.ParamName(perr.index))
		if op.Declares(schema.FaultValidation) {
			return schema.ValidationFault("%s", message)
		}
		return schema.RemoteFault("%s", message)
	}
	var fault *schema.Fault
	if !errors.As(err, &fault) {
		logger.Error("soap operation failed", "err", err)
		return schema.RemoteFault("internal error")
	}
	if fault.Kind != schema.FaultRemote && !op.Declares(fault.Kind) {
		logger.Debug("soap fault narrowed", "from", fault.Kind)
		return &schema.Fault{Kind: schema.FaultRemote, Message: fault.Message}
	}
	return fault
}

func (s *Server) writeFault(w http.ResponseWriter, r *http.Request, status int, code string, fault *schema.Fault) {
	if info := requestInfoFrom(r.Context()); info != nil {
		info.fault = string(fault.Kind)
	}
	var buf bytes.Buffer
	if err := soapenc.EncodeFault(&buf, code, fault); err != nil {
		logx.Ctx(r.Context()).Error("soap encode fault failed", "err", err)
		http.Error(w, fault.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", soapenc.ContentType)
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

type paramError struct {
	index int
	err   error
}

func (e *paramError) Error() string {
	return fmt.Sprintf("decode %s: %v", soapenc.ParamName(e.index), e.err)
}

func (e *paramError) Unwrap() error {
	return e.err
}

func decodeParams(req *soapenc.Request, targets ...any) error {
	for i, target := range targets {
		if err := req.Param(i).Decode(target); err != nil {
			return &paramError{index: i, err: err}
		}
	}
	return nil
}
