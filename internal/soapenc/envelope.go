package soapenc

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

const (
	// EnvelopeNS is the SOAP 1.1 envelope namespace.
	EnvelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"
	// ServiceNS is the namespace of operation elements.
	ServiceNS = "http://soap.rpc.jira.atlassian.com"
	// ContentType is the media type of every request and response.
	ContentType = "text/xml; charset=utf-8"

	xsiNS = "http://www.w3.org/2001/XMLSchema-instance"
	xsdNS = "http://www.w3.org/2001/XMLSchema"
)

var (
	// ErrNoBody indicates an envelope without a SOAP body.
	ErrNoBody = errors.New("soap envelope has no body")
	// ErrNoOperation indicates a body without an operation element.
	ErrNoOperation = errors.New("soap body has no operation element")
)

// ParamName returns the wire name of the positional parameter at index i.
func ParamName(i int) string {
	return fmt.Sprintf("in%d", i)
}

// ResponseName returns the element name wrapping the result of operation.
func ResponseName(operation string) string {
	return operation + "Response"
}

// ReturnName returns the element name carrying the result of operation.
func ReturnName(operation string) string {
	return operation + "Return"
}

// EncodeRequest writes a request envelope calling operation with positional args.
func EncodeRequest(w io.Writer, operation string, args ...any) error {
	return writeEnvelope(w, func(enc *xml.Encoder) error {
		op := opStart(operation)
		if err := enc.EncodeToken(op); err != nil {
			return err
		}
		for i, arg := range args {
			if err := encodeValue(enc, ParamName(i), arg); err != nil {
				return fmt.Errorf("encode %s %s: %w", operation, ParamName(i), err)
			}
		}
		return enc.EncodeToken(op.End())
	})
}

// EncodeResponse writes a response envelope. A void operation passes void=true
// and the response element is left empty.
func EncodeResponse(w io.Writer, operation string, result any, void bool) error {
	return writeEnvelope(w, func(enc *xml.Encoder) error {
		resp := opStart(ResponseName(operation))
		if err := enc.EncodeToken(resp); err != nil {
			return err
		}
		if !void {
			if err := encodeValue(enc, ReturnName(operation), result); err != nil {
				return fmt.Errorf("encode %s result: %w", operation, err)
			}
		}
		return enc.EncodeToken(resp.End())
	})
}

func opStart(name string) xml.StartElement {
	return xml.StartElement{
		Name: xml.Name{Local: "jira:" + name},
		Attr: []xml.Attr{{Name: xml.Name{Local: "xmlns:jira"}, Value: ServiceNS}},
	}
}

func writeEnvelope(w io.Writer, body func(enc *xml.Encoder) error) error {
	bw := bufio.NewWriter(w)
	if _, err := io.WriteString(bw, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(bw)
	envelope := xml.StartElement{
		Name: xml.Name{Local: "soapenv:Envelope"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmlns:soapenv"}, Value: EnvelopeNS},
			{Name: xml.Name{Local: "xmlns:xsd"}, Value: xsdNS},
			{Name: xml.Name{Local: "xmlns:xsi"}, Value: xsiNS},
		},
	}
	bodyStart := xml.StartElement{Name: xml.Name{Local: "soapenv:Body"}}
	if err := enc.EncodeToken(envelope); err != nil {
		return err
	}
	if err := enc.EncodeToken(bodyStart); err != nil {
		return err
	}
	if err := body(enc); err != nil {
		return err
	}
	if err := enc.EncodeToken(bodyStart.End()); err != nil {
		return err
	}
	if err := enc.EncodeToken(envelope.End()); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	return bw.Flush()
}

// Request is a decoded operation call.
type Request struct {
	Operation string
	Params    []Value
}

// Param returns the parameter at index i, or a nil value when absent.
func (r *Request) Param(i int) Value {
	if r == nil || i < 0 || i >= len(r.Params) {
		return Value{Name: ParamName(i), Nil: true}
	}
	return r.Params[i]
}

// DecodeRequest reads a request envelope.
func DecodeRequest(r io.Reader) (*Request, error) {
	dec := xml.NewDecoder(r)
	op, err := openBody(dec)
	if err != nil {
		return nil, err
	}
	req := &Request{Operation: op.Name.Local}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", req.Operation, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			value, err := decodeRaw(dec, t)
			if err != nil {
				return nil, fmt.Errorf("decode %s %s: %w", req.Operation, t.Name.Local, err)
			}
			req.Params = append(req.Params, value)
		case xml.EndElement:
			return req, nil
		}
	}
}

// DecodeResponse reads a response envelope for operation into out. A fault in
// the body is returned as *schema.Fault. out may be nil for void operations.
func DecodeResponse(r io.Reader, operation string, out any) error {
	dec := xml.NewDecoder(r)
	first, err := openBody(dec)
	if err != nil {
		return err
	}
	if first.Name.Local == "Fault" {
		return decodeFault(dec, first)
	}
	if first.Name.Local != ResponseName(operation) {
		return fmt.Errorf("unexpected response element %q for %s", first.Name.Local, operation)
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode %s response: %w", operation, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			value, err := decodeRaw(dec, t)
			if err != nil {
				return fmt.Errorf("decode %s response: %w", operation, err)
			}
			if out == nil {
				return nil
			}
			return value.Decode(out)
		case xml.EndElement:
			return nil
		}
	}
}

// openBody advances to the first element inside the SOAP body.
func openBody(dec *xml.Decoder) (xml.StartElement, error) {
	inBody := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			if inBody {
				return xml.StartElement{}, ErrNoOperation
			}
			return xml.StartElement{}, ErrNoBody
		}
		if err != nil {
			return xml.StartElement{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if !inBody {
				if t.Name.Local == "Body" {
					inBody = true
				}
				continue
			}
			return t, nil
		case xml.EndElement:
			if inBody && t.Name.Local == "Body" {
				return xml.StartElement{}, ErrNoOperation
			}
		}
	}
}
