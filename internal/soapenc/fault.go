package soapenc

import (
	"encoding/xml"
	"io"
	"strings"

	"pkt.systems/jirasoap/schema"
)

const (
	// CodeServer is the fault code of faults raised by an operation.
	CodeServer = "soapenv:Server.userException"
	// CodeClient is the fault code of requests the server could not interpret.
	CodeClient = "soapenv:Client"

	exceptionPackage = "com.atlassian.jira.rpc.exception."
)

var faultClasses = map[schema.FaultKind]string{
	schema.FaultAuthentication: exceptionPackage + "RemoteAuthenticationException",
	schema.FaultPermission:     exceptionPackage + "RemotePermissionException",
	schema.FaultValidation:     exceptionPackage + "RemoteValidationException",
	schema.FaultRemote:         exceptionPackage + "RemoteException",
}

// FaultClass returns the exception class name reported for kind.
func FaultClass(kind schema.FaultKind) string {
	if class, ok := faultClasses[kind]; ok {
		return class
	}
	return faultClasses[schema.FaultRemote]
}

// KindForClass maps an exception class name back to a fault kind. Unknown
// classes map to FaultRemote.
func KindForClass(class string) schema.FaultKind {
	class = strings.TrimSpace(class)
	for kind, name := range faultClasses {
		if name == class {
			return kind
		}
	}
	return schema.FaultRemote
}

// EncodeFault writes a fault envelope for fault using code as faultcode.
func EncodeFault(w io.Writer, code string, fault *schema.Fault) error {
	if fault == nil {
		fault = schema.RemoteFault("unknown error")
	}
	class := FaultClass(fault.Kind)
	faultString := class
	if fault.Message != "" {
		faultString += ": " + fault.Message
	}
	return writeEnvelope(w, func(enc *xml.Encoder) error {
		start := xml.StartElement{Name: xml.Name{Local: "soapenv:Fault"}}
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		if err := encodeText(enc, xml.StartElement{Name: xml.Name{Local: "faultcode"}}, code); err != nil {
			return err
		}
		if err := encodeText(enc, xml.StartElement{Name: xml.Name{Local: "faultstring"}}, faultString); err != nil {
			return err
		}
		detail := xml.StartElement{Name: xml.Name{Local: "detail"}}
		if err := enc.EncodeToken(detail); err != nil {
			return err
		}
		if err := encodeText(enc, xml.StartElement{Name: xml.Name{Local: class}}, fault.Message); err != nil {
			return err
		}
		if err := enc.EncodeToken(detail.End()); err != nil {
			return err
		}
		return enc.EncodeToken(start.End())
	})
}

type wireFault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
	Detail struct {
		Elements []struct {
			XMLName xml.Name
			Text    string `xml:",chardata"`
		} `xml:",any"`
	} `xml:"detail"`
}

// decodeFault converts a SOAP fault element into a *schema.Fault.
func decodeFault(dec *xml.Decoder, start xml.StartElement) error {
	var wf wireFault
	if err := dec.DecodeElement(&wf, &start); err != nil {
		return err
	}
	kind := schema.FaultRemote
	message := strings.TrimSpace(wf.String)
	classFound := false
	for _, el := range wf.Detail.Elements {
		if strings.HasPrefix(el.XMLName.Local, exceptionPackage) {
			kind = KindForClass(el.XMLName.Local)
			classFound = true
			break
		}
	}
	if class, rest, ok := strings.Cut(message, ":"); ok && strings.HasPrefix(class, exceptionPackage) {
		if !classFound {
			kind = KindForClass(class)
		}
		message = strings.TrimSpace(rest)
	} else if strings.HasPrefix(message, exceptionPackage) {
		if !classFound {
			kind = KindForClass(message)
		}
		message = ""
	}
	return &schema.Fault{Kind: kind, Message: message}
}
