package soapserver

import (
	"encoding/xml"
	"net/http"
	"strings"

	"pkt.systems/jirasoap/internal/soapenc"
	"pkt.systems/jirasoap/schema"
)

type wsdlDefinitions struct {
	XMLName         xml.Name      `xml:"wsdl:definitions"`
	NSWSDL          string        `xml:"xmlns:wsdl,attr"`
	NSSOAP          string        `xml:"xmlns:wsdlsoap,attr"`
	NSXSD           string        `xml:"xmlns:xsd,attr"`
	NSImpl          string        `xml:"xmlns:impl,attr"`
	TargetNamespace string        `xml:"targetNamespace,attr"`
	Messages        []wsdlMessage `xml:"wsdl:message"`
	PortType        wsdlPortType  `xml:"wsdl:portType"`
	Binding         wsdlBinding   `xml:"wsdl:binding"`
	Service         wsdlService   `xml:"wsdl:service"`
}

type wsdlMessage struct {
	Name  string     `xml:"name,attr"`
	Parts []wsdlPart `xml:"wsdl:part"`
}

type wsdlPart struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
}

type wsdlPortType struct {
	Name       string          `xml:"name,attr"`
	Operations []wsdlOperation `xml:"wsdl:operation"`
}

type wsdlOperation struct {
	Name           string      `xml:"name,attr"`
	ParameterOrder string      `xml:"parameterOrder,attr,omitempty"`
	Input          wsdlIORef   `xml:"wsdl:input"`
	Output         wsdlIORef   `xml:"wsdl:output"`
	Faults         []wsdlIORef `xml:"wsdl:fault"`
}

type wsdlIORef struct {
	Name    string `xml:"name,attr,omitempty"`
	Message string `xml:"message,attr"`
}

type wsdlBinding struct {
	Name        string                 `xml:"name,attr"`
	Type        string                 `xml:"type,attr"`
	SOAPBinding wsdlSOAPBinding        `xml:"wsdlsoap:binding"`
	Operations  []wsdlBindingOperation `xml:"wsdl:operation"`
}

type wsdlSOAPBinding struct {
	Style     string `xml:"style,attr"`
	Transport string `xml:"transport,attr"`
}

type wsdlBindingOperation struct {
	Name          string          `xml:"name,attr"`
	SOAPOperation wsdlSOAPAction  `xml:"wsdlsoap:operation"`
	Input         wsdlBindingBody `xml:"wsdl:input"`
	Output        wsdlBindingBody `xml:"wsdl:output"`
}

type wsdlSOAPAction struct {
	SOAPAction string `xml:"soapAction,attr"`
}

type wsdlBindingBody struct {
	Body wsdlSOAPBody `xml:"wsdlsoap:body"`
}

type wsdlSOAPBody struct {
	Use       string `xml:"use,attr"`
	Namespace string `xml:"namespace,attr"`
}

type wsdlService struct {
	Name string   `xml:"name,attr"`
	Port wsdlPort `xml:"wsdl:port"`
}

type wsdlPort struct {
	Name    string          `xml:"name,attr"`
	Binding string          `xml:"binding,attr"`
	Address wsdlSOAPAddress `xml:"wsdlsoap:address"`
}

type wsdlSOAPAddress struct {
	Location string `xml:"location,attr"`
}

const portTypeName = "JiraSoapService"

func buildWSDL(location string) wsdlDefinitions {
	defs := wsdlDefinitions{
		NSWSDL:          "http://schemas.xmlsoap.org/wsdl/",
		NSSOAP:          "http://schemas.xmlsoap.org/wsdl/soap/",
		NSXSD:           "http://www.w3.org/2001/XMLSchema",
		NSImpl:          soapenc.ServiceNS,
		TargetNamespace: soapenc.ServiceNS,
		PortType:        wsdlPortType{Name: portTypeName},
		Binding: wsdlBinding{
			Name:        "jirasoapservice-v2SoapBinding",
			Type:        "impl:" + portTypeName,
			SOAPBinding: wsdlSOAPBinding{Style: "rpc", Transport: "http://schemas.xmlsoap.org/soap/http"},
		},
		Service: wsdlService{
			Name: portTypeName + "Service",
			Port: wsdlPort{
				Name:    "jirasoapservice-v2",
				Binding: "impl:jirasoapservice-v2SoapBinding",
				Address: wsdlSOAPAddress{Location: location},
			},
		},
	}
	for _, kind := range []schema.FaultKind{schema.FaultAuthentication, schema.FaultPermission, schema.FaultValidation, schema.FaultRemote} {
		defs.Messages = append(defs.Messages, wsdlMessage{
			Name:  faultName(kind),
			Parts: []wsdlPart{{Name: "fault", Type: "xsd:string"}},
		})
	}
	body := wsdlBindingBody{Body: wsdlSOAPBody{Use: "literal", Namespace: soapenc.ServiceNS}}
	for _, op := range schema.Operations {
		request := wsdlMessage{Name: op.Name + "Request"}
		for i := 0; i < op.Arity(); i++ {
			request.Parts = append(request.Parts, wsdlPart{Name: soapenc.ParamName(i), Type: "xsd:anyType"})
		}
		response := wsdlMessage{Name: soapenc.ResponseName(op.Name)}
		response.Parts = []wsdlPart{{Name: soapenc.ReturnName(op.Name), Type: "xsd:anyType"}}
		defs.Messages = append(defs.Messages, request, response)

		operation := wsdlOperation{
			Name:   op.Name,
			Input:  wsdlIORef{Name: request.Name, Message: "impl:" + request.Name},
			Output: wsdlIORef{Name: response.Name, Message: "impl:" + response.Name},
		}
		order := make([]string, op.Arity())
		for i := range order {
			order[i] = soapenc.ParamName(i)
		}
		operation.ParameterOrder = strings.Join(order, " ")
		for _, kind := range op.Faults {
			operation.Faults = append(operation.Faults, wsdlIORef{Name: faultName(kind), Message: "impl:" + faultName(kind)})
		}
		defs.PortType.Operations = append(defs.PortType.Operations, operation)
		defs.Binding.Operations = append(defs.Binding.Operations, wsdlBindingOperation{
			Name:          op.Name,
			SOAPOperation: wsdlSOAPAction{},
			Input:         body,
			Output:        body,
		})
	}
	return defs
}

func faultName(kind schema.FaultKind) string {
	class := soapenc.FaultClass(kind)
	return class[strings.LastIndex(class, ".")+1:]
}

func (s *Server) handleWSDL(w http.ResponseWriter, r *http.Request) {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	location := scheme + "://" + r.Host + s.cfg.BasePath + s.cfg.EndpointPath
	out, err := xml.MarshalIndent(buildWSDL(location), "", " ")
	if err != nil {
		http.Error(w, "wsdl unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", soapenc.ContentType)
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(out)
}
