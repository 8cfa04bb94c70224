package soapenc

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"reflect"
	"strings"
	"time"
)

var (
	timeType  = reflect.TypeOf(time.Time{})
	bytesType = reflect.TypeOf([]byte(nil))
)

// ItemName is the element name of array members.
const ItemName = "item"

// Value is one raw parameter or return element.
type Value struct {
	Name  string
	Nil   bool
	Inner []byte
}

// Decode stores the element content in the value pointed to by out. A nil
// element leaves out untouched.
func (v Value) Decode(out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("decode %s: target must be a non-nil pointer", v.Name)
	}
	if v.Nil {
		return nil
	}
	if err := decodeInto(v.Inner, rv.Elem()); err != nil {
		return fmt.Errorf("decode %s: %w", v.Name, err)
	}
	return nil
}

type rawElement struct {
	Inner []byte `xml:",innerxml"`
}

func decodeRaw(dec *xml.Decoder, start xml.StartElement) (Value, error) {
	var raw rawElement
	if err := dec.DecodeElement(&raw, &start); err != nil {
		return Value{}, err
	}
	value := Value{Name: start.Name.Local, Inner: raw.Inner}
	for _, attr := range start.Attr {
		if attr.Name.Local == "nil" && (attr.Value == "true" || attr.Value == "1") {
			value.Nil = true
		}
	}
	return value, nil
}

func encodeValue(enc *xml.Encoder, name string, value any) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if value == nil {
		return encodeNil(enc, start)
	}
	return encodeReflect(enc, start, reflect.ValueOf(value))
}

func encodeNil(enc *xml.Encoder, start xml.StartElement) error {
	start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "xsi:nil"}, Value: "true"})
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	return enc.EncodeToken(start.End())
}

func encodeText(enc *xml.Encoder, start xml.StartElement, text string) error {
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if text != "" {
		if err := enc.EncodeToken(xml.CharData(text)); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

func encodeReflect(enc *xml.Encoder, start xml.StartElement, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return encodeNil(enc, start)
		}
		return encodeReflect(enc, start, rv.Elem())
	}
	switch {
	case rv.Type() == timeType:
		t := rv.Interface().(time.Time)
		if t.IsZero() {
			return encodeNil(enc, start)
		}
		return encodeText(enc, start, t.Format(time.RFC3339Nano))
	case rv.Type() == bytesType:
		if rv.IsNil() {
			return encodeNil(enc, start)
		}
		return encodeText(enc, start, base64.StdEncoding.EncodeToString(rv.Bytes()))
	case rv.Kind() == reflect.Slice:
		if rv.IsNil() {
			return encodeNil(enc, start)
		}
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		for i := 0; i < rv.Len(); i++ {
			if err := encodeReflect(enc, xml.StartElement{Name: xml.Name{Local: ItemName}}, rv.Index(i)); err != nil {
				return err
			}
		}
		return enc.EncodeToken(start.End())
	}
	return enc.EncodeElement(rv.Interface(), start)
}

func decodeInto(inner []byte, dst reflect.Value) error {
	switch {
	case dst.Type() == timeType:
		text, err := charData(inner)
		if err != nil {
			return err
		}
		if text == "" {
			return nil
		}
		t, err := time.Parse(time.RFC3339Nano, text)
		if err != nil {
			return err
		}
		dst.Set(reflect.ValueOf(t))
		return nil
	case dst.Type() == bytesType:
		text, err := charData(inner)
		if err != nil {
			return err
		}
		data, err := base64.StdEncoding.DecodeString(stripSpace(text))
		if err != nil {
			return err
		}
		dst.SetBytes(data)
		return nil
	case dst.Kind() == reflect.Pointer:
		elem := reflect.New(dst.Type().Elem())
		if err := decodeInto(inner, elem.Elem()); err != nil {
			return err
		}
		dst.Set(elem)
		return nil
	case dst.Kind() == reflect.Slice:
		return decodeSlice(inner, dst)
	}
	return xml.Unmarshal(wrap(inner), dst.Addr().Interface())
}

func decodeSlice(inner []byte, dst reflect.Value) error {
	dec := xml.NewDecoder(bytes.NewReader(wrap(inner)))
	if _, err := dec.Token(); err != nil {
		return err
	}
	out := reflect.MakeSlice(dst.Type(), 0, 0)
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			item, err := decodeRaw(dec, t)
			if err != nil {
				return err
			}
			elem := reflect.New(dst.Type().Elem()).Elem()
			if !item.Nil {
				if err := decodeInto(item.Inner, elem); err != nil {
					return err
				}
			}
			out = reflect.Append(out, elem)
		case xml.EndElement:
			dst.Set(out)
			return nil
		}
	}
}

func charData(inner []byte) (string, error) {
	var text string
	if err := xml.Unmarshal(wrap(inner), &text); err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, s)
}

func wrap(inner []byte) []byte {
	buf := make([]byte, 0, len(inner)+7)
	buf = append(buf, "<v>"...)
	buf = append(buf, inner...)
	return append(buf, "</v>"...)
}
