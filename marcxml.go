package marcidx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// MARCXMLNamespace is the namespace written on encode. Decoding matches
// element names regardless of namespace.
const MARCXMLNamespace = "http://www.loc.gov/MARC21/slim"

type xmlControlField struct {
	XMLName xml.Name `xml:"controlfield"`
	Tag     string   `xml:"tag,attr"`
	Value   string   `xml:",chardata"`
}

type xmlDataField struct {
	XMLName   xml.Name      `xml:"datafield"`
	Tag       string        `xml:"tag,attr"`
	Ind1      string        `xml:"ind1,attr"`
	Ind2      string        `xml:"ind2,attr"`
	SubFields []xmlSubField `xml:"subfield"`
}

type xmlSubField struct {
	XMLName xml.Name `xml:"subfield"`
	Code    string   `xml:"code,attr"`
	Value   string   `xml:",chardata"`
}

type xmlRecord struct {
	XMLName xml.Name `xml:"record"`
	Xmlns   string   `xml:"xmlns,attr"`
	Leader  *string  `xml:"leader"`
	Fields  []interface{}
}

// decodeMARCXML reads the first record of a <collection>, or a bare
// <record>, preserving field order.
func (r *Record) decodeMARCXML(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyInput
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	inRecord, seen := false, false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return xmlError(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "record":
				if seen {
					return nil
				}
				inRecord, seen = true, true
			case "leader":
				if !inRecord {
					continue
				}
				var v string
				if err := dec.DecodeElement(&v, &t); err != nil {
					return xmlError(err)
				}
				r.add(ControlField{Tag: LeaderTag, Value: v})
			case "controlfield":
				if !inRecord {
					continue
				}
				var cf xmlControlField
				if err := dec.DecodeElement(&cf, &t); err != nil {
					return xmlError(err)
				}
				r.add(ControlField{Tag: cf.Tag, Value: cf.Value})
			case "datafield":
				if !inRecord {
					continue
				}
				var df xmlDataField
				if err := dec.DecodeElement(&df, &t); err != nil {
					return xmlError(err)
				}
				r.add(r.fromXMLDataField(df))
			}
		case xml.EndElement:
			if t.Name.Local == "record" {
				inRecord = false
			}
		}
	}
	if !seen {
		return fmt.Errorf("%w: no record element found", ErrXMLParse)
	}
	return nil
}

func (r *Record) fromXMLDataField(df xmlDataField) DataField {
	d := DataField{
		Tag:        df.Tag,
		Indicator1: r.xmlIndicator(df.Tag, df.Ind1, "ind1"),
		Indicator2: r.xmlIndicator(df.Tag, df.Ind2, "ind2"),
	}
	for _, sf := range df.SubFields {
		d.SubFields = append(d.SubFields, SubField{Code: sf.Code, Value: sf.Value})
	}
	return d
}

func (r *Record) xmlIndicator(tag, v, name string) string {
	if v == "" {
		r.Warn("missing %s in field %s", name, tag)
		return " "
	}
	return v[:1]
}

func xmlError(err error) error {
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		return fmt.Errorf("%w: line %d: %s", ErrXMLParse, se.Line, se.Msg)
	}
	return fmt.Errorf("%w: %v", ErrXMLParse, err)
}

// EncodeMARCXML serializes the record as a MARCXML <record> element in tag
// order. Subfields with empty values are not written, so they do not
// survive a MARCXML round trip.
func (r *Record) EncodeMARCXML() ([]byte, error) {
	rec := xmlRecord{Xmlns: MARCXMLNamespace}
	if _, ok := r.fields[LeaderTag]; ok {
		l := r.LeaderString()
		rec.Leader = &l
	}
	for _, tag := range r.tags {
		if tag == LeaderTag {
			continue
		}
		for _, f := range r.fields[tag] {
			switch f := f.(type) {
			case ControlField:
				rec.Fields = append(rec.Fields, xmlControlField{Tag: f.Tag, Value: f.Value})
			case DataField:
				df := xmlDataField{Tag: f.Tag, Ind1: indicator(f.Indicator1), Ind2: indicator(f.Indicator2)}
				for _, sf := range f.SubFields {
					if sf.Value == "" {
						continue
					}
					df.SubFields = append(df.SubFields, xmlSubField{Code: sf.Code, Value: sf.Value})
				}
				rec.Fields = append(rec.Fields, df)
			}
		}
	}
	out, err := xml.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal marcxml: %w", err)
	}
	return out, nil
}
