package marcidx

import (
	"strings"

	"github.com/mitlibraries/marcidx/metautil"
)

// AltScriptTag links fields to their alternate-script representation.
const AltScriptTag = "880"

// Punctuator strips cataloging punctuation from the end of a value.
type Punctuator interface {
	StripTrailingPunctuation(s string) string
}

func defaultPunctuator() Punctuator {
	return metautil.NewPunctuation(nil)
}

// StripTrailingPunctuation applies the record's punctuator to s.
func (r *Record) StripTrailingPunctuation(s string) string {
	return r.punct.StripTrailingPunctuation(s)
}

// Mode selects which representation FieldsSubfields reads.
type Mode uint8

const (
	// Normal reads only the field itself.
	Normal Mode = iota
	// Alt reads only the linked 880 counterpart.
	Alt
	// Both reads the field and then its linked counterpart.
	Both
)

// Spec selects subfields of one tag for FieldsSubfields. Codes lists the
// wanted subfield codes, all of them when empty. When Required is set, an
// occurrence lacking any of its codes is skipped.
type Spec struct {
	Mode     Mode
	Tag      string
	Codes    string
	Required string
}

type subfieldOptions struct {
	firstOnly bool
	keepPunct bool
	split     bool
}

// SubfieldOption adjusts FieldsSubfields.
type SubfieldOption func(*subfieldOptions)

// FirstOnly returns at most the first value.
func FirstOnly() SubfieldOption {
	return func(o *subfieldOptions) { o.firstOnly = true }
}

// KeepPunctuation disables trailing punctuation stripping.
func KeepPunctuation() SubfieldOption {
	return func(o *subfieldOptions) { o.keepPunct = true }
}

// SplitSubfields returns every subfield as its own value instead of one
// space-joined value per field.
func SplitSubfields() SubfieldOption {
	return func(o *subfieldOptions) { o.split = true }
}

type cacheOp uint8

const (
	opFieldSubfields cacheOp = iota + 1
	opFieldsSubfields
)

type cacheKey struct {
	op    cacheOp
	specs string
	opts  subfieldOptions
}

func specsKey(specs []Spec) string {
	var b strings.Builder
	for _, s := range specs {
		b.WriteByte(byte('0' + s.Mode))
		b.WriteString(s.Tag)
		b.WriteByte(0)
		b.WriteString(s.Codes)
		b.WriteByte(0)
		b.WriteString(s.Required)
		b.WriteByte(1)
	}
	return b.String()
}

func (r *Record) cached(k cacheKey, compute func() []string) []string {
	r.mu.RLock()
	v, ok := r.cache[k]
	r.mu.RUnlock()
	if !ok {
		v = compute()
		r.mu.Lock()
		if r.cache == nil {
			r.cache = make(map[cacheKey][]string)
		}
		r.cache[k] = v
		r.mu.Unlock()
	}
	return append([]string(nil), v...)
}

// invalidate drops every memoized result. Callers hold the write lock.
func (r *Record) invalidate() {
	r.cache = nil
	r.links = nil
}

// Subfield returns the value of the first subfield with code.
func (d DataField) Subfield(code string) string {
	for _, sf := range d.SubFields {
		if sf.Code == code {
			return sf.Value
		}
	}
	return ""
}

// HasSubfield reports whether the field has a subfield with code.
func (d DataField) HasSubfield(code string) bool {
	for _, sf := range d.SubFields {
		if sf.Code == code {
			return true
		}
	}
	return false
}

// SubfieldsArray returns, in field order, the values of the subfields whose
// code is one of the characters of codes. An empty codes selects all.
func (d DataField) SubfieldsArray(codes string) []string {
	var out []string
	for _, sf := range d.SubFields {
		if codes == "" || (sf.Code != "" && strings.Contains(codes, sf.Code)) {
			out = append(out, sf.Value)
		}
	}
	return out
}

// Subfields returns SubfieldsArray joined with spaces.
func (d DataField) Subfields(codes string) string {
	return strings.Join(d.SubfieldsArray(codes), " ")
}

// Indicator returns indicator 1 or 2 as a single character.
func (d DataField) Indicator(n int) string {
	if n == 2 {
		return indicator(d.Indicator2)
	}
	return indicator(d.Indicator1)
}

// FieldSubfields joins the selected subfields of every occurrence of tag
// with spaces.
func (r *Record) FieldSubfields(tag, codes string, stripPunct bool) string {
	k := cacheKey{op: opFieldSubfields, specs: tag + "\x00" + codes, opts: subfieldOptions{keepPunct: !stripPunct}}
	v := r.cached(k, func() []string {
		var parts []string
		for _, d := range r.DataField(tag) {
			parts = append(parts, d.SubfieldsArray(codes)...)
		}
		s := strings.Join(parts, " ")
		if stripPunct {
			s = r.punct.StripTrailingPunctuation(s)
		}
		return []string{s}
	})
	return v[0]
}

// FieldsSubfields collects values for each spec in order. Per occurrence of
// a spec's tag, the field's own values come before those of its linked 880
// field, as selected by the spec's Mode.
func (r *Record) FieldsSubfields(specs []Spec, opts ...SubfieldOption) []string {
	var o subfieldOptions
	for _, opt := range opts {
		opt(&o)
	}
	k := cacheKey{op: opFieldsSubfields, specs: specsKey(specs), opts: o}
	return r.cached(k, func() []string {
		var out []string
		for _, s := range specs {
			for _, f := range r.fields[s.Tag] {
				switch f := f.(type) {
				case ControlField:
					if s.Mode != Alt && f.Value != "" {
						out = append(out, f.Value)
					}
				case DataField:
					if !hasAll(f, s.Required) {
						continue
					}
					if s.Mode != Alt {
						out = appendValues(out, f, s.Codes, o.split)
					}
					if s.Mode != Normal {
						if alt, ok := r.LinkedField(f); ok {
							out = appendValues(out, alt, s.Codes, o.split)
						}
					}
				}
				if o.firstOnly && len(out) > 0 {
					break
				}
			}
			if o.firstOnly && len(out) > 0 {
				break
			}
		}
		if !o.keepPunct {
			for i, v := range out {
				out[i] = r.punct.StripTrailingPunctuation(v)
			}
		}
		if o.firstOnly && len(out) > 1 {
			out = out[:1]
		}
		return out
	})
}

func hasAll(d DataField, codes string) bool {
	for _, c := range codes {
		if !d.HasSubfield(string(c)) {
			return false
		}
	}
	return true
}

func appendValues(out []string, d DataField, codes string, split bool) []string {
	vals := d.SubfieldsArray(codes)
	if split {
		for _, v := range vals {
			if v != "" {
				out = append(out, v)
			}
		}
		return out
	}
	if s := strings.Join(vals, " "); s != "" {
		out = append(out, s)
	}
	return out
}

type linkKey struct {
	tag string
	occ string
}

// linkIndex maps a linked tag and occurrence number to the 880 field that
// renders it, and back to the field that links it.
type linkIndex struct {
	alt  map[linkKey]DataField
	main map[linkKey]DataField
}

// parseLink splits a subfield 6 value such as "880-01/(N" into its tag and
// two-digit occurrence.
func parseLink(s string) (tag, occ string, ok bool) {
	if len(s) < 6 || s[3] != '-' {
		return "", "", false
	}
	occ = s[4:6]
	if occ == "00" || occ[0] < '0' || occ[0] > '9' || occ[1] < '0' || occ[1] > '9' {
		return "", "", false
	}
	return s[:3], occ, true
}

func (r *Record) linkIndex() *linkIndex {
	r.mu.RLock()
	idx := r.links
	r.mu.RUnlock()
	if idx != nil {
		return idx
	}
	idx = &linkIndex{alt: make(map[linkKey]DataField), main: make(map[linkKey]DataField)}
	for _, tag := range r.tags {
		for _, f := range r.fields[tag] {
			d, ok := f.(DataField)
			if !ok {
				continue
			}
			lt, occ, ok := parseLink(d.Subfield("6"))
			if !ok {
				continue
			}
			if tag == AltScriptTag {
				if _, dup := idx.alt[linkKey{lt, occ}]; !dup {
					idx.alt[linkKey{lt, occ}] = d
				}
			} else if lt == AltScriptTag {
				if _, dup := idx.main[linkKey{tag, occ}]; !dup {
					idx.main[linkKey{tag, occ}] = d
				}
			}
		}
	}
	r.mu.Lock()
	r.links = idx
	r.mu.Unlock()
	return idx
}

// LinkedField resolves the alternate-script counterpart of a field through
// subfield 6. For an 880 field it returns the field it renders; for any
// other field, its 880. Occurrence "00" never links.
func (r *Record) LinkedField(d DataField) (DataField, bool) {
	lt, occ, ok := parseLink(d.Subfield("6"))
	if !ok {
		return DataField{}, false
	}
	idx := r.linkIndex()
	var linked DataField
	if d.Tag == AltScriptTag {
		linked, ok = idx.main[linkKey{lt, occ}]
	} else if lt == AltScriptTag {
		linked, ok = idx.alt[linkKey{d.Tag, occ}]
	} else {
		ok = false
	}
	return linked, ok
}
