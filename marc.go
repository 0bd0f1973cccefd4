/*

marcidx is a library for reading, writing and querying MARC 21 records. It
decodes ISO2709, MARCXML and the versioned storage JSON form into a single
ordered field model, and exposes the accessors the index and deduplication
rule engines are built on.

*/
package marcidx

import (
	"log/slog"
	"strings"
	"sync"
)

// LeaderTag is the pseudo tag the leader is stored under.
const LeaderTag = "000"

// Record is an ordered mapping from tag to the fields carrying that tag.
// Repeated tags keep their insertion order, and so do the tags themselves.
type Record struct {
	tags   []string
	fields map[string][]Field

	logger   *slog.Logger
	punct    Punctuator
	warnings Warnings

	mu    sync.RWMutex
	cache map[cacheKey][]string
	links *linkIndex
}

// Field is either a ControlField or a DataField.
type Field interface {
	tag() string
}

// Leader contains a subset of the bytes in the record leader. Omitted are
// bytes specifying the length of parts of the record and bytes which do
// not vary from record to record.
type Leader struct {
	Status        byte // 05 byte position
	Type          byte // 06
	BibLevel      byte // 07
	Control       byte // 08
	EncodingLevel byte // 17
	Form          byte // 18
	Multipart     byte // 19
}

// ControlField just contains a Tag and a Value.
type ControlField struct {
	Tag   string
	Value string
}

// DataField contains two Indicators, a Tag, and a slice of SubFields.
// Subfield codes may repeat and their order is significant.
type DataField struct {
	Indicator1 string
	Indicator2 string
	Tag        string
	SubFields  []SubField
}

// SubField contains a Code and a Value.
type SubField struct {
	Code  string
	Value string
}

func (c ControlField) tag() string { return c.Tag }
func (d DataField) tag() string    { return d.Tag }

// Option configures a Record.
type Option func(*Record)

// WithLogger sets the logger used for tolerant decode and encode decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Record) {
		r.logger = logger
	}
}

// WithPunctuator sets the trailing punctuation normalizer used by the
// subfield accessors.
func WithPunctuator(p Punctuator) Option {
	return func(r *Record) {
		r.punct = p
	}
}

// New returns an empty Record.
func New(opts ...Option) *Record {
	r := &Record{
		fields: make(map[string][]Field),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.punct == nil {
		r.punct = defaultPunctuator()
	}
	return r
}

// Add appends a field, keeping the order of tags and of fields within a tag.
func (r *Record) Add(f Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.add(f)
	r.invalidate()
}

func (r *Record) add(f Field) {
	t := f.tag()
	if _, ok := r.fields[t]; !ok {
		r.tags = append(r.tags, t)
	}
	r.fields[t] = append(r.fields[t], f)
}

// replace swaps every field of tag for fs, keeping the tag's position. An
// empty fs removes the tag. Callers hold the write lock.
func (r *Record) replace(tag string, fs []Field) {
	if len(fs) == 0 {
		if _, ok := r.fields[tag]; !ok {
			return
		}
		delete(r.fields, tag)
		for i, t := range r.tags {
			if t == tag {
				r.tags = append(r.tags[:i], r.tags[i+1:]...)
				break
			}
		}
		return
	}
	if _, ok := r.fields[tag]; !ok {
		r.tags = append(r.tags, tag)
	}
	r.fields[tag] = fs
}

func (r *Record) reset() {
	r.tags = nil
	r.fields = make(map[string][]Field)
	r.invalidate()
}

// Tags returns the record's tags in insertion order.
func (r *Record) Tags() []string {
	return append([]string(nil), r.tags...)
}

// Fields returns every field carrying tag, in insertion order.
func (r *Record) Fields(tag string) []Field {
	return append([]Field(nil), r.fields[tag]...)
}

// Field returns the first field carrying tag, or nil.
func (r *Record) Field(tag string) Field {
	if fs := r.fields[tag]; len(fs) > 0 {
		return fs[0]
	}
	return nil
}

// Len returns the number of fields in the record, the leader included.
func (r *Record) Len() int {
	n := 0
	for _, fs := range r.fields {
		n += len(fs)
	}
	return n
}

// ControlNum returns the record's control number.
func (r *Record) ControlNum() string {
	cfs := r.ControlField("001")
	if len(cfs) == 0 {
		return ""
	}
	return strings.TrimSpace(cfs[0].Value)
}

// ControlValue returns the value of the first control field with tag.
func (r *Record) ControlValue(tag string) string {
	if cf, ok := r.Field(tag).(ControlField); ok {
		return cf.Value
	}
	return ""
}

// LeaderString returns the leader right-padded with spaces to 24 characters.
func (r *Record) LeaderString() string {
	l := r.ControlValue(LeaderTag)
	if len(l) >= leaderLen {
		return l[:leaderLen]
	}
	return l + strings.Repeat(" ", leaderLen-len(l))
}

// Leader returns the varying leader positions.
func (r *Record) Leader() Leader {
	l := r.LeaderString()
	return Leader{
		Status:        l[5],
		Type:          l[6],
		BibLevel:      l[7],
		Control:       l[8],
		EncodingLevel: l[17],
		Form:          l[18],
		Multipart:     l[19],
	}
}

// DataField method takes an arbitrary number of tag strings and returns
// a slice of matching DataFields. Note that one tag may return multiple
// DataFields as they can be repeated.
func (r *Record) DataField(tag ...string) []DataField {
	fields := make([]DataField, 0, len(tag))
	for _, t := range tag {
		for _, f := range r.fields[t] {
			if field, ok := f.(DataField); ok {
				fields = append(fields, field)
			}
		}
	}
	return fields
}

// ControlField method takes an arbitrary number of tag strings and returns
// a slice of matching ControlFields.
func (r *Record) ControlField(tag ...string) []ControlField {
	fields := make([]ControlField, 0, len(tag))
	for _, t := range tag {
		for _, f := range r.fields[t] {
			if field, ok := f.(ControlField); ok {
				fields = append(fields, field)
			}
		}
	}
	return fields
}

// Select takes an arbitrary number of subfield code strings and returns
// the matching SubFields grouped in the order the codes are given.
func (d DataField) Select(code ...string) []SubField {
	fields := make([]SubField, 0, len(code))
	for _, s := range code {
		for _, f := range d.SubFields {
			if f.Code == s {
				fields = append(fields, f)
			}
		}
	}
	return fields
}

func (d DataField) matches(tag string, ind1 string, ind2 string) bool {
	t := d.Tag == tag
	i1 := ind1 == "*" || d.Indicator1 == ind1
	i2 := ind2 == "*" || d.Indicator2 == ind2
	return t && i1 && i2
}

// Filter takes one or more tag queries and returns a slice of strings
// matching the selected subfield values. A tag query consists of the
// three digit MARC tag optionally followed by one or more subfield codes,
// for example: "245ac", "650x" or "100". Filtering for indicators can be
// done by including the two desired indicators between pipes after the tag.
// An * character can be used for any indicator, for example: "245|*1|ac"
// or 650|01|x. An indicator segment without its closing pipe is ignored.
func (r *Record) Filter(query ...string) [][]string {
	var res [][]string
	for _, q := range query {
		if len(q) < 3 {
			continue
		}
		tag := q[:3]
		ind1, ind2 := "*", "*"
		subs := q[3:]
		if i := strings.Index(q, "|"); i > -1 {
			if len(q) >= i+4 && q[i+3] == '|' {
				ind1, ind2 = string(q[i+1]), string(q[i+2])
				subs = q[i+4:]
			} else {
				subs = q[3:i]
			}
		}
		for _, field := range r.fields[tag] {
			var values []string
			switch f := field.(type) {
			case ControlField:
				res = append(res, append(values, f.Value))
			case DataField:
				if !f.matches(tag, ind1, ind2) {
					continue
				}
				if len(subs) != 0 {
					for _, sf := range f.Select(strings.Split(subs, "")...) {
						values = append(values, sf.Value)
					}
				} else {
					for _, sf := range f.SubFields {
						values = append(values, sf.Value)
					}
				}
				if len(values) > 0 {
					res = append(res, values)
				}
			}
		}
	}
	return res
}
