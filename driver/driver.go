// Package driver derives index fields, deduplication keys and work
// clustering data from MARC records.
package driver

import (
	"log/slog"
	"strings"

	"github.com/mitlibraries/marcidx"
	"github.com/mitlibraries/marcidx/callnumber"
	"github.com/mitlibraries/marcidx/metautil"
	"github.com/mitlibraries/marcidx/stats"
)

// RecordFormat is the source format identifier of MARC records.
const RecordFormat = "marc"

// LCCallNumber is a parsed Library of Congress call number.
type LCCallNumber interface {
	IsValid() bool
	SortKey() string
	Category() string
}

// DeweyCallNumber is a parsed Dewey Decimal number.
type DeweyCallNumber interface {
	IsValid() bool
	Number(scale int) string
	SortKey() string
	SearchString() string
}

// BuildingField names the subfields holding a location and its optional
// sub-location.
type BuildingField struct {
	Tag         string `yaml:"tag"`
	Location    string `yaml:"location"`
	SubLocation string `yaml:"sub_location"`
}

// Settings are the configurable vocabularies of the rule engine. An empty
// relator list accepts every relator.
type Settings struct {
	PrimaryAuthorRelators   []string        `yaml:"primary_author_relators,omitempty"`
	SecondaryAuthorRelators []string        `yaml:"secondary_author_relators,omitempty"`
	CorporateAuthorRelators []string        `yaml:"corporate_author_relators,omitempty"`
	BuildingFields          []BuildingField `yaml:"building_fields,omitempty"`
	IllustrationStrings     []string        `yaml:"illustration_strings,omitempty"`
	Abbreviations           []string        `yaml:"abbreviations,omitempty"`
}

// DefaultSettings returns the vocabularies used when none are configured.
func DefaultSettings() Settings {
	return Settings{
		PrimaryAuthorRelators: []string{
			"adp", "aut", "cmp", "cre", "dub", "inv",
			"author", "composer", "creator",
		},
		SecondaryAuthorRelators: []string{
			"act", "anm", "ann", "arr", "acp", "ard", "aft", "aud", "aui", "aus",
			"aut", "bjd", "chr", "clb", "cll", "cmm", "cmp", "cnd", "com", "cpl",
			"cre", "ctb", "cur", "cwt", "dnc", "dir", "drt", "dst", "edc", "edt",
			"egr", "fmk", "ill", "ins", "itr", "ive", "ivr", "lbt", "lyr", "mus",
			"nrt", "orm", "pht", "prf", "pro", "prd", "prg", "sng", "spk", "stl",
			"trc", "trl", "voc", "wam", "wde", "wpr", "wst",
			"author", "editor", "illustrator", "translator", "contributor",
			"composer", "director", "performer", "narrator", "compiler",
		},
		BuildingFields: []BuildingField{
			{Tag: "852", Location: "b", SubLocation: "c"},
		},
		IllustrationStrings: []string{"ill.", "illus."},
		Abbreviations:       metautil.DefaultAbbreviations,
	}
}

// Marc applies the rule engine to one record. It is not safe for
// concurrent mutation of the underlying record.
type Marc struct {
	rec      *marcidx.Record
	settings Settings
	lc       func(string) LCCallNumber
	dewey    func(string) DeweyCallNumber
	stats    stats.Collector
	logger   *slog.Logger
}

// Option configures a Marc.
type Option func(*Marc)

// WithSettings replaces the default vocabularies.
func WithSettings(s Settings) Option {
	return func(m *Marc) {
		m.settings = s
	}
}

// WithLCParser replaces the LC call number parser.
func WithLCParser(parse func(string) LCCallNumber) Option {
	return func(m *Marc) {
		m.lc = parse
	}
}

// WithDeweyParser replaces the Dewey number parser.
func WithDeweyParser(parse func(string) DeweyCallNumber) Option {
	return func(m *Marc) {
		m.dewey = parse
	}
}

// WithStats sets the collector notified of MARCXML fallbacks.
func WithStats(c stats.Collector) Option {
	return func(m *Marc) {
		m.stats = c
	}
}

// WithLogger sets the logger passed to records decoded by Parse.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Marc) {
		m.logger = logger
	}
}

func newMarc(opts []Option) *Marc {
	m := &Marc{settings: DefaultSettings()}
	for _, opt := range opts {
		opt(m)
	}
	if m.lc == nil {
		m.lc = func(s string) LCCallNumber { return callnumber.ParseLC(s) }
	}
	if m.dewey == nil {
		m.dewey = func(s string) DeweyCallNumber { return callnumber.ParseDewey(s) }
	}
	if m.stats == nil {
		m.stats = stats.Nop{}
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m
}

// New wraps an already decoded record.
func New(rec *marcidx.Record, opts ...Option) *Marc {
	m := newMarc(opts)
	m.rec = rec
	return m
}

// Parse decodes data in any supported form and wraps the record.
func Parse(data []byte, opts ...Option) (*Marc, error) {
	m := newMarc(opts)
	rec, err := marcidx.Parse(data,
		marcidx.WithLogger(m.logger),
		marcidx.WithPunctuator(metautil.NewPunctuation(m.settings.Abbreviations)),
	)
	if err != nil {
		return nil, err
	}
	m.rec = rec
	return m, nil
}

// Record returns the underlying record.
func (m *Marc) Record() *marcidx.Record {
	return m.rec
}

// RecordFormat returns the source format identifier.
func (m *Marc) RecordFormat() string {
	return RecordFormat
}

// ID returns the control number.
func (m *Marc) ID() string {
	return m.rec.ControlNum()
}

// Serialize returns the storage JSON form.
func (m *Marc) Serialize() ([]byte, error) {
	return m.rec.EncodeStorage()
}

// Warnings returns the advisory messages raised so far.
func (m *Marc) Warnings() []string {
	return m.rec.Warnings()
}

// strip removes trailing punctuation with the record's punctuator.
func (m *Marc) strip(s string) string {
	return m.rec.StripTrailingPunctuation(s)
}

// specs builds accessor specs from compact "TAGcodes" strings such as
// "650abcd".
func specs(mode marcidx.Mode, defs ...string) []marcidx.Spec {
	out := make([]marcidx.Spec, 0, len(defs))
	for _, d := range defs {
		out = append(out, marcidx.Spec{Mode: mode, Tag: d[:3], Codes: d[3:]})
	}
	return out
}

// charAt returns the byte at i, or 0 when s is too short.
func charAt(s string, i int) byte {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

// nonFiling returns the non-filing character count held in indicator ind.
func nonFiling(d marcidx.DataField, ind int) int {
	c := d.Indicator(ind)[0]
	if c < '1' || c > '9' {
		return 0
	}
	return int(c - '0')
}

// skipChars drops the first n characters of s unless that would empty it.
func skipChars(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if n >= len(r) {
		return s
	}
	return string(r[n:])
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
