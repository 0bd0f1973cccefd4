// Package metautil holds the text helpers shared by the record accessors
// and the rule engines: cataloging punctuation, key normalization, ISBN
// conversion and coordinate parsing.
package metautil
