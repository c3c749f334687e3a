// Rewrites property references embedded in formula expressions.

package schema

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Remote formula expressions reference sibling properties through an
// embedded form carrying the percent-encoded property ID and the
// owning table's ID:
//
//	{{notion:block_property:<property-id>:<space-id>:<table-id>}}
//
// The local surface syntax references properties as prop("key").
var (
	remoteRefRe = regexp.MustCompile(`\{\{notion:block_property:([^:}]+):([^:}]*):([^:}]+)\}\}`)
	localRefRe  = regexp.MustCompile(`prop\("([^"]*)"\)`)
)

// RestoreExpression rewrites every embedded property reference whose
// table ID matches databaseID into local-key prop("key") form.
// References to other tables, or to property IDs not present in the
// schema, are left byte-for-byte unchanged.
func RestoreExpression(expression, databaseID string, s *Schema) string {
	keyByEncodedID := make(map[string]string)
	for _, key := range s.Keys() {
		f, _ := s.Get(key)
		if f.ID != "" {
			keyByEncodedID[encodeID(f.ID)] = key
		}
	}
	return remoteRefRe.ReplaceAllStringFunc(expression, func(ref string) string {
		m := remoteRefRe.FindStringSubmatch(ref)
		if m[3] != databaseID {
			return ref
		}
		key, ok := keyByEncodedID[m[1]]
		if !ok {
			return ref
		}
		return fmt.Sprintf("prop(%q)", key)
	})
}

// encodeID percent-encodes a property ID the way the remote side
// embeds it in expressions: component encoding, with spaces as %20.
func encodeID(id string) string {
	return strings.ReplaceAll(url.QueryEscape(id), "+", "%20")
}

// BuildExpression rewrites local-key prop("key") references into
// prop("Label") form by direct schema lookup. Unrecognized keys are
// left unchanged.
func BuildExpression(expression string, s *Schema) string {
	return localRefRe.ReplaceAllStringFunc(expression, func(ref string) string {
		m := localRefRe.FindStringSubmatch(ref)
		f, ok := s.Get(m[1])
		if !ok {
			return ref
		}
		return fmt.Sprintf("prop(%q)", f.Label)
	})
}
