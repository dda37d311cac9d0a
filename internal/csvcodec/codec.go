// Package csvcodec implements the shared CSV codec for the fixed 6-column
// lead schema. It is the single parse/serialize implementation used by the
// file-backed lead store, the client import path, and the client export
// path.
//
// The codec is deliberately minimal rather than RFC 4180 compliant:
//
//   - A double quote always toggles the in-quotes state, so an escaped
//     quote ("") inside a quoted field is not supported and will corrupt
//     field boundaries.
//   - Header validation is by token set membership, not position. A header
//     with the right names in a scrambled order validates, yet data columns
//     are still consumed positionally.
//
// Both behaviors match the data already written by existing deployments, so
// they are preserved rather than fixed.
package csvcodec

import (
	"errors"
	"strings"

	"github.com/leadstack/internal/models"
)

// Header is the expected header line of a leads CSV file.
const Header = "Name,Industry,Location,Email,Phone,Website"

// LockedValue is the placeholder written in place of a contact field that
// has not been unlocked.
const LockedValue = "Locked"

// numFields is the number of columns consumed per row. Rows with fewer
// fields are dropped; extra fields are ignored.
const numFields = 6

var expectedHeaders = []string{"Name", "Industry", "Location", "Email", "Phone", "Website"}

// Parse conditions. Both degrade to an empty lead set at the store layer;
// neither is a hard failure.
var (
	// ErrHeaderOrDataMissing reports input with no data rows (fewer than
	// two lines after trimming).
	ErrHeaderOrDataMissing = errors.New("csv must contain a header and at least one data row")

	// ErrHeaderMismatch reports a header whose token set differs from the
	// expected column names.
	ErrHeaderMismatch = errors.New("csv header does not match expected columns")
)

// Parse decodes canonical store content into leads. IDs are assigned
// sequentially starting at 1 in source order. Unlock flags are always
// initialized false, regardless of a literal "Locked" value in the source
// field.
func Parse(content string) ([]models.Lead, error) {
	return parse(content, func(id int, f [numFields]string) models.Lead {
		return models.Lead{
			ID:       id,
			Name:     f[0],
			Industry: f[1],
			Location: f[2],
			Email:    f[3],
			Phone:    f[4],
			Website:  f[5],
		}
	})
}

// ParseImport decodes user-supplied content for import. Unlike Parse, a
// contact field is considered unlocked unless it holds the literal
// LockedValue, and every decoded lead is flagged as imported.
func ParseImport(content string) ([]models.Lead, error) {
	return parse(content, func(id int, f [numFields]string) models.Lead {
		return models.Lead{
			ID:            id,
			Name:          f[0],
			Industry:      f[1],
			Location:      f[2],
			Email:         f[3],
			Phone:         f[4],
			Website:       f[5],
			EmailUnlocked: f[3] != LockedValue,
			PhoneUnlocked: f[4] != LockedValue,
			IsImported:    true,
		}
	})
}

func parse(content string, build func(int, [numFields]string) models.Lead) ([]models.Lead, error) {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) < 2 {
		return nil, ErrHeaderOrDataMissing
	}

	if !headerValid(lines[0]) {
		return nil, ErrHeaderMismatch
	}

	var leads []models.Lead
	id := 1
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}

		values := splitLine(line)
		if len(values) < numFields {
			continue
		}

		var fields [numFields]string
		copy(fields[:], values[:numFields])
		if fields[0] == "" {
			continue
		}

		leads = append(leads, build(id, fields))
		id++
	}

	return leads, nil
}

// headerValid checks that every header token is one of the expected column
// names. Order is intentionally not enforced; see the package comment.
func headerValid(line string) bool {
	for _, token := range strings.Split(line, ",") {
		token = stripOuterQuotes(strings.TrimSpace(token))
		if !contains(expectedHeaders, token) {
			return false
		}
	}
	return true
}

// splitLine scans a data line character by character. A double quote
// toggles the in-quotes state and is never emitted; a comma outside quotes
// ends the current field. Each field has one outer quote pair stripped and
// surrounding whitespace trimmed.
func splitLine(line string) []string {
	var values []string
	var current strings.Builder
	inQuotes := false

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			values = append(values, cleanField(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	values = append(values, cleanField(current.String()))

	return values
}

func cleanField(s string) string {
	return strings.TrimSpace(stripOuterQuotes(s))
}

// stripOuterQuotes removes at most one leading and one trailing double
// quote. The two ends are handled independently, matching the original
// /^"|"$/ treatment.
func stripOuterQuotes(s string) string {
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return s
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Serialize encodes leads for the canonical store: the fixed header line,
// then one row per lead with every field wrapped in double quotes. Embedded
// quotes are not escaped; round-trip fidelity is only guaranteed for fields
// containing no double quote characters and no line breaks.
func Serialize(leads []models.Lead) string {
	return serialize(leads, func(l models.Lead) [numFields]string {
		return [numFields]string{l.Name, l.Industry, l.Location, l.Email, l.Phone, l.Website}
	})
}

// SerializeForExport encodes leads for user-facing export. Contact fields
// that have not been unlocked are masked with LockedValue.
func SerializeForExport(leads []models.Lead) string {
	return serialize(leads, func(l models.Lead) [numFields]string {
		email, phone := l.Email, l.Phone
		if !l.EmailUnlocked {
			email = LockedValue
		}
		if !l.PhoneUnlocked {
			phone = LockedValue
		}
		return [numFields]string{l.Name, l.Industry, l.Location, email, phone, l.Website}
	})
}

func serialize(leads []models.Lead, row func(models.Lead) [numFields]string) string {
	lines := make([]string, 0, len(leads)+1)
	lines = append(lines, Header)

	for _, lead := range leads {
		fields := row(lead)
		quoted := make([]string, numFields)
		for i, f := range fields {
			quoted[i] = `"` + f + `"`
		}
		lines = append(lines, strings.Join(quoted, ","))
	}

	return strings.Join(lines, "\n")
}
