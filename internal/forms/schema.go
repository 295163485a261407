package forms

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// The form page embeds its schema as a JSON array literal assigned to a
// script global. Everything we need (questions, options, required flags,
// email collection) lives in that blob.
var schemaRe = regexp.MustCompile(`(?s)FB_PUBLIC_LOAD_DATA_\s*=\s*(.*?);\s*</script>`)

// ParseSchema extracts the form schema from a form page.
func ParseSchema(page []byte) (*Form, error) {
	m := schemaRe.FindSubmatch(page)
	if m == nil {
		return nil, fmt.Errorf("no schema data found in page")
	}

	var data []any
	if err := json.Unmarshal(m[1], &data); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}

	form := &Form{
		Title:       str(index(data, 3)),
		Description: str(index(seq(index(data, 1)), 0)),
	}

	body := seq(index(data, 1))

	// Forms that collect the respondent's email get a synthetic required
	// question up front; its entry id is passed through verbatim on submit.
	if collectsEmail(body) {
		form.Questions = append(form.Questions, Question{
			EntryID:  emailEntryID,
			Type:     TypeEmailField,
			Label:    "Email address",
			Required: true,
		})
	}

	for _, raw := range seq(index(body, 1)) {
		entry := seq(raw)
		label := str(index(entry, 1))
		typeID, ok := num(index(entry, 3))
		if !ok {
			continue
		}
		qt := typeFromID(int(typeID))

		// Section headers, images etc. carry no widgets; skip them.
		for _, rawWidget := range seq(index(entry, 4)) {
			widget := seq(rawWidget)
			id, ok := num(index(widget, 0))
			if !ok {
				continue
			}

			q := Question{
				EntryID:  strconv.Itoa(int(id)),
				Type:     qt,
				Label:    label,
				Required: isRequired(index(widget, 2)),
			}
			for _, rawOpt := range seq(index(widget, 1)) {
				opt := str(index(seq(rawOpt), 0))
				if opt != "" {
					q.Options = append(q.Options, opt)
				}
			}

			// Grid rows are separate entries sharing the question label.
			if qt == TypeGrid {
				if row := str(index(seq(index(widget, 3)), 0)); row != "" {
					q.Label = label + " [" + row + "]"
				}
			}

			form.Questions = append(form.Questions, q)
		}
	}

	return form, nil
}

// collectsEmail reports whether the form asks for the respondent's email.
// The setting lives at body[10][6]: 1 means off, higher values mean
// collected (verified or responder input).
func collectsEmail(body []any) bool {
	v, ok := num(index(seq(index(body, 10)), 6))
	return ok && v > 1
}

func isRequired(v any) bool {
	n, ok := num(v)
	return ok && n == 1
}

// index returns s[i] or nil when out of range.
func index(s []any, i int) any {
	if i < 0 || i >= len(s) {
		return nil
	}
	return s[i]
}

func seq(v any) []any {
	s, _ := v.([]any)
	return s
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func num(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}
