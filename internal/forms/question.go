// Package forms fetches form schemas and submits completed answer sets.
package forms

// QuestionType is the closed set of question kinds the engine understands.
// Unknown form field kinds map to TypeUnsupported and fail closed.
type QuestionType int

const (
	TypeUnsupported QuestionType = iota
	TypeShortAnswer
	TypeParagraph
	TypeMultipleChoice
	TypeDropdown
	TypeCheckboxes
	TypeLinearScale
	TypeGrid
	TypeDate
	TypeTime
	TypeEmailField
	TypeNameField
)

// String returns a human-readable name for the question type.
func (t QuestionType) String() string {
	switch t {
	case TypeShortAnswer:
		return "short_answer"
	case TypeParagraph:
		return "paragraph"
	case TypeMultipleChoice:
		return "multiple_choice"
	case TypeDropdown:
		return "dropdown"
	case TypeCheckboxes:
		return "checkboxes"
	case TypeLinearScale:
		return "linear_scale"
	case TypeGrid:
		return "grid"
	case TypeDate:
		return "date"
	case TypeTime:
		return "time"
	case TypeEmailField:
		return "email_field"
	case TypeNameField:
		return "name_field"
	default:
		return "unsupported"
	}
}

// typeFromID maps the form page's numeric type ids to QuestionType.
func typeFromID(id int) QuestionType {
	switch id {
	case 0:
		return TypeShortAnswer
	case 1:
		return TypeParagraph
	case 2:
		return TypeMultipleChoice
	case 3:
		return TypeDropdown
	case 4:
		return TypeCheckboxes
	case 5:
		return TypeLinearScale
	case 7:
		return TypeGrid
	case 9:
		return TypeDate
	case 10:
		return TypeTime
	default:
		return TypeUnsupported
	}
}

// Question is one answerable field of a form.
type Question struct {
	EntryID  string
	Type     QuestionType
	Label    string
	Options  []string
	Required bool
}

// Form is an ordered set of questions plus page metadata.
type Form struct {
	Title       string
	Description string
	Questions   []Question
}

// RequiredOnly returns the subset of questions marked required, in form order.
func (f *Form) RequiredOnly() []Question {
	var out []Question
	for _, q := range f.Questions {
		if q.Required {
			out = append(out, q)
		}
	}
	return out
}
