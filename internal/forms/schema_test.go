package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html><html><head><script type="text/javascript">var FB_PUBLIC_LOAD_DATA_ = [null,["A short feedback form.",[[101,"Your name",null,0,[[456,null,1]]],[102,"Would you recommend this event?",null,2,[[457,[["Yes"],["No"]],1]]],[103,"Rate the venue",null,5,[[458,[["1"],["2"],["3"],["4"],["5"]],0]]],[104,"Anything else?",null,1,[[459,null,0]]],[105,"Section header",null,8,null],[106,"Event date",null,9,[[460,null,0]]]],null,null,null,null,null,null,null,null,[null,null,null,null,null,null,2]],null,"Community Meetup Feedback"];</script></head><body></body></html>`

func TestParseSchema(t *testing.T) {
	form, err := ParseSchema([]byte(samplePage))
	require.NoError(t, err)

	assert.Equal(t, "Community Meetup Feedback", form.Title)
	assert.Equal(t, "A short feedback form.", form.Description)
	require.Len(t, form.Questions, 6)

	email := form.Questions[0]
	assert.Equal(t, TypeEmailField, email.Type)
	assert.Equal(t, "emailAddress", email.EntryID)
	assert.True(t, email.Required, "email collection is a required field")

	name := form.Questions[1]
	assert.Equal(t, TypeShortAnswer, name.Type)
	assert.Equal(t, "456", name.EntryID)
	assert.Equal(t, "Your name", name.Label)
	assert.True(t, name.Required)

	mc := form.Questions[2]
	assert.Equal(t, TypeMultipleChoice, mc.Type)
	assert.Equal(t, "457", mc.EntryID)
	assert.Equal(t, []string{"Yes", "No"}, mc.Options)
	assert.True(t, mc.Required)

	scale := form.Questions[3]
	assert.Equal(t, TypeLinearScale, scale.Type)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, scale.Options)
	assert.False(t, scale.Required)

	paragraph := form.Questions[4]
	assert.Equal(t, TypeParagraph, paragraph.Type)
	assert.Empty(t, paragraph.Options)

	date := form.Questions[5]
	assert.Equal(t, TypeDate, date.Type)
	assert.Equal(t, "460", date.EntryID)
}

func TestParseSchemaSkipsWidgetlessEntries(t *testing.T) {
	form, err := ParseSchema([]byte(samplePage))
	require.NoError(t, err)
	for _, q := range form.Questions {
		assert.NotEqual(t, "Section header", q.Label)
	}
}

func TestParseSchemaNoEmailCollection(t *testing.T) {
	page := `<script>var FB_PUBLIC_LOAD_DATA_ = [null,["desc",[[101,"Q",null,0,[[456,null,0]]]],null,null,null,null,null,null,null,null,[null,null,null,null,null,null,1]],null,"Title"];</script>`
	form, err := ParseSchema([]byte(page))
	require.NoError(t, err)
	require.Len(t, form.Questions, 1)
	assert.Equal(t, TypeShortAnswer, form.Questions[0].Type)
}

func TestParseSchemaGridRows(t *testing.T) {
	page := `<script>var FB_PUBLIC_LOAD_DATA_ = [null,["desc",[[101,"Rate the sessions",null,7,[[456,[["Good"],["Bad"]],1,["Keynote"]],[457,[["Good"],["Bad"]],1,["Workshop"]]]]],null,null,null,null,null,null,null,null,[null,null,null,null,null,null,1]],null,"Title"];</script>`
	form, err := ParseSchema([]byte(page))
	require.NoError(t, err)
	require.Len(t, form.Questions, 2)
	assert.Equal(t, "Rate the sessions [Keynote]", form.Questions[0].Label)
	assert.Equal(t, "Rate the sessions [Workshop]", form.Questions[1].Label)
	assert.Equal(t, TypeGrid, form.Questions[0].Type)
}

func TestParseSchemaRejectsPagesWithoutData(t *testing.T) {
	_, err := ParseSchema([]byte("<html><body>nothing here</body></html>"))
	assert.Error(t, err)
}

func TestRequiredOnly(t *testing.T) {
	form := &Form{Questions: []Question{
		{EntryID: "1", Required: true},
		{EntryID: "2"},
		{EntryID: "3", Required: true},
	}}
	required := form.RequiredOnly()
	require.Len(t, required, 2)
	assert.Equal(t, "1", required[0].EntryID)
	assert.Equal(t, "3", required[1].EntryID)
}

func TestTypeFromID(t *testing.T) {
	tests := []struct {
		id   int
		want QuestionType
	}{
		{0, TypeShortAnswer},
		{1, TypeParagraph},
		{2, TypeMultipleChoice},
		{3, TypeDropdown},
		{4, TypeCheckboxes},
		{5, TypeLinearScale},
		{7, TypeGrid},
		{9, TypeDate},
		{10, TypeTime},
		{8, TypeUnsupported},
		{42, TypeUnsupported},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, typeFromID(tt.id), "type id %d", tt.id)
	}
}
