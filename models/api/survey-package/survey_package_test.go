package surveypackageapimodels

import (
	"encoding/json"
	apperrors "survey-package-backend/lib/utils/app-errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContactList(t *testing.T) {
	t.Run(`list`, func(t *testing.T) {
		var data PackageData
		err := json.Unmarshal([]byte(`{"title":"P","access_code":"1","contacts":[{"type":"email","content":"a@b.c"}]}`), &data)
		require.NoError(t, err)
		require.NotNil(t, data.Contacts)
		require.Len(t, *data.Contacts, 1)
		require.NoError(t, data.Validate())
	})

	t.Run(`not a list`, func(t *testing.T) {
		var data PackageData
		err := json.Unmarshal([]byte(`{"title":"P","access_code":"1","contacts":{"type":"email","content":"a@b.c"}}`), &data)
		require.Error(t, err)
		require.True(t, apperrors.Is(err, apperrors.KindInvalidInput))
	})

	t.Run(`absent contacts`, func(t *testing.T) {
		var data PackageData
		require.NoError(t, json.Unmarshal([]byte(`{"title":"P","access_code":"1"}`), &data))
		require.Nil(t, data.Contacts)
	})

	t.Run(`invalid type`, func(t *testing.T) {
		list := ContactList{{Type: "fax", Content: "123"}}
		require.True(t, apperrors.Is(list.Validate(), apperrors.KindInvalidInput))
	})
}

func TestPartValidate(t *testing.T) {
	title := "Part1"
	require.NoError(t, ValidateParts([]PartData{{Title: &title}}))

	err := ValidateParts([]PartData{{}})
	require.True(t, apperrors.Is(err, apperrors.KindInvalidInput))

	err = ValidateParts([]PartData{{Title: &title, Subjects: []SubjectData{{Number: 1, Title: "S", Surveys: []SubjectSurveyData{{}}}}}})
	require.True(t, apperrors.Is(err, apperrors.KindInvalidInput))
}
