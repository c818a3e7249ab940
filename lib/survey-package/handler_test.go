package surveypackage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"survey-package-backend/db/testdb"
	apperrors "survey-package-backend/lib/utils/app-errors"
	"survey-package-backend/models"
	packageapimodels "survey-package-backend/models/api/survey-package"
	dbmodels "survey-package-backend/models/db"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func ptr[T any](v T) *T {
	return &v
}

type fileStorageMock struct {
	uploaded map[string][]byte
	deleted  []string
}

func (m *fileStorageMock) UploadLogo(ctx context.Context, packageUUID, fileName string, fileReader io.Reader, fileSize int64, contentType string) (string, error) {
	body, err := io.ReadAll(fileReader)
	if err != nil {
		return "", err
	}
	key := "package_logo/" + packageUUID + "/" + fileName
	m.uploaded[key] = body
	return key, nil
}

func (m *fileStorageMock) GetFile(ctx context.Context, key string) ([]byte, error) {
	return m.uploaded[key], nil
}

func (m *fileStorageMock) DeleteFile(ctx context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	return nil
}

func newTestHandler(t *testing.T) (impl, *gorm.DB, *fileStorageMock) {
	gormDB := testdb.New(t)
	storage := &fileStorageMock{uploaded: map[string][]byte{}}
	return NewInstance(gormDB, storage).(impl), gormDB, storage
}

func createSurvey(t *testing.T, gormDB *gorm.DB, id uint64, abbr string) {
	rec := dbmodels.Survey{
		BaseModel: dbmodels.BaseModel{ID: id},
		Title:     "Опрос " + abbr,
		Abbr:      abbr,
	}
	require.NoError(t, gormDB.Create(&rec).Error)
}

func createPackage(t *testing.T, gormDB *gorm.DB, id uint64) {
	rec := dbmodels.SurveyPackage{
		BaseModel:  dbmodels.BaseModel{ID: id},
		Title:      "Пакет",
		AccessCode: "1234",
		UUID:       fmt.Sprintf("package-uuid-%d", id),
	}
	require.NoError(t, gormDB.Create(&rec).Error)
}

func count(t *testing.T, gormDB *gorm.DB, model interface{}) int64 {
	var result int64
	require.NoError(t, gormDB.Model(model).Count(&result).Error)
	return result
}

func TestComposeParts(t *testing.T) {
	handler, gormDB, _ := newTestHandler(t)
	createSurvey(t, gormDB, 999, "AB")
	createPackage(t, gormDB, 999)

	parts := []packageapimodels.PartData{{
		Title: ptr("Part1"),
		Subjects: []packageapimodels.SubjectData{{
			Number:  1,
			Title:   "Subj1",
			Surveys: []packageapimodels.SubjectSurveyData{{Survey: 999}},
		}},
	}}

	t.Run(`compose and re-compose with empty list`, func(t *testing.T) {
		result, err := handler.ComposeParts(999, parts)
		require.NoError(t, err)
		require.Len(t, result, 1)
		require.Equal(t, "Part1", result[0].Title)
		require.Len(t, result[0].Subjects, 1)
		require.Equal(t, "Subj1", result[0].Subjects[0].Title)
		require.Len(t, result[0].Subjects[0].Surveys, 1)
		require.EqualValues(t, 999, result[0].Subjects[0].Surveys[0].SurveyID)

		view, err := handler.Get(999)
		require.NoError(t, err)
		require.Len(t, view.Parts, 1)

		result, err = handler.ComposeParts(999, []packageapimodels.PartData{})
		require.NoError(t, err)
		require.Empty(t, result)

		view, err = handler.Get(999)
		require.NoError(t, err)
		require.Empty(t, view.Parts)
		require.EqualValues(t, 0, count(t, gormDB, &dbmodels.PackagePart{}))
		require.EqualValues(t, 0, count(t, gormDB, &dbmodels.PackageSubject{}))
		require.EqualValues(t, 0, count(t, gormDB, &dbmodels.PackageSubjectSurvey{}))
		require.EqualValues(t, 1, count(t, gormDB, &dbmodels.Survey{}))
	})

	t.Run(`re-compose leaves only the new tree`, func(t *testing.T) {
		createSurvey(t, gormDB, 1000, "CD")
		_, err := handler.ComposeParts(999, append(parts, packageapimodels.PartData{Title: ptr("Part2")}))
		require.NoError(t, err)

		next := []packageapimodels.PartData{{
			Title: ptr("Other"),
			Subjects: []packageapimodels.SubjectData{
				{Number: 1, Title: "A", Surveys: []packageapimodels.SubjectSurveyData{{Survey: 1000, Number: ptr(3)}}},
				{Number: 2, Title: "B"},
			},
		}}
		result, err := handler.ComposeParts(999, next)
		require.NoError(t, err)
		require.Len(t, result, 1)

		view, err := handler.Get(999)
		require.NoError(t, err)
		require.Len(t, view.Parts, 1)
		require.Equal(t, "Other", view.Parts[0].Title)
		require.Len(t, view.Parts[0].Subjects, 2)
		require.EqualValues(t, 1, count(t, gormDB, &dbmodels.PackagePart{}))
		require.EqualValues(t, 2, count(t, gormDB, &dbmodels.PackageSubject{}))
		require.EqualValues(t, 1, count(t, gormDB, &dbmodels.PackageSubjectSurvey{}))
	})

	t.Run(`unknown survey rolls back`, func(t *testing.T) {
		broken := []packageapimodels.PartData{{
			Title:    ptr("Broken"),
			Subjects: []packageapimodels.SubjectData{{Number: 1, Title: "X", Surveys: []packageapimodels.SubjectSurveyData{{Survey: 5}}}},
		}}
		_, err := handler.ComposeParts(999, broken)
		require.True(t, apperrors.Is(err, apperrors.KindInstanceNotFound))

		view, err := handler.Get(999)
		require.NoError(t, err)
		require.Len(t, view.Parts, 1)
		require.Equal(t, "Other", view.Parts[0].Title)
	})

	t.Run(`part without title`, func(t *testing.T) {
		_, err := handler.ComposeParts(999, []packageapimodels.PartData{{}})
		require.True(t, apperrors.Is(err, apperrors.KindInvalidInput))
	})

	t.Run(`unknown package`, func(t *testing.T) {
		_, err := handler.ComposeParts(5, parts)
		require.True(t, apperrors.Is(err, apperrors.KindInstanceNotFound))
	})
}

func TestDeletePart(t *testing.T) {
	handler, gormDB, _ := newTestHandler(t)
	createSurvey(t, gormDB, 7, "S")
	createPackage(t, gormDB, 1)

	part, err := handler.CreatePart(1, packageapimodels.PartData{
		Title: ptr("Part1"),
		Subjects: []packageapimodels.SubjectData{{
			Number:  1,
			Title:   "Subj1",
			Surveys: []packageapimodels.SubjectSurveyData{{Survey: 7}},
		}},
	})
	require.NoError(t, err)

	require.NoError(t, handler.DeletePart(part.ID))
	_, err = handler.GetPart(part.ID)
	require.True(t, apperrors.Is(err, apperrors.KindInstanceNotFound))
	require.EqualValues(t, 0, count(t, gormDB, &dbmodels.PackageSubjectSurvey{}))

	survey := dbmodels.Survey{}
	require.NoError(t, gormDB.First(&survey, 7).Error)
	require.Equal(t, "S", survey.Abbr)

	err = handler.DeletePart(part.ID)
	require.True(t, apperrors.Is(err, apperrors.KindInstanceNotFound))
}

func TestSubjects(t *testing.T) {
	handler, gormDB, _ := newTestHandler(t)
	createSurvey(t, gormDB, 1, "A")
	createSurvey(t, gormDB, 2, "B")
	createPackage(t, gormDB, 1)

	part, err := handler.CreatePart(1, packageapimodels.PartData{Title: ptr("Part1")})
	require.NoError(t, err)
	subject, err := handler.CreateSubject(part.ID, packageapimodels.SubjectData{
		Number:  1,
		Title:   "Subj1",
		Surveys: []packageapimodels.SubjectSurveyData{{Survey: 1}},
	})
	require.NoError(t, err)
	require.Len(t, subject.Surveys, 1)

	t.Run(`associate appends`, func(t *testing.T) {
		view, err := handler.AssociateSubjectWithSurveys(subject.ID, []packageapimodels.SubjectSurveyData{{Survey: 2, Title: ptr("Второй")}})
		require.NoError(t, err)
		require.Len(t, view.Surveys, 2)
	})

	t.Run(`replace`, func(t *testing.T) {
		view, err := handler.ReplaceSubjectSurveys(subject.ID, []packageapimodels.SubjectSurveyData{{Survey: 2}})
		require.NoError(t, err)
		require.Len(t, view.Surveys, 1)
		require.EqualValues(t, 2, view.Surveys[0].SurveyID)
		require.NotNil(t, view.Surveys[0].Survey)
		require.Equal(t, "B", view.Surveys[0].Survey.Abbr)
	})

	t.Run(`update`, func(t *testing.T) {
		require.NoError(t, handler.UpdateSubject(subject.ID, packageapimodels.SubjectUpdate{Number: ptr(5)}))
		view, err := handler.GetSubject(subject.ID)
		require.NoError(t, err)
		require.Equal(t, 5, view.Number)
		require.Equal(t, "Subj1", view.Title)
	})

	t.Run(`delete keeps surveys`, func(t *testing.T) {
		require.NoError(t, handler.DeleteSubject(subject.ID))
		_, err := handler.GetSubject(subject.ID)
		require.True(t, apperrors.Is(err, apperrors.KindInstanceNotFound))
		require.EqualValues(t, 2, count(t, gormDB, &dbmodels.Survey{}))
	})

	t.Run(`update part title`, func(t *testing.T) {
		require.NoError(t, handler.UpdatePartTitle(part.ID, packageapimodels.PartTitle{Title: "Новая"}))
		view, err := handler.GetPart(part.ID)
		require.NoError(t, err)
		require.Equal(t, "Новая", view.Title)
	})
}

func TestPackageCrud(t *testing.T) {
	handler, gormDB, storage := newTestHandler(t)

	contacts := packageapimodels.ContactList{
		{Type: models.ContactTypeEmail, Content: "a@b.c"},
		{Type: models.ContactTypePhone, Content: "010-0000-0000"},
	}
	view, err := handler.Create(3, packageapimodels.PackageData{
		Title:      "Пакет",
		AccessCode: "1234",
		Contacts:   &contacts,
	})
	require.NoError(t, err)
	require.Len(t, view.UUID, 22)
	require.Len(t, view.Contacts, 2)
	require.EqualValues(t, 3, view.AuthorID)

	t.Run(`update replaces contacts`, func(t *testing.T) {
		replaced := packageapimodels.ContactList{{Type: models.ContactTypeEmail, Content: "x@y.z"}}
		err := handler.Update(view.ID, packageapimodels.PackageData{
			Title:      "Пакет 2",
			AccessCode: "4321",
			IsClosed:   true,
			Contacts:   &replaced,
		})
		require.NoError(t, err)
		updated, err := handler.Get(view.ID)
		require.NoError(t, err)
		require.Equal(t, "Пакет 2", updated.Title)
		require.True(t, updated.IsClosed)
		require.Len(t, updated.Contacts, 1)
		require.Equal(t, "x@y.z", updated.Contacts[0].Content)
	})

	t.Run(`add contacts`, func(t *testing.T) {
		updated, err := handler.AddContacts(view.ID, packageapimodels.ContactList{{Type: models.ContactTypePhone, Content: "1"}})
		require.NoError(t, err)
		require.Len(t, updated.Contacts, 2)

		_, err = handler.AddContacts(view.ID, packageapimodels.ContactList{{Type: "fax", Content: "1"}})
		require.True(t, apperrors.Is(err, apperrors.KindInvalidInput))
	})

	t.Run(`logo upload replaces previous logo`, func(t *testing.T) {
		updated, err := handler.UploadLogo(context.Background(), view.ID, "a.png", bytes.NewReader([]byte("a")), 1, "image/png")
		require.NoError(t, err)
		require.Equal(t, "package_logo/"+view.UUID+"/a.png", updated.Logo)

		updated, err = handler.UploadLogo(context.Background(), view.ID, "b.png", bytes.NewReader([]byte("b")), 1, "image/png")
		require.NoError(t, err)
		require.Equal(t, "package_logo/"+view.UUID+"/b.png", updated.Logo)
		require.Equal(t, []string{"package_logo/" + view.UUID + "/a.png"}, storage.deleted)

		_, err = handler.UploadLogo(context.Background(), view.ID+100, "c.png", bytes.NewReader([]byte("c")), 1, "image/png")
		require.True(t, apperrors.Is(err, apperrors.KindInstanceNotFound))
	})

	t.Run(`delete keeps surveys`, func(t *testing.T) {
		createSurvey(t, gormDB, 50, "K")
		_, err := handler.CreatePart(view.ID, packageapimodels.PartData{
			Title:    ptr("Part1"),
			Subjects: []packageapimodels.SubjectData{{Number: 1, Title: "S", Surveys: []packageapimodels.SubjectSurveyData{{Survey: 50}}}},
		})
		require.NoError(t, err)

		require.NoError(t, handler.Delete(view.ID))
		_, err = handler.Get(view.ID)
		require.True(t, apperrors.Is(err, apperrors.KindInstanceNotFound))
		require.EqualValues(t, 0, count(t, gormDB, &dbmodels.PackagePart{}))
		require.EqualValues(t, 0, count(t, gormDB, &dbmodels.PackageContact{}))
		require.EqualValues(t, 1, count(t, gormDB, &dbmodels.Survey{}))
		require.Contains(t, storage.deleted, "package_logo/"+view.UUID+"/b.png")
	})
}
