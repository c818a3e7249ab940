package workspaceapimodels

import (
	apperrors "survey-package-backend/lib/utils/app-errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoutineDataValidate(t *testing.T) {
	valid := RoutineData{
		KickOff:  1,
		Duration: 7,
		Routines: []RoutineDetailData{{NthDay: 7, Time: "23:59", SurveyPackage: 2}},
	}
	require.NoError(t, valid.Validate())

	cases := map[string]func(d *RoutineData){
		"no kick off":      func(d *RoutineData) { d.KickOff = 0 },
		"zero duration":    func(d *RoutineData) { d.Duration = 0 },
		"day out of range": func(d *RoutineData) { d.Routines[0].NthDay = 8 },
		"bad time":         func(d *RoutineData) { d.Routines[0].Time = "25:00" },
		"no package":       func(d *RoutineData) { d.Routines[0].SurveyPackage = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			data := valid
			data.Routines = append([]RoutineDetailData{}, valid.Routines...)
			mutate(&data)
			require.True(t, apperrors.Is(data.Validate(), apperrors.KindInvalidInput))
		})
	}
}

func TestWorkspaceDataValidate(t *testing.T) {
	require.NoError(t, WorkspaceData{Name: "Отдел", AccessCode: "1234"}.Validate())
	require.Error(t, WorkspaceData{Name: " ", AccessCode: "1234"}.Validate())
	require.Error(t, WorkspaceData{Name: "Отдел"}.Validate())
	require.Error(t, WorkspaceData{Name: "Отдел", AccessCode: "12345678901"}.Validate())
}
