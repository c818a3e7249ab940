package workspaceapimodels

import (
	"strings"
	apperrors "survey-package-backend/lib/utils/app-errors"
	surveypackageapimodels "survey-package-backend/models/api/survey-package"
	dbmodels "survey-package-backend/models/db"
	"time"
	"unicode/utf8"
)

type WorkspaceData struct {
	Name       string `json:"name"`
	AccessCode string `json:"access_code"`
}

func (w WorkspaceData) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return apperrors.InvalidInput("не указано название рабочего пространства")
	}
	if utf8.RuneCountInString(w.Name) > 30 {
		return apperrors.InvalidInput("название рабочего пространства длиннее 30 символов")
	}
	if strings.TrimSpace(w.AccessCode) == "" {
		return apperrors.InvalidInput("не указан код доступа")
	}
	if utf8.RuneCountInString(w.AccessCode) > 10 {
		return apperrors.InvalidInput("код доступа длиннее 10 символов")
	}
	return nil
}

type AddPackagesData struct {
	SurveyPackages []uint64 `json:"survey_packages"`
}

func (a AddPackagesData) Validate() error {
	if len(a.SurveyPackages) == 0 {
		return apperrors.InvalidInput("не указаны пакеты опросов")
	}
	return nil
}

type RoutineDetailData struct {
	NthDay        int    `json:"nth_day"`        // День от начала, с 1
	Time          string `json:"time"`           // ЧЧ:ММ
	SurveyPackage uint64 `json:"survey_package"` // Пакет, который назначается на этот день
}

func (d RoutineDetailData) Validate(duration int) error {
	if d.NthDay < 1 || d.NthDay > duration {
		return apperrors.InvalidInput("день %d вне периода 1..%d", d.NthDay, duration)
	}
	if _, err := time.Parse("15:04", d.Time); err != nil {
		return apperrors.InvalidInput("время '%s' должно быть в формате ЧЧ:ММ", d.Time)
	}
	if d.SurveyPackage == 0 {
		return apperrors.InvalidInput("не указан пакет опросов для дня %d", d.NthDay)
	}
	return nil
}

type RoutineData struct {
	KickOff  uint64              `json:"kick_off"` // Пакет вводного опроса
	Duration int                 `json:"duration"` // Длительность в днях
	Routines []RoutineDetailData `json:"routines"`
}

func (r RoutineData) Validate() error {
	if r.KickOff == 0 {
		return apperrors.InvalidInput("не указан пакет вводного опроса")
	}
	if r.Duration < 1 {
		return apperrors.InvalidInput("длительность должна быть больше нуля")
	}
	for _, detail := range r.Routines {
		if err := detail.Validate(r.Duration); err != nil {
			return err
		}
	}
	return nil
}

type KickOffData struct {
	Key  string `json:"key"`  // Идентификатор рабочего пространства + идентификатор респондента
	Code string `json:"code"` // Код доступа рабочего пространства
}

func (k KickOffData) Validate() error {
	if k.Key == "" {
		return apperrors.InvalidInput("не указан ключ")
	}
	if k.Code == "" {
		return apperrors.InvalidInput("не указан код доступа")
	}
	return nil
}

type RoutineDetailView struct {
	ID            uint64 `json:"id"`
	NthDay        int    `json:"nth_day"`
	Time          string `json:"time"`
	SurveyPackage uint64 `json:"survey_package"`
}

type RoutineView struct {
	ID       uint64              `json:"id"`
	KickOff  uint64              `json:"kick_off"`
	Duration int                 `json:"duration"`
	Details  []RoutineDetailView `json:"routines"`
}

type WorkspaceView struct {
	ID             uint64       `json:"id"`
	OwnerID        uint64       `json:"owner"`
	Name           string       `json:"name"`
	UUID           string       `json:"uuid"`
	AccessCode     string       `json:"access_code"`
	SurveyPackages []uint64     `json:"survey_packages"`
	Routine        *RoutineView `json:"routine"`
	CreatedAt      time.Time    `json:"created_at"`
}

type KickOffView struct {
	Workspace    string                             `json:"workspace"`
	RespondentID string                             `json:"respondent_id"`
	Package      surveypackageapimodels.PackageView `json:"survey_package"`
	Routine      *RoutineView                       `json:"routine"`
}

func WorkspaceConvert(rec dbmodels.Workspace, packageIDs []uint64) WorkspaceView {
	result := WorkspaceView{
		ID:             rec.ID,
		OwnerID:        rec.OwnerID,
		Name:           rec.Name,
		UUID:           rec.UUID,
		AccessCode:     rec.AccessCode,
		SurveyPackages: packageIDs,
		CreatedAt:      rec.CreatedAt,
	}
	if result.SurveyPackages == nil {
		result.SurveyPackages = []uint64{}
	}
	if rec.Routine != nil {
		routine := RoutineConvert(*rec.Routine)
		result.Routine = &routine
	}
	return result
}

func RoutineConvert(rec dbmodels.Routine) RoutineView {
	result := RoutineView{
		ID:       rec.ID,
		KickOff:  rec.KickOffID,
		Duration: rec.Duration,
		Details:  make([]RoutineDetailView, 0, len(rec.Details)),
	}
	for _, detail := range rec.Details {
		result.Details = append(result.Details, RoutineDetailView{
			ID:            detail.ID,
			NthDay:        detail.NthDay,
			Time:          detail.Time,
			SurveyPackage: detail.SurveyPackageID,
		})
	}
	return result
}
