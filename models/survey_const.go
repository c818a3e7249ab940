package models

type QuestionType string

const (
	QuestionTypeLikert       QuestionType = "likert"
	QuestionTypeShortAnswer  QuestionType = "short_answer"
	QuestionTypeSingleSelect QuestionType = "single_select"
	QuestionTypeMultiSelect  QuestionType = "multi_select"
	QuestionTypeExtent       QuestionType = "extent"
	QuestionTypeLongAnswer   QuestionType = "long_answer"
)

var questionTypeHumanName = map[QuestionType]string{
	QuestionTypeLikert:       "리커트",
	QuestionTypeShortAnswer:  "단답형",
	QuestionTypeSingleSelect: "단일 선택",
	QuestionTypeMultiSelect:  "다중 선택",
	QuestionTypeExtent:       "정도",
	QuestionTypeLongAnswer:   "서술형",
}

func (t QuestionType) ToHuman() string {
	if human, exist := questionTypeHumanName[t]; exist {
		return human
	}
	return string(t)
}

func (t QuestionType) IsValid() bool {
	_, exist := questionTypeHumanName[t]
	return exist
}

// IsNumeric ответы этих типов выгружаются в Excel числом
func (t QuestionType) IsNumeric() bool {
	switch t {
	case QuestionTypeLikert, QuestionTypeExtent, QuestionTypeSingleSelect:
		return true
	}
	return false
}

type ChoiceSet string

const (
	ChoiceSetShared      ChoiceSet = "shared"       // общие варианты ответа сектора
	ChoiceSetPerQuestion ChoiceSet = "per_question" // у каждого вопроса свои варианты
)

// ChoiceOwner значения совпадают с polymorphicValue в dbmodels
type ChoiceOwner string

const (
	ChoiceOwnerSector   ChoiceOwner = "sector"
	ChoiceOwnerQuestion ChoiceOwner = "question"
)

type ContactType string

const (
	ContactTypeEmail ContactType = "email"
	ContactTypePhone ContactType = "phone"
)

var contactTypeHumanName = map[ContactType]string{
	ContactTypeEmail: "이메일",
	ContactTypePhone: "휴대폰 번호",
}

func (t ContactType) ToHuman() string {
	if human, exist := contactTypeHumanName[t]; exist {
		return human
	}
	return string(t)
}

func (t ContactType) IsValid() bool {
	_, exist := contactTypeHumanName[t]
	return exist
}
