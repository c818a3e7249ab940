package apperrors

import (
	"fmt"

	"github.com/pkg/errors"
)

type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindInstanceNotFound
	KindConflict
	KindUnprocessable
)

var kindName = map[Kind]string{
	KindInternal:         "internal_error",
	KindInvalidInput:     "invalid_input",
	KindInstanceNotFound: "not_found",
	KindConflict:         "conflict",
	KindUnprocessable:    "unprocessable",
}

func (k Kind) String() string {
	if name, exist := kindName[k]; exist {
		return name
	}
	return "unknown"
}

// Error ошибка бизнес-логики с видом, по которому контроллер выбирает http статус
type Error struct {
	kind    Kind
	message string
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Kind() Kind {
	return e.kind
}

func newError(kind Kind, format string, args ...any) error {
	return &Error{
		kind:    kind,
		message: fmt.Sprintf(format, args...),
	}
}

func InvalidInput(format string, args ...any) error {
	return newError(KindInvalidInput, format, args...)
}

func NotFound(format string, args ...any) error {
	return newError(KindInstanceNotFound, format, args...)
}

func Conflict(format string, args ...any) error {
	return newError(KindConflict, format, args...)
}

func Unprocessable(format string, args ...any) error {
	return newError(KindUnprocessable, format, args...)
}

func Internal(format string, args ...any) error {
	return newError(KindInternal, format, args...)
}

// KindOf вид ошибки с учетом errors.Wrap, для прочих ошибок KindInternal
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}

// IsApp ошибка сформирована бизнес-логикой, текст можно отдавать клиенту
func IsApp(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr)
}
