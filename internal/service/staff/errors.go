package staff

import "errors"

var (
	// ErrAdminExists возвращается, когда администратор уже создан
	ErrAdminExists = errors.New("admin account already exists")

	// ErrForbiddenInProduction возвращается при попытке bootstrap в production
	ErrForbiddenInProduction = errors.New("bootstrap is not allowed in production")

	// ErrEmailTaken возвращается, когда email сотрудника уже занят
	ErrEmailTaken = errors.New("staff email already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("staff service: internal error")
)
