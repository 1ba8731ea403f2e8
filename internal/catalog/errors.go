package catalog

import "errors"

var (
	// ErrUnknownMenuItem возвращается, когда идентификатор отсутствует в каталоге
	ErrUnknownMenuItem = errors.New("catalog: unknown menu item")

	// ErrEmptySelection возвращается при пустом списке выбранных услуг
	ErrEmptySelection = errors.New("catalog: empty menu selection")
)
