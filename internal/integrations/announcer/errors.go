package announcer

import "errors"

var (
	// ErrPublish не удалось опубликовать объявление
	ErrPublish = errors.New("announcer: failed to publish announcement")

	// ErrRecent не удалось прочитать последние объявления
	ErrRecent = errors.New("announcer: failed to read recent announcements")
)
