package reset_tickets

import "errors"

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = errors.New("reset_tickets: internal error")
