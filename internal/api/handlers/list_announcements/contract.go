package list_announcements

import (
	"context"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
)

type AnnouncementFeed interface {
	Recent(ctx context.Context, limit int) ([]domain.Announcement, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
