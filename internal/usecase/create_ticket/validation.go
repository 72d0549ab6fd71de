package create_ticket

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
)

// validateRequest нормализует и проверяет входные данные
func validateRequest(req *Request) (domain.Channel, error) {
	req.ClientName = strings.TrimSpace(req.ClientName)
	req.ServiceName = strings.TrimSpace(req.ServiceName)

	if req.ClientName == "" {
		return "", fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}
	if len(req.ClientName) > domain.MaxClientNameLength {
		return "", fmt.Errorf("%w: clientName exceeds %d characters", ErrInvalidInput, domain.MaxClientNameLength)
	}

	if req.ServiceName == "" {
		return "", fmt.Errorf("%w: serviceName is required", ErrInvalidInput)
	}
	if len(req.ServiceName) > domain.MaxServiceNameLength {
		return "", fmt.Errorf("%w: serviceName exceeds %d characters", ErrInvalidInput, domain.MaxServiceNameLength)
	}

	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if len(phone) > domain.MaxPhoneLength {
			return "", fmt.Errorf("%w: phone exceeds %d characters", ErrInvalidInput, domain.MaxPhoneLength)
		}
		if phone == "" {
			req.Phone = nil
		} else {
			req.Phone = &phone
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return "", fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	channel, err := domain.ParseChannel(strings.TrimSpace(req.Channel))
	if err != nil {
		return "", fmt.Errorf("%w: channel must be qr or manual", ErrInvalidInput)
	}

	return channel, nil
}
