package routing

import (
	"github.com/m04kA/SMC-PaymentService/internal/domain"
)

// Decide определяет, куда маршрутизируются средства платежа: на счет платформы
// или на connected account профессионала (destination charge).
//
// Наличная оплата без депозита означает, что картой проходит только сервисный
// сбор платформы - выручки профессионала на карточной стороне нет, маршрут
// всегда platform независимо от наличия connected account'а.
//
// Во всех остальных случаях средства принадлежат профессионалу и connected
// account обязан быть на месте: его отсутствие - ошибка конфигурации,
// а не повод молча увезти деньги на платформу.
func Decide(payment *domain.Payment, booking *domain.Booking) (domain.RouteTarget, error) {
	if booking.IsDirectPlatformPayment() {
		return domain.RoutePlatform(), nil
	}

	accountID := booking.ProfessionalConnectedAccountID
	if accountID == nil || *accountID == "" {
		// Платеж мог быть создан до онбординга профессионала в процессоре
		if payment.ProfessionalConnectedAccountID != nil && *payment.ProfessionalConnectedAccountID != "" {
			return domain.RouteConnectedAccount(*payment.ProfessionalConnectedAccountID), nil
		}
		return domain.RouteTarget{}, ErrMissingConnectedAccount
	}

	return domain.RouteConnectedAccount(*accountID), nil
}
