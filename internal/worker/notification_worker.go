package worker

import (
	"github.com/spec-kit/asset-maintenance/internal/events"
	"github.com/spec-kit/asset-maintenance/internal/service"
)

// StartNotificationWorker subscribes the notification fan-out to the ticket
// lifecycle events. Handlers run synchronously on the dispatcher, so they
// must stay cheap; delivery to external channels is stubbed.
func StartNotificationWorker(dispatcher events.Dispatcher, notifications *service.NotificationService) {
	if dispatcher == nil || notifications == nil {
		return
	}
	dispatcher.Subscribe(events.EventTicketCreated, notifications.HandleTicketCreated)
	dispatcher.Subscribe(events.EventTicketAssigned, notifications.HandleTicketAssigned)
	dispatcher.Subscribe(events.EventTicketStatusChanged, notifications.HandleTicketStatusChanged)
}
