package notify

import (
	"encoding/json"
	"fmt"

	"tavola/internal/events"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// TelegramSender is the slice of the bot API the notifier needs.
type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// StaffNotifier pushes booking events into the staff Telegram chats. It is a
// one-way channel: nobody commands the restaurant through Telegram, the chat
// just mirrors what happens on the site and in the admin panel.
type StaffNotifier struct {
	bot     TelegramSender
	chatIDs []int64
	logger  *zerolog.Logger
}

func NewStaffNotifier(bot TelegramSender, chatIDs []int64, logger *zerolog.Logger) *StaffNotifier {
	return &StaffNotifier{
		bot:     bot,
		chatIDs: chatIDs,
		logger:  logger,
	}
}

// Subscribe attaches the notifier to the event bus.
func (n *StaffNotifier) Subscribe(bus *events.EventBus) {
	bus.Subscribe(events.EventBookingCreated, n.handle(events.EventBookingCreated))
	bus.Subscribe(events.EventBookingStatusChanged, n.handle(events.EventBookingStatusChanged))
	bus.Subscribe(events.EventBookingDeleted, n.handle(events.EventBookingDeleted))
}

func (n *StaffNotifier) handle(eventType string) events.EventHandler {
	return func(event *events.Event) error {
		var payload events.BookingEventPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			n.logger.Error().Err(err).Str("event_type", eventType).Msg("decode event payload")
			return err
		}

		text := n.formatMessage(eventType, &payload)
		if text == "" {
			return nil
		}

		for _, chatID := range n.chatIDs {
			msg := tgbotapi.NewMessage(chatID, text)
			msg.ParseMode = tgbotapi.ModeMarkdown
			if _, err := n.bot.Send(msg); err != nil {
				n.logger.Error().Err(err).Int64("chat_id", chatID).Msg("send staff notification")
			}
		}
		return nil
	}
}

func (n *StaffNotifier) formatMessage(eventType string, p *events.BookingEventPayload) string {
	switch eventType {
	case events.EventBookingCreated:
		text := fmt.Sprintf(
			"🍽 *New booking*\n%s, party of %d\n📅 %s at %s\n📞 %s",
			p.GuestName, p.PartySize, p.Date, p.Time, p.GuestPhone,
		)
		if p.Occasion != "" && p.Occasion != "None" {
			text += "\n🎉 " + p.Occasion
		}
		if p.LocalOnly {
			text += "\n⚠️ not saved to the database, re-enter manually"
		}
		return text
	case events.EventBookingStatusChanged:
		return fmt.Sprintf(
			"🔄 *Booking update*\n%s on %s at %s\n%s → %s",
			p.GuestName, p.Date, p.Time, p.PrevStatus, p.Status,
		)
	case events.EventBookingDeleted:
		return fmt.Sprintf(
			"🗑 *Booking removed*\n%s on %s at %s",
			p.GuestName, p.Date, p.Time,
		)
	default:
		return ""
	}
}
