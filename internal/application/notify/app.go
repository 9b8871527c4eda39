package notify

import (
	notifyevent "gitlab.com/tmsv2/tms-backend/internal/application/notify/event"
)

type App struct {
	Event *notifyevent.NotifyEventHandler
}

type Args struct {
	MailSender     notifyevent.MailSender
	SMSSender      notifyevent.SMSSender
	TelegramSender notifyevent.TelegramSender
	Lang           string
}

func NewApp(args Args) *App {
	return &App{
		Event: notifyevent.NewNotifyEventHandler(notifyevent.NotifyEventHandlerArgs{
			MailSender:     args.MailSender,
			SMSSender:      args.SMSSender,
			TelegramSender: args.TelegramSender,
			Lang:           args.Lang,
		}),
	}
}
