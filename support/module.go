// Package support implements the contact panel, support tickets, and
// ticket feedback.
package support

import (
	"context"
	"time"

	"doorman/bot"
)

type Bot struct {
	*bot.Bot
}

func Init(b *bot.Bot) {
	bot := &Bot{Bot: b}

	bot.AddHandler(bot.channelDelete)

	bot.UI.Component("contact", bot.contactInteraction)
	bot.UI.Component("feedback", bot.feedbackInteraction)
	bot.UI.Modal("feedback", bot.feedbackModal)

	bot.initCommands()

	go bot.expireSessions()
}

func getctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}
