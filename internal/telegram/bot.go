package telegram

import (
	"cmp"
	"context"

	"gopkg.in/telebot.v3"

	"github.com/nikmy/adminui/pkg/errors"
	"github.com/nikmy/adminui/pkg/logger"
)

const defaultMaxRows = 50

func New(log logger.Logger, conf Config, ctl controller) (*Bot, error) {
	b, err := telebot.NewBot(telebot.Settings{
		Token:   conf.Token,
		Updates: 256,
		Poller: &telebot.LongPoller{
			Timeout: conf.PollInterval,
		},
	})
	if err != nil {
		return nil, errors.WrapFail(err, "create telegram bot")
	}

	return &Bot{
		bot:     b,
		ctl:     ctl,
		maxRows: cmp.Or(conf.MaxRows, defaultMaxRows),
		log:     log.With("telegram"),
	}, nil
}

type Bot struct {
	bot *telebot.Bot
	ctx context.Context

	ctl     controller
	maxRows int

	log logger.Logger
}

func (b *Bot) Run(ctx context.Context) error {
	b.ctx = ctx
	b.setupHandlers()
	go b.bot.Start()
	return nil
}

func (b *Bot) Stop() {
	b.bot.Stop()
}
