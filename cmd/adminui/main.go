package main

import (
	"context"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/nikmy/adminui/internal/api"
	"github.com/nikmy/adminui/internal/dashboard"
	"github.com/nikmy/adminui/internal/source"
	"github.com/nikmy/adminui/internal/telegram"
	"github.com/nikmy/adminui/pkg/errors"
	"github.com/nikmy/adminui/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := loadConfig()
	if err != nil {
		stdlog.Panic(errors.WrapFail(err, "load config"))
	}

	log, err := logger.New(cfg.Environment)
	if err != nil {
		stdlog.Panic(errors.WrapFail(err, "init logger"))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGABRT)
	defer cancel()

	src, err := source.New(ctx, cfg.Source, log)
	if err != nil {
		log.Panic(errors.WrapFail(err, "init members source"))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	ctl := dashboard.New(cfg.Dashboard, src, log, dashboard.WithRegisterer(reg))
	ctl.Start(ctx)

	var bot *telegram.Bot
	if cfg.Telegram.Enabled {
		bot, err = telegram.New(log, cfg.Telegram, ctl)
		if err != nil {
			log.Panic(errors.WrapFail(err, "initialize bot service"))
		}

		err = bot.Run(ctx)
		if err != nil {
			log.Panic(errors.WrapFail(err, "run bot"))
		}
		stdlog.Println("Bot has been started")
	}

	server := api.NewServer(cfg.API, log, ctl, reg)

	err = server.Serve(ctx)
	if err != nil {
		log.Error(errors.WrapFail(err, "serve http"))
	}

	stdlog.Println("Graceful shutdown...")

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()

	if bot != nil {
		bot.Stop()
	}

	err = errors.Join(
		server.Shutdown(shutdownCtx),
		src.Close(shutdownCtx),
	)
	if err != nil {
		log.Error(err)
	}

	stdlog.Println("Shutdown complete")
}
