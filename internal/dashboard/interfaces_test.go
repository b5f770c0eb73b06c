package dashboard

import "github.com/nikmy/adminui/pkg/logger"

//go:generate mockgen -source=interfaces_test.go -destination=mocks_test.go -package=dashboard

type fetcherImpl interface {
	fetcher
}

type loggerImpl interface {
	logger.Logger
}
