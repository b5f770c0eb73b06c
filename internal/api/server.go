package api

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nikmy/adminui/internal/dashboard"
	"github.com/nikmy/adminui/internal/edit"
	"github.com/nikmy/adminui/internal/members"
	"github.com/nikmy/adminui/pkg/errors"
	"github.com/nikmy/adminui/pkg/logger"
)

// editOwner is the edit session owner for all HTTP clients.
const editOwner = "api"

func NewServer(cfg Config, log logger.Logger, ctl controller, gatherer prometheus.Gatherer) Server {
	serveLog := log.With("api_http_server")

	fiberCfg := fiber.Config{
		ReadTimeout:             cfg.HTTP.ReadTimeout,
		WriteTimeout:            cfg.HTTP.WriteTimeout,
		IdleTimeout:             cfg.HTTP.IdleTimeout,
		DisableStartupMessage:   true,
		EnableTrustedProxyCheck: len(cfg.Proxy.Trusted) != 0,
		ProxyHeader:             cfg.Proxy.Header,
		TrustedProxies:          cfg.Proxy.Trusted,
		RequestMethods: []string{
			fiber.MethodHead,
			fiber.MethodGet,
			fiber.MethodPost,
			fiber.MethodPut,
			fiber.MethodPatch,
			fiber.MethodDelete,
		},
	}

	fiberCfg.ErrorHandler = func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(errorBody(fe.Message))
		}

		serveLog.Warn(errors.WrapFailf(err, "handle %s %s", c.Method(), c.Path()))
		return c.Status(http.StatusInternalServerError).Send(nil)
	}

	s := &server{
		ctl:      ctl,
		gatherer: gatherer,
		http:     fiber.New(fiberCfg),
		addr:     cfg.HTTP.Addr,
		log:      serveLog,
	}

	s.setupRoutes()

	return s
}

type server struct {
	ctl      controller
	gatherer prometheus.Gatherer
	http     *fiber.App
	addr     string
	log      logger.Logger
}

func (s *server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.http.Listen(s.addr) }()

	s.log.Infof("listening on %s", s.addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return nil
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	err := s.http.ShutdownWithContext(ctx)
	return errors.WrapFail(err, "shutdown http server")
}

func (s *server) setupRoutes() {
	s.http.Get("/healthz", s.handleHealth)

	s.http.Get("/members", s.handleList)
	s.http.Post("/members", s.handleCreate)
	s.http.Delete("/members/:id", s.handleDelete)
	s.http.Post("/members/:id/edit", s.handleBeginEdit)
	s.http.Put("/query", s.handleSetQuery)

	s.http.Get("/edit", s.handleSession)
	s.http.Patch("/edit", s.handleStage)
	s.http.Post("/edit/save", s.handleSave)
	s.http.Post("/edit/cancel", s.handleCancel)

	s.http.Post("/reload", s.handleReload)

	if s.gatherer != nil {
		s.http.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}
}

func (s *server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "OK", "load": s.ctl.State()})
}

func (s *server) handleList(c *fiber.Ctx) error {
	q := s.ctl.Query()
	if c.Context().QueryArgs().Has("q") {
		q = c.Query("q")
	}

	items := s.ctl.Search(q)
	return c.JSON(fiber.Map{
		"items": items,
		"total": len(items),
		"query": q,
		"load":  s.ctl.State(),
	})
}

func (s *server) handleSetQuery(c *fiber.Ctx) error {
	var req struct {
		Query string `json:"query"`
	}

	err := c.BodyParser(&req)
	if err != nil {
		s.log.Debug(errors.WrapFail(err, "parse query request"))
		return s.sendError(c, http.StatusBadRequest, "bad json")
	}

	s.ctl.SetQuery(req.Query)
	return c.SendStatus(http.StatusNoContent)
}

func (s *server) handleCreate(c *fiber.Ctx) error {
	var fields members.Fields

	err := c.BodyParser(&fields)
	if err != nil {
		s.log.Debug(errors.WrapFail(err, "parse member payload"))
		return s.sendError(c, http.StatusBadRequest, "bad json")
	}

	rec, err := s.ctl.Create(c.UserContext(), fields)
	if err != nil {
		return s.sendControllerError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(rec)
}

func (s *server) handleDelete(c *fiber.Ctx) error {
	id := c.Params("id")

	removed, err := s.ctl.Delete(id)
	if err != nil {
		return s.sendControllerError(c, err)
	}

	if !removed {
		return s.sendError(c, http.StatusNotFound, "no member with id \""+id+"\"")
	}

	return c.SendStatus(http.StatusNoContent)
}

func (s *server) handleSession(c *fiber.Ctx) error {
	return c.JSON(s.ctl.Session())
}

func (s *server) handleBeginEdit(c *fiber.Ctx) error {
	snap, err := s.ctl.BeginEdit(editOwner, c.Params("id"))
	if err != nil {
		return s.sendControllerError(c, err)
	}

	return c.JSON(snap)
}

func (s *server) handleStage(c *fiber.Ctx) error {
	var patch members.Patch

	err := c.BodyParser(&patch)
	if err != nil {
		s.log.Debug(errors.WrapFail(err, "parse patch"))
		return s.sendError(c, http.StatusBadRequest, "bad patch format")
	}

	if patch.Empty() {
		return s.sendError(c, http.StatusBadRequest, "nothing to stage")
	}

	snap, err := s.ctl.Stage(editOwner, patch)
	if err != nil {
		return s.sendControllerError(c, err)
	}

	return c.JSON(snap)
}

func (s *server) handleSave(c *fiber.Ctx) error {
	rec, err := s.ctl.Save(c.UserContext(), editOwner)
	if err != nil {
		return s.sendControllerError(c, err)
	}

	return c.JSON(rec)
}

func (s *server) handleCancel(c *fiber.Ctx) error {
	err := s.ctl.Cancel(editOwner)
	if err != nil {
		return s.sendControllerError(c, err)
	}

	return c.SendStatus(http.StatusNoContent)
}

func (s *server) handleReload(c *fiber.Ctx) error {
	err := s.ctl.Load(c.UserContext())
	if err != nil {
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{
			"status":  "ERROR",
			"message": "load failed",
			"load":    s.ctl.State(),
		})
	}

	return c.JSON(fiber.Map{"status": "OK", "load": s.ctl.State()})
}

func (s *server) sendControllerError(c *fiber.Ctx, err error) error {
	var verr *edit.ValidationError

	switch {
	case errors.As(err, &verr):
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{
			"status":  "ERROR",
			"message": "validation failed",
			"fields":  verr.Fields,
		})
	case errors.Is(err, dashboard.ErrNotFound):
		return s.sendError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, edit.ErrLocked), errors.Is(err, edit.ErrNotEditing):
		return s.sendError(c, http.StatusConflict, err.Error())
	default:
		return err
	}
}

func (s *server) sendError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(errorBody(msg))
}

func errorBody(msg string) fiber.Map {
	return fiber.Map{"status": "ERROR", "message": msg}
}
