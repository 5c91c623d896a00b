package router

import (
	"errors"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/go-warden/warden/internal/engine/errs"
	"github.com/go-warden/warden/internal/engine/service"
	"github.com/go-warden/warden/pkg/cache"
	httpx "github.com/go-warden/warden/pkg/http"
	"github.com/go-warden/warden/pkg/http/middleware"
	"github.com/go-warden/warden/pkg/minio"
	"github.com/go-warden/warden/pkg/version"
)

type Router struct {
	Http     *httpx.Http
	Services *service.Services
	Rc       cache.ICache
	Minio    *minio.Minio
}

var validate = validator.New()

func NewRouter(httpConf *httpx.Http, services *service.Services, rc cache.ICache, m *minio.Minio) *Router {
	return &Router{
		Http:     httpConf,
		Services: services,
		Rc:       rc,
		Minio:    m,
	}
}

func (rt *Router) Router() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Warden",
		ReadTimeout:  time.Duration(rt.Http.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(rt.Http.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(rt.Http.IdleTimeout) * time.Second,
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
	})

	app.Use(
		middleware.ExceptionMiddleware,
		middleware.CorsMiddleware(),
		middleware.RequestMiddleware(),
		middleware.AccessLogMiddleware(rt.Http),
		middleware.UnifiedResponseMiddleware(),
	)

	if rt.Http.PProf {
		app.Use(pprof.New(pprof.Config{Prefix: "/debug"}))
	}
	if rt.Http.ExposeMetrics {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(version.GetVersion())
	})

	api := app.Group(rt.Http.ContextPath)
	auth := middleware.AuthorizationMiddleware(rt.Http.Auth.SecretKey, rt.Rc)

	rt.authRouter(api, auth)
	rt.userRouter(api, auth)
	rt.domainRouter(api, auth)
	rt.roleRouter(api, auth)
	rt.permRouter(api, auth)
	rt.orgRouter(api, auth)
	rt.rbacRouter(api, auth)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).
			JSON(httpx.ResponseErr{ErrCode: httpx.NotFound.Code, ErrMsg: "request path not found", Path: c.Path()})
	})

	return app
}

// repErr maps service errors onto the response code taxonomy.
func (rt *Router) repErr(c *fiber.Ctx, err error) error {
	code := httpx.Failed
	switch {
	case errors.Is(err, errs.ErrNotFound):
		code = httpx.NotFound
	case errors.Is(err, errs.ErrAlreadyExists):
		code = httpx.AlreadyExists
	case errors.Is(err, errs.ErrAlreadyGranted):
		code = httpx.AlreadyGranted
	case errors.Is(err, errs.ErrNotGranted):
		code = httpx.NotGranted
	case errors.Is(err, errs.ErrMissingDomain):
		code = httpx.MissingDomain
	case errors.Is(err, errs.ErrOutOfDomain):
		code = httpx.OutOfDomain
	case errors.Is(err, errs.ErrInsufficientLevel):
		code = httpx.InsufficientLevel
	case errors.Is(err, errs.ErrAdminOnly):
		code = httpx.AdminOnly
	case errors.Is(err, errs.ErrPermissionDenied):
		code = httpx.PermissionDenied
	case errors.Is(err, errs.ErrUserNotExist):
		code = httpx.UserNotExist
	case errors.Is(err, errs.ErrUserAlreadyExist):
		code = httpx.UserAlreadyExist
	case errors.Is(err, errs.ErrIncorrectPassword):
		code = httpx.UserIncorrectPassword
	case errors.Is(err, errs.ErrUserDisabled):
		code = httpx.UserDisabled
	case errors.Is(err, errs.ErrValidationFailed):
		code = httpx.ValidationFailed
	case errors.Is(err, errs.ErrTransactionFailed):
		code = httpx.TransactionFailed
	}
	return httpx.WithRepErrMsg(c, code.Code, err.Error(), c.Path())
}

// parseAndValidate decodes the body and checks field constraints. On
// failure the error envelope is already written and the handler should
// return nil.
func parseAndValidate(c *fiber.Ctx, req any) bool {
	if err := c.BodyParser(req); err != nil {
		_ = httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
		return false
	}
	if err := validate.Struct(req); err != nil {
		_ = httpx.WithRepErrMsg(c, httpx.ValidationFailed.Code, err.Error(), c.Path())
		return false
	}
	return true
}

func queryInt(c *fiber.Ctx, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func pagination(c *fiber.Ctx) (int, int) {
	return queryInt(c, "pageNum", 1), queryInt(c, "pageSize", 20)
}
