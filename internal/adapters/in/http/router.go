package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"lastmile/internal/generated/servers"
	"lastmile/internal/metrics"
	"lastmile/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
	"golang.org/x/time/rate"
)

const (
	DefaultDispatchRate  = 1.0
	DefaultDispatchBurst = 3
)

var ErrDispatchRateIsInvalid = errs.NewValueIsInvalidError("dispatch rate")

// RouterConfig tunes the public surface of the API.
type RouterConfig struct {
	// DispatchRate is the sustained number of POST /api/v1/dispatch calls per second per client.
	DispatchRate  float64
	DispatchBurst int
}

func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		DispatchRate:  DefaultDispatchRate,
		DispatchBurst: DefaultDispatchBurst,
	}
}

// NewRouter builds the echo instance serving the API, its documentation, health and metrics.
func NewRouter(cfg RouterConfig, server servers.ServerInterface) (*echo.Echo, error) {
	if cfg.DispatchRate <= 0 || cfg.DispatchBurst <= 0 {
		return nil, ErrDispatchRateIsInvalid
	}

	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}

	validator, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	registerSwaggerDoc(docJSON)

	metrics.RegisterDefault()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(requestMetrics)
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	e.GET("/api/v1/openapi.json", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, docJSON)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlersWithBaseURL(e, server, "", map[string][]echo.MiddlewareFunc{
		"Dispatch": {dispatchRateLimiter(cfg)},
	})

	return e, nil
}

// requestValidator rejects requests that do not match the OpenAPI document.
// Routes the document does not describe pass through untouched.
func requestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacyrouter.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    &openapi3filter.Options{MultiError: false},
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return c.JSON(http.StatusBadRequest, servers.Error{
					Code:    http.StatusBadRequest,
					Message: validationMessage(err),
				})
			}

			return next(c)
		}
	}, nil
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Error()
	}
	return err.Error()
}

func dispatchRateLimiter(cfg RouterConfig) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(cfg.DispatchRate),
		Burst:     cfg.DispatchBurst,
		ExpiresIn: 3 * time.Minute,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, _ error) error {
			return c.JSON(http.StatusForbidden, servers.Error{
				Code:    http.StatusForbidden,
				Message: "Unable to identify client",
			})
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return c.JSON(http.StatusTooManyRequests, servers.Error{
				Code:    http.StatusTooManyRequests,
				Message: "Too many dispatch requests",
			})
		},
	})
}

// requestMetrics records every request under its route pattern.
func requestMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		status := c.Response().Status
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
		}

		path := c.Path()
		if path == "" {
			path = "unmatched"
		}

		labels := []string{c.Request().Method, path, strconv.Itoa(status)}
		metrics.HTTPRequests.WithLabelValues(labels...).Inc()
		metrics.HTTPDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())

		return err
	}
}

type swaggerDoc struct {
	json []byte
}

func (d swaggerDoc) ReadDoc() string {
	return string(d.json)
}

var swagOnce sync.Once

// registerSwaggerDoc hands the document to swag, which backs /swagger/doc.json.
func registerSwaggerDoc(docJSON []byte) {
	swagOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{json: docJSON})
	})
}
