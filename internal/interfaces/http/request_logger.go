package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog"
)

// HTTPObserver recibe la duración de cada request (métricas). Puede ser nil.
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, seconds float64)
}

// RequestLogger registra método, ruta, status, latencia y request id de cada request.
func RequestLogger(log zerolog.Logger, observer HTTPObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// el status final solo se conoce después del ErrorHandler
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		elapsed := time.Since(start)

		// ruta registrada (/api/ventas/:id), no el path con el id
		route := c.Route().Path
		// Method() apunta al buffer de fasthttp, que se reutiliza; el label vive en el registry
		method := utils.CopyString(c.Method())
		if observer != nil {
			observer.ObserveHTTP(method, route, status, elapsed.Seconds())
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", method).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", elapsed).
			Str("request_id", requestID(c)).
			Msg("request")
		return nil
	}
}
