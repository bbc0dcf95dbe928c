// Package handler holds the echo handlers of the resort backend-for-frontend.
// Handlers call the upstream backend with the caller's own credentials and
// shape the answers into the views the pages render.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/palm-beach-resort/internal/apiclient"
	"github.com/iliyamo/palm-beach-resort/internal/logging"
	"github.com/iliyamo/palm-beach-resort/internal/middleware"
	"github.com/iliyamo/palm-beach-resort/internal/validation"
)

// requestTimeout bounds one handler's upstream work, availability retries included.
const requestTimeout = 20 * time.Second

// Upstream binds the backend client to the credentials of each request.
type Upstream struct {
	Client *apiclient.Client
}

// api returns the client authenticated as the caller plus a bounded context.
func (u Upstream) api(c echo.Context) (*apiclient.Client, context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	return u.Client.WithAuthenticator(middleware.UpstreamAuth(c)), ctx, cancel
}

// respondError maps validation, timeout and upstream failures to JSON.
// Client errors keep the upstream status; server errors become 502.
func respondError(c echo.Context, err error) error {
	var verrs validation.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "details": verrs})
	case errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusGatewayTimeout, echo.Map{"error": "the resort service took too long to answer"})
	case errors.Is(err, context.Canceled):
		return c.NoContent(499)
	case errors.Is(err, apiclient.ErrUnexpectedBody):
		logging.FromContext(c.Request().Context()).Error().Err(err).Msg("unreadable upstream response")
		return c.JSON(http.StatusBadGateway, echo.Map{"error": apiclient.Message(err)})
	}

	status := apiclient.StatusCode(err)
	if status == 0 || status >= 500 {
		logging.FromContext(c.Request().Context()).Error().Err(err).Msg("upstream call failed")
		return c.JSON(http.StatusBadGateway, echo.Map{"error": apiclient.Message(err)})
	}
	return c.JSON(status, echo.Map{"error": apiclient.Message(err)})
}

// paramID parses the :id path parameter.
func paramID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

func invalidID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
}

func invalidBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
}
