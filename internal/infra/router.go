package infra

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/contacts/internal/handlers"
	"github.com/umalmyha/contacts/internal/service"
	"github.com/umalmyha/contacts/internal/validation"
)

// Router builds echo application serving the contacts API
func Router(contactSvc service.ContactService) (*echo.Echo, error) {
	e := echo.New()

	v, err := validation.New()
	if err != nil {
		return nil, err
	}
	e.Validator = v

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		var pldErr *validation.PayloadError
		if errors.As(err, &pldErr) {
			if err := c.JSON(http.StatusBadRequest, pldErr); err != nil {
				logrus.Errorf("failed to write validation error response - %v", err)
			}
			return
		}

		logrus.Errorf("error occurred on request processing - %v", err)
		e.DefaultHTTPErrorHandler(err, c)
	}

	contactHandler := handlers.NewContactHandler(contactSvc)

	contactsAPI := e.Group("/contacts")
	contactsAPI.GET("", contactHandler.GetAll)
	contactsAPI.GET("/:id", contactHandler.Get)
	contactsAPI.POST("", contactHandler.Post)
	contactsAPI.PUT("/:id", contactHandler.Put)
	contactsAPI.DELETE("/:id", contactHandler.DeleteByID)

	return e, nil
}
