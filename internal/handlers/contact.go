package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/contacts/internal/model"
	"github.com/umalmyha/contacts/internal/repository"
	"github.com/umalmyha/contacts/internal/service"
)

type deleteConfirmation struct {
	Message string `json:"message"`
}

// ContactHandler is http handler for contacts endpoint
type ContactHandler struct {
	contactSvc service.ContactService
}

// NewContactHandler builds new ContactHandler
func NewContactHandler(contactSvc service.ContactService) *ContactHandler {
	return &ContactHandler{contactSvc: contactSvc}
}

// Post creates new contact
// @Summary     Create new contact
// @Description Persists provided contact, assigns id and creation time
// @Tags        contacts
// @Accept      json
// @Produce     json
// @Param       contact body     model.NewContact true "New contact data"
// @Success     201     {object} model.Contact
// @Failure     400     {object} echo.HTTPError
// @Router      /contacts [post]
func (h *ContactHandler) Post(c echo.Context) error {
	var nc model.NewContact
	if err := c.Bind(&nc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&nc); err != nil {
		return err
	}

	cont, err := h.contactSvc.Create(c.Request().Context(), nc)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, cont)
}

// GetAll lists contacts matching optional status and search filters
// @Summary     List contacts
// @Description Returns contacts sorted by creation time descending. Optional
// @Description status filter is an exact match, optional search filter is a
// @Description case-insensitive substring match on name or company
// @Tags        contacts
// @Produce     json
// @Param       status query    string false "Status filter" Enums(Interested, Follow-up, Closed)
// @Param       search query    string false "Name or company substring"
// @Success     200    {array}  model.Contact
// @Failure     500    {object} echo.HTTPError
// @Router      /contacts [get]
func (h *ContactHandler) GetAll(c echo.Context) error {
	filter := repository.ListFilter{
		Status: model.Status(c.QueryParam("status")),
		Search: c.QueryParam("search"),
	}

	contacts, err := h.contactSvc.FindAll(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, contacts)
}

// Get reads single contact
// @Summary     Get contact by id
// @Description Returns contact with provided id, null if no such contact exists
// @Tags        contacts
// @Produce     json
// @Param       id  path     string true "Contact id"
// @Success     200 {object} model.Contact
// @Failure     500 {object} echo.HTTPError
// @Router      /contacts/{id} [get]
func (h *ContactHandler) Get(c echo.Context) error {
	cont, err := h.contactSvc.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, cont)
}

// Put merges supplied fields into existing contact
// @Summary     Update contact
// @Description Overwrites only the fields present in payload. Responds with
// @Description null when no contact with provided id exists
// @Tags        contacts
// @Accept      json
// @Produce     json
// @Param       id      path     string              true "Contact id"
// @Param       contact body     model.UpdateContact true "Fields to overwrite"
// @Success     200     {object} model.Contact
// @Failure     400     {object} echo.HTTPError
// @Router      /contacts/{id} [put]
func (h *ContactHandler) Put(c echo.Context) error {
	var upd model.UpdateContact
	if err := c.Bind(&upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&upd); err != nil {
		return err
	}

	cont, err := h.contactSvc.UpdateByID(c.Request().Context(), upd)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, cont)
}

// DeleteByID removes contact
// @Summary     Delete contact
// @Description Removes contact with provided id, succeeds even if no such
// @Description contact exists
// @Tags        contacts
// @Produce     json
// @Param       id  path     string true "Contact id"
// @Success     200 {object} deleteConfirmation
// @Failure     400 {object} echo.HTTPError
// @Router      /contacts/{id} [delete]
func (h *ContactHandler) DeleteByID(c echo.Context) error {
	if err := h.contactSvc.DeleteByID(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, &deleteConfirmation{Message: "contact deleted successfully"})
}
