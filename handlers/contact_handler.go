package handlers

import (
	"net/http"

	"github.com/devfolio/portfolio-backend/errors"
	"github.com/devfolio/portfolio-backend/services"
	"github.com/devfolio/portfolio-backend/types"
	"github.com/gin-gonic/gin"
)

const (
	messageSent     = "Message sent successfully!"
	messageReceived = "Message received successfully!"
)

// ContactHandler handles the contact form endpoints.
type ContactHandler struct {
	contactService *services.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// SubmitContact godoc
// @Summary      Submit the contact form
// @Description  Validates and stores a contact message, then notifies the site owner by email.
// @Description  A storage failure still answers 201 with "Message received successfully!".
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body      types.ContactCreate    true  "Contact payload"
// @Success      201   {object}  types.ContactResponse
// @Failure      400   {object}  types.ErrorResponse
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req types.ContactCreate
	if !bindJSONOrError(c, &req) {
		return
	}

	result, err := h.contactService.Submit(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	message := messageSent
	if !result.Persisted {
		message = messageReceived
	}

	c.JSON(http.StatusCreated, types.ContactResponse{
		Success: true,
		Message: message,
		Data:    result.Submission,
	})
}

// ListContacts godoc
// @Summary      List contact submissions
// @Description  Returns every stored submission, most recent first. Never fails; an unreadable store yields [].
// @Tags         contact
// @Produce      json
// @Success      200  {array}  types.ContactSubmission
// @Router       /contacts [get]
func (h *ContactHandler) ListContacts(c *gin.Context) {
	c.JSON(http.StatusOK, h.contactService.List(c.Request.Context()))
}

// bindJSONOrError decodes the body into obj. Any decoding failure is
// reported as the missing-fields validation error.
func bindJSONOrError(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		_ = c.Error(errors.MissingFields())
		return false
	}
	return true
}
