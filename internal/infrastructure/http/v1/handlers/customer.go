package handlers

import (
	"github.com/gin-gonic/gin"

	"defter/internal/core/apperror"
	"defter/internal/core/id"
	"defter/internal/domain/catalogs/customer"
	"defter/internal/infrastructure/http/v1/dto"
)

// CustomerHandler provides HTTP handlers for the customer catalog.
type CustomerHandler struct {
	*BaseHandler
	service *customer.Service
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(base *BaseHandler, service *customer.Service) *CustomerHandler {
	return &CustomerHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /customers.
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromCustomers(customers))
}

// Get handles GET /customers/:id.
func (h *CustomerHandler) Get(c *gin.Context) {
	customerID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	record, err := h.service.GetByID(c.Request.Context(), customerID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromCustomer(record))
}

// Create handles POST /customers.
func (h *CustomerHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	record, err := h.service.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromCustomer(record))
}

// Update handles PUT /customers/:id.
func (h *CustomerHandler) Update(c *gin.Context) {
	customerID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		h.Error(c, err)
		return
	}

	record, err := h.service.Update(c.Request.Context(), customerID, patch)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromCustomer(record))
}

// Delete handles DELETE /customers/:id.
// Reports the outcome as a boolean, not an error.
func (h *CustomerHandler) Delete(c *gin.Context) {
	customerID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), customerID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.DeleteResponse{Deleted: deleted})
}
