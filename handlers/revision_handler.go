package handlers

import (
	"editorial-cms/helper"
	"editorial-cms/middleware"
	"editorial-cms/models"
	"editorial-cms/services"

	"github.com/gin-gonic/gin"
)

type RevisionHandler struct {
	revisionService services.RevisionService
	Helper          *helper.HTTPHelper
}

func NewRevisionHandler(revisionService services.RevisionService) *RevisionHandler {
	return &RevisionHandler{
		revisionService: revisionService,
		Helper:          &helper.HTTPHelper{},
	}
}

func (h *RevisionHandler) RequestRevision(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	id, err := parseID(c, "id")
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid article ID", h.Helper.EmptyJsonMap())
		return
	}

	var req models.RevisionReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	request, err := h.revisionService.RequestRevision(actor, id, req.Reason)
	if err != nil {
		h.Helper.SendWorkflowError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Revision requested", request)
}

func (h *RevisionHandler) ApproveRevision(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	id, err := parseID(c, "id")
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid article ID", h.Helper.EmptyJsonMap())
		return
	}

	request, err := h.revisionService.ApproveRevision(actor, id)
	if err != nil {
		h.Helper.SendWorkflowError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Revision approved", request)
}

func (h *RevisionHandler) RejectRevision(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	id, err := parseID(c, "id")
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid article ID", h.Helper.EmptyJsonMap())
		return
	}

	var req models.RevisionReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	request, err := h.revisionService.RejectRevision(actor, id, req.Reason)
	if err != nil {
		h.Helper.SendWorkflowError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Revision rejected", request)
}

func (h *RevisionHandler) CompleteRevision(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	requestID, err := parseID(c, "request_id")
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid revision request ID", h.Helper.EmptyJsonMap())
		return
	}

	article, err := h.revisionService.CompleteRevision(actor, requestID)
	if err != nil {
		h.Helper.SendWorkflowError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Revision completed", article)
}

func (h *RevisionHandler) GetRequests(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	id, err := parseID(c, "id")
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid article ID", h.Helper.EmptyJsonMap())
		return
	}

	requests, err := h.revisionService.GetRequests(actor, id)
	if err != nil {
		h.Helper.SendWorkflowError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", requests)
}
