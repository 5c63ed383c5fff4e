package handlers

import (
	"editorial-cms/helper"
	"editorial-cms/middleware"
	"editorial-cms/models"
	"editorial-cms/services"

	"github.com/gin-gonic/gin"
)

type ChangeHandler struct {
	changeService services.ChangeService
	Helper        *helper.HTTPHelper
}

func NewChangeHandler(changeService services.ChangeService) *ChangeHandler {
	return &ChangeHandler{
		changeService: changeService,
		Helper:        &helper.HTTPHelper{},
	}
}

func (h *ChangeHandler) TrackChanges(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	id, err := parseID(c, "id")
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid article ID", h.Helper.EmptyJsonMap())
		return
	}

	var req models.TrackChangesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	version, records, err := h.changeService.TrackChanges(actor, id, req)
	if err != nil {
		h.Helper.SendWorkflowError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Changes tracked", gin.H{
		"version": version,
		"changes": records,
	})
}

func (h *ChangeHandler) ApproveChange(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	changeID, err := parseID(c, "change_id")
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid change ID", h.Helper.EmptyJsonMap())
		return
	}

	record, err := h.changeService.ApproveChange(actor, changeID)
	if err != nil {
		h.Helper.SendWorkflowError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Change approved", record)
}

func (h *ChangeHandler) RejectChange(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	changeID, err := parseID(c, "change_id")
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid change ID", h.Helper.EmptyJsonMap())
		return
	}

	var req models.RejectChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	record, err := h.changeService.RejectChange(actor, changeID, req.Reason)
	if err != nil {
		h.Helper.SendWorkflowError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Change rejected", record)
}

func (h *ChangeHandler) ApproveAllChanges(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	id, err := parseID(c, "id")
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid article ID", h.Helper.EmptyJsonMap())
		return
	}

	if err := h.changeService.ApproveAllChanges(actor, id); err != nil {
		h.Helper.SendWorkflowError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "All pending changes approved", h.Helper.EmptyJsonMap())
}

func (h *ChangeHandler) RejectAllChanges(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	id, err := parseID(c, "id")
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid article ID", h.Helper.EmptyJsonMap())
		return
	}

	var req models.RejectChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	if err := h.changeService.RejectAllChanges(actor, id, req.Reason); err != nil {
		h.Helper.SendWorkflowError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "All pending changes rejected", h.Helper.EmptyJsonMap())
}

func (h *ChangeHandler) GetChanges(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	id, err := parseID(c, "id")
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid article ID", h.Helper.EmptyJsonMap())
		return
	}

	var records []models.ChangeRecord
	if c.Query("status") == string(models.ChangePending) {
		records, err = h.changeService.GetPendingChanges(actor, id)
	} else {
		records, err = h.changeService.GetChanges(actor, id)
	}
	if err != nil {
		h.Helper.SendWorkflowError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", records)
}
