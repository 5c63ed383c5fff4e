package handlers

import (
	"editorial-cms/helper"
	"editorial-cms/middleware"
	"editorial-cms/models"
	"editorial-cms/services"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService services.ReviewService
	Helper        *helper.HTTPHelper
}

func NewReviewHandler(reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		Helper:        &helper.HTTPHelper{},
	}
}

func (h *ReviewHandler) AssignReviewer(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	id, err := parseID(c, "id")
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid article ID", h.Helper.EmptyJsonMap())
		return
	}

	var req models.AssignReviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	assignment, err := h.reviewService.AssignReviewer(actor, id, req.ReviewerID)
	if err != nil {
		h.Helper.SendWorkflowError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Reviewer assigned", assignment)
}

func (h *ReviewHandler) ReassignReviewer(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	id, err := parseID(c, "id")
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid article ID", h.Helper.EmptyJsonMap())
		return
	}

	var req models.AssignReviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	assignment, err := h.reviewService.ReassignReviewer(actor, id, req.ReviewerID)
	if err != nil {
		h.Helper.SendWorkflowError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Reviewer reassigned", assignment)
}

func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	id, err := parseID(c, "id")
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid article ID", h.Helper.EmptyJsonMap())
		return
	}

	var req models.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	decision, err := h.reviewService.SubmitReview(actor, id, req)
	if err != nil {
		h.Helper.SendWorkflowError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Review recorded", decision)
}

func (h *ReviewHandler) GetAssignments(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	id, err := parseID(c, "id")
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid article ID", h.Helper.EmptyJsonMap())
		return
	}

	assignments, err := h.reviewService.GetAssignments(actor, id)
	if err != nil {
		h.Helper.SendWorkflowError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", assignments)
}

func (h *ReviewHandler) GetDecisions(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	id, err := parseID(c, "id")
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid article ID", h.Helper.EmptyJsonMap())
		return
	}

	decisions, err := h.reviewService.GetDecisions(actor, id)
	if err != nil {
		h.Helper.SendWorkflowError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", decisions)
}
