package handlers

import (
	"editorial-cms/helper"
	"editorial-cms/middleware"
	"editorial-cms/models"
	"editorial-cms/services"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	tagService services.TagService
	Helper     *helper.HTTPHelper
}

func NewTagHandler(tagService services.TagService) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		Helper:     &helper.HTTPHelper{},
	}
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var req models.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	tag, err := h.tagService.CreateTag(actor, req)
	if err != nil {
		h.Helper.SendWorkflowError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Tag created successfully", tag)
}

func (h *TagHandler) GetTags(c *gin.Context) {
	tags, err := h.tagService.GetTags()
	if err != nil {
		h.Helper.SendWorkflowError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", tags)
}

func (h *TagHandler) GetTag(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid tag ID", h.Helper.EmptyJsonMap())
		return
	}

	tag, err := h.tagService.GetTag(id)
	if err != nil {
		h.Helper.SendWorkflowError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", tag)
}
