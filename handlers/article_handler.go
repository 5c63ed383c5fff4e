package handlers

import (
	"net/http"
	"strconv"

	"editorial-cms/helper"
	"editorial-cms/middleware"
	"editorial-cms/models"
	"editorial-cms/services"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	articleService services.ArticleService
	Helper         *helper.HTTPHelper
}

func NewArticleHandler(articleService services.ArticleService) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
		Helper:         &helper.HTTPHelper{},
	}
}

func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var req models.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := h.articleService.CreateArticle(actor, req)
	if err != nil {
		c.JSON(h.Helper.StatusCodeFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, article)
}

func (h *ArticleHandler) GetArticles(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var params models.ArticleListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if params.Page == 0 {
		params.Page = 1
	}
	if params.Limit == 0 {
		params.Limit = 10
	}

	articles, total, err := h.articleService.GetArticles(actor, params, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"total":    total,
		"page":     params.Page,
		"limit":    params.Limit,
	})
}

func (h *ArticleHandler) GetPublicArticles(c *gin.Context) {
	var params models.ArticleListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if params.Page == 0 {
		params.Page = 1
	}
	if params.Limit == 0 {
		params.Limit = 10
	}

	articles, total, err := h.articleService.GetArticles(models.Actor{}, params, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"total":    total,
		"page":     params.Page,
		"limit":    params.Limit,
	})
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}

	article, err := h.articleService.GetArticle(actor, id)
	if err != nil {
		c.JSON(h.Helper.StatusCodeFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, article)
}

func (h *ArticleHandler) GetPublicArticle(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}

	article, err := h.articleService.GetPublicArticle(id)
	if err != nil {
		c.JSON(h.Helper.StatusCodeFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, article)
}

func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}

	var req models.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := h.articleService.UpdateArticle(actor, id, req)
	if err != nil {
		c.JSON(h.Helper.StatusCodeFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, article)
}

func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}

	if err := h.articleService.DeleteArticle(actor, id); err != nil {
		c.JSON(h.Helper.StatusCodeFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Article deleted successfully"})
}

func (h *ArticleHandler) SubmitArticle(c *gin.Context) {
	h.runTransition(c, h.articleService.SubmitArticle)
}

func (h *ArticleHandler) ApproveArticle(c *gin.Context) {
	h.runTransition(c, h.articleService.ApproveArticle)
}

func (h *ArticleHandler) RejectArticle(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}

	var req models.RejectArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := h.articleService.RejectArticle(actor, id, req.Reason)
	if err != nil {
		c.JSON(h.Helper.StatusCodeFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, article)
}

func (h *ArticleHandler) PublishArticle(c *gin.Context) {
	h.runTransition(c, h.articleService.PublishArticle)
}

func (h *ArticleHandler) GetArticleVersions(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}

	versions, err := h.articleService.GetArticleVersions(actor, id)
	if err != nil {
		c.JSON(h.Helper.StatusCodeFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, versions)
}

func (h *ArticleHandler) GetArticleVersion(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}

	versionNumber, err := strconv.Atoi(c.Param("version_number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid version number"})
		return
	}

	version, err := h.articleService.GetArticleVersion(actor, id, versionNumber)
	if err != nil {
		c.JSON(h.Helper.StatusCodeFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, version)
}

func (h *ArticleHandler) CompareVersions(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}

	var params models.CompareVersionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	diffs, err := h.articleService.CompareVersions(actor, id, params.From, params.To)
	if err != nil {
		c.JSON(h.Helper.StatusCodeFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from":  params.From,
		"to":    params.To,
		"diffs": diffs,
	})
}

func (h *ArticleHandler) runTransition(c *gin.Context, op func(models.Actor, uint) (*models.Article, error)) {
	actor := middleware.ActorFrom(c)
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}

	article, err := op(actor, id)
	if err != nil {
		c.JSON(h.Helper.StatusCodeFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, article)
}

func parseID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
