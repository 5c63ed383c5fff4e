package helper

import (
	"math"
	"net/http"
	"strconv"

	"editorial-cms/models"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/go-playground/validator.v9"
)

const (
	textError   = `error`
	textOk      = `ok`
	codeSuccess = 200
)

// ResponseHelper ...
type ResponseHelper struct {
	C        *gin.Context
	Status   string
	Message  string
	Data     interface{}
	Code     int // mirrors the http code in the envelope
	CodeType string
}

// HTTPHelper ...
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
}

// StatusCodeFor maps a workflow error kind to the HTTP status surfaced to
// consumers. Foreign errors (storage failures) become 500.
func (u *HTTPHelper) StatusCodeFor(err error) int {
	switch models.KindOf(err) {
	case models.KindUnauthorized:
		return http.StatusForbidden
	case models.KindNotFound:
		return http.StatusNotFound
	case models.KindValidationFailed:
		return http.StatusBadRequest
	case models.KindInvalidStateTransition,
		models.KindDuplicateAssignment,
		models.KindNoPriorAssignment,
		models.KindNotPending,
		models.KindDuplicatePendingRequest:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// SendWorkflowError ...
// Send a workflow error with its kind-derived status to consumers.
func (u *HTTPHelper) SendWorkflowError(c *gin.Context, err error) error {
	status := u.StatusCodeFor(err)
	codeType := string(models.KindOf(err))
	if codeType == "" {
		codeType = `internalError`
	}

	c.JSON(status, map[string]interface{}{
		"code":         status,
		"code_type":    codeType,
		"code_message": err.Error(),
		"data":         u.EmptyJsonMap(),
	})
	return nil
}

// SetResponse ...
// Set response data.
func (u *HTTPHelper) SetResponse(c *gin.Context, status string, message string, data interface{}, code int, codeType string) ResponseHelper {
	return ResponseHelper{c, status, message, data, code, codeType}
}

// SendError ...
// Send error response to consumers.
func (u *HTTPHelper) SendError(c *gin.Context, message string, data interface{}, code int, codeType string) error {
	res := u.SetResponse(c, textError, message, data, code, codeType)

	return u.SendResponse(res)
}

// SendBadRequest ...
// Send bad request response to consumers.
func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string, data interface{}) error {
	res := u.SetResponse(c, textError, message, data, http.StatusBadRequest, `badRequest`)

	return u.SendResponse(res)
}

// SendValidationError ...
// Send validation error response to consumers.
func (u *HTTPHelper) SendValidationError(c *gin.Context, validationErrors validator.ValidationErrors) error {
	errorResponse := map[string][]string{}
	errorTranslation := validationErrors.Translate(u.Translator)
	for _, err := range validationErrors {
		errKey := Underscore(err.StructField())
		errorResponse[errKey] = append(errorResponse[errKey], errorTranslation[err.Namespace()])
	}

	c.JSON(http.StatusBadRequest, map[string]interface{}{
		"code":         http.StatusBadRequest,
		"code_type":    `validationError`,
		"code_message": errorResponse,
		"data":         u.EmptyJsonMap(),
	})
	return nil
}

// SendUnauthorizedError ...
// Send unauthorized response to consumers.
func (u *HTTPHelper) SendUnauthorizedError(c *gin.Context, message string, data interface{}) error {
	res := u.SetResponse(c, textError, message, data, http.StatusUnauthorized, `unAuthorized`)

	return u.SendResponse(res)
}

// SendNotFoundError ...
// Send not found response to consumers.
func (u *HTTPHelper) SendNotFoundError(c *gin.Context, message string, data interface{}) error {
	res := u.SetResponse(c, textError, message, data, http.StatusNotFound, `notFound`)

	return u.SendResponse(res)
}

// SendSuccess ...
// Send success response to consumers.
func (u *HTTPHelper) SendSuccess(c *gin.Context, message string, data interface{}) error {
	res := u.SetResponse(c, textOk, message, data, codeSuccess, `success`)

	return u.SendResponse(res)
}

// SendCreated ...
// Send created response to consumers.
func (u *HTTPHelper) SendCreated(c *gin.Context, message string, data interface{}) error {
	res := u.SetResponse(c, textOk, message, data, http.StatusCreated, `created`)

	return u.SendResponse(res)
}

// SendResponse ...
// Send response
func (u *HTTPHelper) SendResponse(res ResponseHelper) error {
	if len(res.Message) == 0 {
		res.Message = `success`
	}

	resCode := res.Code
	if resCode == codeSuccess {
		resCode = http.StatusOK
	}

	res.C.JSON(resCode, map[string]interface{}{
		"code":         res.Code,
		"code_type":    res.CodeType,
		"code_message": res.Message,
		"data":         res.Data,
	})
	return nil
}

func (u *HTTPHelper) EmptyJsonMap() map[string]interface{} {
	return make(map[string]interface{})
}

// get pagination URL
func (u *HTTPHelper) GetPagingUrl(c *gin.Context, page, limit int) string {
	r := c.Request
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	currentURL := scheme + "://" + r.Host + r.URL.Path + "?page=" + strconv.Itoa(page) + "&limit=" + strconv.Itoa(limit)
	return currentURL
}

// Set pagination response
func (u *HTTPHelper) GeneratePaging(c *gin.Context, prev, next, limit, page, totalRecord int) map[string]interface{} {

	prevURL, nextURL, firstURL, lastURL := "", "", "", ""

	totalPages := int(math.Ceil(float64(totalRecord) / float64(limit)))

	if page > 1 {
		prev = page - 1
		if page < totalPages {
			next = page + 1
		} else {
			next = totalPages
		}
	}

	if totalPages >= page && page > 1 {
		prevURL = u.GetPagingUrl(c, prev, limit)
	}

	if totalPages > page {
		nextURL = u.GetPagingUrl(c, next, limit)
	}

	if totalPages >= page && page > 1 {
		firstURL = u.GetPagingUrl(c, 1, limit)
	}

	if totalPages >= page && totalPages != page {
		lastURL = u.GetPagingUrl(c, totalPages, limit)
	}

	links := map[string]interface{}{
		"previous": prevURL,
		"next":     nextURL,
		"first":    firstURL,
		"last":     lastURL,
	}

	pagination := map[string]interface{}{
		"total_records": totalRecord,
		"per_page":      limit,
		"current_page":  page,
		"total_pages":   totalPages,
		"links":         links,
	}

	return pagination
}
