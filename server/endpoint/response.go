package endpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/nativebridge/errors"
	"github.com/kbukum/nativebridge/server/middleware"
	"github.com/kbukum/nativebridge/validation"
)

// DataResponse is the standard success envelope.
type DataResponse struct {
	Data any `json:"data"`
}

// RespondWithError writes err as an error envelope. AppErrors carry their
// own status; anything else becomes a 500 INTERNAL_ERROR.
func RespondWithError(c *gin.Context, err error) {
	appErr := apperrors.FromError(err)
	c.Set(middleware.ErrorCodeKey, string(appErr.Code))
	c.JSON(appErr.HTTPStatus, appErr.ToResponse())
}

// RespondOK sends a 200 response wrapping data.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}

// bindJSON decodes the request body into dst keeping numbers as
// json.Number, then checks dst's validate tags.
func bindJSON(c *gin.Context, dst any) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.InvalidArgument("body", "request body is empty")
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperrors.InvalidArgument("body", fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		}
		return apperrors.InvalidArgument("body", fmt.Sprintf("malformed JSON body: %v", err))
	}
	return validation.Validate(dst)
}
