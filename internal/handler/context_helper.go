package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/contentfactory/panel-api/pkg/errors"
)

// pathID parses the :id path parameter.
func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, "id must be numeric")
	}
	return id, nil
}
