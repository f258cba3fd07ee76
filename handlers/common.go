package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"socialfeed/errs"
)

// writeError maps a service error onto the HTTP surface. Storage and
// unexpected errors are logged and collapsed into an opaque 500 so no
// internal detail reaches the client.
func writeError(c *gin.Context, err error) {
	var e *errs.Error
	if errors.As(err, &e) {
		switch e.Kind {
		case errs.KindValidation, errs.KindConflict:
			c.JSON(http.StatusBadRequest, gin.H{"message": e.Message})
			return
		case errs.KindAuthentication:
			c.JSON(http.StatusUnauthorized, gin.H{"message": e.Message})
			return
		case errs.KindNotFound:
			c.JSON(http.StatusNotFound, gin.H{"message": e.Message})
			return
		}
	}

	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
}
