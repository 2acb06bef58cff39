package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-attendance-punch/internal/attendance"
	"github.com/imrishuroy/go-attendance-punch/internal/aws"
	"github.com/imrishuroy/go-attendance-punch/internal/validation"
)

// RegisterAttendanceRoutes registers the punch write and list routes.
func RegisterAttendanceRoutes(r gin.IRoutes, svc *attendance.Service) {
	v := validation.New()

	r.POST("/attendance", func(c *gin.Context) {
		var req validation.RecordPunchRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			// BindAndValidate already wrote the 4xx
			return
		}

		punch := req.Punch()
		if err := svc.Record(c.Request.Context(), punch); err != nil {
			internalError(c, "record punch user="+punch.UserID, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Recorded successfully", "data": punch})
	})

	r.GET("/attendance/:user_id", func(c *gin.Context) {
		userID := c.Param("user_id")

		punches, err := svc.List(c.Request.Context(), userID)
		if err != nil {
			internalError(c, "list punches user="+userID, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"items": punches})
	})
}

// internalError logs the cause and answers with a generic 500; store
// sub-causes are never exposed to the caller.
func internalError(c *gin.Context, op string, err error) {
	log.Printf("[api] %s request_id=%s code=%s: %v",
		op, c.Writer.Header().Get(HeaderRequestID), aws.ErrorCode(err), err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
}
