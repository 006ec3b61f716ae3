package httperr

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// ConflictDetail is the detail of a 409 booking conflict. Reason is only
// present when no conflicting booking could be listed.
type ConflictDetail struct {
	Reason    string            `json:"reason,omitempty"`
	Conflicts []ConflictBooking `json:"conflicts"`
}

type ConflictBooking struct {
	ID        uuid.UUID `json:"id"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	BookedBy  string    `json:"bookedBy"`
}

func AbortWithConflict(c *gin.Context, err error, msg string, detail ConflictDetail) {
	if detail.Conflicts == nil {
		detail.Conflicts = []ConflictBooking{}
	}
	AbortWithError(c, http.StatusConflict, err, msg, detail)
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
