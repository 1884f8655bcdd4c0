package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dorkyrobot/yuri/internal/uris"
)

// APIResponse is the body of every API response. Code is 0 on success and
// the HTTP status otherwise.
type APIResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg,omitempty"`
	Data any    `json:"data,omitempty"`
}

func respondSuccess(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse{Data: data})
}

func respondError(c *gin.Context, err error) {
	status := uris.HTTPStatus(err)
	l := zerolog.Ctx(c.Request.Context())
	if status >= http.StatusInternalServerError {
		l.Error().Err(err).Msg("request failed")
	} else {
		l.Debug().Err(err).Msg("rejected")
	}
	c.AbortWithStatusJSON(status, APIResponse{Code: status, Msg: err.Error()})
}

func missing(param string) error {
	return &uris.Error{Kind: uris.KindInvalidArgument, Message: "missing query parameter " + param}
}
