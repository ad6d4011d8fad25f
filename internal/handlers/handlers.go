package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"loja-backend/internal/apperr"
	"loja-backend/internal/middleware"
	"loja-backend/internal/service"
)

// requestTimeout bounds every store and provider call made for one request.
const requestTimeout = 10 * time.Second

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// callerFrom reads the identity Authenticate left in the context.
func callerFrom(c *gin.Context) service.Caller {
	var caller service.Caller
	if v, ok := c.Get(middleware.UserIDKey); ok {
		caller.UserID, _ = v.(primitive.ObjectID)
	}
	caller.Role = c.GetString(middleware.RoleKey)
	return caller
}

// bindJSON decodes the body into dst, answering 400 on malformed JSON.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, apperr.Validation("corpo da requisição inválido"))
		return false
	}
	return true
}

// respondError writes {"erro": msg} with the status of the error's kind.
// Causes of internal errors are logged and never sent to the client.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		fields := logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
			"error":  err.Error(),
		}
		if id, ok := c.Get(middleware.RequestIDKey); ok {
			fields["request_id"] = id
		}
		if errors.Is(err, context.DeadlineExceeded) {
			logrus.WithFields(fields).Warn("request timed out")
		} else {
			logrus.WithFields(fields).Error("request failed")
		}
	}
	c.JSON(kind.Status(), gin.H{"erro": apperr.MessageOf(err)})
}

func message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"mensagem": msg})
}
