package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelune/storefront/internal/dto"
	"github.com/avelune/storefront/internal/middleware"
)

type SessionHandler struct{}

func NewSessionHandler() *SessionHandler { return &SessionHandler{} }

// Session reports the signed-in flag for the navigation bar. Identity is an
// external concern; nothing else depends on it.
func (h *SessionHandler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, dto.SessionResponse{SignedIn: middleware.GetSignedIn(c)})
}
