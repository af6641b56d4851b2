package handler

import (
	"errors"
	"net/http"

	"github.com/devfolio/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	visitorCookieName   = "df_visitor_id"
	visitorCookieMaxAge = 365 * 24 * 60 * 60
)

type assistantRequest struct {
	Question string `json:"question"`
}

const (
	assistantRateLimitedReply = "You're asking faster than I can think. Give me a minute and try again."
	assistantInvalidReply     = "I can only answer plain questions about this site and its owner."
	assistantDownReply        = "Sorry, I can't answer right now. Please try again in a bit."
)

// AskAssistant answers one visitor question. Guard rejections come back as a
// normal reply with ok=false so the chat widget can show them inline instead
// of surfacing an HTTP error.
func (a *API) AskAssistant(c *gin.Context) {
	var req assistantRequest
	if !bindJSON(c, &req, "a question is required") {
		return
	}

	answer, err := a.assistant.Ask(c.Request.Context(), a.visitorID(c), req.Question)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssistantRateLimited):
			c.JSON(http.StatusOK, gin.H{"ok": false, "reply": assistantRateLimitedReply})
		case errors.Is(err, service.ErrAssistantInvalidInput):
			c.JSON(http.StatusOK, gin.H{"ok": false, "reply": assistantInvalidReply})
		default:
			c.JSON(http.StatusOK, gin.H{"ok": false, "reply": assistantDownReply})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"reply":     answer.Reply,
		"replyHtml": answer.ReplyHTML,
		"remaining": answer.Remaining,
	})
}

// visitorID reads the visitor cookie, minting one when absent so rate limits
// follow the browser rather than the IP.
func (a *API) visitorID(c *gin.Context) string {
	if id, err := c.Cookie(visitorCookieName); err == nil && id != "" {
		return id
	}
	id := uuid.New().String()
	c.SetCookie(visitorCookieName, id, visitorCookieMaxAge, "/", "", false, true)
	return id
}
