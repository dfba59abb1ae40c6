package messages

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/honeybee-human/Chatroom/api/rest/pagination"
	"github.com/honeybee-human/Chatroom/internal/chat"
	"github.com/honeybee-human/Chatroom/internal/errors"
	"github.com/honeybee-human/Chatroom/internal/protocol"
	"github.com/samber/lo"
)

// returns the current history snapshot, oldest first
func ListMessagesHandler(room *chat.Room, format protocol.Formatter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var query pagination.Params
		if err := c.ShouldBindQuery(&query); err != nil {
			errors.BadRequest(c, "invalid pagination parameters", err)
			return
		}

		params := pagination.DefaultParams(query.Limit, query.Offset, defaultLimit, maxLimit)
		history := room.History()

		c.JSON(http.StatusOK, ListMessagesResponse{
			Messages:   format.Messages(pagination.Page(history, params)),
			Pagination: pagination.NewMeta(params, len(history)),
		})
	}
}

// returns one message while it is still in the history
func GetMessageHandler(room *chat.Room, format protocol.Formatter) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || id == 0 {
			errors.BadRequest(c, "invalid message id", err)
			return
		}

		msg, err := room.Message(id)
		if err != nil {
			if errors.Classify(err).Code == errors.CodeNotFound {
				errors.NotFound(c, "message")
				return
			}

			errors.InternalError(c, "failed to load message", err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: format.Message(msg)})
	}
}

// returns room counters
func StatsHandler(room *chat.Room) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := room.Stats()

		c.JSON(http.StatusOK, StatsResponse{
			ActiveUsers: stats.ActiveUsers,
			Messages:    stats.Messages,
			Capacity:    stats.Capacity,
			LastID:      stats.LastID,
		})
	}
}

// lists who is online; connection ids stay private
func ListSessionsHandler(room *chat.Room) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions := lo.Map(room.Sessions(), func(s chat.Session, _ int) SessionResponse {
			return SessionResponse{Name: s.DisplayName, Color: s.Color}
		})

		c.JSON(http.StatusOK, ListSessionsResponse{Sessions: sessions})
	}
}
