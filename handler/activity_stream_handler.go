package handler

import (
	"io"

	"main/model"
	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// StreamActivities pushes a full activity snapshot to the client over
// server-sent events whenever the owner's set changes. The first event
// carries the current state. If snapshots arrive faster than the client
// reads them, intermediate ones are dropped; the client always converges
// on the latest state.
func StreamActivities(c *gin.Context, repo *repository.ActivitiesRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	snapshots := make(chan []*model.Activity, 1)
	unsubscribe, err := repo.Subscribe(userID.(string), func(list []*model.Activity) {
		select {
		case snapshots <- list:
		default:
			// Drop the stale pending snapshot and queue the fresh one.
			select {
			case <-snapshots:
			default:
			}
			select {
			case snapshots <- list:
			default:
			}
		}
	})
	if err != nil {
		respondError(c, err)
		return
	}
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case list := <-snapshots:
			c.SSEvent("activities", gin.H{
				"activities": list,
				"count":      len(list),
			})
			return true
		case <-clientGone:
			return false
		}
	})
}
