package handler

import (
	"context"
	"time"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// HealthCheckHandler reports liveness of the service and its backends.
// Redis being down degrades the report but does not fail it; caches and
// the token blacklist are best-effort.
func HealthCheckHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	mongoStatus := "up"
	if err := utils.MongoClient.Ping(ctx, readpref.Primary()); err != nil {
		mongoStatus = "down"
		status = "degraded"
	}

	redisStatus := "down"
	if services.TokenBlacklist != nil && services.TokenBlacklist.IsConnected() {
		redisStatus = "up"
	}

	utils.Success(c, gin.H{
		"status": status,
		"backends": gin.H{
			"mongodb": mongoStatus,
			"redis":   redisStatus,
		},
		"system": gin.H{
			"cpu_percent":    utils.GetCPUUsage(),
			"memory_percent": utils.GetMemoryUsage(),
		},
		"time": time.Now().UTC(),
	})
}
