package v1

import (
	"github.com/gin-gonic/gin"

	chatHTTP "go-marketplace/internal/pkg/chat/presentation/http"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1.
func RegisterRoutes(r *gin.Engine, deps chatHTTP.Deps) {
	v1 := r.Group("/api/v1")
	chatHTTP.RegisterRoutes(v1, deps)
}
