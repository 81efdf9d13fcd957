// Package http wires domain modules into the gin engine.
package http

import "github.com/gin-gonic/gin"

// RouterContext carries the route groups a module can attach handlers to.
type RouterContext struct {
	// Engine is the root engine, for routes outside /api/v1.
	Engine *gin.Engine
	// V1 is the public /api/v1 group.
	V1 *gin.RouterGroup
	// Protected is the /api/v1 group behind JWT authentication.
	Protected *gin.RouterGroup
}

// Module is a self-contained domain module that registers its own routes.
type Module interface {
	// Name returns the module name for logging.
	Name() string
	// RegisterRoutes attaches the module's handlers to the router.
	RegisterRoutes(rc *RouterContext)
}
