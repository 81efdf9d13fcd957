package httpkit

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxKeyAgentID = "agent_id"
	ctxKeyEmail   = "agent_email"
)

// SetIdentity stores the authenticated agent on the request context.
// Called by the auth middleware after token verification.
func SetIdentity(c *gin.Context, agentID uuid.UUID, email string) {
	c.Set(ctxKeyAgentID, agentID)
	c.Set(ctxKeyEmail, email)
}

// AgentID returns the authenticated agent's ID, or false when the request
// is unauthenticated.
func AgentID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ctxKeyAgentID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// AgentEmail returns the authenticated agent's email, or false when absent.
func AgentEmail(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyEmail)
	if !ok {
		return "", false
	}
	email, ok := v.(string)
	return email, ok
}
