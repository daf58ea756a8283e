package handler

import (
	"net/http"

	"pinboard/internal/authz"
	"pinboard/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OwnerSummary is the slim user view embedded where a board or pin expands
// its owner.
type OwnerSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// currentActor resolves the request identity set by the auth middleware.
// Routes behind optional auth may yield an anonymous actor.
func currentActor(c *gin.Context) authz.Actor {
	v, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return authz.Actor{}
	}
	id, ok := v.(primitive.ObjectID)
	if !ok {
		return authz.Actor{}
	}
	roleVal, _ := c.Get(middleware.UserRoleKey)
	role, _ := roleVal.(string)
	return authz.Actor{ID: id, Role: role}
}

// requireActor is for routes that must run authenticated; it writes the 401
// itself when the middleware did not attach an identity.
func requireActor(c *gin.Context) (authz.Actor, bool) {
	actor := currentActor(c)
	if !actor.Authenticated() {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return authz.Actor{}, false
	}
	return actor, true
}

func parseIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id format")
		return primitive.NilObjectID, false
	}
	return id, true
}
