package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/bikebay/server/internal/helpers"
	"github.com/bikebay/server/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestActorFrom(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if _, ok := actorFrom(c); ok {
		t.Fatal("no claims on the context should yield no actor")
	}

	userID := uuid.New()
	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Set("user", &helpers.EnhancedClaims{UserID: userID, Role: models.RoleHoster})

	actor, ok := actorFrom(c)
	if !ok {
		t.Fatal("claims on the context should yield an actor")
	}
	if actor.ID != userID || actor.Role != models.RoleHoster {
		t.Fatalf("actor = %+v, want the claims' identity and role", actor)
	}

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Set("user", "not-claims")
	if _, ok := actorFrom(c); ok {
		t.Fatal("a wrong value type should yield no actor")
	}
}
