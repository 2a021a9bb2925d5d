package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
)

// AuthController verifies the admin password. No session or token is
// issued; a 200 simply tells the client the secret it holds is good.
type AuthController struct {
	gate *services.GateService
}

func NewAuthController(gate *services.GateService) *AuthController {
	return &AuthController{gate: gate}
}

// Login checks the submitted password against the configured one.
func (ct *AuthController) Login(c *ctx.Context) {
	var body struct {
		Password string `json:"password"`
	}

	if err := json.NewDecoder(c.R.Body).Decode(&body); err != nil {
		c.Error(http.StatusInternalServerError, "An error occurred")
		return
	}

	if !ct.gate.Authenticate(body.Password) {
		c.Unauthorized("Incorrect password")
		return
	}

	c.Success(map[string]bool{"success": true})
}
