package handler

import (
	"net/http"
	"razorpay-checkout-demo/internal/dto"
	"razorpay-checkout-demo/internal/identity"
	"razorpay-checkout-demo/internal/middleware"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	identityService identity.Service
}

func NewAuthHandler(identityService identity.Service) *AuthHandler {
	return &AuthHandler{
		identityService: identityService,
	}
}

func (h *AuthHandler) SignIn(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SignInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	user, token, err := h.identityService.SignIn(ctx, &identity.Identity{
		ID:          req.ID,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, &dto.SignInResponse{
		Token:       token,
		ID:          user.ID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		AvatarURL:   user.AvatarURL,
	})
}

func (h *AuthHandler) SignOut(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := middleware.UserFromContext(c)
	if err != nil {
		return err
	}

	if err := h.identityService.SignOut(ctx, user.ID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
