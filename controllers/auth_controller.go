package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/rohitkandpal03/shopz-store/errors"
	"github.com/rohitkandpal03/shopz-store/middleware"
	"github.com/rohitkandpal03/shopz-store/services"
)

type AuthController struct {
	authService services.AuthService
}

func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// SignIn checks credentials and issues the auth cookies. A callbackUrl
// query parameter is honored as an intentional navigation: the
// redirect is re-raised to the client instead of being swallowed into
// a failure result.
func (ac *AuthController) SignIn(c *gin.Context) {
	var input services.SignInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, services.Result{Success: false, Message: "Invalid payload"})
		return
	}

	sessionCartID := middleware.GetSessionCartID(c)

	pair, _, err := ac.authService.SignIn(c.Request.Context(), sessionCartID, input)
	if err != nil {
		c.JSON(http.StatusOK, services.Result{Success: false, Message: "Invalid email or password."})
		return
	}

	ac.setAuthCookies(c, pair)

	if callback := c.Query("callbackUrl"); callback != "" {
		c.Redirect(http.StatusSeeOther, callback)
		return
	}
	c.JSON(http.StatusOK, services.Result{Success: true, Message: "Signed in successfully"})
}

// SignUp creates an account and signs the new user straight in.
func (ac *AuthController) SignUp(c *gin.Context) {
	var input services.SignUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, services.Result{Success: false, Message: "Invalid payload"})
		return
	}

	sessionCartID := middleware.GetSessionCartID(c)

	pair, user, err := ac.authService.SignUp(c.Request.Context(), sessionCartID, input)
	if err != nil {
		c.JSON(http.StatusOK, services.Result{Success: false, Message: apperrors.FormatError(err)})
		return
	}

	zap.L().Info("User signed up", zap.String("user_id", user.ID.String()))
	ac.setAuthCookies(c, pair)

	if callback := c.Query("callbackUrl"); callback != "" {
		c.Redirect(http.StatusSeeOther, callback)
		return
	}
	c.JSON(http.StatusOK, services.Result{Success: true, Message: "Signed up and signed in successfully"})
}

// SignOut clears the auth cookies.
func (ac *AuthController) SignOut(c *gin.Context) {
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", false, true)
	c.SetCookie("refresh_token", "", -1, "/", "", false, true)

	if callback := c.Query("callbackUrl"); callback != "" {
		c.Redirect(http.StatusSeeOther, callback)
		return
	}
	c.JSON(http.StatusOK, services.Result{Success: true, Message: "Signed out"})
}

// UpdateAddress stores the shipping address on the signed-in user.
func (ac *AuthController) UpdateAddress(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, services.Result{Success: false, Message: "Unauthorized"})
		return
	}

	var input services.ShippingAddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, services.Result{Success: false, Message: "Invalid payload"})
		return
	}

	if err := ac.authService.UpdateUserAddress(c.Request.Context(), *userID, input); err != nil {
		c.JSON(http.StatusOK, services.Result{Success: false, Message: apperrors.FormatError(err)})
		return
	}
	c.JSON(http.StatusOK, services.Result{Success: true, Message: "User updated successfully"})
}

// UpdatePaymentMethod stores the preferred payment method.
func (ac *AuthController) UpdatePaymentMethod(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, services.Result{Success: false, Message: "Unauthorized"})
		return
	}

	var input struct {
		PaymentMethod string `json:"paymentMethod"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, services.Result{Success: false, Message: "Invalid payload"})
		return
	}

	if err := ac.authService.UpdatePaymentMethod(c.Request.Context(), *userID, input.PaymentMethod); err != nil {
		c.JSON(http.StatusOK, services.Result{Success: false, Message: apperrors.FormatError(err)})
		return
	}
	c.JSON(http.StatusOK, services.Result{Success: true, Message: "User updated successfully"})
}

func (ac *AuthController) setAuthCookies(c *gin.Context, pair *services.TokenPair) {
	c.SetCookie(middleware.AccessTokenCookie, pair.AccessToken, 15*60, "/", "", false, true)
	c.SetCookie("refresh_token", pair.RefreshToken, 7*24*3600, "/", "", false, true)
}
