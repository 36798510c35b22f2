package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/tukarkoin/tukar_koin_app/internal/core/ports/services"
	"github.com/tukarkoin/tukar_koin_app/internal/dto"
	"github.com/tukarkoin/tukar_koin_app/internal/middleware"
	"github.com/tukarkoin/tukar_koin_app/internal/utils"
	"github.com/tukarkoin/tukar_koin_app/pkg/config"
)

// authHandler handles login requests.
type authHandler struct {
	cfg         *config.Config
	userService portssvc.UserSvcFacade
}

// newAuthHandler creates a new authHandler.
func newAuthHandler(cfg *config.Config, us portssvc.UserSvcFacade) *authHandler {
	return &authHandler{
		cfg:         cfg,
		userService: us,
	}
}

// registerAuthRoutes registers the public authentication routes. Login gets
// its own tight per-IP rate limit on top of the global one.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(cfg, services.User)

	rate, _ := limiter.NewRateFromFormatted("5-M")
	loginLimiter := limitergin.NewMiddleware(limiter.New(memory.NewStore(), rate))

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", loginLimiter, h.login)
	}
}

// login godoc
// @Summary Log in with NIK and password
// @Description Verifies credentials and issues a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Nik, req.Password)
	if err != nil {
		logger.Warn("Login failed", slog.String("nik", req.Nik))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid NIK or password"})
		return
	}

	token, err := utils.GenerateJWT(user.Nik, string(user.Role), h.cfg.JWTSecret, h.cfg.JWTExpiryDuration, h.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to generate token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	})
}
