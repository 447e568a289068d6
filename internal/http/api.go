package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"anchorlog/internal/auth"
	"anchorlog/internal/repository"
	"anchorlog/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users   service.UserService
	tracker service.TrackerService
	exports *service.ExportService
	tokens  *auth.TokenManager
	logger  *logrus.Logger
}

func NewHandler(
	users service.UserService,
	tracker service.TrackerService,
	exports *service.ExportService,
	tokens *auth.TokenManager,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		users:   users,
		tracker: tracker,
		exports: exports,
		tokens:  tokens,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(), requestLogger(h.logger))

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})
	router.POST("/sign-up", h.signUp)
	router.POST("/login", h.login)

	authed := router.Group("/", auth.Middleware(h.tokens))
	{
		authed.GET("/boundaries/:userId", h.listBoundaries)
		authed.GET("/recent-boundaries/:userId", h.recentBoundaries)
		authed.GET("/boundary-count/:userId", h.boundaryCount)
		authed.POST("/add-a-boundary/:userId", h.addBoundary)
		authed.PUT("/track-boundary/:userId/:id", h.trackBoundary)
		authed.DELETE("/boundaries/:userId/:id", h.deleteBoundary)

		authed.GET("/diary-cards/:userId", h.listDiaryCards)
		authed.GET("/recent-diary-cards/:userId", h.recentDiaryCards)
		authed.POST("/add-a-diary-card/:userId", h.addDiaryCard)
		authed.DELETE("/diary-cards/:userId/:id", h.deleteDiaryCard)

		authed.GET("/physical-goals/:userId", h.listPhysicalGoals)
		authed.POST("/add-a-physical-goal/:userId", h.addPhysicalGoal)
		authed.PUT("/update-physical-goal/:userId/:id", h.updatePhysicalGoal)
		authed.DELETE("/physical-goals/:userId/:id", h.deletePhysicalGoal)

		authed.GET("/therapy-goals/:userId", h.listTherapyGoals)
		authed.POST("/add-a-therapy-goal/:userId", h.addTherapyGoal)
		authed.PUT("/update-therapy-goal/:userId/:id", h.updateTherapyGoal)
		authed.DELETE("/therapy-goals/:userId/:id", h.deleteTherapyGoal)

		authed.GET("/values/:userId", h.listValues)
		authed.POST("/add-a-value/:userId", h.addValue)
		authed.DELETE("/values/:userId/:id", h.deleteValue)

		authed.GET("/problems/:userId", h.listProblems)
		authed.GET("/problem-count/:userId", h.problemCount)
		authed.POST("/add-a-problem/:userId", h.addProblem)
		authed.PUT("/update-problem/:userId/:id", h.updateProblem)
		authed.DELETE("/problems/:userId/:id", h.deleteProblem)

		authed.POST("/export/:userId", h.exportData)
		authed.GET("/exports/:userId", h.listExports)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Writer.Header().Set("X-Request-Id", requestID)

		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
		}).Info("request")
	}
}

type signUpRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (h *Handler) signUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	if _, err := h.users.Register(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName); err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "user created"})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.fail(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		h.fail(c, err)
		return
	}

	// token travels twice: cookie for browser flows, body for bearer flows
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("token", token, int(h.tokens.TTL().Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"message": "login successful",
		"token":   token,
		"userId":  user.ID,
	})
}

// pathUser parses the :userId path segment and requires it to match the
// authenticated identity. A mismatch is rejected before any storage call.
func (h *Handler) pathUser(c *gin.Context) (int64, bool) {
	authID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return 0, false
	}

	id, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	if id != authID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return 0, false
	}
	return id, true
}

func (h *Handler) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// fail maps persistence errors to responses without leaking detail.
func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	h.logger.WithError(err).Error("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
}
