package amanti

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/NethermindEth/amanti/pkg/amanti/card"
	"github.com/NethermindEth/amanti/pkg/amanti/lifecycle"
	"github.com/NethermindEth/amanti/pkg/amanti/metrics"
	"github.com/NethermindEth/amanti/pkg/amanti/note"
	"github.com/NethermindEth/amanti/pkg/amanti/session"
)

const (
	SessionCookieName = "amanti_session"

	sessionContextKey = "session"
)

type formRequest struct {
	Name    string `json:"name"`
	Details string `json:"details"`
	Style   string `json:"style"`
}

type copyResponse struct {
	Text string         `json:"text"`
	View lifecycle.View `json:"view"`
}

func (s *Server) generateRouter() *gin.Engine {
	router := gin.Default()
	router.Use(metrics.Middleware())

	if len(s.corsAllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     s.corsAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			ExposeHeaders:    []string{"Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.SetHTMLTemplate(pageTemplate())

	router.GET("/", s.handleIndex)
	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api", s.requireSession)
	api.GET("/state", s.handleState)
	api.PUT("/form", s.handleForm)
	api.POST("/generate", s.handleGenerate)
	api.POST("/modal/close", s.handleCloseModal)
	api.POST("/options/toggle", s.handleToggleOptions)
	api.POST("/copy", s.handleCopy)
	api.GET("/card.png", s.handleCard)

	return router
}

// handleIndex always starts a new session: reloading the page discards the
// previous form and result.
func (s *Server) handleIndex(c *gin.Context) {
	if previous, err := c.Cookie(SessionCookieName); err == nil {
		s.store.Remove(previous)
	}

	sess := s.store.New()

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, sess.ID(), 0, "/", "", s.secureCookies, true)
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Styles": styleOptions(),
	})
}

func (s *Server) requireSession(c *gin.Context) {
	id, err := c.Cookie(SessionCookieName)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}

	sess, ok := s.store.Get(id)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
		return
	}

	c.Set(sessionContextKey, sess)
	c.Next()
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionContextKey).(*session.Session)
}

func (s *Server) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, currentSession(c).View())
}

func (s *Server) handleForm(c *gin.Context) {
	input, ok := bindForm(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, currentSession(c).UpdateForm(input))
}

func (s *Server) handleGenerate(c *gin.Context) {
	sess := currentSession(c)

	input, present, ok := bindOptionalForm(c)
	if !ok {
		return
	}
	if present {
		sess.UpdateForm(input)
	}

	view, err := sess.Generate(c.Request.Context())
	if err != nil {
		c.JSON(generateStatus(err), view)
		return
	}

	c.JSON(http.StatusOK, view)
}

func generateStatus(err error) int {
	var validationErr *note.ValidationError
	var generationErr *note.GenerationError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, lifecycle.ErrRequestInFlight):
		return http.StatusConflict
	case errors.As(err, &generationErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleCloseModal(c *gin.Context) {
	c.JSON(http.StatusOK, currentSession(c).CloseModal())
}

func (s *Server) handleToggleOptions(c *gin.Context) {
	c.JSON(http.StatusOK, currentSession(c).ToggleOptions())
}

func (s *Server) handleCopy(c *gin.Context) {
	text, view, err := currentSession(c).Copy()
	if errors.Is(err, lifecycle.ErrNoResult) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to copy"})
		return
	}

	c.JSON(http.StatusOK, copyResponse{Text: text, View: view})
}

// handleCard answers 204 when there is no card on screen; that case is not
// reported to the user.
func (s *Server) handleCard(c *gin.Context) {
	download, err := currentSession(c).Export()
	if errors.Is(err, card.ErrNoTarget) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		slog.Error("failed to export card", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export card"})
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": download.FileName}))
	c.Data(http.StatusOK, "image/png", download.Data)
}

func bindForm(c *gin.Context) (note.FormInput, bool) {
	var req formRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid form payload"})
		return note.FormInput{}, false
	}

	return parseForm(c, req)
}

// bindOptionalForm reports present=false for an empty body, whether or not the
// request declared a length.
func bindOptionalForm(c *gin.Context) (input note.FormInput, present bool, ok bool) {
	if c.Request.ContentLength == 0 {
		return note.FormInput{}, false, true
	}

	var req formRequest
	err := c.ShouldBindJSON(&req)
	if errors.Is(err, io.EOF) {
		return note.FormInput{}, false, true
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid form payload"})
		return note.FormInput{}, false, false
	}

	input, ok = parseForm(c, req)
	return input, ok, ok
}

func parseForm(c *gin.Context, req formRequest) (note.FormInput, bool) {
	style, err := note.ParseStyle(req.Style)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return note.FormInput{}, false
	}

	return note.FormInput{
		Name:    req.Name,
		Details: req.Details,
		Style:   style,
	}, true
}
