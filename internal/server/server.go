package server

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/redrock-labs/compass/internal/config"
	"github.com/redrock-labs/compass/internal/core"
	"github.com/redrock-labs/compass/internal/core/iap"
	"github.com/redrock-labs/compass/internal/core/model"
	"github.com/redrock-labs/compass/internal/core/planner"
	"github.com/redrock-labs/compass/internal/logger"
)

// Server exposes the graph pipeline and planning tools over HTTP.
type Server struct {
	Engine  *core.Engine
	Planner *planner.Planner
	IAP     *iap.Manager
	Limits  config.LimitsConfig
	Log     *logger.Logger
}

func NewServer(engine *core.Engine, pl *planner.Planner, iapManager *iap.Manager, limits config.LimitsConfig, log *logger.Logger) *Server {
	return &Server{
		Engine:  engine,
		Planner: pl,
		IAP:     iapManager,
		Limits:  limits,
		Log:     log.With("component", "server"),
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/graph/build", s.BuildGraph)

	r.GET("/courses", s.CoursesByLevel)
	r.GET("/courses/:code/chain", s.PrerequisiteChain)
	r.GET("/courses/:code/alternatives", s.FindAlternatives)
	r.POST("/sequence/validate", s.ValidateSequence)
	r.POST("/sequence/recommend", s.RecommendSequence)
	r.POST("/progress/analyze", s.AnalyzeProgress)

	r.POST("/iap", s.CreateIAP)
	r.GET("/iap/:studentID", s.GetIAP)
	r.PATCH("/iap/:studentID/section", s.UpdateIAPSection)
	r.GET("/iap/:studentID/validate", s.ValidateIAP)

	return r
}

func (s *Server) BuildGraph(c *gin.Context) {
	run, err := s.Engine.BuildGraph(c.Request.Context())
	if err != nil {
		s.Log.Error("graph build failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build graph"})
		return
	}

	c.JSON(http.StatusOK, run)
}

type coursesQuery struct {
	Level      string `form:"level" binding:"required"`
	Department string `form:"department"`
	Limit      int    `form:"limit"`
}

func (s *Server) CoursesByLevel(c *gin.Context) {
	var q coursesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	courses, err := s.Planner.FindCoursesByLevel(c.Request.Context(), q.Level, q.Department, q.Limit)
	if err != nil {
		s.Log.Error("course level lookup failed", "level", q.Level, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list courses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"level": q.Level, "courses": courses})
}

type chainQuery struct {
	MaxDepth int `form:"max_depth"`
}

func (s *Server) PrerequisiteChain(c *gin.Context) {
	var q chainQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if q.MaxDepth <= 0 {
		q.MaxDepth = s.Limits.MaxChainDepth
	}

	paths, err := s.Planner.PrerequisiteChain(c.Request.Context(), c.Param("code"), q.MaxDepth)
	if err != nil {
		s.Log.Error("prerequisite chain failed", "course", c.Param("code"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve prerequisite chain"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"course": c.Param("code"), "paths": paths})
}

type validateSequenceRequest struct {
	Courses []string `json:"courses" binding:"required"`
}

func (s *Server) ValidateSequence(c *gin.Context) {
	var req validateSequenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	report, err := s.Planner.ValidateSequence(c.Request.Context(), req.Courses)
	if err != nil {
		s.Log.Error("sequence validation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate sequence"})
		return
	}

	c.JSON(http.StatusOK, report)
}

type recommendSequenceRequest struct {
	Courses           []string `json:"courses" binding:"required"`
	MaxCreditsPerTerm int      `json:"max_credits_per_term"`
	MaxTerms          int      `json:"max_terms"`
}

func (s *Server) RecommendSequence(c *gin.Context) {
	var req recommendSequenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.MaxCreditsPerTerm <= 0 {
		req.MaxCreditsPerTerm = s.Limits.MaxCreditsPerTerm
	}
	if req.MaxTerms <= 0 {
		req.MaxTerms = s.Limits.MaxTerms
	}

	plan, err := s.Planner.RecommendSequence(c.Request.Context(), req.Courses, req.MaxCreditsPerTerm, req.MaxTerms)
	if err != nil {
		s.Log.Error("sequence recommendation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to recommend sequence"})
		return
	}

	c.JSON(http.StatusOK, plan)
}

type alternativesQuery struct {
	SameDepartment bool `form:"same_department"`
	Limit          int  `form:"limit"`
}

func (s *Server) FindAlternatives(c *gin.Context) {
	var q alternativesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if q.Limit <= 0 {
		q.Limit = 5
	}

	alternatives, err := s.Planner.FindAlternatives(c.Request.Context(), c.Param("code"), q.SameDepartment, q.Limit)
	if err != nil {
		s.Log.Error("alternatives lookup failed", "course", c.Param("code"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to find alternatives"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"course": c.Param("code"), "alternatives": alternatives})
}

type analyzeProgressRequest struct {
	CompletedCourses []string `json:"completed_courses"`
	TargetCourses    []string `json:"target_courses"`
}

func (s *Server) AnalyzeProgress(c *gin.Context) {
	var req analyzeProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	report, err := s.Planner.AnalyzeProgress(c.Request.Context(), req.CompletedCourses, req.TargetCourses)
	if err != nil {
		s.Log.Error("progress analysis failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze progress"})
		return
	}

	c.JSON(http.StatusOK, report)
}

type createIAPRequest struct {
	StudentName    string `json:"student_name" binding:"required"`
	StudentID      string `json:"student_id" binding:"required"`
	DegreeEmphasis string `json:"degree_emphasis" binding:"required"`
	StudentEmail   string `json:"student_email"`
	StudentPhone   string `json:"student_phone"`
}

func (s *Server) CreateIAP(c *gin.Context) {
	var req createIAPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	plan, err := s.IAP.CreateTemplate(req.StudentName, req.StudentID, req.DegreeEmphasis, req.StudentEmail, req.StudentPhone)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, plan)
}

func (s *Server) GetIAP(c *gin.Context) {
	plan, err := s.IAP.Get(c.Param("studentID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, plan)
}

type updateSectionRequest struct {
	Section string          `json:"section" binding:"required"`
	Payload json.RawMessage `json:"payload" binding:"required"`
}

func (s *Server) UpdateIAPSection(c *gin.Context) {
	var req updateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	update, err := model.ParseSectionUpdate(req.Section, req.Payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := s.IAP.UpdateSection(c.Param("studentID"), update)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (s *Server) ValidateIAP(c *gin.Context) {
	report, err := s.IAP.Validate(c.Request.Context(), c.Param("studentID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
