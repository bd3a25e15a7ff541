package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"github.com/SAP-F-2025/quiz-engine/internal/repositories"
	"github.com/SAP-F-2025/quiz-engine/internal/services"
	"github.com/SAP-F-2025/quiz-engine/internal/utils"
	"github.com/gin-gonic/gin"
)

type AttemptHandler struct {
	BaseHandler
	attemptService services.AttemptService
}

func NewAttemptHandler(attemptService services.AttemptService, logger utils.Logger) *AttemptHandler {
	return &AttemptHandler{
		BaseHandler:    NewBaseHandler(logger),
		attemptService: attemptService,
	}
}

// StartAttemptRequest opens a new attempt at a quiz
type StartAttemptRequest struct {
	QuizID string `json:"quiz_id" binding:"required"`
}

// SubmitAnswerRequest captures one answer in an ongoing attempt
type SubmitAnswerRequest struct {
	QuestionID string        `json:"question_id" binding:"required"`
	Answer     models.Answer `json:"answer"`
}

// StartAttempt starts or resumes a quiz attempt
// @Summary Start attempt
// @Tags attempts
// @Accept json
// @Produce json
// @Param request body StartAttemptRequest true "Attempt request"
// @Success 201 {object} models.QuizAttempt
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /attempts/start [post]
func (h *AttemptHandler) StartAttempt(c *gin.Context) {
	var req StartAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}
	studentID, ok := h.StudentID(c)
	if !ok {
		return
	}

	attempt, err := h.attemptService.Start(c.Request.Context(), req.QuizID, studentID)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, attempt)
}

// GetAttempt retrieves an attempt
// @Summary Get attempt
// @Tags attempts
// @Produce json
// @Param id path string true "Attempt ID"
// @Success 200 {object} models.QuizAttempt
// @Failure 404 {object} ErrorResponse
// @Router /attempts/{id} [get]
func (h *AttemptHandler) GetAttempt(c *gin.Context) {
	studentID, ok := h.StudentID(c)
	if !ok {
		return
	}
	attempt, err := h.attemptService.GetByID(c.Request.Context(), c.Param("id"), studentID)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempt)
}

// SubmitAnswer saves one answer in an ongoing attempt
// @Summary Submit answer
// @Tags attempts
// @Accept json
// @Param id path string true "Attempt ID"
// @Param request body SubmitAnswerRequest true "Answer payload"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /attempts/{id}/answer [post]
func (h *AttemptHandler) SubmitAnswer(c *gin.Context) {
	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}
	studentID, ok := h.StudentID(c)
	if !ok {
		return
	}

	err := h.attemptService.SaveAnswer(c.Request.Context(), c.Param("id"), studentID, req.QuestionID, req.Answer)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Answer saved", nil)
}

// SubmitAttempt submits an attempt for grading
// @Summary Submit attempt
// @Tags attempts
// @Produce json
// @Param id path string true "Attempt ID"
// @Success 200 {object} models.QuizAttempt
// @Failure 404 {object} ErrorResponse
// @Router /attempts/{id}/submit [post]
func (h *AttemptHandler) SubmitAttempt(c *gin.Context) {
	studentID, ok := h.StudentID(c)
	if !ok {
		return
	}
	attempt, err := h.attemptService.Submit(c.Request.Context(), c.Param("id"), studentID)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempt)
}

// GetResult returns the graded result of a finished attempt
// @Summary Get attempt result
// @Tags attempts
// @Produce json
// @Param id path string true "Attempt ID"
// @Success 200 {object} models.QuizResult
// @Failure 404 {object} ErrorResponse
// @Router /attempts/{id}/result [get]
func (h *AttemptHandler) GetResult(c *gin.Context) {
	studentID, ok := h.StudentID(c)
	if !ok {
		return
	}
	result, err := h.attemptService.GetResult(c.Request.Context(), c.Param("id"), studentID)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetTimeRemaining reports seconds left in an ongoing attempt
// @Summary Get time remaining
// @Tags attempts
// @Produce json
// @Param id path string true "Attempt ID"
// @Success 200 {object} SuccessResponse
// @Router /attempts/{id}/time-remaining [get]
func (h *AttemptHandler) GetTimeRemaining(c *gin.Context) {
	studentID, ok := h.StudentID(c)
	if !ok {
		return
	}
	remaining, err := h.attemptService.TimeRemaining(c.Request.Context(), c.Param("id"), studentID)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"time_remaining": remaining})
}

// ListAttempts lists attempts, filterable by quiz and status
// @Summary List attempts
// @Tags attempts
// @Produce json
// @Param quiz_id query string false "Filter by quiz"
// @Param status query string false "Filter by status"
// @Success 200 {object} SuccessResponse
// @Router /attempts [get]
func (h *AttemptHandler) ListAttempts(c *gin.Context) {
	studentID, ok := h.StudentID(c)
	if !ok {
		return
	}

	filters := repositories.AttemptFilters{
		StudentID: &studentID,
		Limit:     parseIntQuery(c, "limit", 20),
		Offset:    parseIntQuery(c, "offset", 0),
	}
	if quizID := c.Query("quiz_id"); quizID != "" {
		filters.QuizID = &quizID
	}
	if status := c.Query("status"); status != "" {
		attemptStatus := models.AttemptStatus(status)
		filters.Status = &attemptStatus
	}

	attempts, total, err := h.attemptService.List(c.Request.Context(), filters)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"attempts": attempts,
		"total":    total,
		"limit":    filters.Limit,
		"offset":   filters.Offset,
	})
}
