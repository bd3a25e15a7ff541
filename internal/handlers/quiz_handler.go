package handlers

import (
	"net/http"
	"strconv"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"github.com/SAP-F-2025/quiz-engine/internal/repositories"
	"github.com/SAP-F-2025/quiz-engine/internal/services"
	"github.com/SAP-F-2025/quiz-engine/internal/utils"
	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	BaseHandler
	quizService   services.QuizService
	exportService services.ExportService
	statsService  services.StatsService
}

func NewQuizHandler(
	quizService services.QuizService,
	exportService services.ExportService,
	statsService services.StatsService,
	logger utils.Logger,
) *QuizHandler {
	return &QuizHandler{
		BaseHandler:   NewBaseHandler(logger),
		quizService:   quizService,
		exportService: exportService,
		statsService:  statsService,
	}
}

// CreateQuiz creates a new quiz with its questions
// @Summary Create quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Param quiz body models.Quiz true "Quiz data"
// @Success 201 {object} models.Quiz
// @Failure 400 {object} ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var quiz models.Quiz
	if err := c.ShouldBindJSON(&quiz); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	created, err := h.quizService.Create(c.Request.Context(), &quiz)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetQuiz retrieves a quiz with its questions
// @Summary Get quiz
// @Tags quizzes
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} models.Quiz
// @Failure 404 {object} ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quiz, err := h.quizService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// GetQuizByLesson retrieves the quiz bound to a lesson
// @Summary Get quiz by lesson
// @Tags quizzes
// @Produce json
// @Param lesson_id path string true "Lesson ID"
// @Success 200 {object} models.Quiz
// @Failure 404 {object} ErrorResponse
// @Router /quizzes/lesson/{lesson_id} [get]
func (h *QuizHandler) GetQuizByLesson(c *gin.Context) {
	quiz, err := h.quizService.GetByLesson(c.Request.Context(), c.Param("lesson_id"))
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// UpdateQuiz replaces a quiz and its question set
// @Summary Update quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param quiz body models.Quiz true "Quiz data"
// @Success 200 {object} models.Quiz
// @Failure 400 {object} ErrorResponse
// @Router /quizzes/{id} [put]
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	var quiz models.Quiz
	if err := c.ShouldBindJSON(&quiz); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}
	quiz.ID = c.Param("id")

	updated, err := h.quizService.Update(c.Request.Context(), &quiz)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteQuiz removes a quiz
// @Summary Delete quiz
// @Tags quizzes
// @Param id path string true "Quiz ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /quizzes/{id} [delete]
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	if err := h.quizService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Quiz deleted", nil)
}

// ListQuizzes lists quizzes with pagination
// @Summary List quizzes
// @Tags quizzes
// @Produce json
// @Param lesson_id query string false "Filter by lesson"
// @Param search query string false "Title search"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} SuccessResponse
// @Router /quizzes [get]
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	filters := repositories.QuizFilters{
		Limit:  parseIntQuery(c, "limit", 20),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if lessonID := c.Query("lesson_id"); lessonID != "" {
		filters.LessonID = &lessonID
	}
	if search := c.Query("search"); search != "" {
		filters.Search = &search
	}

	quizzes, total, err := h.quizService.List(c.Request.Context(), filters)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"quizzes": quizzes,
		"total":   total,
		"limit":   filters.Limit,
		"offset":  filters.Offset,
	})
}

// ExportQuestions exports quiz questions as CSV or Excel
// @Summary Export quiz questions
// @Tags quizzes
// @Produce application/octet-stream
// @Param id path string true "Quiz ID"
// @Param format query string false "csv or xlsx"
// @Success 200 {file} binary
// @Router /quizzes/{id}/export [get]
func (h *QuizHandler) ExportQuestions(c *gin.Context) {
	quizID := c.Param("id")
	format := c.DefaultQuery("format", "xlsx")

	var (
		data        []byte
		err         error
		contentType string
		filename    string
	)
	switch format {
	case "csv":
		data, err = h.exportService.ExportQuestionsToCSV(c.Request.Context(), quizID)
		contentType = "text/csv"
		filename = "questions.csv"
	case "xlsx":
		data, err = h.exportService.ExportQuestionsToExcel(c.Request.Context(), quizID)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = "questions.xlsx"
	default:
		h.RespondWithError(c, http.StatusBadRequest, "unsupported export format", nil, format)
		return
	}
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}

// GetQuizStats returns aggregated attempt statistics for a quiz
// @Summary Get quiz statistics
// @Tags quizzes
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} services.QuizStats
// @Failure 404 {object} ErrorResponse
// @Router /quizzes/{id}/stats [get]
func (h *QuizHandler) GetQuizStats(c *gin.Context) {
	stats, err := h.statsService.GetQuizStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ExportResults exports graded attempt results as Excel
// @Summary Export quiz results
// @Tags quizzes
// @Produce application/octet-stream
// @Param id path string true "Quiz ID"
// @Success 200 {file} binary
// @Router /quizzes/{id}/results/export [get]
func (h *QuizHandler) ExportResults(c *gin.Context) {
	data, err := h.exportService.ExportQuizResults(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=results.xlsx")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func parseIntQuery(c *gin.Context, key string, fallback int) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
