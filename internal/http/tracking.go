package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"anchorlog/internal/domain"
)

type BoundaryResponse struct {
	ID         int64   `json:"id"`
	Boundary   string  `json:"boundary"`
	Category   string  `json:"category"`
	IsTracking bool    `json:"isTracking"`
	DateAdded  *string `json:"dateAdded,omitempty"`
	CreatedAt  string  `json:"createdAt"`
}

type DiaryCardResponse struct {
	ID         int64  `json:"id"`
	EntryDate  string `json:"entryDate"`
	Mood       int    `json:"mood"`
	Emotions   string `json:"emotions"`
	Urges      string `json:"urges"`
	SkillsUsed string `json:"skillsUsed"`
	Notes      string `json:"notes"`
	CreatedAt  string `json:"createdAt"`
}

type GoalResponse struct {
	ID        int64  `json:"id"`
	Goal      string `json:"goal"`
	IsDone    bool   `json:"isDone"`
	CreatedAt string `json:"createdAt"`
}

type ValueResponse struct {
	ID          int64  `json:"id"`
	Value       string `json:"value"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}

type ProblemResponse struct {
	ID        int64  `json:"id"`
	Problem   string `json:"problem"`
	Category  string `json:"category"`
	IsDone    bool   `json:"isDone"`
	CreatedAt string `json:"createdAt"`
}

func boundaryToResponse(b domain.Boundary) BoundaryResponse {
	resp := BoundaryResponse{
		ID:         b.ID,
		Boundary:   b.Boundary,
		Category:   b.Category,
		IsTracking: b.IsTracking,
		CreatedAt:  b.CreatedAt.Format(time.RFC3339),
	}
	if b.DateAdded != nil {
		v := b.DateAdded.Format(time.RFC3339)
		resp.DateAdded = &v
	}
	return resp
}

func diaryCardToResponse(card domain.DiaryCard) DiaryCardResponse {
	return DiaryCardResponse{
		ID:         card.ID,
		EntryDate:  card.EntryDate,
		Mood:       card.Mood,
		Emotions:   card.Emotions,
		Urges:      card.Urges,
		SkillsUsed: card.SkillsUsed,
		Notes:      card.Notes,
		CreatedAt:  card.CreatedAt.Format(time.RFC3339),
	}
}

func valueToResponse(v domain.Value) ValueResponse {
	return ValueResponse{
		ID:          v.ID,
		Value:       v.Value,
		Description: v.Description,
		CreatedAt:   v.CreatedAt.Format(time.RFC3339),
	}
}

func problemToResponse(p domain.Problem) ProblemResponse {
	return ProblemResponse{
		ID:        p.ID,
		Problem:   p.Problem,
		Category:  p.Category,
		IsDone:    p.IsDone,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

type addBoundaryRequest struct {
	Boundary string `json:"boundary" binding:"required"`
	Category string `json:"category" binding:"required"`
}

func (h *Handler) addBoundary(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}
	var req addBoundaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "boundary and category are required"})
		return
	}

	if _, err := h.tracker.AddBoundary(c.Request.Context(), userID, req.Boundary, req.Category); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "boundary added"})
}

func (h *Handler) listBoundaries(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}
	boundaries, err := h.tracker.ListBoundaries(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]BoundaryResponse, len(boundaries))
	for i := range boundaries {
		resp[i] = boundaryToResponse(boundaries[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) recentBoundaries(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}
	boundaries, err := h.tracker.RecentBoundaries(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]BoundaryResponse, len(boundaries))
	for i := range boundaries {
		resp[i] = boundaryToResponse(boundaries[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) trackBoundary(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.tracker.TrackBoundary(c.Request.Context(), id, userID, true); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "boundary tracked"})
}

func (h *Handler) deleteBoundary(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.tracker.DeleteBoundary(c.Request.Context(), id, userID); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) boundaryCount(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}
	counts, err := h.tracker.BoundaryCounts(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"myBoundariesCount":     counts[domain.BoundaryCategoryMine],
		"othersBoundariesCount": counts[domain.BoundaryCategoryOthers],
	})
}

type addDiaryCardRequest struct {
	EntryDate  string `json:"entryDate" binding:"required"`
	Mood       int    `json:"mood"`
	Emotions   string `json:"emotions"`
	Urges      string `json:"urges"`
	SkillsUsed string `json:"skillsUsed"`
	Notes      string `json:"notes"`
}

func (h *Handler) addDiaryCard(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}
	var req addDiaryCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entryDate is required"})
		return
	}

	card := &domain.DiaryCard{
		UserID:     userID,
		EntryDate:  req.EntryDate,
		Mood:       req.Mood,
		Emotions:   req.Emotions,
		Urges:      req.Urges,
		SkillsUsed: req.SkillsUsed,
		Notes:      req.Notes,
	}
	if _, err := h.tracker.AddDiaryCard(c.Request.Context(), card); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "diary card added"})
}

func (h *Handler) listDiaryCards(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}
	cards, err := h.tracker.ListDiaryCards(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]DiaryCardResponse, len(cards))
	for i := range cards {
		resp[i] = diaryCardToResponse(cards[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) recentDiaryCards(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}
	cards, err := h.tracker.RecentDiaryCards(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]DiaryCardResponse, len(cards))
	for i := range cards {
		resp[i] = diaryCardToResponse(cards[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) deleteDiaryCard(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.tracker.DeleteDiaryCard(c.Request.Context(), id, userID); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addGoalRequest struct {
	Goal string `json:"goal" binding:"required"`
}

type updateDoneRequest struct {
	IsDone *bool `json:"isDone" binding:"required"`
}

func (h *Handler) addPhysicalGoal(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}
	var req addGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "goal is required"})
		return
	}

	if _, err := h.tracker.AddPhysicalGoal(c.Request.Context(), userID, req.Goal); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "physical goal added"})
}

func (h *Handler) listPhysicalGoals(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}
	goals, err := h.tracker.ListPhysicalGoals(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]GoalResponse, len(goals))
	for i, g := range goals {
		resp[i] = GoalResponse{
			ID:        g.ID,
			Goal:      g.Goal,
			IsDone:    g.IsDone,
			CreatedAt: g.CreatedAt.Format(time.RFC3339),
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) updatePhysicalGoal(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req updateDoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "isDone is required"})
		return
	}

	if err := h.tracker.UpdatePhysicalGoal(c.Request.Context(), id, userID, *req.IsDone); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "physical goal updated"})
}

func (h *Handler) deletePhysicalGoal(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.tracker.DeletePhysicalGoal(c.Request.Context(), id, userID); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) addTherapyGoal(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}
	var req addGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "goal is required"})
		return
	}

	if _, err := h.tracker.AddTherapyGoal(c.Request.Context(), userID, req.Goal); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "therapy goal added"})
}

func (h *Handler) listTherapyGoals(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}
	goals, err := h.tracker.ListTherapyGoals(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]GoalResponse, len(goals))
	for i, g := range goals {
		resp[i] = GoalResponse{
			ID:        g.ID,
			Goal:      g.Goal,
			IsDone:    g.IsDone,
			CreatedAt: g.CreatedAt.Format(time.RFC3339),
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) updateTherapyGoal(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req updateDoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "isDone is required"})
		return
	}

	if err := h.tracker.UpdateTherapyGoal(c.Request.Context(), id, userID, *req.IsDone); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "therapy goal updated"})
}

func (h *Handler) deleteTherapyGoal(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.tracker.DeleteTherapyGoal(c.Request.Context(), id, userID); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addValueRequest struct {
	Value       string `json:"value" binding:"required"`
	Description string `json:"description"`
}

func (h *Handler) addValue(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}
	var req addValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value is required"})
		return
	}

	if _, err := h.tracker.AddValue(c.Request.Context(), userID, req.Value, req.Description); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "value added"})
}

func (h *Handler) listValues(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}
	values, err := h.tracker.ListValues(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]ValueResponse, len(values))
	for i := range values {
		resp[i] = valueToResponse(values[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) deleteValue(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.tracker.DeleteValue(c.Request.Context(), id, userID); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addProblemRequest struct {
	Problem  string `json:"problem" binding:"required"`
	Category string `json:"category" binding:"required"`
}

func (h *Handler) addProblem(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}
	var req addProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "problem and category are required"})
		return
	}

	if _, err := h.tracker.AddProblem(c.Request.Context(), userID, req.Problem, req.Category); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "problem added"})
}

func (h *Handler) listProblems(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}
	problems, err := h.tracker.ListProblems(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]ProblemResponse, len(problems))
	for i := range problems {
		resp[i] = problemToResponse(problems[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) updateProblem(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req updateDoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "isDone is required"})
		return
	}

	if err := h.tracker.UpdateProblem(c.Request.Context(), id, userID, *req.IsDone); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "problem updated"})
}

func (h *Handler) deleteProblem(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.tracker.DeleteProblem(c.Request.Context(), id, userID); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) problemCount(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}
	counts, err := h.tracker.ProblemCounts(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"solveCount":          counts[domain.ProblemCategorySolve],
		"changeFeelingsCount": counts[domain.ProblemCategoryChangeFeeling],
		"tolerateCount":       counts[domain.ProblemCategoryTolerate],
		"stayMiserableCount":  counts[domain.ProblemCategoryStayMiserable],
	})
}
