package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blochwalk/blochwalk/internal/adapters/http/dto"
	"github.com/blochwalk/blochwalk/internal/adapters/render"
	"github.com/blochwalk/blochwalk/internal/app"
	"github.com/blochwalk/blochwalk/internal/domain"
)

// WalkHandler handles walk session HTTP endpoints.
type WalkHandler struct {
	service  *app.WalkService
	renderer *render.Renderer
}

// NewWalkHandler creates a new walk handler.
func NewWalkHandler(service *app.WalkService, renderer *render.Renderer) *WalkHandler {
	return &WalkHandler{
		service:  service,
		renderer: renderer,
	}
}

// CreateWalk handles POST /api/v1/walks
// Starts a new walk session at |0⟩.
func (h *WalkHandler) CreateWalk(c *gin.Context) {
	var req dto.CreateWalkRequest

	// The body is optional: a bare POST starts an unlabeled walk.
	if c.Request.ContentLength > 0 {
		err := dto.BindAndValidate(c, &req)
		if err != nil {
			respondBindError(c, err)
			return
		}
	}

	walk, err := h.service.Create(c.Request.Context(), req.Label)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewWalkResponse(walk))
}

// GetWalk handles GET /api/v1/walks/:id
// Returns the full state of a walk session.
func (h *WalkHandler) GetWalk(c *gin.Context) {
	walk, ok := h.loadWalk(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.NewWalkResponse(walk))
}

// ApplyGate handles POST /api/v1/walks/:id/gates
// Applies one gate to the walk and returns the new state plus the arc
// distance this step traveled.
func (h *WalkHandler) ApplyGate(c *gin.Context) {
	var req dto.ApplyGateRequest

	err := dto.BindAndValidate(c, &req)
	if err != nil {
		respondBindError(c, err)
		return
	}

	err = req.Validate()
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	gate, err := req.ToGate()
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	result, err := h.service.ApplyGate(c.Request.Context(), c.Param("id"), gate)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewGateAppliedResponse(result.Walk, result.Distance))
}

// UndoGate handles POST /api/v1/walks/:id/undo
// Removes the most recent gate and returns the replayed state.
func (h *WalkHandler) UndoGate(c *gin.Context) {
	walk, err := h.service.Undo(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewWalkResponse(walk))
}

// ResetWalk handles POST /api/v1/walks/:id/reset
// Returns the walk to |0⟩ and clears its history.
func (h *WalkHandler) ResetWalk(c *gin.Context) {
	walk, err := h.service.Reset(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewWalkResponse(walk))
}

// DeleteWalk handles DELETE /api/v1/walks/:id
// Ends a walk session.
func (h *WalkHandler) DeleteWalk(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetTrail handles GET /api/v1/walks/:id/trail
// Returns the Bloch points the walk has visited, oldest first.
func (h *WalkHandler) GetTrail(c *gin.Context) {
	walk, ok := h.loadWalk(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.NewTrailResponse(walk))
}

// GetCircuit handles GET /api/v1/walks/:id/circuit
// Returns the ordered gate sequence applied so far.
func (h *WalkHandler) GetCircuit(c *gin.Context) {
	walk, ok := h.loadWalk(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.NewCircuitResponse(walk))
}

// GetBlochSVG handles GET /api/v1/walks/:id/bloch.svg
// Renders the walk's current state and trail as an SVG Bloch sphere.
func (h *WalkHandler) GetBlochSVG(c *gin.Context) {
	walk, ok := h.loadWalk(c)
	if !ok {
		return
	}

	svg := h.renderer.Render(walk.State.Bloch(), walk.Trail)

	c.Data(http.StatusOK, "image/svg+xml", svg)
}

// ListWalks handles GET /api/v1/walks
// Returns a cursor-paginated listing of live walk sessions.
func (h *WalkHandler) ListWalks(c *gin.Context) {
	var page dto.PaginationRequest

	err := dto.BindQueryAndValidate(c, &page)
	if err != nil {
		respondBindError(c, err)
		return
	}

	afterID := ""

	cursor, err := page.DecodeCursor()

	switch {
	case err == nil:
		afterID = cursor.ID
	case errors.Is(err, dto.ErrNoCursor):
		// first page
	default:
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.ErrorCodeBadRequest,
			"invalid pagination cursor",
		).WithTraceID(dto.GetTraceID(c)))

		return
	}

	limit := page.GetLimit()

	// Fetch one extra item to detect whether more pages exist.
	summaries, err := h.service.List(c.Request.Context(), afterID, limit+1)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	items := make([]dto.WalkSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, dto.WalkSummaryResponse{
			ID:        s.ID,
			Label:     s.Label,
			Gates:     s.Gates,
			Distance:  s.Distance,
			Position:  s.Position,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}

	resp := dto.NewPaginatedResponse(items, limit, func(item dto.WalkSummaryResponse) *dto.CursorData {
		return dto.NewCursor("created_at", item.CreatedAt.Format("2006-01-02T15:04:05.000000000Z07:00"), item.ID)
	})

	c.JSON(http.StatusOK, resp)
}

// RegisterWalkRoutes registers walk routes on the given router group.
func (h *WalkHandler) RegisterWalkRoutes(rg *gin.RouterGroup) {
	walks := rg.Group("/walks")
	walks.POST("", h.CreateWalk)
	walks.GET("", h.ListWalks)
	walks.GET("/:id", h.GetWalk)
	walks.DELETE("/:id", h.DeleteWalk)
	walks.POST("/:id/gates", h.ApplyGate)
	walks.POST("/:id/undo", h.UndoGate)
	walks.POST("/:id/reset", h.ResetWalk)
	walks.GET("/:id/trail", h.GetTrail)
	walks.GET("/:id/circuit", h.GetCircuit)
	walks.GET("/:id/bloch.svg", h.GetBlochSVG)
}

// loadWalk fetches the walk named in the path, writing the error
// response itself on failure.
func (h *WalkHandler) loadWalk(c *gin.Context) (*domain.Walk, bool) {
	walk, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return nil, false
	}

	return walk, true
}

// respondBindError writes a 400 for binding failures and field-level
// details for validation failures.
func respondBindError(c *gin.Context, err error) {
	if dto.IsValidationError(err) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithDetails(
			dto.ErrorCodeValidation,
			"request validation failed",
			dto.ValidationErrors(err),
		).WithTraceID(dto.GetTraceID(c)))

		return
	}

	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
		dto.ErrorCodeBadRequest,
		"malformed request: "+err.Error(),
	).WithTraceID(dto.GetTraceID(c)))
}
