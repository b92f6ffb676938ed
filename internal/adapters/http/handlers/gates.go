package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blochwalk/blochwalk/internal/adapters/http/dto"
	"github.com/blochwalk/blochwalk/internal/domain"
)

// GatesHandler serves the gate catalog.
type GatesHandler struct {
	catalog []dto.GateInfoResponse
}

// NewGatesHandler creates a gates handler. The catalog is fixed, so it
// is converted once at construction.
func NewGatesHandler() *GatesHandler {
	infos := domain.Catalog()

	catalog := make([]dto.GateInfoResponse, 0, len(infos))
	for _, info := range infos {
		catalog = append(catalog, dto.NewGateInfoResponse(info))
	}

	return &GatesHandler{catalog: catalog}
}

// ListGates handles GET /api/v1/gates
// Returns every supported gate with its angle arguments and matrix.
func (h *GatesHandler) ListGates(c *gin.Context) {
	c.JSON(http.StatusOK, dto.GateCatalogResponse{Gates: h.catalog})
}

// RegisterGateRoutes registers gate catalog routes on the router group.
func (h *GatesHandler) RegisterGateRoutes(rg *gin.RouterGroup) {
	rg.GET("/gates", h.ListGates)
}
