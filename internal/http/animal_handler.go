package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"generative-pets/internal/domain"
	"generative-pets/internal/repository"
)

// AnimalHandler expone el catálogo de animales: listado y alta. No hay
// edición ni borrado por endpoint.
type AnimalHandler struct {
	logger  *zap.Logger
	animals repository.AnimalRepository
}

func NewAnimalHandler(logger *zap.Logger, animals repository.AnimalRepository) *AnimalHandler {
	return &AnimalHandler{logger: logger, animals: animals}
}

// ListAnimals maneja GET /animals, ordenado de más reciente a más antiguo.
func (h *AnimalHandler) ListAnimals(c *gin.Context) {
	animals, err := h.animals.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list animals failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list animals"})
		return
	}
	if animals == nil {
		animals = []domain.AnimalProfile{}
	}
	c.JSON(http.StatusOK, animals)
}

// CreateAnimal maneja POST /animals.
func (h *AnimalHandler) CreateAnimal(c *gin.Context) {
	var req struct {
		Species        string `json:"species" binding:"required"`
		Name           string `json:"name" binding:"required"`
		AgeMonths      *int   `json:"ageMonths" binding:"required,gte=0"`
		Size           string `json:"size" binding:"required"`
		Description    string `json:"description" binding:"required"`
		Breed          string `json:"breed"`
		Sex            string `json:"sex"`
		ImageURL       string `json:"imageUrl" binding:"omitempty,url"`
		GoodWithKids   bool   `json:"goodWithKids"`
		GoodWithPets   bool   `json:"goodWithPets"`
		Hypoallergenic bool   `json:"hypoallergenic"`
		EnergyLevel    string `json:"energyLevel" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create animal request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	animal := domain.AnimalProfile{
		ID:             uuid.NewString(),
		Species:        req.Species,
		Name:           req.Name,
		Breed:          req.Breed,
		AgeMonths:      *req.AgeMonths,
		Sex:            req.Sex,
		Size:           req.Size,
		GoodWithKids:   req.GoodWithKids,
		GoodWithPets:   req.GoodWithPets,
		Hypoallergenic: req.Hypoallergenic,
		EnergyLevel:    req.EnergyLevel,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		CreatedAt:      time.Now().UTC(),
	}

	if err := h.animals.Create(c.Request.Context(), animal); err != nil {
		h.logger.Error("create animal failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create animal"})
		return
	}
	c.JSON(http.StatusOK, animal)
}
