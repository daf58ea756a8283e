package handler

import (
	"errors"
	"net/http"
	"time"

	"pinboard/internal/authz"
	"pinboard/internal/model"
	"pinboard/internal/repository"
	"pinboard/internal/validation"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PinHandler struct {
	pinRepo   repository.PinRepositoryInterface
	boardRepo repository.BoardRepositoryInterface
	userRepo  repository.UserRepositoryInterface
}

func NewPinHandler(
	pinRepo repository.PinRepositoryInterface,
	boardRepo repository.BoardRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
) *PinHandler {
	return &PinHandler{
		pinRepo:   pinRepo,
		boardRepo: boardRepo,
		userRepo:  userRepo,
	}
}

// CreatePinRequest names the target board "board"; that is the one canonical
// field, "boardId" is not accepted.
type CreatePinRequest struct {
	Title       string   `json:"title" binding:"required,min=3,max=100,pin_title"`
	Description string   `json:"description" binding:"required,min=10,max=500,pin_description"`
	ImageURL    string   `json:"imageUrl" binding:"required,image_url"`
	Board       string   `json:"board" binding:"required"`
	Tags        []string `json:"tags" binding:"omitempty,dive,pin_tag"`
}

// UpdatePinRequest uses pointers so absent fields stay untouched.
type UpdatePinRequest struct {
	Title       *string  `json:"title" binding:"omitempty,min=3,max=100,pin_title"`
	Description *string  `json:"description" binding:"omitempty,min=10,max=500,pin_description"`
	ImageURL    *string  `json:"imageUrl" binding:"omitempty,image_url"`
	Tags        []string `json:"tags" binding:"omitempty,dive,pin_tag"`
}

type RepinRequest struct {
	Board string `json:"board" binding:"required"`
}

type PinResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl"`
	CreatedBy   string          `json:"createdBy"`
	Owner       *OwnerSummary   `json:"owner,omitempty"`
	Board       string          `json:"board"`
	Tags        []string        `json:"tags"`
	RepinFrom   string          `json:"repinFrom,omitempty"`
	LikesCount  int             `json:"likesCount"`
	Analytics   model.Analytics `json:"analytics"`
	CreatedAt   string          `json:"createdAt"`
}

func newPinResponse(p *model.Pin, owner *model.User) PinResponse {
	resp := PinResponse{
		ID:          p.ID.Hex(),
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		CreatedBy:   p.CreatedBy.Hex(),
		Board:       p.Board.Hex(),
		Tags:        p.Tags,
		LikesCount:  len(p.Likes),
		Analytics:   p.Analytics,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
	if p.RepinFrom != nil {
		resp.RepinFrom = p.RepinFrom.Hex()
	}
	if owner != nil {
		resp.Owner = &OwnerSummary{ID: owner.ID.Hex(), Username: owner.Username, Avatar: owner.Avatar}
	}
	return resp
}

// Create creates a pin inside a board the caller owns. The pin insert and
// the board membership append are one logical operation.
func (h *PinHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req CreatePinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	boardID, err := primitive.ObjectIDFromHex(req.Board)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid board id format")
		return
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve board")
		return
	}
	if board == nil {
		respondError(c, http.StatusNotFound, "Board not found")
		return
	}

	if !authz.CanWriteBoard(actor, board) {
		respondError(c, http.StatusForbidden, "You do not own this board")
		return
	}

	pin := &model.Pin{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		CreatedBy:   actor.ID,
		Board:       boardID,
		Tags:        req.Tags,
	}

	if err := h.pinRepo.CreateInBoard(c.Request.Context(), pin); err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			respondError(c, http.StatusNotFound, "Board not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to create pin")
		return
	}

	respondSuccess(c, http.StatusCreated, "Pin created successfully", gin.H{
		"pin": newPinResponse(pin, nil),
	})
}

// GetByID returns a pin and increments its views counter; every successful
// read counts, regardless of who asks.
func (h *PinHandler) GetByID(c *gin.Context) {
	pinID, ok := parseIDParam(c)
	if !ok {
		return
	}

	pin, err := h.pinRepo.ViewByID(c.Request.Context(), pinID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve pin")
		return
	}
	if pin == nil {
		respondError(c, http.StatusNotFound, "Pin not found")
		return
	}

	owner, err := h.userRepo.GetByID(c.Request.Context(), pin.CreatedBy)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve pin")
		return
	}

	respondSuccess(c, http.StatusOK, "Pin retrieved successfully", gin.H{
		"pin": newPinResponse(pin, owner),
	})
}

// List returns pins newest first; with a search term the order switches to
// text-match relevance over title, description and tags.
func (h *PinHandler) List(c *gin.Context) {
	page, limit := parsePageQuery(c)
	search := c.Query("search")

	pins, total, err := h.pinRepo.List(c.Request.Context(), search, (page-1)*limit, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve pins")
		return
	}

	owners, err := h.pinOwnersByID(c, pins)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve pins")
		return
	}

	response := make([]PinResponse, len(pins))
	for i := range pins {
		response[i] = newPinResponse(&pins[i], owners[pins[i].CreatedBy])
	}

	respondSuccess(c, http.StatusOK, "Pins retrieved successfully", gin.H{
		"pins":       response,
		"pagination": newPagination(total, page, limit),
	})
}

// Repin copies an existing pin into a board the caller owns, recording
// lineage and bumping the original's saves counter.
func (h *PinHandler) Repin(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	originalID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req RepinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	boardID, err := primitive.ObjectIDFromHex(req.Board)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid board id format")
		return
	}

	original, err := h.pinRepo.GetByID(c.Request.Context(), originalID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve pin")
		return
	}
	if original == nil {
		respondError(c, http.StatusNotFound, "Original pin not found")
		return
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve board")
		return
	}
	if board == nil {
		respondError(c, http.StatusNotFound, "Board not found")
		return
	}

	if !authz.CanWriteBoard(actor, board) {
		respondError(c, http.StatusForbidden, "You do not own this board")
		return
	}

	pin := &model.Pin{
		Title:       original.Title,
		Description: original.Description,
		ImageURL:    original.ImageURL,
		CreatedBy:   actor.ID,
		Board:       boardID,
		Tags:        original.Tags,
		RepinFrom:   &original.ID,
	}

	if err := h.pinRepo.Repin(c.Request.Context(), pin); err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			respondError(c, http.StatusNotFound, "Board not found")
			return
		}
		if errors.Is(err, repository.ErrPinNotFound) {
			respondError(c, http.StatusNotFound, "Original pin not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to repin")
		return
	}

	respondSuccess(c, http.StatusCreated, "Pin repinned successfully", gin.H{
		"pin": newPinResponse(pin, nil),
	})
}

// Update applies a partial update to a pin owned by the caller.
func (h *PinHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	pinID, ok := parseIDParam(c)
	if !ok {
		return
	}

	pin, err := h.pinRepo.GetByID(c.Request.Context(), pinID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve pin")
		return
	}
	if pin == nil {
		respondError(c, http.StatusNotFound, "Pin not found")
		return
	}

	if !authz.CanWritePin(actor, pin) {
		respondError(c, http.StatusForbidden, "You do not own this pin")
		return
	}

	var req UpdatePinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	updated, err := h.pinRepo.Update(c.Request.Context(), pinID, repository.PinPatch{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Tags:        req.Tags,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to update pin")
		return
	}
	if updated == nil {
		respondError(c, http.StatusNotFound, "Pin not found")
		return
	}

	respondSuccess(c, http.StatusOK, "Pin updated successfully", gin.H{
		"pin": newPinResponse(updated, nil),
	})
}

// Delete removes a pin and its id from the owning board's membership list.
func (h *PinHandler) Delete(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	pinID, ok := parseIDParam(c)
	if !ok {
		return
	}

	pin, err := h.pinRepo.GetByID(c.Request.Context(), pinID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve pin")
		return
	}
	if pin == nil {
		respondError(c, http.StatusNotFound, "Pin not found")
		return
	}

	if !authz.CanWritePin(actor, pin) {
		respondError(c, http.StatusForbidden, "You do not own this pin")
		return
	}

	if err := h.pinRepo.DeleteWithMembership(c.Request.Context(), pin); err != nil {
		if errors.Is(err, repository.ErrPinNotFound) {
			respondError(c, http.StatusNotFound, "Pin not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to delete pin")
		return
	}

	respondSuccess(c, http.StatusOK, "Pin deleted successfully", nil)
}

// ToggleLike flips the caller's membership in the pin's likes set and
// returns the resulting count. No error path for "already liked": repeated
// calls alternate state.
func (h *PinHandler) ToggleLike(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	pinID, ok := parseIDParam(c)
	if !ok {
		return
	}

	pin, err := h.pinRepo.ToggleLike(c.Request.Context(), pinID, actor.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to toggle like")
		return
	}
	if pin == nil {
		respondError(c, http.StatusNotFound, "Pin not found")
		return
	}

	respondSuccess(c, http.StatusOK, "Pin like status toggled successfully", gin.H{
		"likesCount": len(pin.Likes),
	})
}

func (h *PinHandler) pinOwnersByID(c *gin.Context, pins []model.Pin) (map[primitive.ObjectID]*model.User, error) {
	seen := make(map[primitive.ObjectID]bool, len(pins))
	ids := make([]primitive.ObjectID, 0, len(pins))
	for i := range pins {
		if !seen[pins[i].CreatedBy] {
			seen[pins[i].CreatedBy] = true
			ids = append(ids, pins[i].CreatedBy)
		}
	}

	users, err := h.userRepo.GetByIDs(c.Request.Context(), ids)
	if err != nil {
		return nil, err
	}
	owners := make(map[primitive.ObjectID]*model.User, len(users))
	for i := range users {
		owners[users[i].ID] = &users[i]
	}
	return owners, nil
}
