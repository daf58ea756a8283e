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

type BoardHandler struct {
	boardRepo repository.BoardRepositoryInterface
	pinRepo   repository.PinRepositoryInterface
	userRepo  repository.UserRepositoryInterface
}

func NewBoardHandler(
	boardRepo repository.BoardRepositoryInterface,
	pinRepo repository.PinRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
) *BoardHandler {
	return &BoardHandler{
		boardRepo: boardRepo,
		pinRepo:   pinRepo,
		userRepo:  userRepo,
	}
}

type CreateBoardRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
	IsPrivate   *bool  `json:"isPrivate"`
}

// UpdateBoardRequest uses pointers so absent fields stay untouched.
type UpdateBoardRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=3,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	IsPrivate   *bool   `json:"isPrivate"`
}

type BoardResponse struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	CreatedBy   string        `json:"createdBy"`
	Owner       *OwnerSummary `json:"owner,omitempty"`
	IsPrivate   bool          `json:"isPrivate"`
	Pins        []string      `json:"pins"`
	CreatedAt   string        `json:"createdAt"`
}

// BoardDetailResponse is the single-board view with member pins expanded.
type BoardDetailResponse struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	CreatedBy   string        `json:"createdBy"`
	Owner       *OwnerSummary `json:"owner,omitempty"`
	IsPrivate   bool          `json:"isPrivate"`
	Pins        []PinResponse `json:"pins"`
	CreatedAt   string        `json:"createdAt"`
}

func newBoardResponse(b *model.Board, owner *model.User) BoardResponse {
	pins := make([]string, len(b.Pins))
	for i, id := range b.Pins {
		pins[i] = id.Hex()
	}
	resp := BoardResponse{
		ID:          b.ID.Hex(),
		Name:        b.Name,
		Description: b.Description,
		CreatedBy:   b.CreatedBy.Hex(),
		IsPrivate:   b.IsPrivate,
		Pins:        pins,
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
	}
	if owner != nil {
		resp.Owner = &OwnerSummary{ID: owner.ID.Hex(), Username: owner.Username, Avatar: owner.Avatar}
	}
	return resp
}

// Create creates a new board owned by the authenticated user.
func (h *BoardHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	board := &model.Board{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   actor.ID,
		IsPrivate:   req.IsPrivate != nil && *req.IsPrivate,
	}

	if err := h.boardRepo.Create(c.Request.Context(), board); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create board")
		return
	}

	respondSuccess(c, http.StatusCreated, "Board created successfully", gin.H{
		"board": newBoardResponse(board, nil),
	})
}

// List returns public boards plus the viewer's own private ones, newest
// first.
func (h *BoardHandler) List(c *gin.Context) {
	actor := currentActor(c)
	page, limit := parsePageQuery(c)

	boards, total, err := h.boardRepo.List(c.Request.Context(), actor.ID, (page-1)*limit, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve boards")
		return
	}

	owners, err := h.ownersByID(c, boardOwnerIDs(boards))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve boards")
		return
	}

	response := make([]BoardResponse, len(boards))
	for i := range boards {
		response[i] = newBoardResponse(&boards[i], owners[boards[i].CreatedBy])
	}

	respondSuccess(c, http.StatusOK, "Boards retrieved successfully", gin.H{
		"boards":     response,
		"pagination": newPagination(total, page, limit),
	})
}

// GetByID returns a single board with owner and member pins expanded,
// honouring the privacy flag.
func (h *BoardHandler) GetByID(c *gin.Context) {
	boardID, ok := parseIDParam(c)
	if !ok {
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

	if !authz.CanReadBoard(currentActor(c), board) {
		respondError(c, http.StatusForbidden, "You are not authorized to view this board")
		return
	}

	owner, err := h.userRepo.GetByID(c.Request.Context(), board.CreatedBy)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve board")
		return
	}

	pins, err := h.pinRepo.FindByBoard(c.Request.Context(), board.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve board")
		return
	}

	detail := BoardDetailResponse{
		ID:          board.ID.Hex(),
		Name:        board.Name,
		Description: board.Description,
		CreatedBy:   board.CreatedBy.Hex(),
		IsPrivate:   board.IsPrivate,
		Pins:        make([]PinResponse, len(pins)),
		CreatedAt:   board.CreatedAt.Format(time.RFC3339),
	}
	if owner != nil {
		detail.Owner = &OwnerSummary{ID: owner.ID.Hex(), Username: owner.Username, Avatar: owner.Avatar}
	}
	for i := range pins {
		detail.Pins[i] = newPinResponse(&pins[i], nil)
	}

	respondSuccess(c, http.StatusOK, "Board retrieved successfully", gin.H{
		"board": detail,
	})
}

// Update applies a partial update to a board owned by the caller.
func (h *BoardHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	boardID, ok := parseIDParam(c)
	if !ok {
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

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	updated, err := h.boardRepo.Update(c.Request.Context(), boardID, repository.BoardPatch{
		Name:        req.Name,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to update board")
		return
	}
	if updated == nil {
		respondError(c, http.StatusNotFound, "Board not found")
		return
	}

	respondSuccess(c, http.StatusOK, "Board updated successfully", gin.H{
		"board": newBoardResponse(updated, nil),
	})
}

// Delete removes a board and cascades to all its member pins.
func (h *BoardHandler) Delete(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	boardID, ok := parseIDParam(c)
	if !ok {
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

	if err := h.boardRepo.DeleteWithPins(c.Request.Context(), boardID); err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			respondError(c, http.StatusNotFound, "Board not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to delete board")
		return
	}

	respondSuccess(c, http.StatusOK, "Board deleted successfully", nil)
}

func boardOwnerIDs(boards []model.Board) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(boards))
	ids := make([]primitive.ObjectID, 0, len(boards))
	for i := range boards {
		if !seen[boards[i].CreatedBy] {
			seen[boards[i].CreatedBy] = true
			ids = append(ids, boards[i].CreatedBy)
		}
	}
	return ids
}

func (h *BoardHandler) ownersByID(c *gin.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*model.User, error) {
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
