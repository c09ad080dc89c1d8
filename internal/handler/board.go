package handler

import (
	"net/http"

	"kanban/internal/api"
	"kanban/internal/domain"
	"kanban/internal/utils"
)

func (h *Handler) GetBoards(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}

	boards, err := h.board.List(user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.BoardListResponse{Boards: boards})
}

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}

	var body api.CreateBoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	board, err := h.board.Create(user.Id, domain.BoardCreationData{
		Name:        body.Name,
		Description: body.Description,
		Color:       body.Color,
		IsDefault:   body.IsDefault,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.BoardResponse{Board: board})
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}

	boardId, err := parseIdParam(r, "board")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	board, err := h.board.Get(boardId, user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.BoardResponse{Board: board})
}

func (h *Handler) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}

	boardId, err := parseIdParam(r, "board")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body api.UpdateBoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	board, err := h.board.Update(boardId, user.Id, body.Patch())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.BoardResponse{Board: board})
}

func (h *Handler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}

	boardId, err := parseIdParam(r, "board")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.board.Delete(boardId, user.Id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.DeleteBoardResponse{Message: "Board deleted successfully"})
}

func (h *Handler) GetBoardStats(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}

	boardId, err := parseIdParam(r, "board")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	stats, err := h.board.Stats(boardId, user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.BoardStatsResponse{BoardStats: stats})
}
