package handler

import (
	"net/http"

	"github.com/itchan-dev/bbs/shared/api"
	"github.com/itchan-dev/bbs/shared/domain"
	"github.com/itchan-dev/bbs/shared/utils"
)

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var body api.CreateBoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	board, err := h.board.Create(r.Context(), body.Title, body.Content, body.Author, body.Password)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, api.NewBoardResponse(board.BoardMetadata))
}

func (h *Handler) ListBoards(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	res, err := h.board.List(r.Context(), page)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.NewBoardListResponse(*res))
}

func (h *Handler) SearchBoards(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var q api.SearchBoardQuery
	if v := r.URL.Query().Get("id"); v != "" {
		id, err := parseIntParam(v, "id")
		if err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
		q.Id = &id
	}
	if v := r.URL.Query().Get("author"); v != "" {
		q.Author = &v
	}
	if err := utils.Validate(q); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	res, err := h.board.Search(r.Context(), domain.BoardFilter{Id: q.Id, Author: q.Author}, page)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.NewBoardListResponse(*res))
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	id, err := parseIdParam(r, "id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	board, err := h.board.Get(r.Context(), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.BoardDetailResponse{
		BoardResponse: api.NewBoardResponse(board.BoardMetadata),
		ContentHTML:   h.text.Render(board.Content),
		Comments:      api.NewCommentTree(board.Comments),
	})
}

func (h *Handler) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	id, err := parseIdParam(r, "id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var body api.UpdateBoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	board, err := h.board.Update(r.Context(), id, domain.BoardPatch{Title: body.Title, Content: body.Content}, body.Password)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.NewBoardResponse(board.BoardMetadata))
}

func (h *Handler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	id, err := parseIdParam(r, "id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var body api.DeleteBoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.board.Delete(r.Context(), id, body.Password); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
