package handler

import (
	"net/http"

	"github.com/itchan-dev/bbs/shared/api"
	internal_errors "github.com/itchan-dev/bbs/shared/errors"
	"github.com/itchan-dev/bbs/shared/utils"
)

func (h *Handler) CreateAlert(w http.ResponseWriter, r *http.Request) {
	var body api.CreateAlertRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	alert, err := h.alert.Register(r.Context(), body.Author, body.Keyword)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, api.NewAlertResponse(*alert))
}

func (h *Handler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	author := r.URL.Query().Get("author")
	if author == "" {
		utils.WriteErrorAndStatusCode(w, internal_errors.BadRequest("author is required"))
		return
	}

	alerts, err := h.alert.ListByAuthor(r.Context(), author)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.NewAlertListResponse(alerts))
}

func (h *Handler) DeleteAlert(w http.ResponseWriter, r *http.Request) {
	id, err := parseIdParam(r, "id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	author := r.URL.Query().Get("author")
	if author == "" {
		utils.WriteErrorAndStatusCode(w, internal_errors.BadRequest("author is required"))
		return
	}

	if err := h.alert.Delete(r.Context(), id, author); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
