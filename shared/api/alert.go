package api

import "github.com/itchan-dev/bbs/shared/domain"

type CreateAlertRequest struct {
	Author  string `json:"author" validate:"required"`
	Keyword string `json:"keyword" validate:"required,max=255"`
}

type AlertResponse struct {
	Id      int64  `json:"id"`
	Author  string `json:"author"`
	Keyword string `json:"keyword"`
}

type AlertListResponse struct {
	Alerts []AlertResponse `json:"alerts"`
}

func NewAlertResponse(a domain.KeywordAlert) AlertResponse {
	return AlertResponse{Id: a.Id, Author: a.Author, Keyword: a.Keyword}
}

func NewAlertListResponse(alerts []domain.KeywordAlert) AlertListResponse {
	res := AlertListResponse{Alerts: make([]AlertResponse, len(alerts))}
	for i, a := range alerts {
		res.Alerts[i] = NewAlertResponse(a)
	}
	return res
}
