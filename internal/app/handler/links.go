package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/shorturlproject/shorturl/internal/app/service"
	"github.com/shorturlproject/shorturl/internal/middleware"
	"github.com/shorturlproject/shorturl/internal/models"
)

const (
	msgExisting    = "link already exists"
	msgReactivated = "link reactivated"
)

// LinkHandler serves the authenticated link endpoints.
type LinkHandler struct {
	links  service.LinkServiceIface
	logger *zap.Logger
}

func NewLinks(s service.LinkServiceIface, l *zap.Logger) *LinkHandler {
	return &LinkHandler{
		links:  s,
		logger: l,
	}
}

func (h *LinkHandler) principal(res http.ResponseWriter, req *http.Request) (service.Principal, bool) {
	p, ok := middleware.PrincipalFrom(req.Context())
	if !ok {
		writeError(res, http.StatusUnauthorized, "authentication required")
	}
	return p, ok
}

// Shorten handles POST /api/shorten.
func (h *LinkHandler) Shorten(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	p, ok := h.principal(res, req)
	if !ok {
		return
	}

	var body models.ShortenRequest
	if err := decodeJSONBody(res, req, &body); err != nil {
		writeDecodeError(res, err, h.logger)
		return
	}

	r, err := h.links.Shorten(ctx, p.Username, body.LongURL)
	if err != nil {
		writeServiceError(res, err, h.logger)
		return
	}

	out := models.ShortenResponse{ShortCode: r.Code, Existing: r.Existing, Reactivated: r.Reactivated}
	switch {
	case r.Reactivated:
		out.Msg = msgReactivated
	case r.Existing:
		out.Msg = msgExisting
	}

	writeJSON(res, http.StatusOK, out)
}

// List handles GET /api/user/links.
func (h *LinkHandler) List(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	p, ok := h.principal(res, req)
	if !ok {
		return
	}

	items, err := h.links.ListOwned(ctx, p.Username)
	if err != nil {
		writeServiceError(res, err, h.logger)
		return
	}

	out := models.LinksResponse{Items: make([]models.LinkItem, 0, len(items))}
	for _, it := range items {
		out.Items = append(out.Items, models.LinkItem{
			Code:      it.Code,
			LongURL:   it.LongURL,
			Visits:    it.Visits,
			CreatedAt: it.CreatedAt,
			UpdatedAt: it.UpdatedAt,
		})
	}

	writeJSON(res, http.StatusOK, out)
}

// Update handles PUT /api/user/links/{code}.
func (h *LinkHandler) Update(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	p, ok := h.principal(res, req)
	if !ok {
		return
	}

	var body models.UpdateLinkRequest
	if err := decodeJSONBody(res, req, &body); err != nil {
		writeDecodeError(res, err, h.logger)
		return
	}

	rec, err := h.links.Update(ctx, chi.URLParam(req, "code"), p, body.LongURL)
	if err != nil {
		writeServiceError(res, err, h.logger)
		return
	}

	writeJSON(res, http.StatusOK, models.UpdateLinkResponse{Code: rec.Code, LongURL: rec.LongURL, UpdatedAt: rec.UpdatedAt})
}

// Delete handles DELETE /api/user/links/{code}.
func (h *LinkHandler) Delete(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	p, ok := h.principal(res, req)
	if !ok {
		return
	}

	if err := h.links.Remove(ctx, chi.URLParam(req, "code"), p); err != nil {
		writeServiceError(res, err, h.logger)
		return
	}

	writeJSON(res, http.StatusOK, models.OKResponse{OK: true})
}

// Stats handles GET /api/stats/{code}.
func (h *LinkHandler) Stats(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	p, ok := h.principal(res, req)
	if !ok {
		return
	}

	st, err := h.links.Stats(ctx, chi.URLParam(req, "code"), p)
	if err != nil {
		writeServiceError(res, err, h.logger)
		return
	}

	out := models.StatsResponse{
		Code:      st.Code,
		LongURL:   st.LongURL,
		Owner:     st.Owner,
		Active:    st.Active,
		Visits:    st.Visits,
		CreatedAt: st.CreatedAt,
		UpdatedAt: st.UpdatedAt,
		DeletedAt: st.DeletedAt,
		History:   make([]models.Visit, 0, len(st.History)),
	}
	for _, v := range st.History {
		out.History = append(out.History, models.Visit{
			Timestamp: v.Timestamp,
			IP:        v.IP,
			Country:   v.Country,
			City:      v.City,
			UserAgent: v.UserAgent,
		})
	}

	writeJSON(res, http.StatusOK, out)
}

// Dashboard handles GET /api/admin/dashboard. Admin checks happen in middleware.
func (h *LinkHandler) Dashboard(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	d, err := h.links.Dashboard(ctx)
	if err != nil {
		writeServiceError(res, err, h.logger)
		return
	}

	out := models.DashboardResponse{
		TotalLinks:  d.TotalLinks,
		TotalVisits: d.TotalVisits,
		TopLinks:    make([]models.TopLink, 0, len(d.TopLinks)),
		GeoData:     make([]models.GeoCount, 0, len(d.GeoData)),
		ChartData:   make([]models.ChartPoint, 0, len(d.ChartData)),
	}
	for _, l := range d.TopLinks {
		out.TopLinks = append(out.TopLinks, models.TopLink{Code: l.Code, LongURL: l.LongURL, Visits: l.Visits})
	}
	for _, g := range d.GeoData {
		out.GeoData = append(out.GeoData, models.GeoCount{Country: g.Country, Count: g.Count})
	}
	for _, c := range d.ChartData {
		out.ChartData = append(out.ChartData, models.ChartPoint{Date: c.Date, Visits: c.Visits})
	}

	writeJSON(res, http.StatusOK, out)
}
