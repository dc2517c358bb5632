package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"geoforge/internal/adapter/feed"
	"geoforge/internal/app/engine"
	"geoforge/internal/app/movement"
	"geoforge/internal/app/ports"
	"geoforge/internal/app/replay"
	"geoforge/internal/app/status"
	"geoforge/internal/domain/game"
	"geoforge/internal/domain/grid"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	Engine   *engine.Engine
	Movement *movement.Controller
	Feed     *feed.Queue
	StatusUC *status.UseCase
	ReplayUC *replay.UseCase
	KPI      kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	session := s.Group("/api/session")
	session.GET("/state", h.state)
	session.POST("/click", h.click)
	session.POST("/step", h.step)
	session.POST("/viewport", h.viewport)
	session.POST("/position", h.position)
	session.POST("/mode", h.mode)
	session.POST("/reset", h.reset)
	session.GET("/replay", h.replay)

	s.GET("/ops/kpi", h.kpi)
}

type clickRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type stepRequest struct {
	Direction string `json:"direction"`
}

type viewportRequest struct {
	South float64 `json:"south"`
	North float64 `json:"north"`
	West  float64 `json:"west"`
	East  float64 `json:"east"`
}

type positionRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type modeRequest struct {
	Mode string `json:"mode"`
}

func (h Handler) state(c context.Context, ctx *app.RequestContext) {
	if h.StatusUC != nil {
		ctx.JSON(consts.StatusOK, h.StatusUC.Execute(c))
		return
	}
	ctx.JSON(consts.StatusOK, h.Engine.Status())
}

func (h Handler) click(c context.Context, ctx *app.RequestContext) {
	var body clickRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	result := h.Engine.ClickCell(c, grid.Cell{Row: body.Row, Col: body.Col})
	ctx.JSON(consts.StatusOK, result)
}

func (h Handler) step(c context.Context, ctx *app.RequestContext) {
	var body stepRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	if err := h.Movement.Manual().Step(body.Direction); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"player": h.Engine.Player()})
}

func (h Handler) viewport(c context.Context, ctx *app.RequestContext) {
	var body viewportRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	diff := h.Engine.RecomputeViewport(c, grid.Window{
		South: body.South,
		North: body.North,
		West:  body.West,
		East:  body.East,
	})
	ctx.JSON(consts.StatusOK, diff)
}

func (h Handler) position(_ context.Context, ctx *app.RequestContext) {
	var body positionRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if h.Feed == nil {
		writeError(ctx, ports.ErrLocationUnavailable)
		return
	}

	h.Feed.Push(grid.GeoPoint{Lat: body.Lat, Lng: body.Lng})
	ctx.JSON(consts.StatusAccepted, map[string]any{"accepted": true})
}

func (h Handler) mode(c context.Context, ctx *app.RequestContext) {
	var body modeRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	requested := game.MovementMode(body.Mode)
	if err := h.Engine.SetMode(c, requested); err != nil {
		writeError(ctx, err)
		return
	}

	if h.Movement != nil {
		if err := h.Movement.Switch(requested); err != nil {
			// The controller already fell back to manual; mirror that in
			// the persisted mode and tell the client.
			_ = h.Engine.SetMode(c, game.ModeManual)
			ctx.JSON(consts.StatusOK, map[string]any{
				"movement_mode": game.ModeManual,
				"requested":     requested,
				"degraded":      true,
			})
			return
		}
	}
	ctx.JSON(consts.StatusOK, map[string]any{"movement_mode": requested})
}

func (h Handler) reset(c context.Context, ctx *app.RequestContext) {
	h.Engine.Reset(c)
	if h.Movement != nil {
		_ = h.Movement.Switch(h.Engine.Mode())
	}
	ctx.JSON(consts.StatusOK, h.Engine.Status())
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) {
	if h.ReplayUC == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "replay not configured")
		return
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		SessionID: h.Engine.Status().SessionID,
		Limit:     limit,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidMode):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_mode", err.Error())
	case errors.Is(err, movement.ErrUnknownDirection):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_direction", err.Error())
	case errors.Is(err, ports.ErrLocationUnavailable):
		writeErrorBody(ctx, consts.StatusConflict, "location_unavailable", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
