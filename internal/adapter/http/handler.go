package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"rbcmap/internal/app/auth"
	"rbcmap/internal/app/mapdata"
	"rbcmap/internal/app/ports"
	"rbcmap/internal/app/query"
	"rbcmap/internal/app/session"
	"rbcmap/internal/domain/grid"
	"rbcmap/internal/domain/poi"
)

const authorizationHeader = "Authorization"
const bearerPrefix = "Bearer "

type Handler struct {
	RegisterUC auth.RegisterUseCase
	LoginUC    auth.LoginUseCase
	VerifyUC   auth.VerifyUseCase
	NearbyUC   query.NearbyUseCase
	RouteUC    query.RouteUseCase
	ViewportUC query.ViewportUseCase
	ReloadUC   mapdata.ReloadUseCase
	SessionUC  session.UseCase

	// DefaultZoom is used when a character has no saved zoom yet.
	DefaultZoom int

	KPI kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	character := s.Group("/api/character")
	character.POST("/register", h.register)
	character.POST("/login", h.login)

	mapGroup := s.Group("/api/map")
	mapGroup.GET("/nearby", h.nearby)
	mapGroup.GET("/route", h.route)
	mapGroup.GET("/viewport", h.viewport)
	mapGroup.POST("/click", h.click)
	mapGroup.POST("/reload", h.reload)

	sess := s.Group("/api/session")
	sess.POST("/destination", h.setDestination)
	sess.GET("/destination", h.getDestination)
	sess.DELETE("/destination", h.clearDestination)
	sess.GET("/destination/recent", h.recentDestinations)
	sess.POST("/zoom", h.saveZoom)
	sess.GET("/zoom", h.zoom)

	s.GET("/api/ops/kpi", h.kpi)
}

type credentialsRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h Handler) register(c context.Context, ctx *app.RequestContext) {
	var body credentialsRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.RegisterUC.Execute(c, auth.RegisterRequest{Name: body.Name, Password: body.Password})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) login(c context.Context, ctx *app.RequestContext) {
	var body credentialsRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.LoginUC.Execute(c, auth.LoginRequest{Name: body.Name, Password: body.Password})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) nearby(c context.Context, ctx *app.RequestContext) {
	from, err := queryLocation(ctx, "col", "row")
	if err != nil {
		writeError(ctx, err)
		return
	}
	rank, err := queryInt(ctx, "rank", 1)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.NearbyUC.Execute(c, query.NearbyRequest{
		From:     from,
		Category: poi.Category(string(ctx.Query("category"))),
		Rank:     rank,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) route(c context.Context, ctx *app.RequestContext) {
	from, err := queryLocation(ctx, "from_col", "from_row")
	if err != nil {
		writeError(ctx, err)
		return
	}
	to, err := queryLocation(ctx, "to_col", "to_row")
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.RouteUC.Execute(c, query.RouteRequest{From: from, To: to})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) viewport(c context.Context, ctx *app.RequestContext) {
	center, err := queryLocation(ctx, "col", "row")
	if err != nil {
		writeError(ctx, err)
		return
	}
	zoom, err := queryInt(ctx, "zoom", h.DefaultZoom)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.ViewportUC.Execute(c, query.ViewportRequest{
		Center: center,
		Zoom:   zoom,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type clickRequest struct {
	OriginCol int `json:"origin_col"`
	OriginRow int `json:"origin_row"`
	CellRow   int `json:"cell_row"`
	CellCol   int `json:"cell_col"`
}

func (h Handler) click(c context.Context, ctx *app.RequestContext) {
	var body clickRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.ViewportUC.Click(c, query.ClickRequest{
		Origin:  grid.Location{Col: body.OriginCol, Row: body.OriginRow},
		CellRow: body.CellRow,
		CellCol: body.CellCol,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) reload(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ReloadUC.Execute(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type setDestinationRequest struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

func (h Handler) setDestination(c context.Context, ctx *app.RequestContext) {
	characterID, err := h.requireAuthenticatedCharacter(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body setDestinationRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.SessionUC.SetDestination(c, session.SetDestinationRequest{
		CharacterID: characterID,
		Loc:         grid.Location{Col: body.Col, Row: body.Row},
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) getDestination(c context.Context, ctx *app.RequestContext) {
	characterID, err := h.requireAuthenticatedCharacter(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	from, err := queryLocation(ctx, "col", "row")
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.SessionUC.GetDestination(c, session.GetDestinationRequest{
		CharacterID: characterID,
		From:        from,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) clearDestination(c context.Context, ctx *app.RequestContext) {
	characterID, err := h.requireAuthenticatedCharacter(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if err := h.SessionUC.ClearDestination(c, characterID); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]bool{"cleared": true})
}

func (h Handler) recentDestinations(c context.Context, ctx *app.RequestContext) {
	characterID, err := h.requireAuthenticatedCharacter(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.SessionUC.RecentDestinations(c, characterID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type saveZoomRequest struct {
	Zoom int `json:"zoom"`
}

func (h Handler) saveZoom(c context.Context, ctx *app.RequestContext) {
	characterID, err := h.requireAuthenticatedCharacter(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body saveZoomRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if err := h.SessionUC.SaveZoom(c, session.SaveZoomRequest{CharacterID: characterID, Zoom: body.Zoom}); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]int{"zoom": body.Zoom})
}

func (h Handler) zoom(c context.Context, ctx *app.RequestContext) {
	characterID, err := h.requireAuthenticatedCharacter(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	zoom, err := h.SessionUC.Zoom(c, characterID, h.DefaultZoom)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]int{"zoom": zoom})
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

var ErrInvalidQueryParam = errors.New("invalid query parameter")

// queryInt parses an integer query parameter. An absent parameter falls
// back; a present but unparsable one is a client error, same as an
// unknown category or zoom.
func queryInt(ctx *app.RequestContext, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(string(ctx.Query(key)))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidQueryParam, key, raw)
	}
	return n, nil
}

func queryLocation(ctx *app.RequestContext, colKey, rowKey string) (grid.Location, error) {
	col, err := queryInt(ctx, colKey, 0)
	if err != nil {
		return grid.Location{}, err
	}
	row, err := queryInt(ctx, rowKey, 0)
	if err != nil {
		return grid.Location{}, err
	}
	return grid.Location{Col: col, Row: row}, nil
}

var ErrMissingToken = errors.New("missing bearer token")

func (h Handler) requireAuthenticatedCharacter(c context.Context, ctx *app.RequestContext) (string, error) {
	header := strings.TrimSpace(string(ctx.GetHeader(authorizationHeader)))
	if header == "" || !strings.HasPrefix(header, bearerPrefix) {
		return "", ErrMissingToken
	}
	return h.VerifyUC.Execute(c, strings.TrimPrefix(header, bearerPrefix))
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingToken):
		writeErrorBody(ctx, consts.StatusUnauthorized, "missing_token", err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		writeErrorBody(ctx, consts.StatusUnauthorized, "invalid_token", err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeErrorBody(ctx, consts.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, mapdata.ErrNotConfigured):
		writeErrorBody(ctx, consts.StatusServiceUnavailable, "map_source_not_configured", err.Error())
	case errors.Is(err, ErrInvalidQueryParam):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_query", err.Error())
	case errors.Is(err, auth.ErrInvalidRequest),
		errors.Is(err, query.ErrInvalidRequest),
		errors.Is(err, session.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
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
