package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/campushub/room-booking-service/internal/dto"
	"github.com/campushub/room-booking-service/internal/models"
	"github.com/campushub/room-booking-service/internal/service"
	"github.com/stretchr/testify/assert"
)

type mockMaintenanceService struct {
	createFn  func(ctx context.Context, input service.CreateTicketInput, actor service.Actor) (*models.MaintenanceTicket, error)
	resolveFn func(ctx context.Context, id string, actor service.Actor) (*models.MaintenanceTicket, error)
	openFn    func(ctx context.Context) ([]models.MaintenanceTicket, error)
	alertsFn  func(ctx context.Context, actor service.Actor) ([]models.MaintenanceTicket, error)
}

func (m *mockMaintenanceService) Create(ctx context.Context, input service.CreateTicketInput, actor service.Actor) (*models.MaintenanceTicket, error) {
	return m.createFn(ctx, input, actor)
}
func (m *mockMaintenanceService) Resolve(ctx context.Context, id string, actor service.Actor) (*models.MaintenanceTicket, error) {
	return m.resolveFn(ctx, id, actor)
}
func (m *mockMaintenanceService) ListOpen(ctx context.Context) ([]models.MaintenanceTicket, error) {
	return m.openFn(ctx)
}
func (m *mockMaintenanceService) ListAlerts(ctx context.Context, actor service.Actor) ([]models.MaintenanceTicket, error) {
	return m.alertsFn(ctx, actor)
}
func (m *mockMaintenanceService) IsUnderMaintenance(ctx context.Context, roomID string) (bool, error) {
	return false, nil
}

func TestCreateTicket_Handler_Success(t *testing.T) {
	svc := &mockMaintenanceService{
		createFn: func(ctx context.Context, input service.CreateTicketInput, actor service.Actor) (*models.MaintenanceTicket, error) {
			return &models.MaintenanceTicket{
				ID:         "t-1",
				RoomID:     input.RoomID,
				Title:      input.Title,
				Status:     models.MaintenanceOpen,
				ReportedBy: actor.ID,
			}, nil
		},
	}
	c, rec := newContext(t, http.MethodPost, "/api/v1/maintenance",
		`{"room_id":"room-1","title":"Projector broken"}`, adminActor)

	h := NewMaintenanceHandler(svc)
	render(t, c, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.TicketResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.MaintenanceOpen, resp.Status)
	assert.Equal(t, "admin-1", resp.ReportedBy)
}

func TestCreateTicket_Handler_MissingTitle(t *testing.T) {
	c, rec := newContext(t, http.MethodPost, "/api/v1/maintenance", `{"room_id":"room-1"}`, adminActor)

	h := NewMaintenanceHandler(&mockMaintenanceService{})
	render(t, c, h.Create(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTicket_Handler_RoleRequired(t *testing.T) {
	svc := &mockMaintenanceService{
		createFn: func(ctx context.Context, input service.CreateTicketInput, actor service.Actor) (*models.MaintenanceTicket, error) {
			return nil, service.ErrPrivilegedRoleRequired
		},
	}
	c, rec := newContext(t, http.MethodPost, "/api/v1/maintenance",
		`{"room_id":"room-1","title":"Projector broken"}`, studentActor)

	h := NewMaintenanceHandler(svc)
	render(t, c, h.Create(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestResolveTicket_Handler_Success(t *testing.T) {
	svc := &mockMaintenanceService{
		resolveFn: func(ctx context.Context, id string, actor service.Actor) (*models.MaintenanceTicket, error) {
			return &models.MaintenanceTicket{
				ID:         id,
				RoomID:     "room-1",
				Title:      "Projector broken",
				Status:     models.MaintenanceResolved,
				ReportedBy: "admin-1",
				ResolvedBy: &actor.ID,
			}, nil
		},
	}
	c, rec := newContext(t, http.MethodPatch, "/api/v1/maintenance/t-1/resolve", "", adminActor)
	c.SetParamNames("id")
	c.SetParamValues("t-1")

	h := NewMaintenanceHandler(svc)
	render(t, c, h.Resolve(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.TicketResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.MaintenanceResolved, resp.Status)
}

func TestResolveTicket_Handler_AlreadyResolved(t *testing.T) {
	svc := &mockMaintenanceService{
		resolveFn: func(ctx context.Context, id string, actor service.Actor) (*models.MaintenanceTicket, error) {
			return nil, service.ErrTicketAlreadyResolved
		},
	}
	c, rec := newContext(t, http.MethodPatch, "/api/v1/maintenance/t-1/resolve", "", adminActor)
	c.SetParamNames("id")
	c.SetParamValues("t-1")

	h := NewMaintenanceHandler(svc)
	render(t, c, h.Resolve(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestResolveTicket_Handler_NotFound(t *testing.T) {
	svc := &mockMaintenanceService{
		resolveFn: func(ctx context.Context, id string, actor service.Actor) (*models.MaintenanceTicket, error) {
			return nil, service.ErrTicketNotFound
		},
	}
	c, rec := newContext(t, http.MethodPatch, "/api/v1/maintenance/missing/resolve", "", adminActor)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	h := NewMaintenanceHandler(svc)
	render(t, c, h.Resolve(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListOpenTickets_Handler(t *testing.T) {
	svc := &mockMaintenanceService{
		openFn: func(ctx context.Context) ([]models.MaintenanceTicket, error) {
			return []models.MaintenanceTicket{
				{ID: "t-1", Status: models.MaintenanceOpen},
			}, nil
		},
	}
	c, rec := newContext(t, http.MethodGet, "/api/v1/maintenance/open", "", studentActor)

	h := NewMaintenanceHandler(svc)
	render(t, c, h.ListOpen(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.TicketResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
}
