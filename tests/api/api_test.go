//go:build api

// End-to-end tests against a running service instance. Requires the server on
// BOOKING_API_URL (default http://localhost:8080) with a seeded room and the
// same JWT_SECRET as the test environment.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/campushub/room-booking-service/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseURL() string {
	if v := os.Getenv("BOOKING_API_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

func token(t *testing.T, userID, role string) string {
	t.Helper()
	secret := os.Getenv("JWT_SECRET")
	require.NotEmpty(t, secret, "JWT_SECRET must be set for API tests")
	tok, err := middleware.SignToken(secret, userID, role, time.Hour)
	require.NoError(t, err)
	return tok
}

func request(t *testing.T, method, path, bearer string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, baseURL()+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func firstRoomID(t *testing.T, bearer string) string {
	t.Helper()
	resp := request(t, http.MethodGet, "/api/v1/rooms", bearer, nil)
	require.Equal(t, 200, resp.StatusCode)

	var rooms []map[string]any
	decodeJSON(t, resp, &rooms)
	require.NotEmpty(t, rooms, "API tests need at least one seeded room")
	return rooms[0]["id"].(string)
}

func TestAPI_BookingLifecycle(t *testing.T) {
	studentToken := token(t, "student-001", "student")
	adminToken := token(t, "admin-001", "admin")
	roomID := firstRoomID(t, studentToken)

	day := time.Now().AddDate(0, 1, 0).Truncate(24 * time.Hour)
	start := day.Add(10 * time.Hour)
	end := day.Add(11 * time.Hour)

	var bookingID string

	t.Run("CreatePending", func(t *testing.T) {
		resp := request(t, http.MethodPost, "/api/v1/bookings", studentToken, map[string]any{
			"room_id":    roomID,
			"start_time": start.Format(time.RFC3339),
			"end_time":   end.Format(time.RFC3339),
			"priority":   "NORMAL",
			"purpose":    "Project meeting",
		})
		assert.Equal(t, 201, resp.StatusCode)

		var booking map[string]any
		decodeJSON(t, resp, &booking)
		assert.Equal(t, "PENDING", booking["status"])
		bookingID = booking["id"].(string)
	})

	t.Run("OverlappingCreateConflicts", func(t *testing.T) {
		resp := request(t, http.MethodPost, "/api/v1/bookings", studentToken, map[string]any{
			"room_id":    roomID,
			"start_time": start.Add(30 * time.Minute).Format(time.RFC3339),
			"end_time":   end.Add(30 * time.Minute).Format(time.RFC3339),
			"purpose":    "Competing meeting",
		})
		assert.Equal(t, 409, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("ApproveByAdmin", func(t *testing.T) {
		resp := request(t, http.MethodPost, fmt.Sprintf("/api/v1/bookings/%s/approve", bookingID), adminToken, nil)
		assert.Equal(t, 201, resp.StatusCode)

		var booking map[string]any
		decodeJSON(t, resp, &booking)
		assert.Equal(t, "APPROVED", booking["status"])
		assert.Equal(t, "admin-001", booking["approved_by"])
	})

	t.Run("CancelByStrangerConflicts", func(t *testing.T) {
		strangerToken := token(t, "student-999", "student")
		resp := request(t, http.MethodPost, fmt.Sprintf("/api/v1/bookings/%s/cancel", bookingID), strangerToken, nil)
		assert.Equal(t, 409, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("CancelByOwner", func(t *testing.T) {
		resp := request(t, http.MethodPost, fmt.Sprintf("/api/v1/bookings/%s/cancel", bookingID), studentToken, nil)
		assert.Equal(t, 201, resp.StatusCode)

		var booking map[string]any
		decodeJSON(t, resp, &booking)
		assert.Equal(t, "CANCELLED", booking["status"])
	})

	t.Run("AuditTrailVisible", func(t *testing.T) {
		resp := request(t, http.MethodGet, "/api/v1/bookings/"+bookingID, studentToken, nil)
		assert.Equal(t, 200, resp.StatusCode)

		var booking map[string]any
		decodeJSON(t, resp, &booking)
		logs := booking["audit_logs"].([]any)
		assert.Len(t, logs, 3)
	})
}

func TestAPI_MaintenanceGate(t *testing.T) {
	studentToken := token(t, "student-002", "student")
	adminToken := token(t, "admin-001", "admin")
	roomID := firstRoomID(t, studentToken)

	var ticketID string

	t.Run("OpenTicket", func(t *testing.T) {
		resp := request(t, http.MethodPost, "/api/v1/maintenance", adminToken, map[string]any{
			"room_id": roomID,
			"title":   "AC service",
		})
		assert.Equal(t, 201, resp.StatusCode)

		var ticket map[string]any
		decodeJSON(t, resp, &ticket)
		assert.Equal(t, "OPEN", ticket["status"])
		ticketID = ticket["id"].(string)
	})

	t.Run("CreateBlocked", func(t *testing.T) {
		day := time.Now().AddDate(0, 2, 0).Truncate(24 * time.Hour)
		resp := request(t, http.MethodPost, "/api/v1/bookings", studentToken, map[string]any{
			"room_id":    roomID,
			"start_time": day.Add(9 * time.Hour).Format(time.RFC3339),
			"end_time":   day.Add(10 * time.Hour).Format(time.RFC3339),
			"purpose":    "Workshop",
		})
		assert.Equal(t, 409, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("ResolveAndUnblock", func(t *testing.T) {
		resp := request(t, http.MethodPatch, fmt.Sprintf("/api/v1/maintenance/%s/resolve", ticketID), adminToken, nil)
		assert.Equal(t, 200, resp.StatusCode)

		var ticket map[string]any
		decodeJSON(t, resp, &ticket)
		assert.Equal(t, "RESOLVED", ticket["status"])
	})
}

func TestAPI_Unauthorized(t *testing.T) {
	resp := request(t, http.MethodGet, "/api/v1/bookings", "", nil)
	assert.Equal(t, 401, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_Health(t *testing.T) {
	resp, err := http.Get(baseURL() + "/health")
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var health map[string]string
	decodeJSON(t, resp, &health)
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, "up", health["db"])
}
