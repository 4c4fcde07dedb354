package handlers

import (
	"net/http"
	"testing"

	"cabinet_avocat_go/models"

	"github.com/stretchr/testify/assert"
)

func createSessionRequest(t *testing.T, clientID, date, start, end string) map[string]interface{} {
	t.Helper()
	return map[string]interface{}{
		"client_id":  clientID,
		"date":       date,
		"start_time": start,
		"end_time":   end,
		"location":   "Tribunal de première instance",
	}
}

func TestCreateSessionConflicts(t *testing.T) {
	database := setupTestDB(t)
	lawyer := createTestLawyer(t, database, "sessions@test.com")
	client := createTestClient(t, database, lawyer, "SE111111")

	create := func(date, start, end string) *http.Response {
		_, c, rec := setupEcho(http.MethodPost, "/api/sessions",
			jsonBody(t, createSessionRequest(t, client.ID, date, start, end)))
		actAsLawyer(c, lawyer)
		assert.NoError(t, CreateSessionHandler(c))
		return rec.Result()
	}

	t.Run("First booking succeeds", func(t *testing.T) {
		resp := create("2026-09-10", "09:00", "10:00")
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("Overlapping slot rejected with conflict list", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/api/sessions",
			jsonBody(t, createSessionRequest(t, client.ID, "2026-09-10", "09:30", "10:30")))
		actAsLawyer(c, lawyer)

		assert.NoError(t, CreateSessionHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body struct {
			Error     string                   `json:"error"`
			Conflicts []map[string]interface{} `json:"conflicts"`
		}
		decodeBody(t, rec, &body)
		assert.NotEmpty(t, body.Error)
		assert.Len(t, body.Conflicts, 1)
		assert.Equal(t, "Karim Haddad", body.Conflicts[0]["client_name"])
	})

	t.Run("Back-to-back slot accepted", func(t *testing.T) {
		resp := create("2026-09-10", "10:00", "11:00")
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("Same slot on another date accepted", func(t *testing.T) {
		resp := create("2026-09-11", "09:00", "10:00")
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("Malformed time rejected", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/api/sessions",
			jsonBody(t, createSessionRequest(t, client.ID, "2026-09-12", "9:00", "10:00")))
		actAsLawyer(c, lawyer)

		assert.NoError(t, CreateSessionHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateSessionExcludesSelf(t *testing.T) {
	database := setupTestDB(t)
	lawyer := createTestLawyer(t, database, "sessions-upd@test.com")
	client := createTestClient(t, database, lawyer, "SE222222")

	session := &models.Session{
		LawyerID:  lawyer.ID,
		ClientID:  client.ID,
		Date:      "2026-09-15",
		StartTime: "14:00",
		EndTime:   "15:00",
	}
	assert.NoError(t, database.Create(session).Error)

	t.Run("Rescheduling within its own slot succeeds", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPut, "/api/sessions/"+session.ID, jsonBody(t, map[string]string{
			"start_time": "14:30",
			"end_time":   "15:30",
		}))
		c.SetParamNames("id")
		c.SetParamValues(session.ID)
		actAsLawyer(c, lawyer)

		assert.NoError(t, UpdateSessionHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Moving onto another session rejected", func(t *testing.T) {
		other := &models.Session{
			LawyerID:  lawyer.ID,
			ClientID:  client.ID,
			Date:      "2026-09-15",
			StartTime: "16:00",
			EndTime:   "17:00",
		}
		assert.NoError(t, database.Create(other).Error)

		_, c, rec := setupEcho(http.MethodPut, "/api/sessions/"+session.ID, jsonBody(t, map[string]string{
			"start_time": "16:30",
			"end_time":   "17:30",
		}))
		c.SetParamNames("id")
		c.SetParamValues(session.ID)
		actAsLawyer(c, lawyer)

		assert.NoError(t, UpdateSessionHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
