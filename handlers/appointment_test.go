package handlers

import (
	"net/http"
	"testing"

	"cabinet_avocat_go/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateAppointment(t *testing.T) {
	database := setupTestDB(t)
	lawyer := createTestLawyer(t, database, "rdv@test.com")
	client := createTestClient(t, database, lawyer, "RV111111")

	t.Run("Meeting without case rejected", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/api/rendez-vous", jsonBody(t, map[string]interface{}{
			"client_id":  client.ID,
			"date":       "2026-10-01",
			"start_time": "10:00",
			"end_time":   "11:00",
			"type":       models.AppointmentTypeMeeting,
		}))
		actAsLawyer(c, lawyer)

		assert.NoError(t, CreateAppointmentHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Consultation type needs no case", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/api/rendez-vous", jsonBody(t, map[string]interface{}{
			"client_id":  client.ID,
			"date":       "2026-10-01",
			"start_time": "10:00",
			"end_time":   "11:00",
		}))
		actAsLawyer(c, lawyer)

		assert.NoError(t, CreateAppointmentHandler(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var created models.Appointment
		decodeBody(t, rec, &created)
		assert.Equal(t, models.AppointmentTypeConsultation, created.Type)
		assert.Equal(t, models.AppointmentStatusScheduled, created.Status)
	})

	t.Run("Overlapping appointment rejected", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/api/rendez-vous", jsonBody(t, map[string]interface{}{
			"client_id":  client.ID,
			"date":       "2026-10-01",
			"start_time": "10:30",
			"end_time":   "11:30",
		}))
		actAsLawyer(c, lawyer)

		assert.NoError(t, CreateAppointmentHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Weekly recurrence accepted", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/api/rendez-vous", jsonBody(t, map[string]interface{}{
			"client_id":            client.ID,
			"date":                 "2026-10-02",
			"start_time":           "09:00",
			"end_time":             "09:30",
			"recurrence_frequency": models.RecurrenceWeekly,
			"recurrence_end_date":  "2026-12-31",
		}))
		actAsLawyer(c, lawyer)

		assert.NoError(t, CreateAppointmentHandler(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestDeleteAppointmentWithDependentSessions(t *testing.T) {
	database := setupTestDB(t)
	lawyer := createTestLawyer(t, database, "rdv-del@test.com")
	client := createTestClient(t, database, lawyer, "RV222222")

	appointment := &models.Appointment{
		LawyerID:  lawyer.ID,
		ClientID:  client.ID,
		Date:      "2026-10-05",
		StartTime: "10:00",
		EndTime:   "11:00",
		Type:      models.AppointmentTypeConsultation,
		Status:    models.AppointmentStatusConfirmed,
	}
	assert.NoError(t, database.Create(appointment).Error)

	session := &models.Session{
		LawyerID:      lawyer.ID,
		ClientID:      client.ID,
		AppointmentID: &appointment.ID,
		Date:          "2026-10-20",
		StartTime:     "09:00",
		EndTime:       "10:00",
	}
	assert.NoError(t, database.Create(session).Error)

	t.Run("Refused while sessions depend on it", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodDelete, "/api/rendez-vous/"+appointment.ID, nil)
		c.SetParamNames("id")
		c.SetParamValues(appointment.ID)
		actAsLawyer(c, lawyer)

		assert.NoError(t, DeleteAppointmentHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body struct {
			Error    string           `json:"error"`
			Sessions []models.Session `json:"sessions"`
		}
		decodeBody(t, rec, &body)
		assert.Len(t, body.Sessions, 1)
		assert.Equal(t, session.ID, body.Sessions[0].ID)

		// The appointment is still there
		var count int64
		database.Model(&models.Appointment{}).Where("id = ?", appointment.ID).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Allowed once the session is gone", func(t *testing.T) {
		assert.NoError(t, database.Delete(session).Error)

		_, c, rec := setupEcho(http.MethodDelete, "/api/rendez-vous/"+appointment.ID, nil)
		c.SetParamNames("id")
		c.SetParamValues(appointment.ID)
		actAsLawyer(c, lawyer)

		assert.NoError(t, DeleteAppointmentHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
