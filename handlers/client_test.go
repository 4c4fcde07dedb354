package handlers

import (
	"net/http"
	"testing"

	"cabinet_avocat_go/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateClient(t *testing.T) {
	database := setupTestDB(t)
	lawyer := createTestLawyer(t, database, "clients@test.com")

	t.Run("Success", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/api/clients", jsonBody(t, map[string]string{
			"first_name":  "Leila",
			"last_name":   "Mansouri",
			"national_id": "CL100001",
			"phone":       "0555123456",
		}))
		actAsLawyer(c, lawyer)

		assert.NoError(t, CreateClientHandler(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var created models.Client
		decodeBody(t, rec, &created)
		assert.Equal(t, lawyer.ID, created.LawyerID)
	})

	t.Run("Duplicate national ID rejected", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/api/clients", jsonBody(t, map[string]string{
			"first_name":  "Other",
			"last_name":   "Person",
			"national_id": "CL100001",
		}))
		actAsLawyer(c, lawyer)

		assert.NoError(t, CreateClientHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Missing required fields rejected", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/api/clients", jsonBody(t, map[string]string{
			"first_name": "NoID",
		}))
		actAsLawyer(c, lawyer)

		assert.NoError(t, CreateClientHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestClientOwnershipScope(t *testing.T) {
	database := setupTestDB(t)
	owner := createTestLawyer(t, database, "owner@test.com")
	other := createTestLawyer(t, database, "other@test.com")
	client := createTestClient(t, database, owner, "CL200001")

	t.Run("Owner can fetch", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/clients/"+client.ID, nil)
		c.SetParamNames("id")
		c.SetParamValues(client.ID)
		actAsLawyer(c, owner)

		assert.NoError(t, GetClientHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Another lawyer gets 404", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/clients/"+client.ID, nil)
		c.SetParamNames("id")
		c.SetParamValues(client.ID)
		actAsLawyer(c, other)

		assert.NoError(t, GetClientHandler(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Malformed ID gets 400", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/clients/not-a-uuid", nil)
		c.SetParamNames("id")
		c.SetParamValues("not-a-uuid")
		actAsLawyer(c, owner)

		assert.NoError(t, GetClientHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeleteClientCascade(t *testing.T) {
	database := setupTestDB(t)
	lawyer := createTestLawyer(t, database, "clients-del@test.com")
	client := createTestClient(t, database, lawyer, "CL300001")

	cs := &models.Case{
		LawyerID:   lawyer.ID,
		ClientID:   client.ID,
		Category:   "civil",
		ClientRole: models.ClientRoleDemandeur,
		CaseLevel:  models.CaseLevelPrimary,
		FeeType:    models.FeeTypeLawyerOnly,
		Status:     models.CaseStatusOngoing,
	}
	assert.NoError(t, database.Create(cs).Error)
	link := &models.CaseClientLink{CaseID: cs.ID, ClientID: client.ID}
	assert.NoError(t, database.Create(link).Error)

	_, c, rec := setupEcho(http.MethodDelete, "/api/clients/"+client.ID, nil)
	c.SetParamNames("id")
	c.SetParamValues(client.ID)
	actAsLawyer(c, lawyer)

	assert.NoError(t, DeleteClientHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Join rows are gone, the case survives
	var links int64
	database.Model(&models.CaseClientLink{}).Where("client_id = ?", client.ID).Count(&links)
	assert.Equal(t, int64(0), links)

	var cases int64
	database.Model(&models.Case{}).Where("id = ?", cs.ID).Count(&cases)
	assert.Equal(t, int64(1), cases)
}
