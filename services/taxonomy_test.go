package services

import (
	"testing"

	"cabinet_avocat_go/models"

	"github.com/stretchr/testify/assert"
)

func TestSeedCaseTypes(t *testing.T) {
	db := setupTestDB(t)

	assert.NoError(t, SeedCaseTypes(db))

	types, err := ListCaseTypes(db)
	assert.NoError(t, err)
	assert.Len(t, types, 6)

	t.Run("Seeding twice does not duplicate", func(t *testing.T) {
		assert.NoError(t, SeedCaseTypes(db))

		var count int64
		db.Model(&models.CaseType{}).Count(&count)
		assert.Equal(t, int64(6), count)
	})

	t.Run("Admin edits survive re-seeding", func(t *testing.T) {
		var civil models.CaseType
		assert.NoError(t, db.First(&civil, "name = ?", "civil").Error)
		civil.SetSubTypes(append(civil.SubTypeList(), "custom"))
		assert.NoError(t, db.Save(&civil).Error)

		assert.NoError(t, SeedCaseTypes(db))

		var reloaded models.CaseType
		assert.NoError(t, db.First(&reloaded, "name = ?", "civil").Error)
		assert.True(t, reloaded.HasSubType("custom"))
	})
}

func TestValidateCaseTaxonomy(t *testing.T) {
	db := setupTestDB(t)
	assert.NoError(t, SeedCaseTypes(db))

	t.Run("Known category and type", func(t *testing.T) {
		assert.NoError(t, ValidateCaseTaxonomy(db, "civil", "contract"))
	})

	t.Run("Empty type is allowed", func(t *testing.T) {
		assert.NoError(t, ValidateCaseTaxonomy(db, "penal", ""))
	})

	t.Run("Unknown category rejected", func(t *testing.T) {
		assert.Error(t, ValidateCaseTaxonomy(db, "maritime", ""))
	})

	t.Run("Type from another category rejected", func(t *testing.T) {
		assert.Error(t, ValidateCaseTaxonomy(db, "civil", "felony"))
	})
}
