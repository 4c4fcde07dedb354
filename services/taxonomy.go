package services

import (
	"fmt"
	"log"

	"cabinet_avocat_go/models"

	"gorm.io/gorm"
)

// defaultCaseTaxonomy is the authoritative category/sub-type table. It is
// seeded into the case_types collection at startup and all case
// category/type validation reads the persisted collection.
var defaultCaseTaxonomy = []struct {
	Name     string
	SubTypes []string
}{
	{"civil", []string{"contract", "property", "family", "inheritance", "tort"}},
	{"penal", []string{"misdemeanor", "felony", "traffic", "appeal"}},
	{"commercial", []string{"company", "bankruptcy", "commercial_paper", "competition"}},
	{"administrative", []string{"tax", "public_procurement", "civil_service"}},
	{"social", []string{"employment", "social_security", "work_accident"}},
	{"real_estate", []string{"registration", "expropriation", "lease"}},
}

// SeedCaseTypes inserts any missing taxonomy categories. Existing rows are
// left untouched so admin edits survive restarts.
func SeedCaseTypes(db *gorm.DB) error {
	for _, entry := range defaultCaseTaxonomy {
		var count int64
		if err := db.Model(&models.CaseType{}).Where("name = ?", entry.Name).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check case type %q: %w", entry.Name, err)
		}
		if count > 0 {
			continue
		}

		caseType := &models.CaseType{Name: entry.Name}
		caseType.SetSubTypes(entry.SubTypes)
		if err := db.Create(caseType).Error; err != nil {
			return fmt.Errorf("failed to seed case type %q: %w", entry.Name, err)
		}
	}

	log.Println("Case type taxonomy seeded")
	return nil
}

// ValidateCaseTaxonomy checks a category/type pair against the persisted
// taxonomy collection
func ValidateCaseTaxonomy(db *gorm.DB, category, caseType string) error {
	var node models.CaseType
	if err := db.Where("name = ?", category).First(&node).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("unknown case category %q", category)
		}
		return fmt.Errorf("failed to load case category: %w", err)
	}

	if caseType != "" && !node.HasSubType(caseType) {
		return fmt.Errorf("unknown case type %q for category %q", caseType, category)
	}

	return nil
}

// ListCaseTypes returns the full taxonomy for clients of the API
func ListCaseTypes(db *gorm.DB) ([]models.CaseType, error) {
	var types []models.CaseType
	err := db.Order("name asc").Find(&types).Error
	return types, err
}
