package database

import (
	"fmt"
	"log"

	"github.com/starkbrilliance/smartharvest/internal/models"
	"gorm.io/gorm"
)

var starterTemplates = []models.CropTemplate{
	{Name: "Peas", Variety: "Dunn", GrowingDays: 60, SpecialInstructions: "Plant in early spring. Keep soil moist but well-drained. Harvest when pods are plump but before they become tough."},
	{Name: "Tomato", Variety: "Cherry", GrowingDays: 70, SpecialInstructions: "Plant in full sun. Water regularly and deeply. Stake or cage plants for support. Harvest when fruits are fully colored."},
	{Name: "Basil", Variety: "Sweet", GrowingDays: 30, SpecialInstructions: "Plant in well-draining soil. Pinch off flower buds to encourage leaf growth. Harvest leaves regularly to promote bushiness."},
	{Name: "Lettuce", Variety: "Butterhead", GrowingDays: 45, SpecialInstructions: "Plant in cool weather. Keep soil consistently moist. Harvest outer leaves or entire head when mature."},
	{Name: "Carrot", Variety: "Nantes", GrowingDays: 65, SpecialInstructions: "Plant in loose, well-draining soil. Thin seedlings to prevent crowding. Harvest when roots are about 1 inch in diameter."},
	{Name: "Cucumber", Variety: "Marketmore", GrowingDays: 55, SpecialInstructions: "Plant in full sun. Provide trellis for vining varieties. Keep soil consistently moist. Harvest when fruits are firm and green."},
	{Name: "Spinach", Variety: "Bloomsdale", GrowingDays: 40, SpecialInstructions: "Plant in cool weather. Keep soil moist. Harvest outer leaves when they reach desired size."},
	{Name: "Bell Pepper", Variety: "California Wonder", GrowingDays: 75, SpecialInstructions: "Plant in full sun. Water regularly. Harvest when fruits are firm and fully colored."},
	{Name: "Green Beans", Variety: "Blue Lake", GrowingDays: 50, SpecialInstructions: "Plant in well-draining soil. Provide support for pole varieties. Harvest when pods are firm and crisp."},
	{Name: "Radish", Variety: "Cherry Belle", GrowingDays: 25, SpecialInstructions: "Plant in cool weather. Keep soil moist. Harvest when roots are about 1 inch in diameter."},
}

// SeedCropTemplates populates the starter template catalog on first boot.
// A non-empty table is left untouched.
func SeedCropTemplates(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.CropTemplate{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count crop templates: %w", err)
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding crop templates...")
	for i := range starterTemplates {
		if err := db.Create(&starterTemplates[i]).Error; err != nil {
			return fmt.Errorf("failed to seed crop template %q: %w", starterTemplates[i].Name, err)
		}
	}
	log.Println("Crop templates seeded")
	return nil
}
