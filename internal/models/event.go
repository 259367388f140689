package models

import "time"

type EventType string

const (
	EventWatering    EventType = "watering"
	EventFertilizing EventType = "fertilizing"
	EventPruning     EventType = "pruning"
	EventInspection  EventType = "inspection"
	EventTreatment   EventType = "treatment"
	EventHarvest     EventType = "harvest"
	EventOther       EventType = "other"
)

func (t EventType) Valid() bool {
	switch t {
	case EventWatering, EventFertilizing, EventPruning, EventInspection,
		EventTreatment, EventHarvest, EventOther:
		return true
	}
	return false
}

// Event is an immutable log entry for a crop. There is no update or delete
// path; retroactive and future-dated entries are both allowed.
type Event struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	CropID    string    `gorm:"type:uuid;not null;index" json:"crop_id"`
	Type      EventType `gorm:"type:varchar(20);not null" json:"type"`
	Notes     string    `gorm:"type:text" json:"notes"`
	EventDate time.Time `gorm:"not null" json:"event_date"`
	CreatedAt time.Time `json:"created_at"`
}
