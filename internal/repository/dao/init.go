package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&School{},
		&Event{},
		&EventSpeaker{},
		&EventRegistration{},
		&EventRequest{},
		&SpeakerRequest{},
		&Feedback{},
	)
}

// paginate turns 1-based page/limit into a gorm scope. Callers normalize
// page and limit before handing them over.
func paginate(page, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * limit).Limit(limit)
	}
}
