package queue

import (
	"time"

	"gorm.io/gorm"
)

// FailedJobRecord persists exhausted jobs so they can be inspected and
// replayed after a deploy.
type FailedJobRecord struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"`
	JobType  string    `gorm:"size:255;not null;index"`
	Payload  string    `gorm:"type:text;not null"`
	Error    string    `gorm:"type:text"`
	Attempts int       `gorm:"not null;default:0"`
	FailedAt time.Time `gorm:"autoCreateTime"`
}

func (FailedJobRecord) TableName() string { return "failed_jobs" }

var failedJobDB *gorm.DB

// UseDB enables database persistence of failed jobs. Call once after the
// database connects; migration 000001 creates the table.
func UseDB(db *gorm.DB) {
	failedJobDB = db
}

func (m *Manager) recordFailure(typeName, payload string, lastErr error, attempts int) {
	m.mu.Lock()
	m.failed = append(m.failed, FailedJob{
		Type:     typeName,
		Payload:  payload,
		Err:      lastErr,
		Attempts: attempts,
		FailedAt: time.Now(),
	})
	m.mu.Unlock()

	if failedJobDB == nil {
		return
	}

	errMsg := ""
	if lastErr != nil {
		errMsg = lastErr.Error()
	}

	record := FailedJobRecord{
		JobType:  typeName,
		Payload:  payload,
		Error:    errMsg,
		Attempts: attempts,
		FailedAt: time.Now(),
	}
	failedJobDB.Create(&record) //nolint:errcheck
}
