package models

// User represents a registered account. The password hash never gets a
// json tag, so it cannot leak into responses.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;type:varchar(100);not null"`
	PasswordHash string `json:"-" gorm:"type:varchar(255);not null"`
}
