package models

// User represents a registered account. IDs are supplied by the caller
// (an external provisioning step), not generated by the store.
type User struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username  string `json:"username" gorm:"uniqueIndex;type:varchar(20);not null" validate:"required,max=20"`
	Email     string `json:"email" gorm:"uniqueIndex;type:varchar(120);not null" validate:"required,email,max=120"`
	ImageFile string `json:"image_file" gorm:"type:varchar(20);not null;default:default.jpg"`
	Password  string `json:"-" gorm:"type:varchar(60);not null" validate:"required,max=60"` // never serialized
	Posts     []Post `json:"-" gorm:"foreignKey:UserID"`
}
