package user

// User mirrors the users table. Role is constrained by a CHECK in the
// schema and validated again at the application boundary.
type User struct {
	ID           int64  `gorm:"primaryKey"`
	Name         string `gorm:"column:name;not null"`
	Email        string `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	Role         string `gorm:"column:role;not null"`
}

func (User) TableName() string {
	return "users"
}
