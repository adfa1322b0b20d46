package models

import "time"

type Role string

const (
	RoleStudent   Role = "student"
	RoleRecruiter Role = "recruiter"
)

// User is the identity projection the core reads: contact data and resume presence.
type User struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	FullName  string    `json:"fullname"`
	Email     string    `gorm:"index" json:"email"`
	Role      Role      `gorm:"type:varchar(16)" json:"role"`
	ResumeURL string    `json:"resume,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) HasResume() bool {
	return u.ResumeURL != ""
}

type Contact struct {
	Email string
	Name  string
}

type Company struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `json:"description"`
	Website     string    `json:"website"`
	Location    string    `json:"location"`
	OwnerID     string    `gorm:"type:varchar(36);index" json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
