package model

import "time"

// Course groups chapters. Membership and role checks live outside the
// engine; the engine only needs the ownership chain for addressing.
type Course struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Title     string    `json:"title" gorm:"not null"`
	OwnerID   *uint     `json:"owner_id,omitempty" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Chapter struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	CourseID   uint       `json:"course_id" gorm:"not null;index"`
	Course     Course     `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Title      string     `json:"title" gorm:"not null"`
	OrderIndex *int       `json:"order_index,omitempty"`
	Questions  []Question `json:"questions,omitempty" gorm:"foreignKey:ChapterID"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
