package models

import "time"

type Course struct {
	ID          uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string   `gorm:"not null"                 json:"title"`
	Description string   `gorm:"not null"                 json:"description"`
	Price       string   `gorm:"not null"                 json:"price"`
	Duration    string   `gorm:"not null"                 json:"duration"`
	Difficulty  string   `gorm:"not null"                 json:"difficulty"`
	ImageURL    *string  `gorm:"column:image_url"          json:"imageUrl"`
	Tags        []string `gorm:"serializer:json;type:text" json:"tags"`
	Features    []string `gorm:"serializer:json;type:text" json:"features"`
	IsActive    bool     `gorm:"column:is_active;not null;index" json:"isActive"`
}

// CoursePatch carries a partial update; nil fields are left untouched.
// A non-nil Tags or Features pointer replaces the list, so pointing at a
// nil slice clears it. ClearImageURL wins over ImageURL.
type CoursePatch struct {
	Title         *string
	Description   *string
	Price         *string
	Duration      *string
	Difficulty    *string
	ImageURL      *string
	ClearImageURL bool
	Tags          *[]string
	Features      *[]string
	IsActive      *bool
}

func (p CoursePatch) Apply(c *Course) {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Price != nil {
		c.Price = *p.Price
	}
	if p.Duration != nil {
		c.Duration = *p.Duration
	}
	if p.Difficulty != nil {
		c.Difficulty = *p.Difficulty
	}
	switch {
	case p.ClearImageURL:
		c.ImageURL = nil
	case p.ImageURL != nil:
		v := *p.ImageURL
		c.ImageURL = &v
	}
	if p.Tags != nil {
		c.Tags = cloneStrings(*p.Tags)
	}
	if p.Features != nil {
		c.Features = cloneStrings(*p.Features)
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
}

// Clone returns a deep copy so stored records never alias caller memory.
func (c Course) Clone() Course {
	out := c
	if c.ImageURL != nil {
		v := *c.ImageURL
		out.ImageURL = &v
	}
	out.Tags = cloneStrings(c.Tags)
	out.Features = cloneStrings(c.Features)
	return out
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                      json:"id"`
	SessionID string    `gorm:"column:session_id;not null;uniqueIndex:idx_cart_session_course" json:"sessionId"`
	CourseID  uint      `gorm:"column:course_id;not null;uniqueIndex:idx_cart_session_course" json:"courseId"`
	AddedAt   time.Time `gorm:"not null"                                      json:"addedAt"`
}

// CartLine is a cart item joined with the course it references.
type CartLine struct {
	CartItem
	Course Course `json:"course"`
}

type Order struct {
	ID               uint          `gorm:"primaryKey;autoIncrement"  json:"id"`
	UserID           *uint         `json:"userId"`
	CourseIDs        []uint        `gorm:"column:course_ids;serializer:json;type:text" json:"courseIds"`
	TotalAmount      string        `gorm:"not null"                  json:"totalAmount"`
	PaymentMethod    PaymentMethod `gorm:"not null"                  json:"paymentMethod"`
	PaymentReference string        `gorm:"column:payment_reference;not null;uniqueIndex" json:"paymentReference"`
	UTRNumber        *string       `gorm:"column:utr_number"         json:"utrNumber,omitempty"`
	Status           OrderStatus   `gorm:"not null;index"            json:"status"`
	CreatedAt        time.Time     `json:"createdAt"`
}

func (o Order) Clone() Order {
	out := o
	if o.UserID != nil {
		v := *o.UserID
		out.UserID = &v
	}
	if o.UTRNumber != nil {
		v := *o.UTRNumber
		out.UTRNumber = &v
	}
	if o.CourseIDs != nil {
		out.CourseIDs = append([]uint(nil), o.CourseIDs...)
	}
	return out
}

type User struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string  `gorm:"uniqueIndex;not null"     json:"username"`
	PasswordHash string  `gorm:"not null"                 json:"-"`
	Email        *string `json:"email,omitempty"`
	IsAdmin      bool    `gorm:"not null"                 json:"isAdmin"`
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
