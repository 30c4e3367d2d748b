package models

import (
	"database/sql/driver"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// GoalList is the ordered list of time goals (seconds) for scoring tiers.
// Stored as a JSON array in a single column.
type GoalList []int

func (g GoalList) Value() (driver.Value, error) {
	if g == nil {
		g = GoalList{}
	}
	return json.Marshal(g)
}

func (g *GoalList) Scan(value interface{}) error {
	if value == nil {
		*g = GoalList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, g)
	case string:
		return json.Unmarshal([]byte(v), g)
	default:
		return fmt.Errorf("cannot scan %T into GoalList", value)
	}
}

// Challenge is one puzzle row. The image lives inline in the row; the four
// image_* columns are only ever written together via SetImage.
type Challenge struct {
	ID                              int      `json:"id" gorm:"primaryKey;autoIncrement"`
	Date                            *string  `json:"date" gorm:"size:50"`
	Clue                            string   `json:"clue" gorm:"type:text;not null"`
	Credit                          *string  `json:"credit" gorm:"size:255"`
	CreditUrl                       *string  `json:"credit_url" gorm:"size:255"`
	ImageData                       []byte   `json:"-"`
	ImageName                       *string  `json:"image_name" gorm:"size:255"`
	ImageContentType                *string  `json:"image_content_type" gorm:"size:100"`
	ImageSize                       *int     `json:"image_size"`
	Goals                           GoalList `json:"goals" gorm:"type:text"`
	Hitareas                        *string  `json:"hitareas" gorm:"type:text"`
	BeforeMessageTitle              *string  `json:"before_message_title" gorm:"size:255"`
	BeforeMessageBody               *string  `json:"before_message_body" gorm:"type:text"`
	BeforeMessageButton             *string  `json:"before_message_button" gorm:"size:100"`
	BeforeMessageBackgroundImageUrl *string  `json:"before_message_background_image_url" gorm:"size:255"`
	IsTest                          bool     `json:"is_test" gorm:"default:false"`
	IsPermanent                     bool     `json:"is_permanent" gorm:"default:false"`
	IsTutorial                      bool     `json:"is_tutorial" gorm:"default:false"`
	CreatedAt                       time.Time `json:"created_at"`
	UpdatedAt                       time.Time `json:"updated_at"`
}

func (Challenge) TableName() string {
	return "challenges"
}

// HasImage reports whether image bytes are stored, independent of the
// image metadata columns.
func (c *Challenge) HasImage() bool {
	return c.ImageData != nil
}

// ImageBase64 returns the stored image encoded with the standard base64
// alphabet, or nil when there is no image.
func (c *Challenge) ImageBase64() *string {
	if c.ImageData == nil {
		return nil
	}
	encoded := base64.StdEncoding.EncodeToString(c.ImageData)
	return &encoded
}

// SetImage writes the four image columns as one unit. Nothing else may
// assign them.
func (c *Challenge) SetImage(name, contentType string, data []byte) {
	size := len(data)
	c.ImageData = data
	c.ImageName = &name
	c.ImageContentType = &contentType
	c.ImageSize = &size
}

// ClearImage drops the image and its metadata together.
func (c *Challenge) ClearImage() {
	c.ImageData = nil
	c.ImageName = nil
	c.ImageContentType = nil
	c.ImageSize = nil
}

// ChallengeResponse is the public read representation of a challenge.
type ChallengeResponse struct {
	Id                              int       `json:"id"`
	Date                            *string   `json:"date"`
	Clue                            string    `json:"clue"`
	Credit                          *string   `json:"credit"`
	CreditUrl                       *string   `json:"credit_url"`
	Goals                           []int     `json:"goals"`
	Hitareas                        *string   `json:"hitareas"`
	BeforeMessageTitle              *string   `json:"before_message_title"`
	BeforeMessageBody               *string   `json:"before_message_body"`
	BeforeMessageButton             *string   `json:"before_message_button"`
	BeforeMessageBackgroundImageUrl *string   `json:"before_message_background_image_url"`
	IsTest                          bool      `json:"is_test"`
	IsPermanent                     bool      `json:"is_permanent"`
	IsTutorial                      bool      `json:"is_tutorial"`
	ImageName                       *string   `json:"image_name"`
	ImageContentType                *string   `json:"image_content_type"`
	ImageSize                       *int      `json:"image_size"`
	HasImage                        bool      `json:"has_image"`
	ImageBase64                     *string   `json:"image_base64"`
	CreatedAt                       time.Time `json:"created_at"`
	UpdatedAt                       time.Time `json:"updated_at"`
}

// ChallengeSummary is the admin listing shape: everything except the
// image payload itself.
type ChallengeSummary struct {
	Id          int       `json:"id"`
	Date        *string   `json:"date"`
	Clue        string    `json:"clue"`
	HasImage    bool      `json:"has_image"`
	ImageSize   *int      `json:"image_size"`
	IsTest      bool      `json:"is_test"`
	IsPermanent bool      `json:"is_permanent"`
	IsTutorial  bool      `json:"is_tutorial"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
