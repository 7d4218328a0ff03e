package store

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/solacehq/solace/internal/domain"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

type userRecord struct {
	ID            uint   `gorm:"primaryKey"`
	Username      string `gorm:"uniqueIndex;size:36"`
	PasswordHash  string
	Email         string
	FirstTimeUser bool
	Assessments   string // JSON array of Assessment
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Assessment is one completed questionnaire with its generated reply.
type Assessment struct {
	Date    time.Time `json:"date"`
	Answers []string  `json:"answers"`
	Reply   string    `json:"reply"`
}

// Users is the account repository consumed by the HTTP handlers.
type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

func (u *Users) FindByUsername(username string) (*domain.Account, error) {
	var rec userRecord
	result := u.db.First(&rec, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &domain.Account{
		Username:      rec.Username,
		PasswordHash:  rec.PasswordHash,
		Email:         rec.Email,
		FirstTimeUser: rec.FirstTimeUser,
	}, nil
}

func (u *Users) Insert(acct *domain.Account) error {
	var count int64
	if err := u.db.Model(&userRecord{}).Where("username = ?", acct.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUserExists
	}
	rec := userRecord{
		Username:      acct.Username,
		PasswordHash:  acct.PasswordHash,
		Email:         acct.Email,
		FirstTimeUser: acct.FirstTimeUser,
		Assessments:   "[]",
	}
	return u.db.Create(&rec).Error
}

// MarkReturning clears the first-time flag after the questionnaire.
func (u *Users) MarkReturning(username string) error {
	result := u.db.Model(&userRecord{}).Where("username = ?", username).
		Update("first_time_user", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (u *Users) AppendAssessment(username string, a Assessment) error {
	var rec userRecord
	if err := u.db.First(&rec, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	var history []Assessment
	if rec.Assessments != "" {
		if err := json.Unmarshal([]byte(rec.Assessments), &history); err != nil {
			history = nil
		}
	}
	history = append(history, a)
	raw, err := json.Marshal(history)
	if err != nil {
		return err
	}

	return u.db.Model(&rec).Updates(map[string]any{
		"assessments":     string(raw),
		"first_time_user": false,
	}).Error
}

func (u *Users) Assessments(username string) ([]Assessment, error) {
	var rec userRecord
	if err := u.db.First(&rec, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	var history []Assessment
	if rec.Assessments == "" {
		return nil, nil
	}
	if err := json.Unmarshal([]byte(rec.Assessments), &history); err != nil {
		return nil, err
	}
	return history, nil
}
