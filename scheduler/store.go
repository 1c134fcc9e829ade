package scheduler

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mcspirou6/hackaton-mrc-sub001/models"
)

// gormStore implements AppointmentSource on the application database
type gormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) AppointmentSource {
	return &gormStore{db: db}
}

func (s *gormStore) AppointmentsDueBetween(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	// The window can cross midnight, so fetch the candidate calendar dates
	// in SQL and do the exact instant comparison in Go.
	dates := []string{from.Format("2006-01-02")}
	if d := to.Format("2006-01-02"); d != dates[0] {
		dates = append(dates, d)
	}

	var candidates []models.Appointment
	err := s.db.WithContext(ctx).
		Preload("Patient").
		Where("reminder_sent = ? AND appointment_date::date IN ?", false, dates).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	var due []models.Appointment
	for _, appt := range candidates {
		at, err := appt.ScheduledAt(from.Location())
		if err != nil {
			// malformed time of day, leave the row for operators
			continue
		}
		if !at.Before(from) && !at.After(to) {
			due = append(due, appt)
		}
	}
	return due, nil
}

func (s *gormStore) UserByIDAndRole(ctx context.Context, id uint, role string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND role = ?", id, role).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormStore) UsersByNameAndRole(ctx context.Context, firstName, lastName, role string) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Where("first_name = ? AND last_name = ? AND role = ?", firstName, lastName, role).
		Order("user_id ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *gormStore) MarkReminderSent(ctx context.Context, appointmentID uint) error {
	return s.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("appointment_id = ?", appointmentID).
		Update("reminder_sent", true).Error
}
