package sql

import (
	"context"
	"fmt"
	"strings"

	"inkwell/internal/entity"
)

// CreateSession persists a new session row.
func (r *GormRepository) CreateSession(ctx context.Context, session *entity.DbSession) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if session == nil {
		return fmt.Errorf("session is nil")
	}
	return r.db.WithContext(ctx).Create(session).Error
}

// GetSessionByToken loads a session by exact token match.
func (r *GormRepository) GetSessionByToken(ctx context.Context, token string) (*entity.DbSession, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("token is empty")
	}
	var session entity.DbSession
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteSessionByID removes a session row by primary key.
func (r *GormRepository) DeleteSessionByID(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid session id")
	}
	return r.db.WithContext(ctx).Delete(&entity.DbSession{}, id).Error
}

// DeleteSessionByToken removes the session matching the token and reports
// whether a row was actually deleted.
func (r *GormRepository) DeleteSessionByToken(ctx context.Context, token string) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("repository not initialised")
	}
	if strings.TrimSpace(token) == "" {
		return false, nil
	}
	result := r.db.WithContext(ctx).Where("token = ?", token).Delete(&entity.DbSession{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteSessionsByUser removes every session belonging to the user and
// returns the number of rows deleted.
func (r *GormRepository) DeleteSessionsByUser(ctx context.Context, userID uint) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	if userID == 0 {
		return 0, fmt.Errorf("invalid user id")
	}
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.DbSession{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
