package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

var ErrMemberNotFound = errors.New("member not found")

type Member struct {
	ID           string `gorm:"primaryKey;size:64"`
	Name         string `gorm:"not null;index"`
	Phone        string `gorm:"not null;index"`
	Email        string `gorm:"not null;default:''"`
	Discount     int    `gorm:"not null;default:0"`
	NotifyStatus string `gorm:"not null;default:'none'"`
	NotifyError  string `gorm:"not null;default:''"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type MemberDAO struct {
	db *gorm.DB
}

func NewMemberDAO(db *gorm.DB) *MemberDAO {
	return &MemberDAO{
		db: db,
	}
}

func (d *MemberDAO) Insert(ctx context.Context, member Member) (Member, error) {
	if err := d.db.WithContext(ctx).Create(&member).Error; err != nil {
		return Member{}, err
	}

	return member, nil
}

// FindAll returns every member, or only those whose name (case-insensitive)
// or phone contains query when query is not empty.
func (d *MemberDAO) FindAll(ctx context.Context, query string) ([]Member, error) {
	tx := d.db.WithContext(ctx).Order("created_at ASC, id ASC")
	if q := strings.TrimSpace(query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR phone LIKE ?", like, "%"+q+"%")
	}

	var members []Member
	if err := tx.Find(&members).Error; err != nil {
		return nil, err
	}

	return members, nil
}

func (d *MemberDAO) FindByID(ctx context.Context, id string) (Member, error) {
	var member Member
	result := d.db.WithContext(ctx).First(&member, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Member{}, ErrMemberNotFound
		}

		return Member{}, result.Error
	}

	return member, nil
}

func (d *MemberDAO) Update(ctx context.Context, member Member) (Member, error) {
	result := d.db.WithContext(ctx).Model(&Member{ID: member.ID}).Updates(map[string]any{
		"name":       member.Name,
		"phone":      member.Phone,
		"email":      member.Email,
		"discount":   member.Discount,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return Member{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Member{}, ErrMemberNotFound
	}

	return d.FindByID(ctx, member.ID)
}

func (d *MemberDAO) UpdateNotification(ctx context.Context, id, status, errMsg string) error {
	result := d.db.WithContext(ctx).Model(&Member{ID: id}).Updates(map[string]any{
		"notify_status": status,
		"notify_error":  errMsg,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}

	return nil
}

func (d *MemberDAO) Delete(ctx context.Context, id string) error {
	result := d.db.WithContext(ctx).Delete(&Member{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}

	return nil
}

func (d *MemberDAO) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&Member{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
