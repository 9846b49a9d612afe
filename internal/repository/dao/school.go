package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSchoolNotFound = errors.New("school not found")

type School struct {
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"unique;not null"`
	Address     string `gorm:"not null"`
	Description string

	AdminID          uint   `gorm:"not null;index"`
	Admin            User   `gorm:"foreignKey:AdminID"`
	AdditionalAdmins []User `gorm:"many2many:school_admins;"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type SchoolDAO struct {
	db *gorm.DB
}

func NewSchoolDAO(db *gorm.DB) *SchoolDAO {
	return &SchoolDAO{
		db: db,
	}
}

// InsertWithAdmin creates the school and promotes its primary admin to
// school_admin in one transaction, so a failed promotion leaves no school
// behind. Returns ErrUserNotFound when the admin does not exist.
func (d *SchoolDAO) InsertWithAdmin(ctx context.Context, school School) (School, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var admin User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&admin, school.AdminID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}

			return err
		}

		if err := tx.Create(&school).Error; err != nil {
			return err
		}

		return tx.Model(&admin).
			Updates(map[string]interface{}{
				"role":      "school_admin",
				"school_id": school.ID,
			}).Error
	})
	if err != nil {
		return School{}, err
	}

	return school, nil
}

func (d *SchoolDAO) FindByID(ctx context.Context, id uint) (School, error) {
	var school School

	result := d.db.WithContext(ctx).Preload("AdditionalAdmins").First(&school, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return School{}, ErrSchoolNotFound
		}

		return School{}, result.Error
	}

	return school, nil
}

// FindByAdmin returns the school the given user administers, either as the
// primary admin or through the school_admins join table.
func (d *SchoolDAO) FindByAdmin(ctx context.Context, userID uint) (School, error) {
	var school School

	result := d.db.WithContext(ctx).
		Preload("AdditionalAdmins").
		Joins("LEFT JOIN school_admins ON school_admins.school_id = schools.id").
		Where("schools.admin_id = ? OR school_admins.user_id = ?", userID, userID).
		First(&school)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return School{}, ErrSchoolNotFound
		}

		return School{}, result.Error
	}

	return school, nil
}

func (d *SchoolDAO) FindAll(ctx context.Context, page, limit int) ([]School, int64, error) {
	var (
		schools []School
		total   int64
	)

	if err := d.db.WithContext(ctx).Model(&School{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := d.db.WithContext(ctx).
		Preload("AdditionalAdmins").
		Scopes(paginate(page, limit)).
		Order("id").
		Find(&schools)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return schools, total, nil
}

func (d *SchoolDAO) Update(ctx context.Context, school School) (School, error) {
	result := d.db.WithContext(ctx).Save(&school)
	if result.Error != nil {
		return School{}, result.Error
	}

	return school, nil
}

func (d *SchoolDAO) ReplaceAdditionalAdmins(ctx context.Context, schoolID uint, admins []User) error {
	school := School{ID: schoolID}

	return d.db.WithContext(ctx).Model(&school).Association("AdditionalAdmins").Replace(admins)
}

func (d *SchoolDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&School{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSchoolNotFound
	}

	return nil
}

func (d *SchoolDAO) CountAll(ctx context.Context) (int64, error) {
	var total int64

	result := d.db.WithContext(ctx).Model(&School{}).Count(&total)
	if result.Error != nil {
		return 0, result.Error
	}

	return total, nil
}
