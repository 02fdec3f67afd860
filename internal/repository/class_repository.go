package repository

import (
	"notedu_backend/internal/model"

	"gorm.io/gorm"
)

type ClassRepository struct {
	DB *gorm.DB
}

func NewClassRepository(db *gorm.DB) *ClassRepository {
	return &ClassRepository{DB: db}
}

// CreateWithOwner 创建班级并把创建者以teacher身份写入成员表。
// 邀请码唯一索引冲突原样返回，由上层换码重试。
func (r *ClassRepository) CreateWithOwner(class *model.Class) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(class).Error; err != nil {
			return err
		}
		enroll := &model.Enrollment{
			ClassID:     class.ID,
			UserID:      class.OwnerID,
			RoleInClass: model.Teacher,
		}
		return tx.Create(enroll).Error
	})
}

func (r *ClassRepository) FindByID(id uint) (*model.Class, error) {
	var class model.Class
	err := r.DB.First(&class, id).Error
	return &class, err
}

func (r *ClassRepository) FindByCode(code string) (*model.Class, error) {
	var class model.Class
	err := r.DB.Where("code = ?", code).First(&class).Error
	return &class, err
}

func (r *ClassRepository) ListForUser(userID uint) ([]model.Class, error) {
	var classes []model.Class
	err := r.DB.
		Joins("JOIN enrollments ON enrollments.class_id = classes.id AND enrollments.deleted_at IS NULL").
		Where("enrollments.user_id = ?", userID).
		Find(&classes).Error
	return classes, err
}

func (r *ClassRepository) FindEnrollment(classID, userID uint) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.DB.Where("class_id = ? AND user_id = ?", classID, userID).First(&e).Error
	return &e, err
}

func (r *ClassRepository) CreateEnrollment(e *model.Enrollment) error {
	return r.DB.Create(e).Error
}

func (r *ClassRepository) ListEnrollments(classID uint) ([]model.Enrollment, error) {
	var es []model.Enrollment
	err := r.DB.Where("class_id = ?", classID).Find(&es).Error
	return es, err
}

// DeleteCascade 删除班级及其下属成员、Quiz、题目和答题记录。
func (r *ClassRepository) DeleteCascade(classID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var quizIDs []uint
		if err := tx.Model(&model.Quiz{}).Where("class_id = ?", classID).Pluck("id", &quizIDs).Error; err != nil {
			return err
		}
		if len(quizIDs) > 0 {
			if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&model.Attempt{}).Error; err != nil {
				return err
			}
			if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&model.Question{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", quizIDs).Delete(&model.Quiz{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("class_id = ?", classID).Delete(&model.Enrollment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Class{}, classID).Error
	})
}
