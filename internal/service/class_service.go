package service

import (
	"errors"
	"strings"
	"time"

	"notedu_backend/internal/model"
	"notedu_backend/internal/repository"
	"notedu_backend/internal/util"

	"gorm.io/gorm"
)

const (
	inviteCodeLength  = 6
	inviteCodeRetries = 5
)

// ClassMember 班级成员视图。
type ClassMember struct {
	UserID   uint      `json:"user_id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type ClassService struct {
	classRepo *repository.ClassRepository
	userRepo  *repository.UserRepository
}

func NewClassService(classRepo *repository.ClassRepository, userRepo *repository.UserRepository) *ClassService {
	return &ClassService{classRepo: classRepo, userRepo: userRepo}
}

// CreateClass 创建班级并生成唯一邀请码，码冲突时有限次重试。
func (s *ClassService) CreateClass(ownerID uint, title, description string) (*model.Class, error) {
	if strings.TrimSpace(title) == "" {
		return nil, util.ErrEmptyTitle
	}
	for i := 0; i < inviteCodeRetries; i++ {
		class := &model.Class{
			Title:       strings.TrimSpace(title),
			Description: description,
			Code:        util.GenerateInviteCode(inviteCodeLength),
			OwnerID:     ownerID,
		}
		err := s.classRepo.CreateWithOwner(class)
		if err == nil {
			return class, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	return nil, util.ErrCodeExhausted
}

func (s *ClassService) GetClass(classID uint) (*model.Class, error) {
	class, err := s.classRepo.FindByID(classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrClassNotFound
		}
		return nil, err
	}
	return class, nil
}

func (s *ClassService) ListForUser(userID uint) ([]model.Class, error) {
	return s.classRepo.ListForUser(userID)
}

// JoinByCode 凭邀请码加入班级。重复加入不报错，直接返回已有班级。
func (s *ClassService) JoinByCode(userID uint, code string) (*model.Class, error) {
	class, err := s.classRepo.FindByCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrClassNotFound
		}
		return nil, err
	}
	_, err = s.classRepo.FindEnrollment(class.ID, userID)
	if err == nil {
		return class, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	enrollment := &model.Enrollment{
		ClassID:     class.ID,
		UserID:      userID,
		RoleInClass: model.Student,
		JoinedAt:    time.Now(),
	}
	if err := s.classRepo.CreateEnrollment(enrollment); err != nil {
		return nil, err
	}
	return class, nil
}

// Members 班级成员列表，仅限班级所有者查看。
func (s *ClassService) Members(viewerID, classID uint) ([]ClassMember, error) {
	class, err := s.GetClass(classID)
	if err != nil {
		return nil, err
	}
	if class.OwnerID != viewerID {
		return nil, util.ErrPermissionDenied
	}
	enrollments, err := s.classRepo.ListEnrollments(classID)
	if err != nil {
		return nil, err
	}
	userIDs := make([]uint, 0, len(enrollments))
	for _, e := range enrollments {
		userIDs = append(userIDs, e.UserID)
	}
	users, err := s.userRepo.FindByIDs(userIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	members := make([]ClassMember, 0, len(enrollments))
	for _, e := range enrollments {
		u := byID[e.UserID]
		members = append(members, ClassMember{
			UserID:   e.UserID,
			FullName: u.FullName,
			Email:    u.Email,
			Role:     string(e.RoleInClass),
			JoinedAt: e.JoinedAt,
		})
	}
	return members, nil
}

// DeleteClass 仅限所有者。非所有者返回权限错误而不是不存在，
// 避免把班级是否存在泄露和权限问题混为一谈。
func (s *ClassService) DeleteClass(userID, classID uint) error {
	class, err := s.GetClass(classID)
	if err != nil {
		return err
	}
	if class.OwnerID != userID {
		return util.ErrPermissionDenied
	}
	return s.classRepo.DeleteCascade(classID)
}
